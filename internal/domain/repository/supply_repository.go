package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// SupplyRepository define el puerto de persistencia para Supply y sus líneas.
type SupplyRepository interface {
	Create(supply *entity.Supply) error
	CreateLine(line *entity.SupplyLine) error
	// GetByCompany resuelve un suministro acotado a la empresa (vía su proveedor),
	// con sus líneas. Devuelve nil si no existe o pertenece a otra empresa.
	GetByCompany(companyID, id string) (*entity.Supply, error)
	// ListByCompany devuelve los suministros de la empresa con líneas,
	// ordenados por fecha de entrega descendente.
	ListByCompany(companyID string) ([]*entity.Supply, error)
	// Delete borra el suministro; las líneas caen en cascada.
	Delete(id string) error
}
