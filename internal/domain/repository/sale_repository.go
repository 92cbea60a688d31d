package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// SaleRepository define el puerto de persistencia para Sale y sus líneas.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateLine(line *entity.SaleLine) error
	// GetByCompany resuelve una venta acotada a la empresa, con sus líneas.
	// Devuelve nil si no existe o pertenece a otra empresa.
	GetByCompany(companyID, id string) (*entity.Sale, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Sale, error)
	// ListAllByCompany devuelve todas las ventas de la empresa con líneas
	// (para el borrado masivo con reversión).
	ListAllByCompany(companyID string) ([]*entity.Sale, error)
	// Update modifica buyer_name y sale_date.
	Update(sale *entity.Sale) error
	// Delete borra la venta; las líneas caen en cascada.
	Delete(id string) error
}
