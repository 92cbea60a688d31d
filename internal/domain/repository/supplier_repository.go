package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// SupplierRepository define el puerto de persistencia para Supplier (DIP).
// Toda lectura va acotada a la empresa del principal (multi-tenant).
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByCompany(companyID, id string) (*entity.Supplier, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	Delete(id string) error
}
