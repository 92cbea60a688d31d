package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// CompanyRepository define el puerto de persistencia para Company (DIP).
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	List(limit, offset int) ([]*entity.Company, error)
}

// StorageRepository define el puerto para el almacén único de cada empresa.
type StorageRepository interface {
	Create(storage *entity.Storage) error
	// GetByCompany devuelve el almacén de la empresa o nil si aún no se creó.
	GetByCompany(companyID string) (*entity.Storage, error)
}
