package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.StorageRepository = (*StorageRepo)(nil)

// StorageRepo implementación de StorageRepository sobre PostgreSQL.
type StorageRepo struct {
	q Querier
}

// NewStorageRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStorageRepository(q Querier) *StorageRepo {
	return &StorageRepo{q: q}
}

// Create persiste el almacén. UNIQUE(company_id) garantiza uno por empresa.
func (r *StorageRepo) Create(storage *entity.Storage) error {
	query := `
		INSERT INTO storages (id, company_id, address, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		storage.ID, storage.CompanyID, storage.Address, storage.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert storage: %w", err)
	}
	return nil
}

// GetByCompany devuelve el almacén de la empresa o nil si no existe.
func (r *StorageRepo) GetByCompany(companyID string) (*entity.Storage, error) {
	query := `SELECT id, company_id, address, created_at FROM storages WHERE company_id = $1`
	var s entity.Storage
	err := r.q.QueryRow(context.Background(), query, companyID).Scan(
		&s.ID, &s.CompanyID, &s.Address, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get storage: %w", err)
	}
	return &s, nil
}
