package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.SupplyRepository = (*SupplyRepo)(nil)

// SupplyRepo implementación de SupplyRepository sobre PostgreSQL
// (usable con pool o tx).
type SupplyRepo struct {
	q Querier
}

// NewSupplyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplyRepository(q Querier) *SupplyRepo {
	return &SupplyRepo{q: q}
}

// Create persiste la cabecera del suministro.
func (r *SupplyRepo) Create(supply *entity.Supply) error {
	query := `
		INSERT INTO supplies (id, supplier_id, delivery_date, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		supply.ID, supply.SupplierID, supply.DeliveryDate, supply.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert supply: %w", err)
	}
	return nil
}

// CreateLine persiste una línea aplicada (registro de auditoría inmutable).
func (r *SupplyRepo) CreateLine(line *entity.SupplyLine) error {
	query := `
		INSERT INTO supply_lines (id, supply_id, product_id, quantity, purchase_price)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.SupplyID, line.ProductID, line.Quantity, line.PurchasePrice)
	if err != nil {
		return fmt.Errorf("insert supply line: %w", err)
	}
	return nil
}

// GetByCompany obtiene un suministro con líneas, acotado a la empresa vía su proveedor.
func (r *SupplyRepo) GetByCompany(companyID, id string) (*entity.Supply, error) {
	query := `
		SELECT s.id, s.supplier_id, s.delivery_date, s.created_at
		FROM supplies s
		JOIN suppliers sp ON sp.id = s.supplier_id
		WHERE sp.company_id = $1 AND s.id = $2`
	var s entity.Supply
	err := r.q.QueryRow(context.Background(), query, companyID, id).Scan(
		&s.ID, &s.SupplierID, &s.DeliveryDate, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supply: %w", err)
	}
	lines, err := r.linesFor([]string{s.ID})
	if err != nil {
		return nil, err
	}
	s.Lines = lines[s.ID]
	return &s, nil
}

// ListByCompany lista los suministros de la empresa con líneas, más recientes primero.
func (r *SupplyRepo) ListByCompany(companyID string) ([]*entity.Supply, error) {
	query := `
		SELECT s.id, s.supplier_id, s.delivery_date, s.created_at
		FROM supplies s
		JOIN suppliers sp ON sp.id = s.supplier_id
		WHERE sp.company_id = $1
		ORDER BY s.delivery_date DESC, s.created_at DESC`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list supplies: %w", err)
	}
	defer rows.Close()

	var list []*entity.Supply
	var ids []string
	for rows.Next() {
		var s entity.Supply
		if err := rows.Scan(&s.ID, &s.SupplierID, &s.DeliveryDate, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan supply: %w", err)
		}
		list = append(list, &s)
		ids = append(ids, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return list, nil
	}
	lines, err := r.linesFor(ids)
	if err != nil {
		return nil, err
	}
	for _, s := range list {
		s.Lines = lines[s.ID]
	}
	return list, nil
}

// linesFor carga las líneas de un conjunto de suministros en una sola consulta.
func (r *SupplyRepo) linesFor(supplyIDs []string) (map[string][]entity.SupplyLine, error) {
	query := `
		SELECT id, supply_id, product_id, quantity, purchase_price
		FROM supply_lines WHERE supply_id = ANY($1) ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, supplyIDs)
	if err != nil {
		return nil, fmt.Errorf("list supply lines: %w", err)
	}
	defer rows.Close()
	out := make(map[string][]entity.SupplyLine, len(supplyIDs))
	for rows.Next() {
		var l entity.SupplyLine
		if err := rows.Scan(&l.ID, &l.SupplyID, &l.ProductID, &l.Quantity, &l.PurchasePrice); err != nil {
			return nil, fmt.Errorf("scan supply line: %w", err)
		}
		out[l.SupplyID] = append(out[l.SupplyID], l)
	}
	return out, rows.Err()
}

// Delete borra el suministro; supply_lines cae por ON DELETE CASCADE.
func (r *SupplyRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM supplies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete supply: %w", err)
	}
	return nil
}
