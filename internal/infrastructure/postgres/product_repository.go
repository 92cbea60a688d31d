package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, storage_id, title, purchase_price, sale_price, quantity, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, storage_id, title, purchase_price, sale_price, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.StorageID, product.Title,
		product.PurchasePrice, product.SalePrice, product.Quantity,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepo) scanOne(row pgx.Row, op string) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.StorageID, &p.Title, &p.PurchasePrice, &p.SalePrice,
		&p.Quantity, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

// GetByStorage obtiene un producto por id acotado al almacén.
func (r *ProductRepo) GetByStorage(storageID, productID string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE storage_id = $1 AND id = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, storageID, productID), "get product")
}

// GetByStorageForUpdate obtiene y bloquea la fila del producto (SELECT FOR UPDATE)
// dentro de la transacción actual. Serializa ventas, suministros y reversiones
// concurrentes sobre el mismo producto.
func (r *ProductRepo) GetByStorageForUpdate(storageID, productID string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE storage_id = $1 AND id = $2 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, storageID, productID), "get product for update")
}

// GetByStorageAndTitle obtiene un producto por título dentro del almacén.
func (r *ProductRepo) GetByStorageAndTitle(storageID, title string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE storage_id = $1 AND title = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, storageID, title), "get product by title")
}

// Update modifica título y precio de venta. Quantity y PurchasePrice se mutan
// solo vía UpdateStock/ApplySupply.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `UPDATE products SET title = $2, sale_price = $3, updated_at = $4 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Title, product.SalePrice, product.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStock fija la cantidad absoluta. El CHECK (quantity >= 0) de la tabla
// respalda el invariante si alguna vez se llega aquí sin bloquear la fila.
func (r *ProductRepo) UpdateStock(productID string, quantity int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET quantity = $2, updated_at = now() WHERE id = $1`,
		productID, quantity)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("update product stock: %w", err)
	}
	return nil
}

// ApplySupply fija cantidad y ambos precios tras aplicar una línea de suministro.
func (r *ProductRepo) ApplySupply(productID string, quantity int64, purchasePrice, salePrice decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET quantity = $2, purchase_price = $3, sale_price = $4, updated_at = now() WHERE id = $1`,
		productID, quantity, purchasePrice, salePrice)
	if err != nil {
		return fmt.Errorf("apply supply to product: %w", err)
	}
	return nil
}

// ListByStorage lista productos del almacén con paginación.
func (r *ProductRepo) ListByStorage(storageID string, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE storage_id = $1 ORDER BY title ASC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, storageID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.StorageID, &p.Title, &p.PurchasePrice, &p.SalePrice,
			&p.Quantity, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// DeleteByStorage elimina todos los productos del almacén. Devuelve cuántos borró.
func (r *ProductRepo) DeleteByStorage(storageID string) (int64, error) {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE storage_id = $1`, storageID)
	if err != nil {
		return 0, fmt.Errorf("delete products by storage: %w", err)
	}
	return cmd.RowsAffected(), nil
}
