package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Quantity y precios solo se mutan vía UpdateStock/ApplySupply bajo transacción.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByStorage(storageID, productID string) (*entity.Product, error)
	// GetByStorageForUpdate bloquea la fila del producto (SELECT FOR UPDATE)
	// dentro de la transacción actual. Devuelve nil si no existe en el almacén.
	GetByStorageForUpdate(storageID, productID string) (*entity.Product, error)
	GetByStorageAndTitle(storageID, title string) (*entity.Product, error)
	// Update modifica título y precio de venta. No toca Quantity ni PurchasePrice.
	Update(product *entity.Product) error
	// UpdateStock fija la cantidad absoluta (la fila debe estar bloqueada por el caller).
	UpdateStock(productID string, quantity int64) error
	// ApplySupply fija cantidad y ambos precios tras aplicar una línea de suministro.
	ApplySupply(productID string, quantity int64, purchasePrice, salePrice decimal.Decimal) error
	ListByStorage(storageID string, limit, offset int) ([]*entity.Product, error)
	Delete(id string) error
	// DeleteByStorage borra todos los productos del almacén y devuelve cuántos.
	DeleteByStorage(storageID string) (int64, error)
}
