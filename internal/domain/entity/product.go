package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del almacén. Título único por almacén.
// Quantity y PurchasePrice son propiedad del motor de stock: solo los mutan
// el procesador de suministros, el de ventas y sus reversiones; nunca el CRUD.
type Product struct {
	ID            string
	StorageID     string
	Title         string
	PurchasePrice decimal.Decimal // último precio de compra aplicado
	SalePrice     decimal.Decimal // PurchasePrice × 1.33 tras cada suministro
	Quantity      int64           // unidades en existencia, nunca negativo
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
