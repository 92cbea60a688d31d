package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supply representa una entrega entrante de un proveedor que incrementa existencias.
type Supply struct {
	ID           string
	SupplierID   string
	DeliveryDate time.Time // solo fecha (DATE)
	CreatedAt    time.Time
	Lines        []SupplyLine
}

// SupplyLine es el registro de auditoría de una línea aplicada: cantidad y precio
// de compra con los que se mutó el producto. Inmutable tras su creación; es lo
// que permite revertir el suministro.
type SupplyLine struct {
	ID            string
	SupplyID      string
	ProductID     string
	Quantity      int64
	PurchasePrice decimal.Decimal
}
