package pricing

import "github.com/shopspring/decimal"

// Factor de margen aplicado sobre el precio de compra al recibir un suministro.
var markupFactor = decimal.RequireFromString("1.33")

// SalePrice implementa la regla de precio de venta (servicio de dominio):
// PrecioVenta = PrecioCompra × 1.33, redondeado a 2 decimales.
func SalePrice(purchasePrice decimal.Decimal) decimal.Decimal {
	return purchasePrice.Mul(markupFactor).Round(2)
}
