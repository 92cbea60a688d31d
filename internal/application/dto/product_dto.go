package dto

import "github.com/shopspring/decimal"

// CreateProductRequest body para POST /api/products. El producto nace con
// cantidad 0 y precio de compra 0; ambos los gobierna el motor de stock.
type CreateProductRequest struct {
	Title     string          `json:"title"`
	SalePrice decimal.Decimal `json:"sale_price"`
}

// UpdateProductRequest body para PATCH /api/products/:id.
// Cantidad y precio de compra no son editables por esta vía.
type UpdateProductRequest struct {
	Title     *string          `json:"title,omitempty"`
	SalePrice *decimal.Decimal `json:"sale_price,omitempty"`
}

// ProductResponse representación HTTP de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	StorageID     string          `json:"storage_id"`
	Title         string          `json:"title"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	Quantity      int64           `json:"quantity"`
}
