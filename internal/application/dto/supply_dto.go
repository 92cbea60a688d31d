package dto

import "github.com/shopspring/decimal"

// SupplyLineRequest una línea de suministro: producto, cantidad y precio de compra.
type SupplyLineRequest struct {
	ProductID     string          `json:"product_id"`
	Quantity      int64           `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
}

// CreateSupplyRequest body para POST /api/supplies.
type CreateSupplyRequest struct {
	SupplierID   string              `json:"supplier_id"`
	DeliveryDate string              `json:"delivery_date"` // YYYY-MM-DD
	Products     []SupplyLineRequest `json:"products"`
}

// SupplyLineResponse línea aplicada tal como quedó registrada.
type SupplyLineResponse struct {
	ProductID     string          `json:"product_id"`
	Quantity      int64           `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
}

// SupplyResponse suministro con sus líneas resueltas.
type SupplyResponse struct {
	ID           string               `json:"id"`
	SupplierID   string               `json:"supplier_id"`
	DeliveryDate string               `json:"delivery_date"`
	Products     []SupplyLineResponse `json:"products"`
}

// SupplyReversalResponse resultado de revertir (borrar) un suministro.
type SupplyReversalResponse struct {
	SupplyID           string   `json:"supply_id"`
	ReversedProductIDs []string `json:"reversed_product_ids"`
}
