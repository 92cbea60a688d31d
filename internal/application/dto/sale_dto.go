package dto

// SaleLineRequest una línea de venta: producto y cantidad.
type SaleLineRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	BuyerName string            `json:"buyer_name"`
	Products  []SaleLineRequest `json:"product_sales"`
}

// SaleConfirmationResponse confirma la venta creada.
type SaleConfirmationResponse struct {
	SaleID    string `json:"sale_id"`
	SaleDate  string `json:"sale_date"`
	BuyerName string `json:"buyer_name"`
}

// SaleLineResponse línea de una venta registrada.
type SaleLineResponse struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// SaleResponse venta con sus líneas.
type SaleResponse struct {
	ID        string             `json:"id"`
	BuyerName string             `json:"buyer_name"`
	SaleDate  string             `json:"sale_date"`
	Products  []SaleLineResponse `json:"product_sales"`
}

// UpdateSaleRequest body para PATCH /api/sales/:id. Campos opcionales.
type UpdateSaleRequest struct {
	BuyerName *string `json:"buyer_name,omitempty"`
	SaleDate  *string `json:"sale_date,omitempty"` // YYYY-MM-DD, no puede ser futura
}

// SaleReversalResponse resultado de revertir (borrar) una venta.
type SaleReversalResponse struct {
	SaleID             string   `json:"sale_id"`
	SaleDate           string   `json:"sale_date"`
	RestoredProductIDs []string `json:"restored_product_ids"`
}

// DeleteAllSalesResponse ids de las ventas borradas (todas revertidas).
type DeleteAllSalesResponse struct {
	DeletedSaleIDs []string `json:"deleted_sale_ids"`
}
