package dto

import "github.com/shopspring/decimal"

// ProfitRequest query params para GET /api/analytics/profit.
// Si vienen date_start y date_end, el rango explícito gana sobre period.
type ProfitRequest struct {
	Period    string `query:"period"`     // day | week | month | year (default day)
	DateStart string `query:"date_start"` // YYYY-MM-DD
	DateEnd   string `query:"date_end"`   // YYYY-MM-DD
}

// ProfitStatsDTO totales de la ventana. Los montos se presentan como número
// decimal serializado; la agregación interna nunca pasa por float.
type ProfitStatsDTO struct {
	TotalProfit  decimal.Decimal `json:"total_profit"`
	NetProfit    decimal.Decimal `json:"net_profit"`
	SalesCount   int64           `json:"sales_count"`
	ProductCount int64           `json:"product_count"`
}

// ProfitResponse respuesta de GET /api/analytics/profit.
type ProfitResponse struct {
	Period string         `json:"period"`
	Profit ProfitStatsDTO `json:"profit"`
}

// TopProductDTO entrada del ranking por unidades.
type TopProductDTO struct {
	ProductID     string `json:"product_id"`
	Title         string `json:"title"`
	TotalQuantity int64  `json:"total_quantity"`
	SalesCount    int64  `json:"sales_count"`
}

// TopProfitProductDTO entrada del ranking por beneficio neto.
type TopProfitProductDTO struct {
	ProductID string          `json:"product_id"`
	Title     string          `json:"title"`
	NetProfit decimal.Decimal `json:"net_profit"`
}

// TopProductsResponse respuesta de GET /api/analytics/top-products.
type TopProductsResponse struct {
	TopProducts       []TopProductDTO       `json:"top_products"`
	TopProfitProducts []TopProfitProductDTO `json:"top_profit_products"`
}
