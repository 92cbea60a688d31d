package entity

import "time"

// Sale representa una venta saliente que reduce existencias.
// SaleDate por defecto es el día de creación.
type Sale struct {
	ID        string
	CompanyID string
	BuyerName string
	SaleDate  time.Time // solo fecha (DATE)
	CreatedAt time.Time
	Lines     []SaleLine
}

// SaleLine registra producto y cantidad vendida. No guarda precio: la analítica
// lee los precios vivos del producto (ver AnalyticsRepository).
type SaleLine struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int64
}
