package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ProfitStatsResult agrega las líneas de venta de una ventana de fechas.
// Los totales se calculan con los precios vivos del producto (no hay snapshot
// de precio en la línea de venta).
type ProfitStatsResult struct {
	TotalProfit  decimal.Decimal // Σ cantidad × precio_venta
	NetProfit    decimal.Decimal // Σ cantidad × (precio_venta − precio_compra)
	SalesCount   int64
	ProductCount int64 // líneas de venta en la ventana
}

// TopProductResult ranking por unidades vendidas.
type TopProductResult struct {
	ProductID     string
	Title         string
	TotalQuantity int64
	SalesCount    int64 // líneas en que aparece el producto
}

// TopProfitProductResult ranking por beneficio neto.
type TopProfitProductResult struct {
	ProductID string
	Title     string
	NetProfit decimal.Decimal
}

// AnalyticsRepository consultas de solo lectura para rentabilidad y top de productos.
// La agregación ocurre en SQL sobre NUMERIC para evitar deriva de punto flotante.
type AnalyticsRepository interface {
	GetProfitStats(ctx context.Context, companyID string, startDate, endDate time.Time) (*ProfitStatsResult, error)
	GetTopProducts(ctx context.Context, companyID string, limit int) ([]TopProductResult, error)
	GetTopProfitProducts(ctx context.Context, companyID string, limit int) ([]TopProfitProductResult, error)
}
