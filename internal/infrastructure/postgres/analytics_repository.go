package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para rentabilidad y top de productos.
// Agrega en SQL sobre NUMERIC: los montos no pasan por float en ningún punto.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetProfitStats agrega las líneas de venta de la ventana con los precios
// vivos del producto:
//   total = Σ cantidad × precio_venta
//   neto  = Σ cantidad × (precio_venta − precio_compra)
// COALESCE devuelve cero en ventanas sin ventas.
func (r *AnalyticsRepo) GetProfitStats(
	ctx context.Context,
	companyID string,
	startDate, endDate time.Time,
) (*repository.ProfitStatsResult, error) {
	const query = `
	SELECT
	    COALESCE(SUM(l.quantity * p.sale_price), 0)                      AS total_profit,
	    COALESCE(SUM(l.quantity * (p.sale_price - p.purchase_price)), 0) AS net_profit,
	    COUNT(DISTINCT s.id)                                             AS sales_count,
	    COUNT(l.id)                                                      AS product_count
	FROM sales s
	JOIN sale_lines l ON l.sale_id   = s.id
	JOIN products   p ON p.id        = l.product_id
	WHERE s.company_id = $1
	  AND s.sale_date BETWEEN $2 AND $3`

	var res repository.ProfitStatsResult
	err := r.pool.QueryRow(ctx, query, companyID, startDate, endDate).Scan(
		&res.TotalProfit, &res.NetProfit, &res.SalesCount, &res.ProductCount)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetProfitStats: %w", err)
	}
	return &res, nil
}

// GetTopProducts agrupa las líneas de venta por producto y ordena por unidades
// vendidas descendente; empates rotos por id de producto ascendente.
func (r *AnalyticsRepo) GetTopProducts(
	ctx context.Context,
	companyID string,
	limit int,
) ([]repository.TopProductResult, error) {
	const query = `
	SELECT
	    p.id              AS product_id,
	    p.title,
	    SUM(l.quantity)   AS total_quantity,
	    COUNT(l.id)       AS sales_count
	FROM sale_lines l
	JOIN sales    s ON s.id = l.sale_id
	JOIN products p ON p.id = l.product_id
	WHERE s.company_id = $1
	GROUP BY p.id, p.title
	ORDER BY total_quantity DESC, p.id ASC
	LIMIT $2`

	rows, err := r.pool.Query(ctx, query, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTopProducts: %w", err)
	}
	defer rows.Close()

	var results []repository.TopProductResult
	for rows.Next() {
		var row repository.TopProductResult
		if err := rows.Scan(&row.ProductID, &row.Title, &row.TotalQuantity, &row.SalesCount); err != nil {
			return nil, fmt.Errorf("analytics.GetTopProducts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetTopProfitProducts agrupa por producto y ordena por beneficio neto
// descendente (precios vivos); mismo criterio de desempate.
func (r *AnalyticsRepo) GetTopProfitProducts(
	ctx context.Context,
	companyID string,
	limit int,
) ([]repository.TopProfitProductResult, error) {
	const query = `
	SELECT
	    p.id                                                  AS product_id,
	    p.title,
	    SUM(l.quantity * (p.sale_price - p.purchase_price))   AS net_profit
	FROM sale_lines l
	JOIN sales    s ON s.id = l.sale_id
	JOIN products p ON p.id = l.product_id
	WHERE s.company_id = $1
	GROUP BY p.id, p.title
	ORDER BY net_profit DESC, p.id ASC
	LIMIT $2`

	rows, err := r.pool.Query(ctx, query, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTopProfitProducts: %w", err)
	}
	defer rows.Close()

	var results []repository.TopProfitProductResult
	for rows.Next() {
		var row repository.TopProfitProductResult
		if err := rows.Scan(&row.ProductID, &row.Title, &row.NetProfit); err != nil {
			return nil, fmt.Errorf("analytics.GetTopProfitProducts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
