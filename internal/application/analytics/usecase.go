package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

const (
	dateLayout  = "2006-01-02"
	topProducts = 10
)

// UseCase calcula rentabilidad y top de productos reproduciendo las líneas de
// venta registradas contra los precios vivos del producto. Como las líneas no
// guardan snapshot de precio, un cambio de precio posterior altera los reportes
// históricos; es un comportamiento asumido, no un bug.
type UseCase struct {
	repo  repository.AnalyticsRepository
	today func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.AnalyticsRepository) *UseCase {
	return &UseCase{repo: repo, today: time.Now}
}

// GetProfit devuelve los totales de ganancia de la ventana pedida.
// Un rango explícito (date_start + date_end) gana sobre period.
func (uc *UseCase) GetProfit(ctx context.Context, companyID string, in dto.ProfitRequest) (*dto.ProfitResponse, error) {
	start, end, label, err := uc.resolveWindow(in)
	if err != nil {
		return nil, err
	}
	stats, err := uc.repo.GetProfitStats(ctx, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("analytics: ganancias: %w", err)
	}
	return &dto.ProfitResponse{
		Period: label,
		Profit: dto.ProfitStatsDTO{
			TotalProfit:  stats.TotalProfit.Round(2),
			NetProfit:    stats.NetProfit.Round(2),
			SalesCount:   stats.SalesCount,
			ProductCount: stats.ProductCount,
		},
	}, nil
}

// GetTopProducts devuelve los dos rankings (por unidades y por beneficio neto),
// cada uno limitado a 10 entradas, empates rotos por id de producto ascendente.
func (uc *UseCase) GetTopProducts(ctx context.Context, companyID string) (*dto.TopProductsResponse, error) {
	byQty, err := uc.repo.GetTopProducts(ctx, companyID, topProducts)
	if err != nil {
		return nil, fmt.Errorf("analytics: top productos: %w", err)
	}
	byProfit, err := uc.repo.GetTopProfitProducts(ctx, companyID, topProducts)
	if err != nil {
		return nil, fmt.Errorf("analytics: top beneficio: %w", err)
	}

	out := &dto.TopProductsResponse{
		TopProducts:       make([]dto.TopProductDTO, 0, len(byQty)),
		TopProfitProducts: make([]dto.TopProfitProductDTO, 0, len(byProfit)),
	}
	for _, r := range byQty {
		out.TopProducts = append(out.TopProducts, dto.TopProductDTO{
			ProductID:     r.ProductID,
			Title:         r.Title,
			TotalQuantity: r.TotalQuantity,
			SalesCount:    r.SalesCount,
		})
	}
	for _, r := range byProfit {
		out.TopProfitProducts = append(out.TopProfitProducts, dto.TopProfitProductDTO{
			ProductID: r.ProductID,
			Title:     r.Title,
			NetProfit: r.NetProfit.Round(2),
		})
	}
	return out, nil
}

// resolveWindow traduce period o rango explícito a [start, end].
// day = hoy; week = hoy−7d; month = día 1 del mes; year = 1 de enero.
func (uc *UseCase) resolveWindow(in dto.ProfitRequest) (start, end time.Time, label string, err error) {
	if in.DateStart != "" && in.DateEnd != "" {
		start, err = time.Parse(dateLayout, in.DateStart)
		if err != nil {
			return time.Time{}, time.Time{}, "", domain.ErrInvalidInput
		}
		end, err = time.Parse(dateLayout, in.DateEnd)
		if err != nil {
			return time.Time{}, time.Time{}, "", domain.ErrInvalidInput
		}
		if end.Before(start) {
			return time.Time{}, time.Time{}, "", domain.ErrInvalidInput
		}
		return start, end, in.DateStart + " - " + in.DateEnd, nil
	}

	now := uc.today()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	period := in.Period
	if period == "" {
		period = "day"
	}
	switch period {
	case "day":
		start = today
	case "week":
		start = today.AddDate(0, 0, -7)
	case "month":
		start = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	case "year":
		start = time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Time{}, time.Time{}, "", domain.ErrInvalidInput
	}
	return start, today, period, nil
}
