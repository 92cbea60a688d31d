package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

const testCompanyID = "00000000-0000-0000-0000-00000000c001"

// fakeAnalyticsRepo captura los argumentos y devuelve respuestas fijadas.
type fakeAnalyticsRepo struct {
	gotStart, gotEnd time.Time
	gotLimit         int

	stats     *repository.ProfitStatsResult
	byQty     []repository.TopProductResult
	byProfit  []repository.TopProfitProductResult
}

func (r *fakeAnalyticsRepo) GetProfitStats(_ context.Context, _ string, start, end time.Time) (*repository.ProfitStatsResult, error) {
	r.gotStart, r.gotEnd = start, end
	if r.stats == nil {
		return &repository.ProfitStatsResult{}, nil
	}
	return r.stats, nil
}

func (r *fakeAnalyticsRepo) GetTopProducts(_ context.Context, _ string, limit int) ([]repository.TopProductResult, error) {
	r.gotLimit = limit
	return r.byQty, nil
}

func (r *fakeAnalyticsRepo) GetTopProfitProducts(_ context.Context, _ string, limit int) ([]repository.TopProfitProductResult, error) {
	r.gotLimit = limit
	return r.byProfit, nil
}

var fixedToday = time.Date(2026, time.August, 25, 15, 30, 0, 0, time.UTC)

func newFixture(repo *fakeAnalyticsRepo) *UseCase {
	uc := NewUseCase(repo)
	uc.today = func() time.Time { return fixedToday }
	return uc
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ──────────────────────────────────────────────────────────────────────────────
// Resolución de ventanas
// ──────────────────────────────────────────────────────────────────────────────

func TestGetProfit_Ventanas(t *testing.T) {
	cases := []struct {
		name      string
		in        dto.ProfitRequest
		wantStart time.Time
		wantEnd   time.Time
		wantLabel string
	}{
		{"por defecto es day", dto.ProfitRequest{}, day(2026, 8, 25), day(2026, 8, 25), "day"},
		{"day", dto.ProfitRequest{Period: "day"}, day(2026, 8, 25), day(2026, 8, 25), "day"},
		{"week son 7 días atrás", dto.ProfitRequest{Period: "week"}, day(2026, 8, 18), day(2026, 8, 25), "week"},
		{"month arranca el día 1", dto.ProfitRequest{Period: "month"}, day(2026, 8, 1), day(2026, 8, 25), "month"},
		{"year arranca el 1 de enero", dto.ProfitRequest{Period: "year"}, day(2026, 1, 1), day(2026, 8, 25), "year"},
		{
			"el rango explícito gana sobre period",
			dto.ProfitRequest{Period: "year", DateStart: "2026-03-01", DateEnd: "2026-03-31"},
			day(2026, 3, 1), day(2026, 3, 31), "2026-03-01 - 2026-03-31",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeAnalyticsRepo{}
			uc := newFixture(repo)

			out, err := uc.GetProfit(context.Background(), testCompanyID, tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.wantLabel, out.Period)
			assert.True(t, repo.gotStart.Equal(tc.wantStart), "start: esperado %s, obtenido %s", tc.wantStart, repo.gotStart)
			assert.True(t, repo.gotEnd.Equal(tc.wantEnd), "end: esperado %s, obtenido %s", tc.wantEnd, repo.gotEnd)
		})
	}
}

func TestGetProfit_VentanasInvalidas(t *testing.T) {
	cases := []struct {
		name string
		in   dto.ProfitRequest
	}{
		{"period desconocido", dto.ProfitRequest{Period: "quarter"}},
		{"fecha malformada", dto.ProfitRequest{DateStart: "01-03-2026", DateEnd: "2026-03-31"}},
		{"fin antes que inicio", dto.ProfitRequest{DateStart: "2026-03-31", DateEnd: "2026-03-01"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := newFixture(&fakeAnalyticsRepo{})
			_, err := uc.GetProfit(context.Background(), testCompanyID, tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

// Con solo una de las dos fechas explícitas se cae al period.
func TestGetProfit_RangoIncompleto_UsaPeriod(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	uc := newFixture(repo)

	out, err := uc.GetProfit(context.Background(), testCompanyID, dto.ProfitRequest{
		Period:    "week",
		DateStart: "2026-03-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "week", out.Period)
	assert.True(t, repo.gotStart.Equal(day(2026, 8, 18)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Totales
// ──────────────────────────────────────────────────────────────────────────────

// Ejemplo de referencia: 5 unidades a 4.00 con compra a 2.50 y 3 unidades a
// 5.00 con compra a 3.50 → total 35.00, neto 12.00.
func TestGetProfit_Totales(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		stats: &repository.ProfitStatsResult{
			TotalProfit:  decimal.RequireFromString("35.00"),
			NetProfit:    decimal.RequireFromString("12.00"),
			SalesCount:   2,
			ProductCount: 2,
		},
	}
	uc := newFixture(repo)

	out, err := uc.GetProfit(context.Background(), testCompanyID, dto.ProfitRequest{Period: "day"})
	require.NoError(t, err)
	assert.Equal(t, "35.00", out.Profit.TotalProfit.StringFixed(2))
	assert.Equal(t, "12.00", out.Profit.NetProfit.StringFixed(2))
	assert.Equal(t, int64(2), out.Profit.SalesCount)
	assert.Equal(t, int64(2), out.Profit.ProductCount)
}

func TestGetProfit_VentanaSinVentas_Ceros(t *testing.T) {
	uc := newFixture(&fakeAnalyticsRepo{})

	out, err := uc.GetProfit(context.Background(), testCompanyID, dto.ProfitRequest{Period: "day"})
	require.NoError(t, err)
	assert.True(t, out.Profit.TotalProfit.IsZero())
	assert.True(t, out.Profit.NetProfit.IsZero())
	assert.Equal(t, int64(0), out.Profit.SalesCount)
}

// ──────────────────────────────────────────────────────────────────────────────
// Top de productos
// ──────────────────────────────────────────────────────────────────────────────

func TestGetTopProducts_MapeaAmbosRankings(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		byQty: []repository.TopProductResult{
			{ProductID: "p1", Title: "Tornillos", TotalQuantity: 40, SalesCount: 7},
			{ProductID: "p2", Title: "Tuercas", TotalQuantity: 25, SalesCount: 4},
		},
		byProfit: []repository.TopProfitProductResult{
			{ProductID: "p2", Title: "Tuercas", NetProfit: decimal.RequireFromString("80.505")},
		},
	}
	uc := newFixture(repo)

	out, err := uc.GetTopProducts(context.Background(), testCompanyID)
	require.NoError(t, err)
	assert.Equal(t, 10, repo.gotLimit, "ambos rankings se piden con límite 10")

	require.Len(t, out.TopProducts, 2)
	assert.Equal(t, "Tornillos", out.TopProducts[0].Title)
	assert.Equal(t, int64(40), out.TopProducts[0].TotalQuantity)

	require.Len(t, out.TopProfitProducts, 1)
	assert.Equal(t, "80.51", out.TopProfitProducts[0].NetProfit.StringFixed(2),
		"el beneficio se redondea a 2 decimales")
}

func TestGetTopProducts_SinVentas_ListasVacias(t *testing.T) {
	uc := newFixture(&fakeAnalyticsRepo{})

	out, err := uc.GetTopProducts(context.Background(), testCompanyID)
	require.NoError(t, err)
	assert.NotNil(t, out.TopProducts)
	assert.Empty(t, out.TopProducts)
	assert.Empty(t, out.TopProfitProducts)
}
