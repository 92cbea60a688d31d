package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/sale"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	apphttp "github.com/jhoicas/Almacen-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes mínimos para ejercitar el handler end-to-end (sin Postgres)
// ──────────────────────────────────────────────────────────────────────────────

const (
	testStorageID = "00000000-0000-0000-0000-0000000000a0"
	testProductID = "00000000-0000-0000-0000-0000000000a1"
)

type stubStorageRepo struct {
	storage *entity.Storage
}

func (r *stubStorageRepo) Create(*entity.Storage) error { return nil }
func (r *stubStorageRepo) GetByCompany(companyID string) (*entity.Storage, error) {
	if r.storage != nil && r.storage.CompanyID == companyID {
		return r.storage, nil
	}
	return nil, nil
}

type stubProductRepo struct {
	product *entity.Product
}

func (r *stubProductRepo) Create(*entity.Product) error { return nil }
func (r *stubProductRepo) GetByStorage(storageID, productID string) (*entity.Product, error) {
	return r.GetByStorageForUpdate(storageID, productID)
}
func (r *stubProductRepo) GetByStorageForUpdate(storageID, productID string) (*entity.Product, error) {
	if r.product != nil && r.product.StorageID == storageID && r.product.ID == productID {
		cp := *r.product
		return &cp, nil
	}
	return nil, nil
}
func (r *stubProductRepo) GetByStorageAndTitle(string, string) (*entity.Product, error) {
	return nil, nil
}
func (r *stubProductRepo) Update(*entity.Product) error { return nil }
func (r *stubProductRepo) UpdateStock(_ string, quantity int64) error {
	r.product.Quantity = quantity
	return nil
}
func (r *stubProductRepo) ApplySupply(string, int64, decimal.Decimal, decimal.Decimal) error {
	return nil
}
func (r *stubProductRepo) ListByStorage(string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *stubProductRepo) Delete(string) error                  { return nil }
func (r *stubProductRepo) DeleteByStorage(string) (int64, error) { return 0, nil }

type stubSaleRepo struct {
	created []*entity.Sale
}

func (r *stubSaleRepo) Create(s *entity.Sale) error      { r.created = append(r.created, s); return nil }
func (r *stubSaleRepo) CreateLine(*entity.SaleLine) error { return nil }
func (r *stubSaleRepo) GetByCompany(string, string) (*entity.Sale, error) {
	return nil, nil
}
func (r *stubSaleRepo) ListByCompany(string, int, int) ([]*entity.Sale, error) { return nil, nil }
func (r *stubSaleRepo) ListAllByCompany(string) ([]*entity.Sale, error)        { return nil, nil }
func (r *stubSaleRepo) Update(*entity.Sale) error                              { return nil }
func (r *stubSaleRepo) Delete(string) error                                    { return nil }

type stubTxRunner struct {
	products repository.ProductRepository
	sales    repository.SaleRepository
}

func (r *stubTxRunner) RunSale(_ context.Context, fn func(repository.ProductRepository, repository.SaleRepository) error) error {
	return fn(r.products, r.sales)
}

// buildSaleApp monta el router de ventas con fakes y un token válido.
func buildSaleApp(stock int64, withStorage bool) *fiber.App {
	storageRepo := &stubStorageRepo{}
	if withStorage {
		storageRepo.storage = &entity.Storage{ID: testStorageID, CompanyID: testCompanyID}
	}
	productRepo := &stubProductRepo{product: &entity.Product{
		ID: testProductID, StorageID: testStorageID, Title: "Tornillos", Quantity: stock,
	}}
	saleRepo := &stubSaleRepo{}
	uc := sale.NewUseCase(&stubTxRunner{products: productRepo, sales: saleRepo}, storageRepo, saleRepo)

	app := fiber.New()
	handler := apphttp.NewSaleHandler(uc)
	app.Post("/api/sales", apphttp.AuthMiddleware(testJWTSecret), handler.Create)
	return app
}

func postSale(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/sales", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", validToken(t))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests SaleHandler.Create
// ──────────────────────────────────────────────────────────────────────────────

func TestSaleHandler_Create_Retorna201(t *testing.T) {
	app := buildSaleApp(10, true)
	resp := postSale(t, app, `{"buyer_name":"María","product_sales":[{"product_id":"`+testProductID+`","quantity":4}]}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "María", body["buyer_name"])
	assert.NotEmpty(t, body["sale_id"])
	assert.NotEmpty(t, body["sale_date"])
}

// Stock insuficiente → 409 con el detalle del faltante en el cuerpo.
func TestSaleHandler_Create_StockInsuficiente_Retorna409(t *testing.T) {
	app := buildSaleApp(3, true)
	resp := postSale(t, app, `{"buyer_name":"Pedro","product_sales":[{"product_id":"`+testProductID+`","quantity":5}]}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var body struct {
		Code      string `json:"code"`
		ProductID string `json:"product_id"`
		Available int64  `json:"available"`
		Requested int64  `json:"requested"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	assert.Equal(t, testProductID, body.ProductID)
	assert.Equal(t, int64(3), body.Available)
	assert.Equal(t, int64(5), body.Requested)
}

// Empresa sin almacén → 412 NO_STORAGE.
func TestSaleHandler_Create_SinAlmacen_Retorna412(t *testing.T) {
	app := buildSaleApp(10, false)
	resp := postSale(t, app, `{"buyer_name":"Ana","product_sales":[{"product_id":"`+testProductID+`","quantity":1}]}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusPreconditionFailed, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "NO_STORAGE", body["code"])
}

func TestSaleHandler_Create_CuerpoInvalido_Retorna400(t *testing.T) {
	app := buildSaleApp(10, true)
	resp := postSale(t, app, `{esto no es json}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSaleHandler_Create_SinLineas_Retorna400(t *testing.T) {
	app := buildSaleApp(10, true)
	resp := postSale(t, app, `{"buyer_name":"Ana","product_sales":[]}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "VALIDATION", body["code"])
}

func TestSaleHandler_Create_ProductoInexistente_Retorna404(t *testing.T) {
	app := buildSaleApp(10, true)
	resp := postSale(t, app, `{"buyer_name":"Ana","product_sales":[{"product_id":"00000000-0000-0000-0000-00000000dead","quantity":1}]}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSaleHandler_Create_SinToken_Retorna401(t *testing.T) {
	app := buildSaleApp(10, true)
	req := httptest.NewRequest(http.MethodPost, "/api/sales", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
