package supply

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

const (
	testCompanyID  = "00000000-0000-0000-0000-00000000c001"
	testStorageID  = "00000000-0000-0000-0000-00000000a001"
	testSupplierID = "00000000-0000-0000-0000-00000000f001"
	productA       = "00000000-0000-0000-0000-0000000000a1"
	productB       = "00000000-0000-0000-0000-0000000000b2"
)

type fakeStorageRepo struct {
	storage *entity.Storage
}

func (r *fakeStorageRepo) Create(*entity.Storage) error { return nil }
func (r *fakeStorageRepo) GetByCompany(companyID string) (*entity.Storage, error) {
	if r.storage != nil && r.storage.CompanyID == companyID {
		return r.storage, nil
	}
	return nil, nil
}

type fakeSupplierRepo struct {
	suppliers map[string]*entity.Supplier // id → supplier
}

func (r *fakeSupplierRepo) Create(*entity.Supplier) error { return nil }
func (r *fakeSupplierRepo) GetByCompany(companyID, id string) (*entity.Supplier, error) {
	s := r.suppliers[id]
	if s == nil || s.CompanyID != companyID {
		return nil, nil
	}
	return s, nil
}
func (r *fakeSupplierRepo) ListByCompany(string, int, int) ([]*entity.Supplier, error) {
	return nil, nil
}
func (r *fakeSupplierRepo) Update(*entity.Supplier) error { return nil }
func (r *fakeSupplierRepo) Delete(string) error           { return nil }

// fakeProductRepo guarda productos por id y respeta el contrato de los
// mutadores: UpdateStock y ApplySupply fijan valores absolutos.
type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (r *fakeProductRepo) snapshot() map[string]entity.Product {
	snap := make(map[string]entity.Product, len(r.products))
	for id, p := range r.products {
		snap[id] = *p
	}
	return snap
}

func (r *fakeProductRepo) restore(snap map[string]entity.Product) {
	r.products = make(map[string]*entity.Product, len(snap))
	for id := range snap {
		p := snap[id]
		r.products[id] = &p
	}
}

func (r *fakeProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByStorage(storageID, productID string) (*entity.Product, error) {
	return r.GetByStorageForUpdate(storageID, productID)
}
func (r *fakeProductRepo) GetByStorageForUpdate(storageID, productID string) (*entity.Product, error) {
	p := r.products[productID]
	if p == nil || p.StorageID != storageID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (r *fakeProductRepo) GetByStorageAndTitle(string, string) (*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) Update(*entity.Product) error { return nil }
func (r *fakeProductRepo) UpdateStock(productID string, quantity int64) error {
	r.products[productID].Quantity = quantity
	return nil
}
func (r *fakeProductRepo) ApplySupply(productID string, quantity int64, purchasePrice, salePrice decimal.Decimal) error {
	p := r.products[productID]
	p.Quantity = quantity
	p.PurchasePrice = purchasePrice
	p.SalePrice = salePrice
	return nil
}
func (r *fakeProductRepo) ListByStorage(string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) Delete(string) error                  { return nil }
func (r *fakeProductRepo) DeleteByStorage(string) (int64, error) { return 0, nil }

type fakeSupplyRepo struct {
	supplies map[string]*entity.Supply
}

func (r *fakeSupplyRepo) snapshot() map[string]entity.Supply {
	snap := make(map[string]entity.Supply, len(r.supplies))
	for id, s := range r.supplies {
		snap[id] = *s
	}
	return snap
}

func (r *fakeSupplyRepo) restore(snap map[string]entity.Supply) {
	r.supplies = make(map[string]*entity.Supply, len(snap))
	for id := range snap {
		s := snap[id]
		r.supplies[id] = &s
	}
}

func (r *fakeSupplyRepo) Create(s *entity.Supply) error {
	cp := *s
	cp.Lines = nil
	r.supplies[s.ID] = &cp
	return nil
}
func (r *fakeSupplyRepo) CreateLine(l *entity.SupplyLine) error {
	s := r.supplies[l.SupplyID]
	s.Lines = append(s.Lines, *l)
	return nil
}
func (r *fakeSupplyRepo) GetByCompany(_, id string) (*entity.Supply, error) {
	s := r.supplies[id]
	if s == nil {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}
func (r *fakeSupplyRepo) ListByCompany(string) ([]*entity.Supply, error) {
	out := make([]*entity.Supply, 0, len(r.supplies))
	for _, s := range r.supplies {
		out = append(out, s)
	}
	return out, nil
}
func (r *fakeSupplyRepo) Delete(id string) error { delete(r.supplies, id); return nil }

// fakeTxRunner simula la transacción: si fn falla, restaura el estado previo
// (rollback) de productos y suministros.
type fakeTxRunner struct {
	products *fakeProductRepo
	supplies *fakeSupplyRepo
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(repository.ProductRepository, repository.SupplyRepository) error) error {
	prodSnap := r.products.snapshot()
	supSnap := r.supplies.snapshot()
	if err := fn(r.products, r.supplies); err != nil {
		r.products.restore(prodSnap)
		r.supplies.restore(supSnap)
		return err
	}
	return nil
}

type fixture struct {
	uc       *UseCase
	products *fakeProductRepo
	supplies *fakeSupplyRepo
}

func newFixture() *fixture {
	products := &fakeProductRepo{products: map[string]*entity.Product{
		productA: {ID: productA, StorageID: testStorageID, Title: "Tornillos", Quantity: 5,
			PurchasePrice: decimal.RequireFromString("1.00"), SalePrice: decimal.RequireFromString("1.33")},
		productB: {ID: productB, StorageID: testStorageID, Title: "Tuercas", Quantity: 0},
	}}
	supplies := &fakeSupplyRepo{supplies: map[string]*entity.Supply{}}
	storageRepo := &fakeStorageRepo{storage: &entity.Storage{ID: testStorageID, CompanyID: testCompanyID}}
	supplierRepo := &fakeSupplierRepo{suppliers: map[string]*entity.Supplier{
		testSupplierID: {ID: testSupplierID, CompanyID: testCompanyID, Title: "Ferretería Sur"},
	}}
	runner := &fakeTxRunner{products: products, supplies: supplies}
	return &fixture{
		uc:       NewUseCase(runner, storageRepo, supplierRepo, supplies),
		products: products,
		supplies: supplies,
	}
}

func validRequest() dto.CreateSupplyRequest {
	return dto.CreateSupplyRequest{
		SupplierID:   testSupplierID,
		DeliveryDate: "2026-08-20",
		Products: []dto.SupplyLineRequest{
			{ProductID: productA, Quantity: 10, PurchasePrice: decimal.RequireFromString("2.00")},
			{ProductID: productB, Quantity: 4, PurchasePrice: decimal.RequireFromString("7.52")},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateSupply
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSupply_AplicaCantidadesYPrecios(t *testing.T) {
	f := newFixture()

	out, err := f.uc.CreateSupply(context.Background(), testCompanyID, validRequest())
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, testSupplierID, out.SupplierID)
	assert.Equal(t, "2026-08-20", out.DeliveryDate)
	require.Len(t, out.Products, 2)

	a := f.products.products[productA]
	assert.Equal(t, int64(15), a.Quantity, "5 existentes + 10 suministrados")
	assert.Equal(t, "2.00", a.PurchasePrice.StringFixed(2))
	assert.Equal(t, "2.66", a.SalePrice.StringFixed(2), "2.00 × 1.33")

	b := f.products.products[productB]
	assert.Equal(t, int64(4), b.Quantity)
	assert.Equal(t, "10.00", b.SalePrice.StringFixed(2), "7.52 × 1.33 redondeado")

	require.Len(t, f.supplies.supplies, 1, "el suministro debe quedar persistido")
	sup := f.supplies.supplies[out.ID]
	require.NotNil(t, sup)
	assert.Len(t, sup.Lines, 2)
}

func TestCreateSupply_SinAlmacen_Falla(t *testing.T) {
	f := newFixture()
	f.uc.storageRepo = &fakeStorageRepo{}

	_, err := f.uc.CreateSupply(context.Background(), testCompanyID, validRequest())
	assert.ErrorIs(t, err, domain.ErrNoStorage)
}

func TestCreateSupply_ProveedorDeOtraEmpresa_NotFound(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.SupplierID = "00000000-0000-0000-0000-00000000ffff"

	_, err := f.uc.CreateSupply(context.Background(), testCompanyID, req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateSupply_EntradaInvalida(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*dto.CreateSupplyRequest)
	}{
		{"fecha malformada", func(r *dto.CreateSupplyRequest) { r.DeliveryDate = "20/08/2026" }},
		{"sin líneas", func(r *dto.CreateSupplyRequest) { r.Products = nil }},
		{"cantidad cero", func(r *dto.CreateSupplyRequest) { r.Products[0].Quantity = 0 }},
		{"cantidad negativa", func(r *dto.CreateSupplyRequest) { r.Products[0].Quantity = -3 }},
		{"precio negativo", func(r *dto.CreateSupplyRequest) {
			r.Products[0].PurchasePrice = decimal.RequireFromString("-1.00")
		}},
		{"línea sin producto", func(r *dto.CreateSupplyRequest) { r.Products[0].ProductID = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			req := validRequest()
			tc.mutate(&req)
			_, err := f.uc.CreateSupply(context.Background(), testCompanyID, req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

// Si una línea apunta a un producto inexistente no debe aplicarse ninguna otra.
func TestCreateSupply_ProductoInexistente_RollbackTotal(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.Products[1].ProductID = "00000000-0000-0000-0000-00000000dead"

	_, err := f.uc.CreateSupply(context.Background(), testCompanyID, req)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, int64(5), f.products.products[productA].Quantity,
		"la primera línea no debe haberse aplicado")
	assert.Equal(t, "1.00", f.products.products[productA].PurchasePrice.StringFixed(2))
	assert.Empty(t, f.supplies.supplies, "no debe quedar suministro persistido")
}

// ──────────────────────────────────────────────────────────────────────────────
// DeleteSupply (reversión)
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteSupply_RestauraElStock(t *testing.T) {
	f := newFixture()
	out, err := f.uc.CreateSupply(context.Background(), testCompanyID, validRequest())
	require.NoError(t, err)

	rev, err := f.uc.DeleteSupply(context.Background(), testCompanyID, out.ID)
	require.NoError(t, err)
	assert.Equal(t, out.ID, rev.SupplyID)
	assert.ElementsMatch(t, []string{productA, productB}, rev.ReversedProductIDs)

	assert.Equal(t, int64(5), f.products.products[productA].Quantity)
	assert.Equal(t, int64(0), f.products.products[productB].Quantity)
	assert.Empty(t, f.supplies.supplies, "el suministro debe desaparecer")
}

// No se puede revertir lo que ya salió por ventas: la resta dejaría stock negativo.
func TestDeleteSupply_MercanciaYaVendida_Rechaza(t *testing.T) {
	f := newFixture()
	out, err := f.uc.CreateSupply(context.Background(), testCompanyID, validRequest())
	require.NoError(t, err)

	// Se venden 12 de los 15 tornillos: quedan 3, menos de los 10 suministrados.
	f.products.products[productA].Quantity = 3

	_, err = f.uc.DeleteSupply(context.Background(), testCompanyID, out.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var shortage *domain.StockShortageError
	require.ErrorAs(t, err, &shortage)
	assert.Equal(t, productA, shortage.ProductID)
	assert.Equal(t, int64(3), shortage.Available)
	assert.Equal(t, int64(10), shortage.Requested)

	assert.Equal(t, int64(3), f.products.products[productA].Quantity, "nada debe mutarse")
	assert.Len(t, f.supplies.supplies, 1, "el suministro debe seguir existiendo")
}

func TestDeleteSupply_NoExiste_NotFound(t *testing.T) {
	f := newFixture()
	_, err := f.uc.DeleteSupply(context.Background(), testCompanyID, "00000000-0000-0000-0000-00000000dead")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Un producto borrado del catálogo no bloquea la reversión del resto.
func TestDeleteSupply_ProductoBorrado_SeOmite(t *testing.T) {
	f := newFixture()
	out, err := f.uc.CreateSupply(context.Background(), testCompanyID, validRequest())
	require.NoError(t, err)

	delete(f.products.products, productB)

	rev, err := f.uc.DeleteSupply(context.Background(), testCompanyID, out.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{productA}, rev.ReversedProductIDs)
	assert.Equal(t, int64(5), f.products.products[productA].Quantity)
}

// La fecha de entrega admite días pasados y futuros (mercancía en tránsito).
func TestCreateSupply_FechaFutura_Permitida(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.DeliveryDate = time.Now().AddDate(0, 1, 0).Format("2006-01-02")

	_, err := f.uc.CreateSupply(context.Background(), testCompanyID, req)
	assert.NoError(t, err)
}
