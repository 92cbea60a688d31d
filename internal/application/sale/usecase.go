package sale

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// UseCase procesa ventas: valida stock de todas las líneas bajo bloqueo de fila
// antes de decrementar nada (fase 1 / fase 2 en la misma transacción) y
// restaura cantidades al borrar una venta o todas las de la empresa.
type UseCase struct {
	txRunner    TxRunner
	storageRepo repository.StorageRepository
	saleRepo    repository.SaleRepository
	today       func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, storageRepo repository.StorageRepository, saleRepo repository.SaleRepository) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		storageRepo: storageRepo,
		saleRepo:    saleRepo,
		today:       time.Now,
	}
}

// CreateSale registra una venta con fecha de hoy.
// Fase 1: bloquear (FOR UPDATE, orden ascendente de id) todos los productos y
// verificar existencias; ningún producto se muta si alguna línea falla.
// Fase 2: decrementar cantidades y persistir las líneas. Una misma venta puede
// repetir producto: el stock se valida contra la cantidad acumulada.
func (uc *UseCase) CreateSale(ctx context.Context, companyID string, in dto.CreateSaleRequest) (*dto.SaleConfirmationResponse, error) {
	storage, err := uc.storageRepo.GetByCompany(companyID)
	if err != nil {
		return nil, err
	}
	if storage == nil {
		return nil, domain.ErrNoStorage
	}
	if in.BuyerName == "" || len(in.Products) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range in.Products {
		if line.ProductID == "" || line.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	requested := make(map[string]int64, len(in.Products))
	ids := make([]string, 0, len(in.Products))
	for _, line := range in.Products {
		if _, seen := requested[line.ProductID]; !seen {
			ids = append(ids, line.ProductID)
		}
		requested[line.ProductID] += line.Quantity
	}
	sort.Strings(ids)

	now := uc.today()
	s := &entity.Sale{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		BuyerName: in.BuyerName,
		SaleDate:  now,
		CreatedAt: now,
	}

	err = uc.txRunner.RunSale(ctx, func(productRepo repository.ProductRepository, saleRepo repository.SaleRepository) error {
		// Fase 1: bloquear y validar todas las líneas. Cero mutaciones aquí.
		products := make(map[string]*entity.Product, len(ids))
		for _, id := range ids {
			p, err := productRepo.GetByStorageForUpdate(storage.ID, id)
			if err != nil {
				return err
			}
			if p == nil {
				return domain.ErrNotFound
			}
			if p.Quantity < requested[id] {
				return &domain.StockShortageError{
					ProductID: p.ID,
					Title:     p.Title,
					Available: p.Quantity,
					Requested: requested[id],
				}
			}
			products[id] = p
		}

		if err := saleRepo.Create(s); err != nil {
			return err
		}

		// Fase 2: aplicar decrementos y registrar líneas.
		for _, id := range ids {
			p := products[id]
			if err := productRepo.UpdateStock(p.ID, p.Quantity-requested[id]); err != nil {
				return err
			}
		}
		for _, line := range in.Products {
			saleLine := entity.SaleLine{
				ID:        uuid.New().String(),
				SaleID:    s.ID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
			}
			if err := saleRepo.CreateLine(&saleLine); err != nil {
				return err
			}
			s.Lines = append(s.Lines, saleLine)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.SaleConfirmationResponse{
		SaleID:    s.ID,
		SaleDate:  s.SaleDate.Format(dateLayout),
		BuyerName: s.BuyerName,
	}, nil
}

// DeleteSale revierte una venta: devuelve a cada producto exactamente lo que
// sus líneas restaron y borra el registro, todo en la misma transacción.
func (uc *UseCase) DeleteSale(ctx context.Context, companyID, saleID string) (*dto.SaleReversalResponse, error) {
	var out *dto.SaleReversalResponse
	err := uc.txRunner.RunSale(ctx, func(productRepo repository.ProductRepository, saleRepo repository.SaleRepository) error {
		s, err := saleRepo.GetByCompany(companyID, saleID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrNotFound
		}
		restored, err := uc.restoreSale(productRepo, companyID, s)
		if err != nil {
			return err
		}
		if err := saleRepo.Delete(s.ID); err != nil {
			return err
		}
		out = &dto.SaleReversalResponse{
			SaleID:             s.ID,
			SaleDate:           s.SaleDate.Format(dateLayout),
			RestoredProductIDs: restored,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteAllSales revierte y borra todas las ventas de la empresa.
// Devuelve los ids borrados.
func (uc *UseCase) DeleteAllSales(ctx context.Context, companyID string) (*dto.DeleteAllSalesResponse, error) {
	deleted := []string{}
	err := uc.txRunner.RunSale(ctx, func(productRepo repository.ProductRepository, saleRepo repository.SaleRepository) error {
		sales, err := saleRepo.ListAllByCompany(companyID)
		if err != nil {
			return err
		}
		for _, s := range sales {
			if _, err := uc.restoreSale(productRepo, companyID, s); err != nil {
				return err
			}
			if err := saleRepo.Delete(s.ID); err != nil {
				return err
			}
			deleted = append(deleted, s.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.DeleteAllSalesResponse{DeletedSaleIDs: deleted}, nil
}

// restoreSale suma de vuelta las cantidades de las líneas de la venta a sus
// productos, bajo bloqueo de fila. Se invoca exactamente una vez por borrado,
// dentro de la transacción que borra el registro.
func (uc *UseCase) restoreSale(productRepo repository.ProductRepository, companyID string, s *entity.Sale) ([]string, error) {
	storage, err := uc.storageRepo.GetByCompany(companyID)
	if err != nil {
		return nil, err
	}
	if storage == nil {
		return nil, domain.ErrNoStorage
	}

	qtyByProduct := make(map[string]int64, len(s.Lines))
	ids := make([]string, 0, len(s.Lines))
	for _, line := range s.Lines {
		if _, seen := qtyByProduct[line.ProductID]; !seen {
			ids = append(ids, line.ProductID)
		}
		qtyByProduct[line.ProductID] += line.Quantity
	}
	sort.Strings(ids)

	restored := make([]string, 0, len(ids))
	for _, id := range ids {
		p, err := productRepo.GetByStorageForUpdate(storage.ID, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			// Producto ya borrado del catálogo; no hay stock que restaurar.
			continue
		}
		if err := productRepo.UpdateStock(p.ID, p.Quantity+qtyByProduct[id]); err != nil {
			return nil, err
		}
		restored = append(restored, p.ID)
	}
	return restored, nil
}

// GetSale devuelve una venta de la empresa con sus líneas.
func (uc *UseCase) GetSale(ctx context.Context, companyID, saleID string) (*dto.SaleResponse, error) {
	s, err := uc.saleRepo.GetByCompany(companyID, saleID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return toSaleResponse(s), nil
}

// ListSales lista las ventas de la empresa con paginación.
func (uc *UseCase) ListSales(ctx context.Context, companyID string, page dto.PageRequest) ([]dto.SaleResponse, error) {
	page.DefaultPage()
	sales, err := uc.saleRepo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, *toSaleResponse(s))
	}
	return out, nil
}

// UpdateSale modifica comprador y/o fecha de una venta. La fecha no puede
// quedar en el futuro.
func (uc *UseCase) UpdateSale(ctx context.Context, companyID, saleID string, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	s, err := uc.saleRepo.GetByCompany(companyID, saleID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if in.BuyerName != nil {
		if *in.BuyerName == "" {
			return nil, domain.ErrInvalidInput
		}
		s.BuyerName = *in.BuyerName
	}
	if in.SaleDate != nil {
		d, err := time.Parse(dateLayout, *in.SaleDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		today := uc.today().Truncate(24 * time.Hour)
		if d.After(today) {
			return nil, domain.ErrInvalidInput
		}
		s.SaleDate = d
	}
	if err := uc.saleRepo.Update(s); err != nil {
		return nil, err
	}
	return toSaleResponse(s), nil
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	lines := make([]dto.SaleLineResponse, 0, len(s.Lines))
	for _, l := range s.Lines {
		lines = append(lines, dto.SaleLineResponse{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return &dto.SaleResponse{
		ID:        s.ID,
		BuyerName: s.BuyerName,
		SaleDate:  s.SaleDate.Format(dateLayout),
		Products:  lines,
	}
}
