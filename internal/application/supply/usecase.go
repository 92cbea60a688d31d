package supply

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/pricing"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// UseCase procesa suministros: aplica entregas entrantes al almacén de la
// empresa en dos fases (validar todo, luego mutar) dentro de una transacción,
// y revierte el efecto de un suministro al borrarlo.
type UseCase struct {
	txRunner     TxRunner
	storageRepo  repository.StorageRepository
	supplierRepo repository.SupplierRepository
	supplyRepo   repository.SupplyRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	storageRepo repository.StorageRepository,
	supplierRepo repository.SupplierRepository,
	supplyRepo repository.SupplyRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		storageRepo:  storageRepo,
		supplierRepo: supplierRepo,
		supplyRepo:   supplyRepo,
	}
}

// CreateSupply aplica una entrega a los productos del almacén de la empresa.
// Fase 1: bloquear (FOR UPDATE) y validar todas las líneas sin mutar nada.
// Fase 2: por línea, sumar cantidad, fijar precio de compra y recalcular el
// precio de venta con el margen fijo. Todo o nada: cualquier fallo hace
// rollback completo, nunca quedan líneas parciales.
func (uc *UseCase) CreateSupply(ctx context.Context, companyID string, in dto.CreateSupplyRequest) (*dto.SupplyResponse, error) {
	storage, err := uc.storageRepo.GetByCompany(companyID)
	if err != nil {
		return nil, err
	}
	if storage == nil {
		return nil, domain.ErrNoStorage
	}

	supplier, err := uc.supplierRepo.GetByCompany(companyID, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}

	deliveryDate, err := time.Parse(dateLayout, in.DeliveryDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Products) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range in.Products {
		if line.ProductID == "" || line.Quantity <= 0 || line.PurchasePrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	sup := &entity.Supply{
		ID:           uuid.New().String(),
		SupplierID:   supplier.ID,
		DeliveryDate: deliveryDate,
		CreatedAt:    now,
	}

	err = uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, supplyRepo repository.SupplyRepository) error {
		// Fase 1: bloquear cada producto en orden ascendente de id (evita deadlocks
		// entre suministros/ventas concurrentes) y validar pertenencia al almacén.
		products, err := lockProducts(productRepo, storage.ID, productIDs(in.Products))
		if err != nil {
			return err
		}

		if err := supplyRepo.Create(sup); err != nil {
			return err
		}

		// Fase 2: aplicar línea por línea en el orden del request.
		for _, line := range in.Products {
			p := products[line.ProductID]
			p.Quantity += line.Quantity
			p.PurchasePrice = line.PurchasePrice
			p.SalePrice = pricing.SalePrice(line.PurchasePrice)
			if err := productRepo.ApplySupply(p.ID, p.Quantity, p.PurchasePrice, p.SalePrice); err != nil {
				return err
			}
			supLine := entity.SupplyLine{
				ID:            uuid.New().String(),
				SupplyID:      sup.ID,
				ProductID:     p.ID,
				Quantity:      line.Quantity,
				PurchasePrice: line.PurchasePrice,
			}
			if err := supplyRepo.CreateLine(&supLine); err != nil {
				return err
			}
			sup.Lines = append(sup.Lines, supLine)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toSupplyResponse(sup), nil
}

// DeleteSupply revierte un suministro: resta a cada producto lo que la entrega
// sumó y borra el registro, en una sola transacción. Si parte de la mercancía
// ya se vendió (la resta dejaría stock negativo) la reversión se rechaza.
func (uc *UseCase) DeleteSupply(ctx context.Context, companyID, supplyID string) (*dto.SupplyReversalResponse, error) {
	var reversed []string
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, supplyRepo repository.SupplyRepository) error {
		sup, err := supplyRepo.GetByCompany(companyID, supplyID)
		if err != nil {
			return err
		}
		if sup == nil {
			return domain.ErrNotFound
		}
		storage, err := uc.storageRepo.GetByCompany(companyID)
		if err != nil {
			return err
		}
		if storage == nil {
			return domain.ErrNoStorage
		}

		ids := make([]string, 0, len(sup.Lines))
		qtyByProduct := make(map[string]int64, len(sup.Lines))
		for _, line := range sup.Lines {
			if _, seen := qtyByProduct[line.ProductID]; !seen {
				ids = append(ids, line.ProductID)
			}
			qtyByProduct[line.ProductID] += line.Quantity
		}
		sort.Strings(ids)

		for _, id := range ids {
			p, err := productRepo.GetByStorageForUpdate(storage.ID, id)
			if err != nil {
				return err
			}
			if p == nil {
				// El producto fue borrado del catálogo; no queda stock que revertir.
				continue
			}
			if p.Quantity < qtyByProduct[id] {
				return &domain.StockShortageError{
					ProductID: p.ID,
					Title:     p.Title,
					Available: p.Quantity,
					Requested: qtyByProduct[id],
				}
			}
			if err := productRepo.UpdateStock(p.ID, p.Quantity-qtyByProduct[id]); err != nil {
				return err
			}
			reversed = append(reversed, p.ID)
		}
		return supplyRepo.Delete(sup.ID)
	})
	if err != nil {
		return nil, err
	}
	return &dto.SupplyReversalResponse{SupplyID: supplyID, ReversedProductIDs: reversed}, nil
}

// ListSupplies devuelve los suministros de la empresa con sus líneas.
func (uc *UseCase) ListSupplies(ctx context.Context, companyID string) ([]dto.SupplyResponse, error) {
	supplies, err := uc.supplyRepo.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplyResponse, 0, len(supplies))
	for _, s := range supplies {
		out = append(out, *toSupplyResponse(s))
	}
	return out, nil
}

// lockProducts bloquea los productos indicados (FOR UPDATE) en orden ascendente
// de id y verifica que todos pertenezcan al almacén. Devuelve el mapa id→producto.
func lockProducts(productRepo repository.ProductRepository, storageID string, ids []string) (map[string]*entity.Product, error) {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	products := make(map[string]*entity.Product, len(sorted))
	for _, id := range sorted {
		p, err := productRepo.GetByStorageForUpdate(storageID, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
		products[id] = p
	}
	return products, nil
}

func productIDs(lines []dto.SupplyLineRequest) []string {
	seen := make(map[string]bool, len(lines))
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		if !seen[l.ProductID] {
			seen[l.ProductID] = true
			ids = append(ids, l.ProductID)
		}
	}
	return ids
}

func toSupplyResponse(s *entity.Supply) *dto.SupplyResponse {
	lines := make([]dto.SupplyLineResponse, 0, len(s.Lines))
	for _, l := range s.Lines {
		lines = append(lines, dto.SupplyLineResponse{
			ProductID:     l.ProductID,
			Quantity:      l.Quantity,
			PurchasePrice: l.PurchasePrice,
		})
	}
	return &dto.SupplyResponse{
		ID:           s.ID,
		SupplierID:   s.SupplierID,
		DeliveryDate: s.DeliveryDate.Format(dateLayout),
		Products:     lines,
	}
}
