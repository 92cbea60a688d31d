package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos del almacén de una empresa.
// Quantity y PurchasePrice no se tocan aquí: son del motor de stock.
type ProductUseCase struct {
	productRepo repository.ProductRepository
	storageRepo repository.StorageRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository, storageRepo repository.StorageRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, storageRepo: storageRepo}
}

func (uc *ProductUseCase) storageFor(companyID string) (*entity.Storage, error) {
	storage, err := uc.storageRepo.GetByCompany(companyID)
	if err != nil {
		return nil, err
	}
	if storage == nil {
		return nil, domain.ErrNoStorage
	}
	return storage, nil
}

// Create crea un producto vacío: cantidad 0, precio de compra 0, precio de
// venta el indicado. Título único por almacén.
func (uc *ProductUseCase) Create(ctx context.Context, companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	storage, err := uc.storageFor(companyID)
	if err != nil {
		return nil, err
	}
	if in.Title == "" || in.SalePrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.productRepo.GetByStorageAndTitle(storage.ID, in.Title)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		StorageID:     storage.ID,
		Title:         in.Title,
		PurchasePrice: decimal.Zero,
		SalePrice:     in.SalePrice,
		Quantity:      0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto del almacén de la empresa.
func (uc *ProductUseCase) GetByID(ctx context.Context, companyID, productID string) (*dto.ProductResponse, error) {
	storage, err := uc.storageFor(companyID)
	if err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByStorage(storage.ID, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// List lista los productos del almacén con paginación.
func (uc *ProductUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) ([]dto.ProductResponse, error) {
	storage, err := uc.storageFor(companyID)
	if err != nil {
		return nil, err
	}
	page.DefaultPage()
	products, err := uc.productRepo.ListByStorage(storage.ID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// Update modifica título y/o precio de venta. Cantidad y precio de compra se
// ignoran aunque vengan en el body: solo los muta el motor de stock.
func (uc *ProductUseCase) Update(ctx context.Context, companyID, productID string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	storage, err := uc.storageFor(companyID)
	if err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByStorage(storage.ID, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Title != nil {
		if *in.Title == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Title = *in.Title
	}
	if in.SalePrice != nil {
		if in.SalePrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product.SalePrice = *in.SalePrice
	}
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete borra un producto del almacén de la empresa.
func (uc *ProductUseCase) Delete(ctx context.Context, companyID, productID string) error {
	storage, err := uc.storageFor(companyID)
	if err != nil {
		return err
	}
	product, err := uc.productRepo.GetByStorage(storage.ID, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.productRepo.Delete(product.ID)
}

// DeleteAll borra todos los productos del almacén y devuelve cuántos.
func (uc *ProductUseCase) DeleteAll(ctx context.Context, companyID string) (int64, error) {
	storage, err := uc.storageFor(companyID)
	if err != nil {
		return 0, err
	}
	return uc.productRepo.DeleteByStorage(storage.ID)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		StorageID:     p.StorageID,
		Title:         p.Title,
		PurchasePrice: p.PurchasePrice,
		SalePrice:     p.SalePrice,
		Quantity:      p.Quantity,
	}
}
