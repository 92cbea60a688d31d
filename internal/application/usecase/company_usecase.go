package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// CompanyUseCase alta y consulta de empresas y de su almacén único.
// El resto de la gestión de empresas/empleados vive fuera de este servicio.
type CompanyUseCase struct {
	companyRepo repository.CompanyRepository
	storageRepo repository.StorageRepository
}

// NewCompanyUseCase construye el caso de uso.
func NewCompanyUseCase(companyRepo repository.CompanyRepository, storageRepo repository.StorageRepository) *CompanyUseCase {
	return &CompanyUseCase{companyRepo: companyRepo, storageRepo: storageRepo}
}

// Create crea una empresa. Título e INN únicos en el sistema.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if in.Title == "" || in.INN == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Title:     in.Title,
		INN:       in.INN,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.companyRepo.Create(company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// GetByID obtiene una empresa.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := uc.companyRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return toCompanyResponse(company), nil
}

// List lista empresas con paginación.
func (uc *CompanyUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.CompanyResponse, error) {
	page.DefaultPage()
	companies, err := uc.companyRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CompanyResponse, 0, len(companies))
	for _, c := range companies {
		out = append(out, *toCompanyResponse(c))
	}
	return out, nil
}

// CreateStorage crea el almacén único de la empresa. Falla con ErrDuplicate si
// ya existe (constraint UNIQUE sobre company_id).
func (uc *CompanyUseCase) CreateStorage(ctx context.Context, companyID string, in dto.CreateStorageRequest) (*dto.StorageResponse, error) {
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	storage := &entity.Storage{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Address:   in.Address,
		CreatedAt: time.Now(),
	}
	if err := uc.storageRepo.Create(storage); err != nil {
		return nil, err
	}
	return &dto.StorageResponse{ID: storage.ID, CompanyID: storage.CompanyID, Address: storage.Address}, nil
}

// GetStorage devuelve el almacén de la empresa.
func (uc *CompanyUseCase) GetStorage(ctx context.Context, companyID string) (*dto.StorageResponse, error) {
	storage, err := uc.storageRepo.GetByCompany(companyID)
	if err != nil {
		return nil, err
	}
	if storage == nil {
		return nil, domain.ErrNoStorage
	}
	return &dto.StorageResponse{ID: storage.ID, CompanyID: storage.CompanyID, Address: storage.Address}, nil
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{ID: c.ID, Title: c.Title, INN: c.INN}
}
