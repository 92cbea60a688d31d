package dto

// CreateCompanyRequest body para POST /api/companies.
type CreateCompanyRequest struct {
	Title string `json:"title"`
	INN   string `json:"inn"`
}

// CreateStorageRequest body para POST /api/companies/:id/storage.
type CreateStorageRequest struct {
	Address string `json:"address"`
}

// CompanyResponse representación HTTP de una empresa.
type CompanyResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	INN   string `json:"inn"`
}

// StorageResponse representación HTTP del almacén de una empresa.
type StorageResponse struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Address   string `json:"address"`
}
