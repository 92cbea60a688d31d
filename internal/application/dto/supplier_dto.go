package dto

// CreateSupplierRequest body para POST /api/suppliers.
type CreateSupplierRequest struct {
	Title string `json:"title"`
	INN   string `json:"inn"`
}

// UpdateSupplierRequest body para PATCH /api/suppliers/:id.
type UpdateSupplierRequest struct {
	Title *string `json:"title,omitempty"`
	INN   *string `json:"inn,omitempty"`
}

// SupplierResponse representación HTTP de un proveedor.
type SupplierResponse struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Title     string `json:"title"`
	INN       string `json:"inn"`
}
