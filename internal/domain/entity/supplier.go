package entity

import "time"

// Supplier representa un proveedor de mercancía de una empresa.
// Título e INN son únicos dentro de la empresa.
type Supplier struct {
	ID        string
	CompanyID string
	Title     string
	INN       string
	CreatedAt time.Time
	UpdatedAt time.Time
}
