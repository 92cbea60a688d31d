package entity

import "time"

// Company representa una organización/tenant del sistema. Cada empresa tiene
// exactamente un almacén (Storage) donde vive su inventario.
type Company struct {
	ID        string
	Title     string
	INN       string // identificación tributaria, única por sistema
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Storage representa el almacén único de una empresa.
type Storage struct {
	ID        string
	CompanyID string
	Address   string
	CreatedAt time.Time
}
