package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrNoStorage         = errors.New("la empresa no tiene almacén configurado")
)

// StockShortageError detalla qué producto no alcanza la cantidad pedida.
// Envuelve ErrInsufficientStock para que errors.Is siga funcionando; el caller
// recibe el disponible real y puede reintentar con una cantidad ajustada.
type StockShortageError struct {
	ProductID string
	Title     string
	Available int64
	Requested int64
}

func (e *StockShortageError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s (id:%s): disponible %d, solicitado %d",
		e.Title, e.ProductID, e.Available, e.Requested)
}

func (e *StockShortageError) Unwrap() error { return ErrInsufficientStock }
