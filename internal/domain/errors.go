package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los casos de uso los envuelven con fmt.Errorf("%w: ...") para añadir el motivo legible.
var (
	ErrNotFound                  = errors.New("recurso no encontrado")
	ErrInvalidInput              = errors.New("entrada inválida")
	ErrDuplicate                 = errors.New("recurso duplicado")
	ErrForbidden                 = errors.New("acceso denegado")
	ErrConflict                  = errors.New("conflicto con el estado actual")
	ErrInsufficientStock         = errors.New("stock insuficiente")
	ErrInsufficientLocationStock = errors.New("stock insuficiente en la ubicación")
	ErrInvalidTransition         = errors.New("transición de estado no permitida")
	ErrProductNotFound           = errors.New("producto no encontrado")
	ErrLocationNotFound          = errors.New("ubicación no encontrada")
	ErrOrderNotFound             = errors.New("orden no encontrada")
	ErrConcurrentModification    = errors.New("modificación concurrente, reintente la operación")
	ErrCapacityExceeded          = errors.New("capacidad de la ubicación excedida")
	ErrLocationNotEmpty          = errors.New("la ubicación aún tiene stock")
)
