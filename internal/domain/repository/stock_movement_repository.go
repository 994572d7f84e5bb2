package repository

import (
	"context"
	"time"

	"github.com/jhoicas/warely-stock/internal/domain/entity"
)

// StockMovementRepository es el puerto del libro de movimientos: solo inserción y lectura.
// No existe Update ni Delete; las correcciones son nuevos movimientos ADJUSTMENT.
type StockMovementRepository interface {
	// Append inserta el movimiento y asigna ID (si falta), Seq y CreatedAt (si falta).
	Append(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	// ListByProduct lista movimientos de un producto, del más reciente al más antiguo.
	ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	// ListByLocation lista movimientos con origen o destino en la ubicación.
	ListByLocation(ctx context.Context, locationID string, limit, offset int) ([]*entity.StockMovement, error)
	// ListByReference lista los movimientos causados por una entidad (orden, traslado, ajuste).
	ListByReference(ctx context.Context, referenceType, referenceID string) ([]*entity.StockMovement, error)
	// AllByProduct devuelve el historial completo en orden de Seq ascendente (para replay).
	AllByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error)
	CountByProduct(ctx context.Context, productID string) (int, error)
}
