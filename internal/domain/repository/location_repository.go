package repository

import (
	"context"

	"github.com/jhoicas/warely-stock/internal/domain/entity"
)

// LocationRepository define el puerto de persistencia para Location (DIP).
type LocationRepository interface {
	Create(ctx context.Context, location *entity.Location) error
	GetByID(ctx context.Context, id string) (*entity.Location, error)
	// GetForUpdate bloquea la fila de la ubicación (usado al validar capacidad).
	GetForUpdate(ctx context.Context, id string) (*entity.Location, error)
	// GetDefault devuelve la ubicación por defecto de la bodega o nil si no hay.
	GetDefault(ctx context.Context, warehouseID string) (*entity.Location, error)
	ListByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.Location, error)
	Delete(ctx context.Context, id string) error
}
