package repository

import (
	"context"

	"github.com/jhoicas/warely-stock/internal/domain/entity"
)

// ProductLocationRepository define el puerto para consultar/actualizar stock por producto+ubicación.
// Usado dentro de transacciones para garantizar consistencia con los contadores del producto.
type ProductLocationRepository interface {
	// Get devuelve la fila o una con cantidad cero si aún no existe.
	Get(ctx context.Context, productID, locationID string) (*entity.ProductLocation, error)
	// GetForUpdate igual que Get pero bloquea la fila (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, productID, locationID string) (*entity.ProductLocation, error)
	Upsert(ctx context.Context, pl *entity.ProductLocation) error
	ListByProduct(ctx context.Context, productID string) ([]*entity.ProductLocation, error)
	ListByLocation(ctx context.Context, locationID string) ([]*entity.ProductLocation, error)
	// SumByLocation suma las cantidades de todos los productos en la ubicación.
	SumByLocation(ctx context.Context, locationID string) (int64, error)
}
