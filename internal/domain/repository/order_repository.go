package repository

import (
	"context"

	"github.com/jhoicas/warely-stock/internal/domain/entity"
)

// OrderFilter filtros opcionales para listar órdenes.
type OrderFilter struct {
	Status string
	Type   string
	Limit  int
	Offset int
}

// OrderRepository define el puerto de persistencia para Order y sus ítems.
type OrderRepository interface {
	// Create persiste la cabecera y los ítems.
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// GetForUpdate bloquea la fila de la orden para serializar transiciones concurrentes.
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	// UpdateStatus escribe status, completed_date, cancelled_date y updated_at.
	UpdateStatus(ctx context.Context, order *entity.Order) error
	ListByWarehouse(ctx context.Context, warehouseID string, filter OrderFilter) ([]*entity.Order, error)
	// SumInFlightOutbound suma las cantidades del producto en órdenes OUTBOUND no terminales.
	SumInFlightOutbound(ctx context.Context, productID string) (int64, error)
	// CountInFlightByLocation cuenta las órdenes no terminales con ítems atados a la ubicación.
	CountInFlightByLocation(ctx context.Context, locationID string) (int, error)
}
