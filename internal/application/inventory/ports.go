package inventory

import (
	"context"

	"github.com/jhoicas/warely-stock/internal/domain/entity"
	"github.com/jhoicas/warely-stock/internal/domain/repository"
)

// Stores agrupa los repositorios atados a una misma transacción.
type Stores struct {
	Products  repository.ProductRepository
	Locations repository.LocationRepository
	Stock     repository.ProductLocationRepository
	Movements repository.StockMovementRepository
	Orders    repository.OrderRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el coordinador: si fn devuelve error se hace Rollback de todo.
// La implementación puede reintentar fn ante conflictos de concurrencia, por lo que fn no debe
// tener efectos fuera de los repositorios recibidos.
type TxRunner interface {
	Run(ctx context.Context, fn func(s Stores) error) error
}

// EventPublisher entrega eventos de dominio ya confirmados (best-effort).
type EventPublisher interface {
	Publish(ctx context.Context, events []entity.StockEvent) error
}

// NopPublisher descarta los eventos (EVENTS_DRIVER=none).
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, []entity.StockEvent) error { return nil }
