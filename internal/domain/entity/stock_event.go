package entity

import "time"

// Tipos de evento de dominio emitidos tras cada mutación confirmada.
const (
	EventStockReserved       = "stock.reserved"
	EventReservationReleased = "stock.reservation_released"
	EventStockRestored       = "stock.restored"
	EventStockReceived       = "stock.received"
	EventStockTransferred    = "stock.transferred"
	EventStockAdjusted       = "stock.adjusted"
	EventOrderStatusChanged  = "order.status_changed"
)

// StockEvent es el evento que se entrega (best-effort) a analítica.
type StockEvent struct {
	Type          string    `json:"type"`
	WarehouseID   string    `json:"warehouse_id"`
	ProductID     string    `json:"product_id,omitempty"`
	QuantityDelta int64     `json:"quantity_delta"`
	ReferenceType string    `json:"reference_type"`
	ReferenceID   string    `json:"reference_id"`
	MovementID    string    `json:"movement_id,omitempty"`
	ActorID       string    `json:"actor_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}
