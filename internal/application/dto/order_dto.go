package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea de una orden.
type OrderItemRequest struct {
	ProductID  string          `json:"product_id"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	LocationID string          `json:"location_id,omitempty"` // vacío = ubicación por defecto
}

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	Type       string             `json:"type"` // INBOUND | OUTBOUND
	SupplierID string             `json:"supplier_id,omitempty"`
	Notes      string             `json:"notes,omitempty"`
	Items      []OrderItemRequest `json:"items"`
}

// UpdateOrderStatusRequest body para PATCH /api/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderItemResponse línea de una orden.
type OrderItemResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	LocationID string          `json:"location_id"`
}

// OrderResponse salida de una orden.
type OrderResponse struct {
	ID            string              `json:"id"`
	WarehouseID   string              `json:"warehouse_id"`
	Type          string              `json:"type"`
	Status        string              `json:"status"`
	SupplierID    string              `json:"supplier_id,omitempty"`
	Notes         string              `json:"notes,omitempty"`
	CreatedBy     string              `json:"created_by"`
	Total         decimal.Decimal     `json:"total"`
	CompletedDate *time.Time          `json:"completed_date,omitempty"`
	CancelledDate *time.Time          `json:"cancelled_date,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
	Items         []OrderItemResponse `json:"items"`
}

// OrderMutationResponse salida de crear/transicionar una orden: la orden más los contadores
// resultantes y los movimientos agregados al libro.
type OrderMutationResponse struct {
	Order       OrderResponse     `json:"order"`
	Products    []ProductCounters `json:"products"`
	MovementIDs []string          `json:"movement_ids"`
}

// OrderListResponse lista paginada de órdenes.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
