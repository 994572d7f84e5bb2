package dto

import "time"

// TransferRequest body para POST /api/stock/transfers.
type TransferRequest struct {
	ProductID      string `json:"product_id"`
	FromLocationID string `json:"from_location_id"`
	ToLocationID   string `json:"to_location_id"`
	Quantity       int64  `json:"quantity"`
	Notes          string `json:"notes,omitempty"`
}

// TransferResponse salida de un traslado con las cantidades resultantes.
type TransferResponse struct {
	TransferID     string `json:"transfer_id"`
	MovementID     string `json:"movement_id"`
	ProductID      string `json:"product_id"`
	FromLocationID string `json:"from_location_id"`
	FromQuantity   int64  `json:"from_quantity"`
	ToLocationID   string `json:"to_location_id"`
	ToQuantity     int64  `json:"to_quantity"`
}

// AdjustmentRequest body para POST /api/stock/adjustments.
// Mode: ABSOLUTE (Quantity = cantidad final), IN u OUT (Quantity = delta).
type AdjustmentRequest struct {
	ProductID  string `json:"product_id"`
	LocationID string `json:"location_id,omitempty"` // vacío = ubicación por defecto
	Mode       string `json:"mode"`
	Quantity   int64  `json:"quantity"`
	Notes      string `json:"notes,omitempty"`
}

// AdjustmentResponse salida de un ajuste. MovementID vacío si no hubo cambio.
type AdjustmentResponse struct {
	AdjustmentID     string          `json:"adjustment_id"`
	MovementID       string          `json:"movement_id,omitempty"`
	LocationID       string          `json:"location_id"`
	LocationQuantity int64           `json:"location_quantity"`
	Product          ProductCounters `json:"product"`
}

// ProductCounters contadores de stock de un producto.
type ProductCounters struct {
	ProductID     string `json:"product_id"`
	CurrentStock  int64  `json:"current_stock"`
	ReservedStock int64  `json:"reserved_stock"`
}

// MovementResponse entrada del libro de movimientos.
type MovementResponse struct {
	ID             string    `json:"id"`
	Seq            int64     `json:"seq"`
	ProductID      string    `json:"product_id"`
	Type           string    `json:"movement_type"`
	Quantity       int64     `json:"quantity"`
	FromLocationID *string   `json:"from_location_id"`
	ToLocationID   *string   `json:"to_location_id"`
	ReferenceType  string    `json:"reference_type"`
	ReferenceID    string    `json:"reference_id"`
	Notes          string    `json:"notes,omitempty"`
	CreatedBy      string    `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ReplenishmentSuggestionDTO representa una sugerencia de reposición para un SKU
// que se encuentra por debajo de su punto de reorden.
type ReplenishmentSuggestionDTO struct {
	ProductID         string `json:"product_id"`
	SKU               string `json:"sku"`
	ProductName       string `json:"product_name"`
	CurrentStock      int64  `json:"current_stock"`
	ReservedStock     int64  `json:"reserved_stock"`
	ReorderPoint      int64  `json:"reorder_point"`
	TargetStock       int64  `json:"target_stock"`        // MaxStock, o ReorderPoint * 1.5 si no hay máximo
	SuggestedOrderQty int64  `json:"suggested_order_qty"` // TargetStock - CurrentStock
	Priority          int    `json:"priority"`            // 1 = más urgente
}

// LocationDriftDTO diferencia entre la cantidad guardada y la reconstruida desde el libro.
type LocationDriftDTO struct {
	LocationID string `json:"location_id"`
	Stored     int64  `json:"stored"`
	Replayed   int64  `json:"replayed"`
}

// ReconcileReportDTO respuesta de GET /api/products/:id/reconcile.
type ReconcileReportDTO struct {
	ProductID        string             `json:"product_id"`
	Movements        int                `json:"movements"`
	StoredCurrent    int64              `json:"stored_current_stock"`
	ReplayedCurrent  int64              `json:"replayed_current_stock"`
	StoredReserved   int64              `json:"stored_reserved_stock"`
	InFlightReserved int64              `json:"in_flight_reserved"` // suma de ítems OUTBOUND no terminales
	LocationDrift    []LocationDriftDTO `json:"location_drift"`
	NegativeAtSeq    int64              `json:"negative_at_seq,omitempty"`
	Consistent       bool               `json:"consistent"`
}
