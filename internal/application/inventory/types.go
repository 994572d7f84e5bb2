package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/warely-stock/internal/domain/entity"
)

// Modos de AdjustLocationStock.
const (
	AdjustModeAbsolute = "ABSOLUTE" // fija la cantidad de la ubicación
	AdjustModeIn       = "IN"       // suma Quantity
	AdjustModeOut      = "OUT"      // resta Quantity
)

// MaxQuantity tope de unidades por ítem, traslado o ajuste.
const MaxQuantity = 1_000_000_000

// Options parámetros del coordinador (grupo Ledger de la configuración).
type Options struct {
	// EnforceCapacity rechaza con ErrCapacityExceeded los ingresos que superen la capacidad de la ubicación.
	EnforceCapacity bool
}

// OrderItemInput línea de una orden a crear. LocationID vacío = ubicación por defecto.
type OrderItemInput struct {
	ProductID  string
	Quantity   int64
	UnitPrice  decimal.Decimal
	LocationID string
}

// CreateOrderInput entrada para CreateOutboundOrder / CreateInboundOrder.
type CreateOrderInput struct {
	SupplierID string
	Notes      string
	Items      []OrderItemInput
}

// TransferInput entrada para TransferBetweenLocations.
type TransferInput struct {
	ProductID      string
	FromLocationID string
	ToLocationID   string
	Quantity       int64
	Notes          string
}

// AdjustInput entrada para AdjustLocationStock.
// En modo ABSOLUTE Quantity es la cantidad final (≥ 0); en IN/OUT es el delta (> 0).
type AdjustInput struct {
	ProductID  string
	LocationID string
	Mode       string
	Quantity   int64
	Notes      string
}

// ProductCounters contadores de un producto después de la operación.
type ProductCounters struct {
	ProductID     string
	CurrentStock  int64
	ReservedStock int64
}

// OrderResult resultado de crear o transicionar una orden.
type OrderResult struct {
	Order       *entity.Order
	Products    []ProductCounters
	MovementIDs []string
}

// TransferResult resultado de un traslado.
type TransferResult struct {
	TransferID     string
	MovementID     string
	ProductID      string
	FromLocationID string
	FromQuantity   int64
	ToLocationID   string
	ToQuantity     int64
}

// AdjustResult resultado de un ajuste. MovementID vacío si el ajuste ABSOLUTE no cambió nada.
type AdjustResult struct {
	AdjustmentID     string
	MovementID       string
	LocationID       string
	LocationQuantity int64
	Product          ProductCounters
}
