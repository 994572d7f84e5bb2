package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dirección de la orden.
const (
	OrderTypeInbound  = "INBOUND"  // recepción de mercancía (proveedor)
	OrderTypeOutbound = "OUTBOUND" // despacho a cliente
)

// Estados de la orden. COMPLETED y CANCELLED son terminales.
const (
	OrderStatusPending    = "PENDING"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusCompleted  = "COMPLETED"
	OrderStatusCancelled  = "CANCELLED"
)

// Order representa una orden de entrada o salida de una bodega.
type Order struct {
	ID            string
	WarehouseID   string
	Type          string
	Status        string
	SupplierID    string // solo INBOUND; vacío si no aplica
	Notes         string
	CreatedBy     string
	CompletedDate *time.Time
	CancelledDate *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Items         []OrderItem
}

// OrderItem es una línea de la orden. LocationID vacío = ubicación por defecto de la bodega.
type OrderItem struct {
	ID         string
	OrderID    string
	ProductID  string
	Quantity   int64
	UnitPrice  decimal.Decimal
	LocationID string
}

// Total devuelve la suma de cantidad × precio unitario de los ítems.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity)))
	}
	return total
}
