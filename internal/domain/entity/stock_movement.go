package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeIN         = "IN"         // entrada
	MovementTypeOUT        = "OUT"        // salida
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste manual
	MovementTypeTRANSFER   = "TRANSFER"   // traslado entre ubicaciones
)

// Tipos de referencia: qué causó el movimiento.
const (
	ReferenceOrder             = "ORDER"
	ReferenceOrderCancellation = "ORDER_CANCELLATION"
	ReferenceTransfer          = "TRANSFER"
	ReferenceAdjustment        = "ADJUSTMENT"
)

// StockMovement es una entrada inmutable del libro de movimientos.
// Quantity es siempre una magnitud positiva: las unidades salen de FromLocationID (si existe)
// y llegan a ToLocationID (si existe).
type StockMovement struct {
	ID             string
	Seq            int64 // secuencia monotónica para replay; la asigna el almacenamiento
	WarehouseID    string
	ProductID      string
	Type           string
	Quantity       int64
	FromLocationID *string
	ToLocationID   *string
	ReferenceType  string
	ReferenceID    string
	Notes          string
	CreatedBy      string // UserID
	CreatedAt      time.Time
}

// ProductDelta es el efecto del movimiento sobre el total del producto:
// +Quantity si solo entra, -Quantity si solo sale, 0 en un traslado.
func (m *StockMovement) ProductDelta() int64 {
	switch {
	case m.FromLocationID == nil && m.ToLocationID != nil:
		return m.Quantity
	case m.FromLocationID != nil && m.ToLocationID == nil:
		return -m.Quantity
	}
	return 0
}
