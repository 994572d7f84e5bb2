package entity

import "time"

// Product representa un producto o SKU de una bodega con sus contadores de stock.
// CurrentStock es lo que aún se puede prometer: las salidas lo descuentan al reservar,
// no al despachar. ReservedStock es informativo (unidades en tránsito de órdenes OUTBOUND).
type Product struct {
	ID            string
	WarehouseID   string
	SKU           string // código único por bodega
	Name          string
	CurrentStock  int64
	ReservedStock int64
	ReorderPoint  int64
	MaxStock      int64 // 0 = sin máximo definido
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BelowReorderPoint indica si el producto necesita reposición.
func (p *Product) BelowReorderPoint() bool {
	return p.ReorderPoint > 0 && p.CurrentStock < p.ReorderPoint
}
