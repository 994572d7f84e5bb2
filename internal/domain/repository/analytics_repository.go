package repository

import "context"

// ReplenishmentItem resultado crudo del repositorio para un producto bajo punto de reorden.
type ReplenishmentItem struct {
	ProductID     string
	SKU           string
	ProductName   string
	CurrentStock  int64
	ReservedStock int64
	ReorderPoint  int64
	MaxStock      int64
}

// StockTotals agregados de stock de una bodega.
type StockTotals struct {
	ActiveProducts  int
	TotalUnits      int64 // suma de current_stock
	ReservedUnits   int64 // suma de reserved_stock
	BelowReorder    int
	OutOfStock      int
	PendingOutbound int // órdenes OUTBOUND no terminales
	PendingInbound  int // órdenes INBOUND no terminales
}

// LocationUtilization ocupación de una ubicación; Capacity nil = sin capacidad definida.
type LocationUtilization struct {
	LocationID string
	Code       string
	Type       string
	Capacity   *int64
	Quantity   int64
}

// AnalyticsRepository consultas de lectura para reposición y dashboard (read-only).
type AnalyticsRepository interface {
	// GetProductsBelowReorderPoint devuelve los productos activos con current_stock < reorder_point,
	// ordenados por mayor déficit primero.
	GetProductsBelowReorderPoint(ctx context.Context, warehouseID string) ([]ReplenishmentItem, error)

	// GetStockTotals devuelve los KPIs agregados de stock de la bodega.
	GetStockTotals(ctx context.Context, warehouseID string) (StockTotals, error)

	// GetLocationUtilization devuelve las ubicaciones con más unidades (hasta limit).
	GetLocationUtilization(ctx context.Context, warehouseID string, limit int) ([]LocationUtilization, error)
}
