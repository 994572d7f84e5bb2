package dto

// StockSummaryDTO respuesta de GET /api/dashboard/stock-summary.
type StockSummaryDTO struct {
	ActiveProducts  int   `json:"active_products"`
	TotalUnits      int64 `json:"total_units"`    // suma de current_stock
	ReservedUnits   int64 `json:"reserved_units"` // unidades en órdenes de salida sin despachar
	BelowReorder    int   `json:"below_reorder"`
	OutOfStock      int   `json:"out_of_stock"`
	PendingOutbound int   `json:"pending_outbound_orders"`
	PendingInbound  int   `json:"pending_inbound_orders"`

	// Ubicaciones con más unidades
	TopLocations []LocationUtilizationDTO `json:"top_locations"`
}

// LocationUtilizationDTO ocupación de una ubicación para el widget del dashboard.
type LocationUtilizationDTO struct {
	LocationID     string   `json:"location_id"`
	Code           string   `json:"code"`
	Type           string   `json:"type"`
	Quantity       int64    `json:"quantity"`
	Capacity       *int64   `json:"capacity,omitempty"`
	UtilizationPct *float64 `json:"utilization_pct,omitempty"` // nil si la ubicación no tiene capacidad
}
