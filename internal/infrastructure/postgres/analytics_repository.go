package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/warely-stock/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para reposición y dashboard de stock.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetProductsBelowReorderPoint productos activos con current_stock < reorder_point, mayor déficit primero.
func (r *AnalyticsRepo) GetProductsBelowReorderPoint(ctx context.Context, warehouseID string) ([]repository.ReplenishmentItem, error) {
	const query = `
	SELECT id, sku, name, current_stock, reserved_stock, reorder_point, max_stock
	FROM products
	WHERE warehouse_id = $1
	  AND is_active
	  AND reorder_point > 0
	  AND current_stock < reorder_point
	ORDER BY (reorder_point - current_stock) DESC, sku`

	rows, err := r.pool.Query(ctx, query, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetProductsBelowReorderPoint: %w", err)
	}
	defer rows.Close()

	results := make([]repository.ReplenishmentItem, 0)
	for rows.Next() {
		var it repository.ReplenishmentItem
		if err := rows.Scan(&it.ProductID, &it.SKU, &it.ProductName, &it.CurrentStock,
			&it.ReservedStock, &it.ReorderPoint, &it.MaxStock); err != nil {
			return nil, fmt.Errorf("analytics.GetProductsBelowReorderPoint scan: %w", err)
		}
		results = append(results, it)
	}
	return results, rows.Err()
}

// GetStockTotals KPIs de stock y órdenes abiertas de la bodega en una sola consulta.
func (r *AnalyticsRepo) GetStockTotals(ctx context.Context, warehouseID string) (repository.StockTotals, error) {
	const query = `
	SELECT
	    COUNT(*)                                                         AS active_products,
	    COALESCE(SUM(current_stock), 0)::BIGINT                          AS total_units,
	    COALESCE(SUM(reserved_stock), 0)::BIGINT                         AS reserved_units,
	    COUNT(*) FILTER (WHERE reorder_point > 0 AND current_stock < reorder_point) AS below_reorder,
	    COUNT(*) FILTER (WHERE current_stock = 0)                        AS out_of_stock,
	    (SELECT COUNT(*) FROM orders o
	      WHERE o.warehouse_id = $1 AND o.order_type = 'OUTBOUND'
	        AND o.status IN ('PENDING', 'PROCESSING'))                   AS pending_outbound,
	    (SELECT COUNT(*) FROM orders o
	      WHERE o.warehouse_id = $1 AND o.order_type = 'INBOUND'
	        AND o.status IN ('PENDING', 'PROCESSING'))                   AS pending_inbound
	FROM products
	WHERE warehouse_id = $1 AND is_active`

	var t repository.StockTotals
	err := r.pool.QueryRow(ctx, query, warehouseID).Scan(
		&t.ActiveProducts, &t.TotalUnits, &t.ReservedUnits, &t.BelowReorder,
		&t.OutOfStock, &t.PendingOutbound, &t.PendingInbound,
	)
	if err != nil {
		return t, fmt.Errorf("analytics.GetStockTotals: %w", err)
	}
	return t, nil
}

// GetLocationUtilization ubicaciones con más unidades almacenadas.
func (r *AnalyticsRepo) GetLocationUtilization(ctx context.Context, warehouseID string, limit int) ([]repository.LocationUtilization, error) {
	const query = `
	SELECT l.id, l.code, l.type, l.capacity, COALESCE(SUM(pl.quantity), 0)::BIGINT AS quantity
	FROM locations l
	LEFT JOIN product_locations pl ON pl.location_id = l.id
	WHERE l.warehouse_id = $1
	GROUP BY l.id, l.code, l.type, l.capacity
	ORDER BY quantity DESC, l.code
	LIMIT $2`

	rows, err := r.pool.Query(ctx, query, warehouseID, limitArg(limit))
	if err != nil {
		return nil, fmt.Errorf("analytics.GetLocationUtilization: %w", err)
	}
	defer rows.Close()

	results := make([]repository.LocationUtilization, 0)
	for rows.Next() {
		var u repository.LocationUtilization
		if err := rows.Scan(&u.LocationID, &u.Code, &u.Type, &u.Capacity, &u.Quantity); err != nil {
			return nil, fmt.Errorf("analytics.GetLocationUtilization scan: %w", err)
		}
		results = append(results, u)
	}
	return results, rows.Err()
}
