package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/warely-stock/internal/domain"
	"github.com/jhoicas/warely-stock/internal/domain/entity"
	"github.com/jhoicas/warely-stock/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, warehouse_id, order_type, status, supplier_id, notes, created_by,
	completed_date, cancelled_date, created_at, updated_at`

// OrderRepo implementación de OrderRepository sobre PostgreSQL (cabecera en orders, líneas en order_items).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create inserta la cabecera y luego cada ítem. Debe ejecutarse dentro de la tx del coordinador.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		o.ID, o.WarehouseID, o.Type, o.Status, o.SupplierID, o.Notes, o.CreatedBy,
		o.CompletedDate, o.CancelledDate, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: orden %s", domain.ErrDuplicate, o.ID)
		}
		return fmt.Errorf("insert order: %w", err)
	}
	for _, it := range o.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO order_items (id, order_id, product_id, quantity, unit_price, location_id)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			it.ID, o.ID, it.ProductID, it.Quantity, it.UnitPrice, it.LocationID,
		)
		if err != nil {
			return fmt.Errorf("insert order_item: %w", err)
		}
	}
	return nil
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

// GetForUpdate bloquea la cabecera; los ítems no cambian después de creados.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *OrderRepo) getOne(ctx context.Context, query, id string) (*entity.Order, error) {
	var o entity.Order
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.WarehouseID, &o.Type, &o.Status, &o.SupplierID, &o.Notes, &o.CreatedBy,
		&o.CompletedDate, &o.CancelledDate, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	items, err := r.items(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *OrderRepo) items(ctx context.Context, orderID string) ([]entity.OrderItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, product_id, quantity, unit_price, location_id
		FROM order_items WHERE order_id = $1 ORDER BY position`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order_items: %w", err)
	}
	defer rows.Close()
	items := make([]entity.OrderItem, 0)
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.LocationID); err != nil {
			return nil, fmt.Errorf("scan order_item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, o *entity.Order) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE orders SET status = $2, completed_date = $3, cancelled_date = $4, updated_at = $5
		WHERE id = $1`,
		o.ID, o.Status, o.CompletedDate, o.CancelledDate, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrOrderNotFound, o.ID)
	}
	return nil
}

// ListByWarehouse lista órdenes (más recientes primero) con filtros opcionales de estado y tipo.
func (r *OrderRepo) ListByWarehouse(ctx context.Context, warehouseID string, f repository.OrderFilter) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE warehouse_id = $1
		  AND ($2::text = '' OR status = $2)
		  AND ($3::text = '' OR order_type = $3)
		ORDER BY created_at DESC, id
		LIMIT $4 OFFSET $5`,
		warehouseID, f.Status, f.Type, limitArg(f.Limit), f.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	list := make([]*entity.Order, 0)
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.WarehouseID, &o.Type, &o.Status, &o.SupplierID, &o.Notes, &o.CreatedBy,
			&o.CompletedDate, &o.CancelledDate, &o.CreatedAt, &o.UpdatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	// los ítems se cargan después de cerrar rows: una conexión no admite dos consultas abiertas
	for _, o := range list {
		if o.Items, err = r.items(ctx, o.ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *OrderRepo) SumInFlightOutbound(ctx context.Context, productID string) (int64, error) {
	var sum int64
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(oi.quantity), 0)::BIGINT
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE oi.product_id = $1
		  AND o.order_type = 'OUTBOUND'
		  AND o.status IN ('PENDING', 'PROCESSING')`, productID,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum in-flight outbound: %w", err)
	}
	return sum, nil
}

func (r *OrderRepo) CountInFlightByLocation(ctx context.Context, locationID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(DISTINCT o.id)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE oi.location_id = $1
		  AND o.status IN ('PENDING', 'PROCESSING')`, locationID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count in-flight by location: %w", err)
	}
	return n, nil
}
