package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/warely-stock/internal/domain/entity"
	"github.com/jhoicas/warely-stock/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, seq, warehouse_id, product_id, movement_type, quantity, from_location_id, to_location_id,
	reference_type, reference_id, notes, created_by, created_at`

// StockMovementRepo libro de movimientos sobre PostgreSQL. Solo INSERT y SELECT: un trigger
// de la tabla rechaza UPDATE y DELETE.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Append inserta el movimiento; seq la asigna la secuencia de la tabla.
func (r *StockMovementRepo) Append(ctx context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO stock_movements (id, warehouse_id, product_id, movement_type, quantity, from_location_id, to_location_id,
			reference_type, reference_id, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING seq`
	err := r.q.QueryRow(ctx, query,
		m.ID, m.WarehouseID, m.ProductID, m.Type, m.Quantity, m.FromLocationID, m.ToLocationID,
		m.ReferenceType, m.ReferenceID, m.Notes, m.CreatedBy, m.CreatedAt,
	).Scan(&m.Seq)
	if err != nil {
		return fmt.Errorf("insert stock_movement: %w", err)
	}
	return nil
}

func (r *StockMovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM stock_movements WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock_movement: %w", err)
	}
	return m, nil
}

// ListByProduct lista movimientos del producto (más recientes primero), filtrando por fecha opcional.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements
		WHERE product_id = $1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at <= $3)
		ORDER BY seq DESC
		LIMIT $4 OFFSET $5`
	return r.list(ctx, query, productID, from, to, limitArg(limit), offset)
}

func (r *StockMovementRepo) ListByLocation(ctx context.Context, locationID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements
		WHERE from_location_id = $1 OR to_location_id = $1
		ORDER BY seq DESC
		LIMIT $2 OFFSET $3`
	return r.list(ctx, query, locationID, limitArg(limit), offset)
}

func (r *StockMovementRepo) ListByReference(ctx context.Context, referenceType, referenceID string) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements
		WHERE reference_type = $1 AND reference_id = $2
		ORDER BY seq`
	return r.list(ctx, query, referenceType, referenceID)
}

// AllByProduct devuelve el historial completo en orden de seq (replay).
func (r *StockMovementRepo) AllByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error) {
	return r.list(ctx, `SELECT `+movementColumns+` FROM stock_movements WHERE product_id = $1 ORDER BY seq`, productID)
}

func (r *StockMovementRepo) CountByProduct(ctx context.Context, productID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_movements WHERE product_id = $1`, productID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count stock_movements: %w", err)
	}
	return n, nil
}

func (r *StockMovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock_movements: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.StockMovement, 0)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock_movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	if err := row.Scan(&m.ID, &m.Seq, &m.WarehouseID, &m.ProductID, &m.Type, &m.Quantity,
		&m.FromLocationID, &m.ToLocationID, &m.ReferenceType, &m.ReferenceID, &m.Notes,
		&m.CreatedBy, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}
