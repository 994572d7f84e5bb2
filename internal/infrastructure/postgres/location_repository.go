package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/warely-stock/internal/domain"
	"github.com/jhoicas/warely-stock/internal/domain/entity"
	"github.com/jhoicas/warely-stock/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

const locationColumns = `id, warehouse_id, code, name, type, capacity, is_default, created_at, updated_at`

// LocationRepo implementación de LocationRepository sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// Create persiste la ubicación. Si es la nueva por defecto, primero desmarca la anterior
// (índice único parcial por bodega); llamar dentro de una tx para que ambos pasos sean atómicos.
func (r *LocationRepo) Create(ctx context.Context, l *entity.Location) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	if l.IsDefault {
		if _, err := r.q.Exec(ctx,
			`UPDATE locations SET is_default = FALSE, updated_at = now() WHERE warehouse_id = $1 AND is_default`,
			l.WarehouseID,
		); err != nil {
			return fmt.Errorf("unset default location: %w", err)
		}
	}
	query := `
		INSERT INTO locations (` + locationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		RETURNING created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		l.ID, l.WarehouseID, l.Code, l.Name, l.Type, l.Capacity, l.IsDefault,
	).Scan(&l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: código %s", domain.ErrDuplicate, l.Code)
		}
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

func (r *LocationRepo) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	return r.getOne(ctx, `SELECT `+locationColumns+` FROM locations WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila de la ubicación (SELECT FOR UPDATE).
func (r *LocationRepo) GetForUpdate(ctx context.Context, id string) (*entity.Location, error) {
	return r.getOne(ctx, `SELECT `+locationColumns+` FROM locations WHERE id = $1 FOR UPDATE`, id)
}

func (r *LocationRepo) GetDefault(ctx context.Context, warehouseID string) (*entity.Location, error) {
	return r.getOne(ctx, `SELECT `+locationColumns+` FROM locations WHERE warehouse_id = $1 AND is_default`, warehouseID)
}

func (r *LocationRepo) getOne(ctx context.Context, query, arg string) (*entity.Location, error) {
	l, err := scanLocation(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return l, nil
}

func (r *LocationRepo) ListByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.Location, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+locationColumns+` FROM locations WHERE warehouse_id = $1 ORDER BY code LIMIT $2 OFFSET $3`,
		warehouseID, limitArg(limit), offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Location, 0)
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// Delete elimina la ubicación y sus filas product_locations (ya en cero, lo valida el caso de uso).
func (r *LocationRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrLocationNotFound, id)
	}
	return nil
}

func scanLocation(row pgx.Row) (*entity.Location, error) {
	var l entity.Location
	if err := row.Scan(&l.ID, &l.WarehouseID, &l.Code, &l.Name, &l.Type, &l.Capacity,
		&l.IsDefault, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}
