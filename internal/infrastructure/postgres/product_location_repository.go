package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/warely-stock/internal/domain"
	"github.com/jhoicas/warely-stock/internal/domain/entity"
	"github.com/jhoicas/warely-stock/internal/domain/repository"
)

var _ repository.ProductLocationRepository = (*ProductLocationRepo)(nil)

// ProductLocationRepo implementación de ProductLocationRepository sobre PostgreSQL (usable con pool o tx).
type ProductLocationRepo struct {
	q Querier
}

// NewProductLocationRepository construye el adaptador de stock por ubicación. Pasar pool o tx (Querier).
func NewProductLocationRepository(q Querier) *ProductLocationRepo {
	return &ProductLocationRepo{q: q}
}

// Get obtiene la cantidad de un producto en una ubicación (cero si la fila no existe).
func (r *ProductLocationRepo) Get(ctx context.Context, productID, locationID string) (*entity.ProductLocation, error) {
	return r.get(ctx, `
		SELECT product_id, location_id, quantity, updated_at
		FROM product_locations WHERE product_id = $1 AND location_id = $2`, productID, locationID)
}

// GetForUpdate obtiene la cantidad y bloquea la fila para update (SELECT FOR UPDATE).
// Si la fila no existe aún no hay nada que bloquear: el Upsert posterior la crea y el
// bloqueo del producto ya serializa a los demás escritores.
func (r *ProductLocationRepo) GetForUpdate(ctx context.Context, productID, locationID string) (*entity.ProductLocation, error) {
	return r.get(ctx, `
		SELECT product_id, location_id, quantity, updated_at
		FROM product_locations WHERE product_id = $1 AND location_id = $2
		FOR UPDATE`, productID, locationID)
}

func (r *ProductLocationRepo) get(ctx context.Context, query, productID, locationID string) (*entity.ProductLocation, error) {
	var pl entity.ProductLocation
	err := r.q.QueryRow(ctx, query, productID, locationID).Scan(
		&pl.ProductID, &pl.LocationID, &pl.Quantity, &pl.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return &entity.ProductLocation{ProductID: productID, LocationID: locationID}, nil
		}
		return nil, fmt.Errorf("get product_location: %w", err)
	}
	return &pl, nil
}

// Upsert inserta o actualiza la cantidad (por producto y ubicación).
func (r *ProductLocationRepo) Upsert(ctx context.Context, pl *entity.ProductLocation) error {
	query := `
		INSERT INTO product_locations (product_id, location_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_id, location_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(ctx, query, pl.ProductID, pl.LocationID, pl.Quantity)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: cantidad negativa en ubicación %s", domain.ErrInsufficientLocationStock, pl.LocationID)
		}
		return fmt.Errorf("upsert product_location: %w", err)
	}
	return nil
}

func (r *ProductLocationRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.ProductLocation, error) {
	return r.list(ctx, `
		SELECT product_id, location_id, quantity, updated_at
		FROM product_locations WHERE product_id = $1 ORDER BY location_id`, productID)
}

func (r *ProductLocationRepo) ListByLocation(ctx context.Context, locationID string) ([]*entity.ProductLocation, error) {
	return r.list(ctx, `
		SELECT product_id, location_id, quantity, updated_at
		FROM product_locations WHERE location_id = $1 ORDER BY product_id`, locationID)
}

func (r *ProductLocationRepo) list(ctx context.Context, query, arg string) ([]*entity.ProductLocation, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list product_locations: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.ProductLocation, 0)
	for rows.Next() {
		var pl entity.ProductLocation
		if err := rows.Scan(&pl.ProductID, &pl.LocationID, &pl.Quantity, &pl.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product_location: %w", err)
		}
		list = append(list, &pl)
	}
	return list, rows.Err()
}

func (r *ProductLocationRepo) SumByLocation(ctx context.Context, locationID string) (int64, error) {
	var sum int64
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0)::BIGINT FROM product_locations WHERE location_id = $1`, locationID,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum product_locations: %w", err)
	}
	return sum, nil
}
