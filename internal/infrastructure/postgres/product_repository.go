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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, warehouse_id, sku, name, current_stock, reserved_stock, reorder_point, max_stock, is_active, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto (seed e importación; el catálogo vive fuera de este servicio).
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
		RETURNING created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		p.ID, p.WarehouseID, p.SKU, p.Name, p.CurrentStock, p.ReservedStock,
		p.ReorderPoint, p.MaxStock, p.IsActive,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: sku %s", domain.ErrDuplicate, p.SKU)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) getOne(ctx context.Context, query, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// UpdateStock escribe current_stock y reserved_stock. Los CHECK de la tabla impiden negativos.
func (r *ProductRepo) UpdateStock(ctx context.Context, id string, currentStock, reservedStock int64) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET current_stock = $2, reserved_stock = $3, updated_at = now() WHERE id = $1`,
		id, currentStock, reservedStock,
	)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: contadores negativos para %s", domain.ErrConflict, id)
		}
		return fmt.Errorf("update product stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
	}
	return nil
}

// ListByWarehouse lista productos de la bodega por SKU con paginación.
func (r *ProductRepo) ListByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE warehouse_id = $1 ORDER BY sku LIMIT $2 OFFSET $3`,
		warehouseID, limitArg(limit), offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Deactivate baja lógica: el producto conserva su historial de movimientos.
func (r *ProductRepo) Deactivate(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE products SET is_active = FALSE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
	}
	return nil
}

// Delete elimina un producto por ID. Falla con ErrConflict si aún lo referencian órdenes o movimientos.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: el producto está referenciado", domain.ErrConflict)
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.WarehouseID, &p.SKU, &p.Name, &p.CurrentStock, &p.ReservedStock,
		&p.ReorderPoint, &p.MaxStock, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
