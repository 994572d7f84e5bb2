package repository

import (
	"context"

	"github.com/jhoicas/warely-stock/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product y sus contadores (DIP).
// Los métodos que devuelven un producto retornan (nil, nil) si no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// UpdateStock escribe ambos contadores; solo lo invoca el coordinador dentro de una tx.
	UpdateStock(ctx context.Context, id string, currentStock, reservedStock int64) error
	ListByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.Product, error)
	// Deactivate marca el producto como inactivo (baja lógica cuando tiene historial).
	Deactivate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
