package postgres_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warely-stock/internal/application/inventory"
	"github.com/jhoicas/warely-stock/internal/domain"
	"github.com/jhoicas/warely-stock/internal/domain/entity"
	"github.com/jhoicas/warely-stock/internal/infrastructure/postgres"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	_ = godotenv.Load("../../../.env")

	// Base de datos dedicada: los tests truncan todas las tablas del libro.
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL no definido: se omite la prueba de integración")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = postgres.Migrate(ctx, pool)
	require.NoError(t, err)

	_, err = pool.Exec(ctx, `TRUNCATE TABLE order_items, orders, stock_movements, product_locations, locations, products CASCADE`)
	require.NoError(t, err)
	return pool
}

type pgFixture struct {
	pool    *pgxpool.Pool
	coord   *inventory.StockCoordinator
	actor   entity.Actor
	product *entity.Product
	def     *entity.Location
}

func newPGFixture(t *testing.T, stock int64) *pgFixture {
	t.Helper()
	ctx := context.Background()
	pool := setupTestDB(t)
	runner := postgres.NewTxRunner(pool, 5, 2*time.Second, zerolog.Nop())
	f := &pgFixture{
		pool:  pool,
		coord: inventory.NewStockCoordinator(runner, nil, zerolog.Nop(), inventory.Options{}),
		actor: entity.Actor{WarehouseID: "wh-it", UserID: "tester", Role: entity.RoleAdmin},
	}
	stores := postgres.StoresFor(pool)
	f.def = &entity.Location{WarehouseID: f.actor.WarehouseID, Code: "DEF", Type: entity.LocationTypeStorage, IsDefault: true}
	require.NoError(t, stores.Locations.Create(ctx, f.def))
	f.product = &entity.Product{WarehouseID: f.actor.WarehouseID, SKU: "IT-" + uuid.NewString()[:8], Name: "Prueba", ReorderPoint: 2, IsActive: true}
	require.NoError(t, stores.Products.Create(ctx, f.product))
	if stock > 0 {
		_, err := f.coord.AdjustLocationStock(ctx, f.actor, inventory.AdjustInput{
			ProductID: f.product.ID, Mode: inventory.AdjustModeAbsolute, Quantity: stock,
		})
		require.NoError(t, err)
	}
	return f
}

func TestPostgres_CicloDeOrdenYReconciliacion(t *testing.T) {
	f := newPGFixture(t, 10)
	ctx := context.Background()

	res, err := f.coord.CreateOutboundOrder(ctx, f.actor, inventory.CreateOrderInput{
		Items: []inventory.OrderItemInput{{ProductID: f.product.ID, Quantity: 4, UnitPrice: decimal.RequireFromString("12.50")}},
	})
	require.NoError(t, err)

	got, err := postgres.NewOrderRepository(f.pool).GetByID(ctx, res.Order.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.True(t, decimal.RequireFromString("50").Equal(got.Total()))

	_, err = f.coord.TransitionOrderStatus(ctx, f.actor, res.Order.ID, entity.OrderStatusCancelled)
	require.NoError(t, err)

	stores := postgres.StoresFor(f.pool)
	report, err := inventory.NewReconcileUseCase(stores.Products, stores.Stock, stores.Movements, stores.Orders).
		ReconcileProduct(ctx, f.actor.WarehouseID, f.product.ID)
	require.NoError(t, err)
	assert.True(t, report.Consistent, "%+v", report)
	assert.Equal(t, int64(10), report.StoredCurrent)
	assert.Equal(t, 3, report.Movements)
}

func TestPostgres_ConcurrenciaNoSobrevende(t *testing.T) {
	f := newPGFixture(t, 10)
	ctx := context.Background()

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.coord.CreateOutboundOrder(ctx, f.actor, inventory.CreateOrderInput{
				Items: []inventory.OrderItemInput{{ProductID: f.product.ID, Quantity: 1}},
			})
			if err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, ok)
	p, err := postgres.NewProductRepository(f.pool).GetByID(ctx, f.product.ID)
	require.NoError(t, err)
	assert.Zero(t, p.CurrentStock)
	assert.Equal(t, int64(10), p.ReservedStock)
}

func TestPostgres_LibroSoloInsercion(t *testing.T) {
	f := newPGFixture(t, 3)
	ctx := context.Background()

	_, err := f.pool.Exec(ctx, `UPDATE stock_movements SET quantity = 99 WHERE product_id = $1`, f.product.ID)
	assert.Error(t, err)
	_, err = f.pool.Exec(ctx, `DELETE FROM stock_movements WHERE product_id = $1`, f.product.ID)
	assert.Error(t, err)

	// forma inválida: IN sin destino
	err = postgres.NewStockMovementRepository(f.pool).Append(ctx, &entity.StockMovement{
		WarehouseID: f.actor.WarehouseID, ProductID: f.product.ID, Type: entity.MovementTypeIN, Quantity: 1,
		ReferenceType: entity.ReferenceAdjustment, ReferenceID: "x", CreatedBy: "tester",
	})
	assert.Error(t, err)

	p, err := postgres.NewProductRepository(f.pool).GetByID(ctx, "no-es-uuid")
	require.NoError(t, err)
	assert.Nil(t, p)

	err = postgres.NewProductRepository(f.pool).UpdateStock(ctx, f.product.ID, -1, 0)
	assert.ErrorIs(t, err, domain.ErrConflict)
}
