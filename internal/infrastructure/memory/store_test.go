package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warely-stock/internal/application/inventory"
	"github.com/jhoicas/warely-stock/internal/domain"
	"github.com/jhoicas/warely-stock/internal/domain/entity"
	"github.com/jhoicas/warely-stock/internal/infrastructure/memory"
)

func seed(t *testing.T, store *memory.Store) (*entity.Product, *entity.Location) {
	t.Helper()
	ctx := context.Background()
	loc := &entity.Location{WarehouseID: "wh-1", Code: "A-01", Type: entity.LocationTypeShelf, IsDefault: true}
	require.NoError(t, store.Stores().Locations.Create(ctx, loc))
	p := &entity.Product{WarehouseID: "wh-1", SKU: "SKU-1", Name: "Tornillo", IsActive: true}
	require.NoError(t, store.Stores().Products.Create(ctx, p))
	return p, loc
}

func TestTxRunner_RollbackRestauraTodo(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	p, loc := seed(t, store)
	boom := errors.New("boom")

	err := memory.NewTxRunner(store).Run(ctx, func(s inventory.Stores) error {
		require.NoError(t, s.Products.UpdateStock(ctx, p.ID, 9, 1))
		require.NoError(t, s.Stock.Upsert(ctx, &entity.ProductLocation{ProductID: p.ID, LocationID: loc.ID, Quantity: 9}))
		require.NoError(t, s.Movements.Append(ctx, &entity.StockMovement{
			WarehouseID: "wh-1", ProductID: p.ID, Type: entity.MovementTypeIN, Quantity: 9,
			ToLocationID: &loc.ID, CreatedBy: "u-1",
		}))
		require.NoError(t, s.Orders.Create(ctx, &entity.Order{ID: "o-1", WarehouseID: "wh-1", Type: entity.OrderTypeInbound, Status: entity.OrderStatusPending}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := store.Stores().Products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Zero(t, got.CurrentStock)
	assert.Zero(t, got.ReservedStock)

	pl, err := store.Stores().Stock.Get(ctx, p.ID, loc.ID)
	require.NoError(t, err)
	assert.Zero(t, pl.Quantity)

	n, err := store.Stores().Movements.CountByProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	o, err := store.Stores().Orders.GetByID(ctx, "o-1")
	require.NoError(t, err)
	assert.Nil(t, o)
}

func TestMovements_SecuenciaMonotonica(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	p, loc := seed(t, store)

	for i := 0; i < 3; i++ {
		m := &entity.StockMovement{WarehouseID: "wh-1", ProductID: p.ID, Type: entity.MovementTypeIN, Quantity: 1, ToLocationID: &loc.ID, CreatedBy: "u-1"}
		require.NoError(t, store.Stores().Movements.Append(ctx, m))
		assert.Equal(t, int64(i+1), m.Seq)
	}

	desc, err := store.Stores().Movements.ListByProduct(ctx, p.ID, nil, nil, 2, 0)
	require.NoError(t, err)
	require.Len(t, desc, 2)
	assert.Equal(t, int64(3), desc[0].Seq)

	byLoc, err := store.Stores().Movements.ListByLocation(ctx, loc.ID, 0, 0)
	require.NoError(t, err)
	assert.Len(t, byLoc, 3)
}

func TestRepos_Restricciones(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	p, loc := seed(t, store)

	dup := &entity.Product{WarehouseID: "wh-1", SKU: "SKU-1"}
	assert.ErrorIs(t, store.Stores().Products.Create(ctx, dup), domain.ErrDuplicate)

	assert.Error(t, store.Stores().Products.UpdateStock(ctx, p.ID, -1, 0))
	assert.Error(t, store.Stores().Stock.Upsert(ctx, &entity.ProductLocation{ProductID: p.ID, LocationID: loc.ID, Quantity: -1}))

	// una nueva ubicación por defecto desmarca la anterior
	other := &entity.Location{WarehouseID: "wh-1", Code: "B-01", Type: entity.LocationTypeBin, IsDefault: true}
	require.NoError(t, store.Stores().Locations.Create(ctx, other))
	def, err := store.Stores().Locations.GetDefault(ctx, "wh-1")
	require.NoError(t, err)
	assert.Equal(t, other.ID, def.ID)
}
