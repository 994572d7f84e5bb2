package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warely-stock/internal/application/dto"
	"github.com/jhoicas/warely-stock/internal/application/inventory"
	"github.com/jhoicas/warely-stock/internal/application/usecase"
	"github.com/jhoicas/warely-stock/internal/domain"
	"github.com/jhoicas/warely-stock/internal/domain/entity"
	"github.com/jhoicas/warely-stock/internal/domain/repository"
	"github.com/jhoicas/warely-stock/internal/infrastructure/memory"
)

const wh = "wh-1"

var actor = entity.Actor{WarehouseID: wh, UserID: "u-1", Role: entity.RoleAdmin}

type env struct {
	ctx       context.Context
	store     *memory.Store
	coord     *inventory.StockCoordinator
	locations *usecase.LocationUseCase
	products  *usecase.ProductUseCase
	orders    *usecase.OrderUseCase
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.NewStore()
	tx := memory.NewTxRunner(store)
	s := store.Stores()
	return &env{
		ctx:       context.Background(),
		store:     store,
		coord:     inventory.NewStockCoordinator(tx, nil, zerolog.Nop(), inventory.Options{}),
		locations: usecase.NewLocationUseCase(tx, s.Locations, s.Stock),
		products:  usecase.NewProductUseCase(tx, s.Products, s.Stock, s.Movements),
		orders:    usecase.NewOrderUseCase(s.Orders),
	}
}

func (e *env) product(t *testing.T, sku string) *entity.Product {
	t.Helper()
	p := &entity.Product{WarehouseID: wh, SKU: sku, Name: sku, IsActive: true}
	require.NoError(t, e.store.Stores().Products.Create(e.ctx, p))
	return p
}

func TestLocationUseCase_CreateNormalizaYReemplazaDefault(t *testing.T) {
	e := newEnv(t)

	first, err := e.locations.Create(e.ctx, wh, dto.CreateLocationRequest{Code: " def ", IsDefault: true})
	require.NoError(t, err)
	assert.Equal(t, "DEF", first.Code)
	assert.Equal(t, entity.LocationTypeStorage, first.Type)

	second, err := e.locations.Create(e.ctx, wh, dto.CreateLocationRequest{Code: "a-01", Type: entity.LocationTypeBin, IsDefault: true})
	require.NoError(t, err)

	got, err := e.locations.GetByID(e.ctx, wh, first.ID)
	require.NoError(t, err)
	assert.False(t, got.IsDefault)
	def, err := e.store.Stores().Locations.GetDefault(e.ctx, wh)
	require.NoError(t, err)
	assert.Equal(t, second.ID, def.ID)

	_, err = e.locations.Create(e.ctx, wh, dto.CreateLocationRequest{Code: "A-01"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	_, err = e.locations.Create(e.ctx, wh, dto.CreateLocationRequest{Code: "X", Type: "CAJON"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	neg := int64(-1)
	_, err = e.locations.Create(e.ctx, wh, dto.CreateLocationRequest{Code: "Y", Capacity: &neg})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := e.locations.List(e.ctx, wh, 10, 0)
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)

	_, err = e.locations.GetByID(e.ctx, "otra-bodega", first.ID)
	assert.ErrorIs(t, err, domain.ErrLocationNotFound)
}

func TestLocationUseCase_DeleteReglas(t *testing.T) {
	e := newEnv(t)
	def, err := e.locations.Create(e.ctx, wh, dto.CreateLocationRequest{Code: "DEF", IsDefault: true})
	require.NoError(t, err)
	bin, err := e.locations.Create(e.ctx, wh, dto.CreateLocationRequest{Code: "B-01", Type: entity.LocationTypeBin})
	require.NoError(t, err)
	p := e.product(t, "SKU-1")

	assert.ErrorIs(t, e.locations.Delete(e.ctx, wh, def.ID), domain.ErrConflict)

	_, err = e.coord.AdjustLocationStock(e.ctx, actor, inventory.AdjustInput{ProductID: p.ID, LocationID: bin.ID, Mode: inventory.AdjustModeIn, Quantity: 4})
	require.NoError(t, err)
	assert.ErrorIs(t, e.locations.Delete(e.ctx, wh, bin.ID), domain.ErrLocationNotEmpty)

	stock, err := e.locations.Stock(e.ctx, wh, bin.ID)
	require.NoError(t, err)
	require.Len(t, stock, 1)
	assert.Equal(t, int64(4), stock[0].Quantity)

	// vaciada pero con una orden de entrada abierta apuntando a ella
	_, err = e.coord.AdjustLocationStock(e.ctx, actor, inventory.AdjustInput{ProductID: p.ID, LocationID: bin.ID, Mode: inventory.AdjustModeAbsolute, Quantity: 0})
	require.NoError(t, err)
	res, err := e.coord.CreateInboundOrder(e.ctx, actor, inventory.CreateOrderInput{
		Items: []inventory.OrderItemInput{{ProductID: p.ID, Quantity: 2, LocationID: bin.ID}},
	})
	require.NoError(t, err)
	assert.ErrorIs(t, e.locations.Delete(e.ctx, wh, bin.ID), domain.ErrConflict)

	_, err = e.coord.TransitionOrderStatus(e.ctx, actor, res.Order.ID, entity.OrderStatusCancelled)
	require.NoError(t, err)
	require.NoError(t, e.locations.Delete(e.ctx, wh, bin.ID))
	assert.ErrorIs(t, e.locations.Delete(e.ctx, wh, bin.ID), domain.ErrLocationNotFound)
}

func TestProductUseCase_ConsultasYMovimientos(t *testing.T) {
	e := newEnv(t)
	_, err := e.locations.Create(e.ctx, wh, dto.CreateLocationRequest{Code: "DEF", IsDefault: true})
	require.NoError(t, err)
	p := e.product(t, "SKU-1")

	for _, q := range []int64{5, 3} {
		_, err = e.coord.AdjustLocationStock(e.ctx, actor, inventory.AdjustInput{ProductID: p.ID, Mode: inventory.AdjustModeIn, Quantity: q})
		require.NoError(t, err)
	}

	got, err := e.products.GetByID(e.ctx, wh, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(8), got.CurrentStock)

	locs, err := e.products.Locations(e.ctx, wh, p.ID)
	require.NoError(t, err)
	require.Len(t, locs, 1)
	assert.Equal(t, int64(8), locs[0].Quantity)

	movs, err := e.products.Movements(e.ctx, wh, p.ID, nil, nil, 10, 0)
	require.NoError(t, err)
	require.Len(t, movs.Items, 2)
	assert.Greater(t, movs.Items[0].Seq, movs.Items[1].Seq, "más reciente primero")
	assert.Equal(t, int64(3), movs.Items[0].Quantity)

	now := time.Now()
	earlier := now.Add(-time.Hour)
	_, err = e.products.Movements(e.ctx, wh, p.ID, &now, &earlier, 10, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.products.GetByID(e.ctx, "otra-bodega", p.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	list, err := e.products.List(e.ctx, wh, 10, 0)
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
}

func TestProductUseCase_DeleteDesactivaConHistorial(t *testing.T) {
	e := newEnv(t)
	_, err := e.locations.Create(e.ctx, wh, dto.CreateLocationRequest{Code: "DEF", IsDefault: true})
	require.NoError(t, err)

	fresh := e.product(t, "NUEVO")
	out, err := e.products.Delete(e.ctx, wh, fresh.ID)
	require.NoError(t, err)
	assert.False(t, out.Deactivated)
	_, err = e.products.GetByID(e.ctx, wh, fresh.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	used := e.product(t, "USADO")
	_, err = e.coord.AdjustLocationStock(e.ctx, actor, inventory.AdjustInput{ProductID: used.ID, Mode: inventory.AdjustModeIn, Quantity: 2})
	require.NoError(t, err)

	_, err = e.products.Delete(e.ctx, wh, used.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "con unidades disponibles no se da de baja")

	_, err = e.coord.AdjustLocationStock(e.ctx, actor, inventory.AdjustInput{ProductID: used.ID, Mode: inventory.AdjustModeOut, Quantity: 2})
	require.NoError(t, err)
	out, err = e.products.Delete(e.ctx, wh, used.ID)
	require.NoError(t, err)
	assert.True(t, out.Deactivated)

	got, err := e.products.GetByID(e.ctx, wh, used.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestOrderUseCase_GetYList(t *testing.T) {
	e := newEnv(t)
	_, err := e.locations.Create(e.ctx, wh, dto.CreateLocationRequest{Code: "DEF", IsDefault: true})
	require.NoError(t, err)
	p := e.product(t, "SKU-1")
	_, err = e.coord.AdjustLocationStock(e.ctx, actor, inventory.AdjustInput{ProductID: p.ID, Mode: inventory.AdjustModeIn, Quantity: 10})
	require.NoError(t, err)

	out, err := e.coord.CreateOutboundOrder(e.ctx, actor, inventory.CreateOrderInput{
		Items: []inventory.OrderItemInput{{ProductID: p.ID, Quantity: 2, UnitPrice: decimal.RequireFromString("3.25")}},
	})
	require.NoError(t, err)
	_, err = e.coord.CreateInboundOrder(e.ctx, actor, inventory.CreateOrderInput{
		SupplierID: "prov-1",
		Items:      []inventory.OrderItemInput{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	got, err := e.orders.GetByID(e.ctx, wh, out.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, got.Status)
	assert.True(t, decimal.RequireFromString("6.5").Equal(got.Total))
	require.Len(t, got.Items, 1)
	assert.NotEmpty(t, got.Items[0].LocationID)

	outbound, err := e.orders.List(e.ctx, wh, repository.OrderFilter{Type: entity.OrderTypeOutbound, Limit: 10})
	require.NoError(t, err)
	require.Len(t, outbound.Items, 1)
	assert.Equal(t, out.Order.ID, outbound.Items[0].ID)

	all, err := e.orders.List(e.ctx, wh, repository.OrderFilter{Status: entity.OrderStatusPending})
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)

	_, err = e.orders.List(e.ctx, wh, repository.OrderFilter{Status: "SHIPPED"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = e.orders.GetByID(e.ctx, "otra-bodega", out.Order.ID)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)

	mut := usecase.ToOrderMutationResponse(out)
	assert.Len(t, mut.MovementIDs, 1)
	require.Len(t, mut.Products, 1)
	assert.Equal(t, int64(8), mut.Products[0].CurrentStock)
}
