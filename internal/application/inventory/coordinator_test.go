package inventory_test

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warely-stock/internal/application/inventory"
	"github.com/jhoicas/warely-stock/internal/domain"
	"github.com/jhoicas/warely-stock/internal/domain/entity"
	"github.com/jhoicas/warely-stock/internal/domain/repository"
	"github.com/jhoicas/warely-stock/internal/infrastructure/memory"
)

const warehouse = "wh-1"

var actor = entity.Actor{WarehouseID: warehouse, UserID: "u-1", Role: entity.RoleManager}

type spyPublisher struct {
	mu     sync.Mutex
	events []entity.StockEvent
}

func (p *spyPublisher) Publish(_ context.Context, events []entity.StockEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *spyPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

type fixture struct {
	t      *testing.T
	ctx    context.Context
	store  *memory.Store
	coord  *inventory.StockCoordinator
	events *spyPublisher
	def    *entity.Location
}

func newFixture(t *testing.T, opts inventory.Options) *fixture {
	t.Helper()
	store := memory.NewStore()
	events := &spyPublisher{}
	f := &fixture{
		t:      t,
		ctx:    context.Background(),
		store:  store,
		coord:  inventory.NewStockCoordinator(memory.NewTxRunner(store), events, zerolog.Nop(), opts),
		events: events,
	}
	f.def = f.location("DEF", true, nil)
	return f
}

func (f *fixture) location(code string, isDefault bool, capacity *int64) *entity.Location {
	f.t.Helper()
	l := &entity.Location{WarehouseID: warehouse, Code: code, Name: code, Type: entity.LocationTypeBin, IsDefault: isDefault, Capacity: capacity}
	require.NoError(f.t, f.store.Stores().Locations.Create(f.ctx, l))
	return l
}

// product crea un producto y le da stock inicial en la ubicación por defecto mediante un ajuste.
func (f *fixture) product(sku string, stock int64) *entity.Product {
	f.t.Helper()
	p := &entity.Product{WarehouseID: warehouse, SKU: sku, Name: sku, ReorderPoint: 5, IsActive: true}
	require.NoError(f.t, f.store.Stores().Products.Create(f.ctx, p))
	if stock > 0 {
		_, err := f.coord.AdjustLocationStock(f.ctx, actor, inventory.AdjustInput{
			ProductID: p.ID, LocationID: f.def.ID, Mode: inventory.AdjustModeAbsolute, Quantity: stock,
		})
		require.NoError(f.t, err)
	}
	return p
}

func (f *fixture) counters(productID string) (current, reserved int64) {
	f.t.Helper()
	p, err := f.store.Stores().Products.GetByID(f.ctx, productID)
	require.NoError(f.t, err)
	require.NotNil(f.t, p)
	return p.CurrentStock, p.ReservedStock
}

func (f *fixture) qty(productID, locationID string) int64 {
	f.t.Helper()
	pl, err := f.store.Stores().Stock.Get(f.ctx, productID, locationID)
	require.NoError(f.t, err)
	return pl.Quantity
}

func (f *fixture) movements(productID string) []*entity.StockMovement {
	f.t.Helper()
	ms, err := f.store.Stores().Movements.AllByProduct(f.ctx, productID)
	require.NoError(f.t, err)
	return ms
}

func (f *fixture) assertLedgerConsistent(productID string) {
	f.t.Helper()
	uc := inventory.NewReconcileUseCase(f.store.Stores().Products, f.store.Stores().Stock, f.store.Stores().Movements, f.store.Stores().Orders)
	report, err := uc.ReconcileProduct(f.ctx, warehouse, productID)
	require.NoError(f.t, err)
	assert.True(f.t, report.Consistent, "%+v", report)
}

func item(productID string, qty int64) inventory.OrderItemInput {
	return inventory.OrderItemInput{ProductID: productID, Quantity: qty, UnitPrice: decimal.NewFromInt(1000)}
}

func TestOutboundOrder_ReservaYCompleta(t *testing.T) {
	f := newFixture(t, inventory.Options{})
	p := f.product("SKU-1", 10)

	res, err := f.coord.CreateOutboundOrder(f.ctx, actor, inventory.CreateOrderInput{Items: []inventory.OrderItemInput{item(p.ID, 3)}})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, res.Order.Status)
	assert.Equal(t, f.def.ID, res.Order.Items[0].LocationID)
	require.Len(t, res.MovementIDs, 1)
	require.Len(t, res.Products, 1)
	assert.Equal(t, int64(7), res.Products[0].CurrentStock)
	assert.Equal(t, int64(3), res.Products[0].ReservedStock)

	cur, resv := f.counters(p.ID)
	assert.Equal(t, int64(7), cur)
	assert.Equal(t, int64(3), resv)
	assert.Equal(t, int64(7), f.qty(p.ID, f.def.ID))

	ms, err := f.store.Stores().Movements.ListByReference(f.ctx, entity.ReferenceOrder, res.Order.ID)
	require.NoError(t, err)
	require.Len(t, ms, 1)
	assert.Equal(t, entity.MovementTypeOUT, ms[0].Type)
	assert.Equal(t, int64(3), ms[0].Quantity)

	_, err = f.coord.TransitionOrderStatus(f.ctx, actor, res.Order.ID, entity.OrderStatusProcessing)
	require.NoError(t, err)
	cur, resv = f.counters(p.ID)
	assert.Equal(t, int64(7), cur)
	assert.Equal(t, int64(3), resv)

	done, err := f.coord.TransitionOrderStatus(f.ctx, actor, res.Order.ID, entity.OrderStatusCompleted)
	require.NoError(t, err)
	assert.NotNil(t, done.Order.CompletedDate)
	assert.Empty(t, done.MovementIDs)
	cur, resv = f.counters(p.ID)
	assert.Equal(t, int64(7), cur)
	assert.Equal(t, int64(0), resv)

	// repetir la transición no vuelve a liberar
	_, err = f.coord.TransitionOrderStatus(f.ctx, actor, res.Order.ID, entity.OrderStatusCompleted)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	cur, resv = f.counters(p.ID)
	assert.Equal(t, int64(7), cur)
	assert.Equal(t, int64(0), resv)

	f.assertLedgerConsistent(p.ID)
}

func TestOutboundOrder_CancelacionRestaura(t *testing.T) {
	f := newFixture(t, inventory.Options{})
	p := f.product("SKU-1", 10)

	res, err := f.coord.CreateOutboundOrder(f.ctx, actor, inventory.CreateOrderInput{Items: []inventory.OrderItemInput{item(p.ID, 4)}})
	require.NoError(t, err)

	cancelled, err := f.coord.TransitionOrderStatus(f.ctx, actor, res.Order.ID, entity.OrderStatusCancelled)
	require.NoError(t, err)
	assert.NotNil(t, cancelled.Order.CancelledDate)
	require.Len(t, cancelled.MovementIDs, 1)

	cur, resv := f.counters(p.ID)
	assert.Equal(t, int64(10), cur)
	assert.Equal(t, int64(0), resv)
	assert.Equal(t, int64(10), f.qty(p.ID, f.def.ID))

	ms, err := f.store.Stores().Movements.ListByReference(f.ctx, entity.ReferenceOrderCancellation, res.Order.ID)
	require.NoError(t, err)
	require.Len(t, ms, 1)
	assert.Equal(t, entity.MovementTypeIN, ms[0].Type)
	require.NotNil(t, ms[0].ToLocationID)
	assert.Equal(t, f.def.ID, *ms[0].ToLocationID)

	_, err = f.coord.TransitionOrderStatus(f.ctx, actor, res.Order.ID, entity.OrderStatusCancelled)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	cur, _ = f.counters(p.ID)
	assert.Equal(t, int64(10), cur)

	f.assertLedgerConsistent(p.ID)
}

func TestInboundOrder_RecibeAlCompletar(t *testing.T) {
	f := newFixture(t, inventory.Options{})
	p := f.product("SKU-1", 0)
	dock := f.location("DOCK", false, nil)

	in := inventory.OrderItemInput{ProductID: p.ID, Quantity: 5, UnitPrice: decimal.NewFromInt(200), LocationID: dock.ID}
	res, err := f.coord.CreateInboundOrder(f.ctx, actor, inventory.CreateOrderInput{SupplierID: "sup-1", Items: []inventory.OrderItemInput{in}})
	require.NoError(t, err)
	assert.Empty(t, res.MovementIDs)
	assert.True(t, decimal.NewFromInt(1000).Equal(res.Order.Total()))

	cur, resv := f.counters(p.ID)
	assert.Zero(t, cur)
	assert.Zero(t, resv)

	_, err = f.coord.TransitionOrderStatus(f.ctx, actor, res.Order.ID, entity.OrderStatusCompleted)
	require.NoError(t, err)
	cur, resv = f.counters(p.ID)
	assert.Equal(t, int64(5), cur)
	assert.Zero(t, resv)
	assert.Equal(t, int64(5), f.qty(p.ID, dock.ID))

	ms := f.movements(p.ID)
	require.Len(t, ms, 1)
	assert.Equal(t, entity.MovementTypeIN, ms[0].Type)
	assert.Equal(t, entity.ReferenceOrder, ms[0].ReferenceType)

	f.assertLedgerConsistent(p.ID)
}

func TestInboundOrder_CanceladaSinEfecto(t *testing.T) {
	f := newFixture(t, inventory.Options{})
	p := f.product("SKU-1", 2)

	res, err := f.coord.CreateInboundOrder(f.ctx, actor, inventory.CreateOrderInput{Items: []inventory.OrderItemInput{item(p.ID, 5)}})
	require.NoError(t, err)
	_, err = f.coord.TransitionOrderStatus(f.ctx, actor, res.Order.ID, entity.OrderStatusCancelled)
	require.NoError(t, err)

	cur, resv := f.counters(p.ID)
	assert.Equal(t, int64(2), cur)
	assert.Zero(t, resv)
	assert.Len(t, f.movements(p.ID), 1) // solo el ajuste inicial
}

func TestOutboundOrder_StockInsuficienteNoDejaRastro(t *testing.T) {
	f := newFixture(t, inventory.Options{})
	p := f.product("SKU-1", 10)

	_, err := f.coord.CreateOutboundOrder(f.ctx, actor, inventory.CreateOrderInput{Items: []inventory.OrderItemInput{item(p.ID, 15)}})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	cur, resv := f.counters(p.ID)
	assert.Equal(t, int64(10), cur)
	assert.Zero(t, resv)
	assert.Len(t, f.movements(p.ID), 1)

	orders, err := f.store.Stores().Orders.ListByWarehouse(f.ctx, warehouse, repository.OrderFilter{})
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOutboundOrder_TodoONada(t *testing.T) {
	f := newFixture(t, inventory.Options{})
	a := f.product("SKU-A", 10)
	b := f.product("SKU-B", 1)

	_, err := f.coord.CreateOutboundOrder(f.ctx, actor, inventory.CreateOrderInput{
		Items: []inventory.OrderItemInput{item(a.ID, 4), item(b.ID, 2)},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	cur, resv := f.counters(a.ID)
	assert.Equal(t, int64(10), cur)
	assert.Zero(t, resv)
	assert.Equal(t, int64(10), f.qty(a.ID, f.def.ID))
	assert.Len(t, f.movements(a.ID), 1)
}

func TestOutboundOrder_StockEnOtraUbicacion(t *testing.T) {
	f := newFixture(t, inventory.Options{})
	p := f.product("SKU-1", 10)
	shelf := f.location("SHELF-1", false, nil)

	in := item(p.ID, 3)
	in.LocationID = shelf.ID
	_, err := f.coord.CreateOutboundOrder(f.ctx, actor, inventory.CreateOrderInput{Items: []inventory.OrderItemInput{in}})
	require.ErrorIs(t, err, domain.ErrInsufficientLocationStock)

	cur, resv := f.counters(p.ID)
	assert.Equal(t, int64(10), cur)
	assert.Zero(t, resv)
}

func TestCreateOrder_Validaciones(t *testing.T) {
	f := newFixture(t, inventory.Options{})
	p := f.product("SKU-1", 10)

	_, err := f.coord.CreateOutboundOrder(f.ctx, actor, inventory.CreateOrderInput{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.coord.CreateOutboundOrder(f.ctx, actor, inventory.CreateOrderInput{Items: []inventory.OrderItemInput{item(p.ID, 0)}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	neg := item(p.ID, 1)
	neg.UnitPrice = decimal.NewFromInt(-1)
	_, err = f.coord.CreateOutboundOrder(f.ctx, actor, inventory.CreateOrderInput{Items: []inventory.OrderItemInput{neg}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.coord.CreateOutboundOrder(f.ctx, actor, inventory.CreateOrderInput{Items: []inventory.OrderItemInput{item("no-existe", 1)}})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	bad := item(p.ID, 1)
	bad.LocationID = "no-existe"
	_, err = f.coord.CreateOutboundOrder(f.ctx, actor, inventory.CreateOrderInput{Items: []inventory.OrderItemInput{bad}})
	assert.ErrorIs(t, err, domain.ErrLocationNotFound)

	other := entity.Actor{WarehouseID: "wh-2", UserID: "u-2", Role: entity.RoleAdmin}
	_, err = f.coord.CreateInboundOrder(f.ctx, other, inventory.CreateOrderInput{Items: []inventory.OrderItemInput{item(p.ID, 1)}})
	assert.ErrorIs(t, err, domain.ErrLocationNotFound) // wh-2 no tiene ubicación por defecto

	_, err = f.coord.TransitionOrderStatus(f.ctx, actor, "no-existe", entity.OrderStatusCompleted)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestTransferBetweenLocations(t *testing.T) {
	f := newFixture(t, inventory.Options{})
	p := f.product("SKU-1", 20)
	b := f.location("B", false, nil)

	res, err := f.coord.TransferBetweenLocations(f.ctx, actor, inventory.TransferInput{
		ProductID: p.ID, FromLocationID: f.def.ID, ToLocationID: b.ID, Quantity: 8,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12), res.FromQuantity)
	assert.Equal(t, int64(8), res.ToQuantity)

	cur, _ := f.counters(p.ID)
	assert.Equal(t, int64(20), cur)
	ms, err := f.store.Stores().Movements.ListByReference(f.ctx, entity.ReferenceTransfer, res.TransferID)
	require.NoError(t, err)
	require.Len(t, ms, 1)
	assert.Equal(t, entity.MovementTypeTRANSFER, ms[0].Type)

	_, err = f.coord.TransferBetweenLocations(f.ctx, actor, inventory.TransferInput{
		ProductID: p.ID, FromLocationID: f.def.ID, ToLocationID: b.ID, Quantity: 13,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientLocationStock)
	assert.Equal(t, int64(12), f.qty(p.ID, f.def.ID))
	assert.Equal(t, int64(8), f.qty(p.ID, b.ID))

	_, err = f.coord.TransferBetweenLocations(f.ctx, actor, inventory.TransferInput{
		ProductID: p.ID, FromLocationID: b.ID, ToLocationID: b.ID, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.coord.TransferBetweenLocations(f.ctx, actor, inventory.TransferInput{
		ProductID: p.ID, FromLocationID: b.ID, ToLocationID: "no-existe", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrLocationNotFound)

	f.assertLedgerConsistent(p.ID)
}

func TestAdjustLocationStock_Modos(t *testing.T) {
	f := newFixture(t, inventory.Options{})
	p := f.product("SKU-1", 10)

	res, err := f.coord.AdjustLocationStock(f.ctx, actor, inventory.AdjustInput{ProductID: p.ID, Mode: inventory.AdjustModeAbsolute, Quantity: 6})
	require.NoError(t, err)
	assert.Equal(t, int64(6), res.LocationQuantity)
	assert.Equal(t, int64(6), res.Product.CurrentStock)
	m, err := f.store.Stores().Movements.GetByID(f.ctx, res.MovementID)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, entity.MovementTypeADJUSTMENT, m.Type)
	assert.Equal(t, int64(4), m.Quantity)
	assert.NotNil(t, m.FromLocationID)

	res, err = f.coord.AdjustLocationStock(f.ctx, actor, inventory.AdjustInput{ProductID: p.ID, Mode: inventory.AdjustModeAbsolute, Quantity: 6})
	require.NoError(t, err)
	assert.Empty(t, res.MovementID)

	res, err = f.coord.AdjustLocationStock(f.ctx, actor, inventory.AdjustInput{ProductID: p.ID, Mode: inventory.AdjustModeIn, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(9), res.Product.CurrentStock)

	_, err = f.coord.AdjustLocationStock(f.ctx, actor, inventory.AdjustInput{ProductID: p.ID, Mode: inventory.AdjustModeOut, Quantity: 10})
	require.ErrorIs(t, err, domain.ErrInsufficientLocationStock)

	_, err = f.coord.AdjustLocationStock(f.ctx, actor, inventory.AdjustInput{ProductID: p.ID, Mode: "LOSS", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	cur, _ := f.counters(p.ID)
	assert.Equal(t, int64(9), cur)
	f.assertLedgerConsistent(p.ID)
}

func TestCapacity_SeAplicaSoloSiEstaActiva(t *testing.T) {
	capacity := int64(5)

	f := newFixture(t, inventory.Options{EnforceCapacity: true})
	p := f.product("SKU-1", 0)
	small := f.location("SMALL", false, &capacity)
	_, err := f.coord.AdjustLocationStock(f.ctx, actor, inventory.AdjustInput{ProductID: p.ID, LocationID: small.ID, Mode: inventory.AdjustModeIn, Quantity: 6})
	require.ErrorIs(t, err, domain.ErrCapacityExceeded)
	_, err = f.coord.AdjustLocationStock(f.ctx, actor, inventory.AdjustInput{ProductID: p.ID, LocationID: small.ID, Mode: inventory.AdjustModeIn, Quantity: 5})
	require.NoError(t, err)

	g := newFixture(t, inventory.Options{})
	q := g.product("SKU-1", 0)
	free := g.location("SMALL", false, &capacity)
	_, err = g.coord.AdjustLocationStock(g.ctx, actor, inventory.AdjustInput{ProductID: q.ID, LocationID: free.ID, Mode: inventory.AdjustModeIn, Quantity: 6})
	assert.NoError(t, err)
}

func TestCapacity_CancelarDevuelveAunqueLaUbicacionEsteLlena(t *testing.T) {
	capacity := int64(10)
	f := newFixture(t, inventory.Options{EnforceCapacity: true})
	p := f.product("SKU-P", 0)
	q := f.product("SKU-Q", 0)
	small := f.location("SMALL", false, &capacity)

	_, err := f.coord.AdjustLocationStock(f.ctx, actor, inventory.AdjustInput{ProductID: p.ID, LocationID: small.ID, Mode: inventory.AdjustModeIn, Quantity: 10})
	require.NoError(t, err)

	in := item(p.ID, 4)
	in.LocationID = small.ID
	res, err := f.coord.CreateOutboundOrder(f.ctx, actor, inventory.CreateOrderInput{Items: []inventory.OrderItemInput{in}})
	require.NoError(t, err)

	// el espacio liberado por la reserva lo ocupa otro producto
	_, err = f.coord.AdjustLocationStock(f.ctx, actor, inventory.AdjustInput{ProductID: q.ID, LocationID: small.ID, Mode: inventory.AdjustModeIn, Quantity: 4})
	require.NoError(t, err)

	cancelled, err := f.coord.TransitionOrderStatus(f.ctx, actor, res.Order.ID, entity.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, cancelled.Order.Status)

	assert.Equal(t, int64(10), f.qty(p.ID, small.ID))
	cur, resv := f.counters(p.ID)
	assert.Equal(t, int64(10), cur)
	assert.Zero(t, resv)
	f.assertLedgerConsistent(p.ID)

	// un ingreso nuevo sí respeta la capacidad
	_, err = f.coord.AdjustLocationStock(f.ctx, actor, inventory.AdjustInput{ProductID: q.ID, LocationID: small.ID, Mode: inventory.AdjustModeIn, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
}

func TestCantidadesFueraDeRango_SonEntradaInvalida(t *testing.T) {
	f := newFixture(t, inventory.Options{})
	p := f.product("SKU-1", 5)
	other := f.location("B-01", false, nil)

	for _, mode := range []string{inventory.AdjustModeIn, inventory.AdjustModeOut, inventory.AdjustModeAbsolute} {
		_, err := f.coord.AdjustLocationStock(f.ctx, actor, inventory.AdjustInput{ProductID: p.ID, LocationID: f.def.ID, Mode: mode, Quantity: math.MaxInt64})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, mode)
	}

	_, err := f.coord.TransferBetweenLocations(f.ctx, actor, inventory.TransferInput{ProductID: p.ID, FromLocationID: f.def.ID, ToLocationID: other.ID, Quantity: math.MaxInt64})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.coord.CreateInboundOrder(f.ctx, actor, inventory.CreateOrderInput{Items: []inventory.OrderItemInput{item(p.ID, inventory.MaxQuantity+1)}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.coord.AdjustLocationStock(f.ctx, actor, inventory.AdjustInput{ProductID: p.ID, LocationID: f.def.ID, Mode: inventory.AdjustModeIn, Quantity: inventory.MaxQuantity})
	require.NoError(t, err)
	assert.Equal(t, int64(inventory.MaxQuantity+5), f.qty(p.ID, f.def.ID))
	f.assertLedgerConsistent(p.ID)
}

func TestConcurrentOutboundOrders_NuncaSobrevende(t *testing.T) {
	f := newFixture(t, inventory.Options{})
	p := f.product("SKU-1", 10)

	const workers = 25
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.coord.CreateOutboundOrder(f.ctx, actor, inventory.CreateOrderInput{Items: []inventory.OrderItemInput{item(p.ID, 1)}})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
			} else if assert.ErrorIs(t, err, domain.ErrInsufficientStock) {
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, succeeded)
	assert.Equal(t, workers-10, rejected)
	cur, resv := f.counters(p.ID)
	assert.Zero(t, cur)
	assert.Equal(t, int64(10), resv)
	f.assertLedgerConsistent(p.ID)
}

func TestEvents_SoloTrasCommit(t *testing.T) {
	f := newFixture(t, inventory.Options{})
	p := f.product("SKU-1", 3)
	before := len(f.events.types())

	_, err := f.coord.CreateOutboundOrder(f.ctx, actor, inventory.CreateOrderInput{Items: []inventory.OrderItemInput{item(p.ID, 5)}})
	require.Error(t, err)
	assert.Len(t, f.events.types(), before)

	_, err = f.coord.CreateOutboundOrder(f.ctx, actor, inventory.CreateOrderInput{Items: []inventory.OrderItemInput{item(p.ID, 2)}})
	require.NoError(t, err)
	assert.Equal(t, []string{entity.EventStockReserved, entity.EventOrderStatusChanged}, f.events.types()[before:])
}
