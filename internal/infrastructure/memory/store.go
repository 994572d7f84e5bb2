// Package memory implementa los repositorios y el TxRunner en memoria (DB_DRIVER=memory).
// Una transacción toma el candado global y trabaja sobre el estado vivo; si fn falla se
// restaura la copia tomada al inicio, lo que da la misma atomicidad que un Rollback.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/warely-stock/internal/application/inventory"
	"github.com/jhoicas/warely-stock/internal/domain/entity"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

type cellKey struct {
	productID  string
	locationID string
}

type state struct {
	products   map[string]entity.Product
	locations  map[string]entity.Location
	cells      map[cellKey]entity.ProductLocation
	movements  []entity.StockMovement
	orders     map[string]entity.Order
	orderIDs   []string // orden de inserción
	movementSq int64
}

func newState() *state {
	return &state{
		products:  make(map[string]entity.Product),
		locations: make(map[string]entity.Location),
		cells:     make(map[cellKey]entity.ProductLocation),
		orders:    make(map[string]entity.Order),
	}
}

// clone copia el estado; los movimientos no se copian porque solo se agregan al final.
func (s *state) clone() *state {
	c := &state{
		products:   make(map[string]entity.Product, len(s.products)),
		locations:  make(map[string]entity.Location, len(s.locations)),
		cells:      make(map[cellKey]entity.ProductLocation, len(s.cells)),
		movements:  s.movements[:len(s.movements):len(s.movements)],
		orders:     make(map[string]entity.Order, len(s.orders)),
		orderIDs:   append([]string(nil), s.orderIDs...),
		movementSq: s.movementSq,
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.locations {
		c.locations[k] = v
	}
	for k, v := range s.cells {
		c.cells[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = copyOrder(v)
	}
	return c
}

// Store contiene todo el estado en memoria protegido por un único candado.
type Store struct {
	mu   sync.Mutex
	data *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{data: newState()}
}

// view ejecuta fn con el estado; si inTx el candado ya lo tiene el TxRunner.
func (s *Store) view(inTx bool, fn func(st *state) error) error {
	if !inTx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn(s.data)
}

// Stores devuelve los repositorios fuera de transacción (lecturas y seed).
func (s *Store) Stores() inventory.Stores {
	return s.stores(false)
}

func (s *Store) stores(inTx bool) inventory.Stores {
	return inventory.Stores{
		Products:  &ProductRepo{store: s, inTx: inTx},
		Locations: &LocationRepo{store: s, inTx: inTx},
		Stock:     &ProductLocationRepo{store: s, inTx: inTx},
		Movements: &StockMovementRepo{store: s, inTx: inTx},
		Orders:    &OrderRepo{store: s, inTx: inTx},
	}
}

// TxRunner serializa las transacciones con el candado del Store.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el almacén.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con repositorios atados a la "transacción"; si fn devuelve error restaura el estado.
func (r *TxRunner) Run(ctx context.Context, fn func(s inventory.Stores) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snapshot := r.store.data.clone()
	if err := fn(r.store.stores(true)); err != nil {
		r.store.data = snapshot
		return err
	}
	return nil
}

func copyOrder(o entity.Order) entity.Order {
	o.Items = append([]entity.OrderItem(nil), o.Items...)
	return o
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
