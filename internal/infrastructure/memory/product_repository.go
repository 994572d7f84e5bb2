package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/warely-stock/internal/domain"
	"github.com/jhoicas/warely-stock/internal/domain/entity"
	"github.com/jhoicas/warely-stock/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	store *Store
	inTx  bool
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.store.view(r.inTx, func(st *state) error {
		for _, other := range st.products {
			if other.WarehouseID == p.WarehouseID && other.SKU == p.SKU {
				return fmt.Errorf("%w: sku %s", domain.ErrDuplicate, p.SKU)
			}
		}
		if p.CurrentStock < 0 || p.ReservedStock < 0 {
			return fmt.Errorf("%w: contadores negativos", domain.ErrInvalidInput)
		}
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		now := time.Now()
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		p.UpdatedAt = now
		st.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.store.view(r.inTx, func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

// GetForUpdate en memoria equivale a GetByID: el candado global ya serializa la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) UpdateStock(_ context.Context, id string, currentStock, reservedStock int64) error {
	return r.store.view(r.inTx, func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
		}
		if currentStock < 0 || reservedStock < 0 {
			return fmt.Errorf("products_stock_check: current=%d reserved=%d", currentStock, reservedStock)
		}
		p.CurrentStock, p.ReservedStock, p.UpdatedAt = currentStock, reservedStock, time.Now()
		st.products[id] = p
		return nil
	})
}

func (r *ProductRepo) ListByWarehouse(_ context.Context, warehouseID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.store.view(r.inTx, func(st *state) error {
		all := make([]*entity.Product, 0)
		for _, p := range st.products {
			if p.WarehouseID == warehouseID {
				p := p
				all = append(all, &p)
			}
		}
		sort.Slice(all, func(i, j int) bool { return all[i].SKU < all[j].SKU })
		out = paginate(all, limit, offset)
		return nil
	})
	return out, err
}

func (r *ProductRepo) Deactivate(_ context.Context, id string) error {
	return r.store.view(r.inTx, func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
		}
		p.IsActive, p.UpdatedAt = false, time.Now()
		st.products[id] = p
		return nil
	})
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	return r.store.view(r.inTx, func(st *state) error {
		if _, ok := st.products[id]; !ok {
			return fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
		}
		delete(st.products, id)
		for k := range st.cells {
			if k.productID == id {
				delete(st.cells, k)
			}
		}
		return nil
	})
}
