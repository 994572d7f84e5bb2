package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/warely-stock/internal/domain/entity"
	"github.com/jhoicas/warely-stock/internal/domain/repository"
)

var _ repository.ProductLocationRepository = (*ProductLocationRepo)(nil)

// ProductLocationRepo implementación en memoria de ProductLocationRepository.
type ProductLocationRepo struct {
	store *Store
	inTx  bool
}

func (r *ProductLocationRepo) Get(_ context.Context, productID, locationID string) (*entity.ProductLocation, error) {
	out := &entity.ProductLocation{ProductID: productID, LocationID: locationID}
	err := r.store.view(r.inTx, func(st *state) error {
		if pl, ok := st.cells[cellKey{productID, locationID}]; ok {
			*out = pl
		}
		return nil
	})
	return out, err
}

func (r *ProductLocationRepo) GetForUpdate(ctx context.Context, productID, locationID string) (*entity.ProductLocation, error) {
	return r.Get(ctx, productID, locationID)
}

func (r *ProductLocationRepo) Upsert(_ context.Context, pl *entity.ProductLocation) error {
	return r.store.view(r.inTx, func(st *state) error {
		if pl.Quantity < 0 {
			return fmt.Errorf("product_locations_quantity_check: %d", pl.Quantity)
		}
		if _, ok := st.products[pl.ProductID]; !ok {
			return fmt.Errorf("product_locations_product_id_fkey: %s", pl.ProductID)
		}
		if _, ok := st.locations[pl.LocationID]; !ok {
			return fmt.Errorf("product_locations_location_id_fkey: %s", pl.LocationID)
		}
		row := *pl
		row.UpdatedAt = time.Now()
		st.cells[cellKey{pl.ProductID, pl.LocationID}] = row
		return nil
	})
}

func (r *ProductLocationRepo) ListByProduct(_ context.Context, productID string) ([]*entity.ProductLocation, error) {
	return r.list(func(k cellKey) bool { return k.productID == productID }, func(pl *entity.ProductLocation) string { return pl.LocationID })
}

func (r *ProductLocationRepo) ListByLocation(_ context.Context, locationID string) ([]*entity.ProductLocation, error) {
	return r.list(func(k cellKey) bool { return k.locationID == locationID }, func(pl *entity.ProductLocation) string { return pl.ProductID })
}

func (r *ProductLocationRepo) list(match func(cellKey) bool, sortKey func(*entity.ProductLocation) string) ([]*entity.ProductLocation, error) {
	out := make([]*entity.ProductLocation, 0)
	err := r.store.view(r.inTx, func(st *state) error {
		for k, pl := range st.cells {
			if match(k) {
				pl := pl
				out = append(out, &pl)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return sortKey(out[i]) < sortKey(out[j]) })
	return out, err
}

func (r *ProductLocationRepo) SumByLocation(_ context.Context, locationID string) (int64, error) {
	var sum int64
	err := r.store.view(r.inTx, func(st *state) error {
		for k, pl := range st.cells {
			if k.locationID == locationID {
				sum += pl.Quantity
			}
		}
		return nil
	})
	return sum, err
}
