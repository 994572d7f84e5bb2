package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/warely-stock/internal/application/inventory"
	"github.com/jhoicas/warely-stock/internal/domain"
	"github.com/jhoicas/warely-stock/internal/domain/entity"
	"github.com/jhoicas/warely-stock/internal/domain/repository"
)

// Adjuster es la parte del coordinador que usa Apply.
type Adjuster interface {
	AdjustLocationStock(ctx context.Context, actor entity.Actor, in inventory.AdjustInput) (*inventory.AdjustResult, error)
}

// Apply carga el catálogo en repositorios vivos (DB_DRIVER=memory). Las ubicaciones que ya
// existen con el mismo código se reutilizan; el stock entra por el coordinador, así cada apertura
// queda en el libro igual que un ajuste manual.
func Apply(ctx context.Context, c *Catalog, products repository.ProductRepository, locations repository.LocationRepository, adj Adjuster, actor entity.Actor) error {
	if actor.WarehouseID != c.WarehouseID {
		return fmt.Errorf("%w: el actor pertenece a otra bodega", domain.ErrForbidden)
	}

	existing, err := locations.ListByWarehouse(ctx, c.WarehouseID, 0, 0)
	if err != nil {
		return err
	}
	byCode := make(map[string]string, len(existing))
	for _, l := range existing {
		byCode[l.Code] = l.ID
	}
	ids := make(map[string]string, len(c.Locations))
	for _, l := range c.Locations {
		if id, ok := byCode[l.Code]; ok {
			ids[l.ID] = id
			continue
		}
		loc := *l
		if err := locations.Create(ctx, &loc); err != nil {
			return fmt.Errorf("ubicación %s: %w", l.Code, err)
		}
		ids[l.ID] = loc.ID
	}

	for _, p := range c.Products {
		prod := *p
		if err := products.Create(ctx, &prod); err != nil && !errors.Is(err, domain.ErrDuplicate) {
			return fmt.Errorf("producto %s: %w", p.SKU, err)
		}
	}

	for _, o := range c.Openings {
		_, err := adj.AdjustLocationStock(ctx, actor, inventory.AdjustInput{
			ProductID:  o.ProductID,
			LocationID: ids[o.LocationID],
			Mode:       inventory.AdjustModeIn,
			Quantity:   o.Quantity,
			Notes:      "stock de apertura (" + ReferenceID + ")",
		})
		if err != nil {
			return fmt.Errorf("apertura %s en %s: %w", o.ProductID, o.LocationID, err)
		}
	}
	return nil
}
