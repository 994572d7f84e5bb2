package usecase

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/warely-stock/internal/application/dto"
	"github.com/jhoicas/warely-stock/internal/application/inventory"
	"github.com/jhoicas/warely-stock/internal/domain"
	"github.com/jhoicas/warely-stock/internal/domain/entity"
	"github.com/jhoicas/warely-stock/internal/domain/repository"
)

// LocationUseCase casos de uso para las ubicaciones físicas de una bodega.
type LocationUseCase struct {
	txRunner  inventory.TxRunner
	locations repository.LocationRepository
	stock     repository.ProductLocationRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(
	txRunner inventory.TxRunner,
	locations repository.LocationRepository,
	stock repository.ProductLocationRepository,
) *LocationUseCase {
	return &LocationUseCase{txRunner: txRunner, locations: locations, stock: stock}
}

// NormalizeCode deja el código de ubicación sin espacios y en mayúsculas ("a-01 " -> "A-01").
func NormalizeCode(code string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(code))
}

// Create crea una ubicación. Si IsDefault, la anterior por defecto deja de serlo en la misma tx.
func (uc *LocationUseCase) Create(ctx context.Context, warehouseID string, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	code := NormalizeCode(in.Code)
	if code == "" {
		return nil, fmt.Errorf("%w: code requerido", domain.ErrInvalidInput)
	}
	if in.Type == "" {
		in.Type = entity.LocationTypeStorage
	}
	if !entity.ValidLocationType(in.Type) {
		return nil, fmt.Errorf("%w: tipo de ubicación %q", domain.ErrInvalidInput, in.Type)
	}
	if in.Capacity != nil && *in.Capacity < 0 {
		return nil, fmt.Errorf("%w: capacity no puede ser negativa", domain.ErrInvalidInput)
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = code
	}
	loc := &entity.Location{
		WarehouseID: warehouseID,
		Code:        code,
		Name:        name,
		Type:        in.Type,
		Capacity:    in.Capacity,
		IsDefault:   in.IsDefault,
	}
	err := uc.txRunner.Run(ctx, func(s inventory.Stores) error {
		return s.Locations.Create(ctx, loc)
	})
	if err != nil {
		return nil, err
	}
	return toLocationResponse(loc), nil
}

// GetByID obtiene una ubicación de la bodega.
func (uc *LocationUseCase) GetByID(ctx context.Context, warehouseID, id string) (*dto.LocationResponse, error) {
	loc, err := uc.get(ctx, warehouseID, id)
	if err != nil {
		return nil, err
	}
	return toLocationResponse(loc), nil
}

// List lista las ubicaciones de la bodega ordenadas por código.
func (uc *LocationUseCase) List(ctx context.Context, warehouseID string, limit, offset int) (*dto.LocationListResponse, error) {
	list, err := uc.locations.ListByWarehouse(ctx, warehouseID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLocationResponse(l))
	}
	return &dto.LocationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Stock devuelve las cantidades por producto guardadas en la ubicación.
func (uc *LocationUseCase) Stock(ctx context.Context, warehouseID, id string) ([]dto.ProductLocationResponse, error) {
	if _, err := uc.get(ctx, warehouseID, id); err != nil {
		return nil, err
	}
	rows, err := uc.stock.ListByLocation(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductLocationResponses(rows), nil
}

// Delete elimina una ubicación vacía. Se rechaza si es la ubicación por defecto, si guarda
// unidades (ErrLocationNotEmpty) o si hay órdenes abiertas con ítems atados a ella.
func (uc *LocationUseCase) Delete(ctx context.Context, warehouseID, id string) error {
	return uc.txRunner.Run(ctx, func(s inventory.Stores) error {
		loc, err := s.Locations.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if loc == nil || loc.WarehouseID != warehouseID {
			return fmt.Errorf("%w: %s", domain.ErrLocationNotFound, id)
		}
		if loc.IsDefault {
			return fmt.Errorf("%w: %s es la ubicación por defecto", domain.ErrConflict, loc.Code)
		}
		units, err := s.Stock.SumByLocation(ctx, id)
		if err != nil {
			return err
		}
		if units > 0 {
			return fmt.Errorf("%w: %s tiene %d unidades", domain.ErrLocationNotEmpty, loc.Code, units)
		}
		open, err := s.Orders.CountInFlightByLocation(ctx, id)
		if err != nil {
			return err
		}
		if open > 0 {
			return fmt.Errorf("%w: %s tiene %d órdenes abiertas", domain.ErrConflict, loc.Code, open)
		}
		return s.Locations.Delete(ctx, id)
	})
}

func (uc *LocationUseCase) get(ctx context.Context, warehouseID, id string) (*entity.Location, error) {
	loc, err := uc.locations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if loc == nil || loc.WarehouseID != warehouseID {
		return nil, fmt.Errorf("%w: %s", domain.ErrLocationNotFound, id)
	}
	return loc, nil
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	if l == nil {
		return nil
	}
	return &dto.LocationResponse{
		ID:          l.ID,
		WarehouseID: l.WarehouseID,
		Code:        l.Code,
		Name:        l.Name,
		Type:        l.Type,
		Capacity:    l.Capacity,
		IsDefault:   l.IsDefault,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

func toProductLocationResponses(rows []*entity.ProductLocation) []dto.ProductLocationResponse {
	out := make([]dto.ProductLocationResponse, 0, len(rows))
	for _, pl := range rows {
		out = append(out, dto.ProductLocationResponse{
			ProductID:  pl.ProductID,
			LocationID: pl.LocationID,
			Quantity:   pl.Quantity,
			UpdatedAt:  pl.UpdatedAt,
		})
	}
	return out
}
