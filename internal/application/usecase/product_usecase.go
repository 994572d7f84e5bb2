package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/warely-stock/internal/application/dto"
	"github.com/jhoicas/warely-stock/internal/application/inventory"
	"github.com/jhoicas/warely-stock/internal/domain"
	"github.com/jhoicas/warely-stock/internal/domain/entity"
	"github.com/jhoicas/warely-stock/internal/domain/repository"
)

// ProductUseCase consultas de productos y su baja. Los contadores solo cambian vía el coordinador.
type ProductUseCase struct {
	txRunner  inventory.TxRunner
	products  repository.ProductRepository
	stock     repository.ProductLocationRepository
	movements repository.StockMovementRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	txRunner inventory.TxRunner,
	products repository.ProductRepository,
	stock repository.ProductLocationRepository,
	movements repository.StockMovementRepository,
) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, products: products, stock: stock, movements: movements}
}

// GetByID obtiene un producto con sus contadores.
func (uc *ProductUseCase) GetByID(ctx context.Context, warehouseID, id string) (*dto.ProductResponse, error) {
	p, err := uc.get(ctx, warehouseID, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// List lista productos por bodega con paginación.
func (uc *ProductUseCase) List(ctx context.Context, warehouseID string, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.products.ListByWarehouse(ctx, warehouseID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Locations devuelve la cantidad del producto en cada ubicación donde ha tenido stock.
func (uc *ProductUseCase) Locations(ctx context.Context, warehouseID, id string) ([]dto.ProductLocationResponse, error) {
	if _, err := uc.get(ctx, warehouseID, id); err != nil {
		return nil, err
	}
	rows, err := uc.stock.ListByProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductLocationResponses(rows), nil
}

// Movements lista el libro del producto, del más reciente al más antiguo, opcionalmente por rango de fechas.
func (uc *ProductUseCase) Movements(ctx context.Context, warehouseID, id string, from, to *time.Time, limit, offset int) (*dto.MovementListResponse, error) {
	if from != nil && to != nil && to.Before(*from) {
		return nil, fmt.Errorf("%w: rango de fechas invertido", domain.ErrInvalidInput)
	}
	if _, err := uc.get(ctx, warehouseID, id); err != nil {
		return nil, err
	}
	list, err := uc.movements.ListByProduct(ctx, id, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, ToMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina el producto si nunca tuvo movimientos; si tiene historial solo lo desactiva,
// para que el libro siga apuntando a un producto existente.
func (uc *ProductUseCase) Delete(ctx context.Context, warehouseID, id string) (*dto.DeleteProductResponse, error) {
	out := &dto.DeleteProductResponse{ProductID: id}
	err := uc.txRunner.Run(ctx, func(s inventory.Stores) error {
		p, err := s.Products.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p == nil || p.WarehouseID != warehouseID {
			return fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
		}
		if p.CurrentStock > 0 || p.ReservedStock > 0 {
			return fmt.Errorf("%w: %s aún tiene %d disponibles y %d reservadas",
				domain.ErrConflict, p.SKU, p.CurrentStock, p.ReservedStock)
		}
		n, err := s.Movements.CountByProduct(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			out.Deactivated = true
			return s.Products.Deactivate(ctx, id)
		}
		return s.Products.Delete(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *ProductUseCase) get(ctx context.Context, warehouseID, id string) (*entity.Product, error) {
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || p.WarehouseID != warehouseID {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
	}
	return p, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		WarehouseID:   p.WarehouseID,
		SKU:           p.SKU,
		Name:          p.Name,
		CurrentStock:  p.CurrentStock,
		ReservedStock: p.ReservedStock,
		ReorderPoint:  p.ReorderPoint,
		MaxStock:      p.MaxStock,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ToMovementResponse mapea una entrada del libro al DTO.
func ToMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:             m.ID,
		Seq:            m.Seq,
		ProductID:      m.ProductID,
		Type:           m.Type,
		Quantity:       m.Quantity,
		FromLocationID: m.FromLocationID,
		ToLocationID:   m.ToLocationID,
		ReferenceType:  m.ReferenceType,
		ReferenceID:    m.ReferenceID,
		Notes:          m.Notes,
		CreatedBy:      m.CreatedBy,
		CreatedAt:      m.CreatedAt,
	}
}
