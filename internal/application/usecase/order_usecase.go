package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/warely-stock/internal/application/dto"
	"github.com/jhoicas/warely-stock/internal/application/inventory"
	"github.com/jhoicas/warely-stock/internal/domain"
	"github.com/jhoicas/warely-stock/internal/domain/entity"
	"github.com/jhoicas/warely-stock/internal/domain/order"
	"github.com/jhoicas/warely-stock/internal/domain/repository"
)

// OrderUseCase consultas de órdenes. Crear y transicionar pasa por el StockCoordinator.
type OrderUseCase struct {
	orders repository.OrderRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(orders repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders}
}

// GetByID obtiene la orden con sus ítems.
func (uc *OrderUseCase) GetByID(ctx context.Context, warehouseID, id string) (*dto.OrderResponse, error) {
	o, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil || o.WarehouseID != warehouseID {
		return nil, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, id)
	}
	out := ToOrderResponse(o)
	return &out, nil
}

// List lista órdenes de la bodega, más recientes primero, con filtro opcional por estado y tipo.
func (uc *OrderUseCase) List(ctx context.Context, warehouseID string, filter repository.OrderFilter) (*dto.OrderListResponse, error) {
	if filter.Status != "" && !order.ValidStatus(filter.Status) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, filter.Status)
	}
	if filter.Type != "" && !order.ValidType(filter.Type) {
		return nil, fmt.Errorf("%w: tipo %q", domain.ErrInvalidInput, filter.Type)
	}
	list, err := uc.orders.ListByWarehouse(ctx, warehouseID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, ToOrderResponse(o))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

// ToOrderResponse mapea la orden y sus ítems al DTO.
func ToOrderResponse(o *entity.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ID:         it.ID,
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			LocationID: it.LocationID,
		})
	}
	return dto.OrderResponse{
		ID:            o.ID,
		WarehouseID:   o.WarehouseID,
		Type:          o.Type,
		Status:        o.Status,
		SupplierID:    o.SupplierID,
		Notes:         o.Notes,
		CreatedBy:     o.CreatedBy,
		Total:         o.Total(),
		CompletedDate: o.CompletedDate,
		CancelledDate: o.CancelledDate,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
		Items:         items,
	}
}

// ToOrderMutationResponse mapea el resultado de crear o transicionar una orden.
func ToOrderMutationResponse(res *inventory.OrderResult) *dto.OrderMutationResponse {
	movementIDs := res.MovementIDs
	if movementIDs == nil {
		movementIDs = []string{}
	}
	return &dto.OrderMutationResponse{
		Order:       ToOrderResponse(res.Order),
		Products:    ToCounters(res.Products),
		MovementIDs: movementIDs,
	}
}

// ToCounters mapea los contadores resultantes de una operación.
func ToCounters(in []inventory.ProductCounters) []dto.ProductCounters {
	out := make([]dto.ProductCounters, 0, len(in))
	for _, c := range in {
		out = append(out, dto.ProductCounters{ProductID: c.ProductID, CurrentStock: c.CurrentStock, ReservedStock: c.ReservedStock})
	}
	return out
}
