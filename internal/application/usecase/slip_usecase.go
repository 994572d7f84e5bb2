package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/warely-stock/internal/domain"
	"github.com/jhoicas/warely-stock/internal/domain/entity"
	"github.com/jhoicas/warely-stock/internal/domain/repository"
)

// SlipLine una línea de la hoja de picking/recepción, ya con sku y código de ubicación.
type SlipLine struct {
	SKU          string
	ProductName  string
	LocationCode string
	Quantity     int64
	UnitPrice    decimal.Decimal
	Subtotal     decimal.Decimal
}

// OrderSlip datos que necesita el generador de la hoja de una orden.
type OrderSlip struct {
	Order *entity.Order
	Lines []SlipLine
	Total decimal.Decimal
}

// SlipGenerator genera el documento imprimible (PDF) de una orden.
type SlipGenerator interface {
	GenerateOrderSlip(ctx context.Context, slip *OrderSlip) ([]byte, error)
}

// SlipUseCase arma la hoja de picking (OUTBOUND) o de recepción (INBOUND) de una orden.
type SlipUseCase struct {
	orders    repository.OrderRepository
	products  repository.ProductRepository
	locations repository.LocationRepository
	generator SlipGenerator
}

// NewSlipUseCase construye el caso de uso inyectando todas sus dependencias.
func NewSlipUseCase(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	locations repository.LocationRepository,
	generator SlipGenerator,
) *SlipUseCase {
	return &SlipUseCase{orders: orders, products: products, locations: locations, generator: generator}
}

// DownloadOrderSlip devuelve el PDF y su nombre de archivo. Las líneas van ordenadas por
// ubicación y sku para recorrer la bodega en una sola pasada.
//
// Retorna:
//   - domain.ErrOrderNotFound  si la orden no existe o es de otra bodega.
//   - domain.ErrConflict       si la orden está cancelada.
func (uc *SlipUseCase) DownloadOrderSlip(ctx context.Context, warehouseID, orderID string) (pdfBytes []byte, filename string, err error) {
	order, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, "", fmt.Errorf("hoja: obtener orden: %w", err)
	}
	if order == nil || order.WarehouseID != warehouseID {
		return nil, "", fmt.Errorf("%w: %s", domain.ErrOrderNotFound, orderID)
	}
	if order.Status == entity.OrderStatusCancelled {
		return nil, "", fmt.Errorf("%w: la orden está cancelada", domain.ErrConflict)
	}

	slip := &OrderSlip{Order: order, Total: order.Total()}
	locCodes := make(map[string]string)
	for _, it := range order.Items {
		line := SlipLine{
			SKU:         it.ProductID,
			ProductName: "Producto " + it.ProductID,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity)),
		}
		if p, pErr := uc.products.GetByID(ctx, it.ProductID); pErr == nil && p != nil {
			line.SKU, line.ProductName = p.SKU, p.Name
		}
		code, ok := locCodes[it.LocationID]
		if !ok {
			code = it.LocationID
			if l, lErr := uc.locations.GetByID(ctx, it.LocationID); lErr == nil && l != nil {
				code = l.Code
			}
			locCodes[it.LocationID] = code
		}
		line.LocationCode = code
		slip.Lines = append(slip.Lines, line)
	}
	sort.SliceStable(slip.Lines, func(i, j int) bool {
		if slip.Lines[i].LocationCode != slip.Lines[j].LocationCode {
			return slip.Lines[i].LocationCode < slip.Lines[j].LocationCode
		}
		return slip.Lines[i].SKU < slip.Lines[j].SKU
	})

	pdfBytes, err = uc.generator.GenerateOrderSlip(ctx, slip)
	if err != nil {
		return nil, "", fmt.Errorf("hoja: generación fallida: %w", err)
	}

	prefix := "picking"
	if order.Type == entity.OrderTypeInbound {
		prefix = "recepcion"
	}
	filename = fmt.Sprintf("%s_%s.pdf", prefix, shortID(order.ID))
	return pdfBytes, filename, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
