package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warely-stock/internal/application/dto"
	"github.com/jhoicas/warely-stock/internal/application/inventory"
	"github.com/jhoicas/warely-stock/internal/application/usecase"
	"github.com/jhoicas/warely-stock/internal/domain"
	"github.com/jhoicas/warely-stock/internal/domain/entity"
	"github.com/jhoicas/warely-stock/internal/domain/repository"
)

// OrderHandler maneja las órdenes de entrada y salida (protegido).
type OrderHandler struct {
	coord  *inventory.StockCoordinator
	orders *usecase.OrderUseCase
	slips  *usecase.SlipUseCase
}

// NewOrderHandler construye el handler. slips puede ser nil (hoja PDF deshabilitada).
func NewOrderHandler(coord *inventory.StockCoordinator, orders *usecase.OrderUseCase, slips *usecase.SlipUseCase) *OrderHandler {
	return &OrderHandler{coord: coord, orders: orders, slips: slips}
}

// Create godoc
// @Summary      Crear orden
// @Description  OUTBOUND reserva el stock de cada ítem en su ubicación (o la por defecto);
//
//	INBOUND no mueve stock hasta completarse.
//
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "type, items[product_id, quantity, unit_price, location_id]"
// @Success      201   {object}  dto.OrderMutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return nil
	}
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	items := make([]inventory.OrderItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, inventory.OrderItemInput{
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			LocationID: it.LocationID,
		})
	}
	input := inventory.CreateOrderInput{SupplierID: in.SupplierID, Notes: in.Notes, Items: items}

	var (
		res *inventory.OrderResult
		err error
	)
	switch in.Type {
	case entity.OrderTypeOutbound:
		res, err = h.coord.CreateOutboundOrder(c.UserContext(), actor, input)
	case entity.OrderTypeInbound:
		res, err = h.coord.CreateInboundOrder(c.UserContext(), actor, input)
	default:
		err = fmt.Errorf("%w: type debe ser INBOUND u OUTBOUND", domain.ErrInvalidInput)
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(usecase.ToOrderMutationResponse(res))
}

// UpdateStatus godoc
// @Summary      Cambiar estado de una orden
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "PROCESSING | COMPLETED | CANCELLED"
// @Success      200   {object}  dto.OrderMutationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return nil
	}
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.coord.TransitionOrderStatus(c.UserContext(), actor, c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(usecase.ToOrderMutationResponse(res))
}

// GetByID godoc
// @Summary      Obtener orden con sus ítems
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return nil
	}
	out, err := h.orders.GetByID(c.UserContext(), actor.WarehouseID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar órdenes
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "PENDING | PROCESSING | COMPLETED | CANCELLED"
// @Param        type    query  string  false  "INBOUND | OUTBOUND"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.OrderListResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return nil
	}
	page := pageFrom(c)
	out, err := h.orders.List(c.UserContext(), actor.WarehouseID, repository.OrderFilter{
		Status: c.Query("status"),
		Type:   c.Query("type"),
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Slip godoc
// @Summary      Hoja de picking o recepción (PDF)
// @Description  Líneas ordenadas por ubicación y SKU. No disponible para órdenes canceladas.
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/slip.pdf [get]
func (h *OrderHandler) Slip(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return nil
	}
	if h.slips == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{Code: "NOT_IMPLEMENTED", Message: "hoja PDF no disponible"})
	}
	pdf, filename, err := h.slips.DownloadOrderSlip(c.UserContext(), actor.WarehouseID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
