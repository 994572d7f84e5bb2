package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warely-stock/internal/application/dto"
	"github.com/jhoicas/warely-stock/internal/application/inventory"
)

// StockHandler traslados y ajustes de stock por ubicación (protegido).
type StockHandler struct {
	coord *inventory.StockCoordinator
}

// NewStockHandler construye el handler.
func NewStockHandler(coord *inventory.StockCoordinator) *StockHandler {
	return &StockHandler{coord: coord}
}

// Transfer godoc
// @Summary      Trasladar unidades entre ubicaciones
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "product_id, from_location_id, to_location_id, quantity"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/transfers [post]
func (h *StockHandler) Transfer(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return nil
	}
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.coord.TransferBetweenLocations(c.UserContext(), actor, inventory.TransferInput{
		ProductID:      in.ProductID,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		Quantity:       in.Quantity,
		Notes:          in.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.TransferResponse{
		TransferID:     res.TransferID,
		MovementID:     res.MovementID,
		ProductID:      res.ProductID,
		FromLocationID: res.FromLocationID,
		FromQuantity:   res.FromQuantity,
		ToLocationID:   res.ToLocationID,
		ToQuantity:     res.ToQuantity,
	})
}

// Adjust godoc
// @Summary      Ajustar stock de una ubicación
// @Description  ABSOLUTE fija la cantidad y genera un movimiento ADJUSTMENT; IN/OUT suman o restan y generan un movimiento IN u OUT.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustmentRequest  true  "product_id, location_id, mode, quantity"
// @Success      201   {object}  dto.AdjustmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/adjustments [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return nil
	}
	var in dto.AdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.coord.AdjustLocationStock(c.UserContext(), actor, inventory.AdjustInput{
		ProductID:  in.ProductID,
		LocationID: in.LocationID,
		Mode:       in.Mode,
		Quantity:   in.Quantity,
		Notes:      in.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.AdjustmentResponse{
		AdjustmentID:     res.AdjustmentID,
		MovementID:       res.MovementID,
		LocationID:       res.LocationID,
		LocationQuantity: res.LocationQuantity,
		Product: dto.ProductCounters{
			ProductID:     res.Product.ProductID,
			CurrentStock:  res.Product.CurrentStock,
			ReservedStock: res.Product.ReservedStock,
		},
	})
}
