package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warely-stock/internal/application/inventory"
	"github.com/jhoicas/warely-stock/internal/application/usecase"
	"github.com/jhoicas/warely-stock/internal/domain"
)

// ProductHandler consultas de productos, su libro y su reconciliación (protegido).
type ProductHandler struct {
	uc        *usecase.ProductUseCase
	reconcile *inventory.ReconcileUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, reconcile *inventory.ReconcileUseCase) *ProductHandler {
	return &ProductHandler{uc: uc, reconcile: reconcile}
}

// GetByID godoc
// @Summary      Obtener producto con sus contadores
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return nil
	}
	out, err := h.uc.GetByID(c.UserContext(), actor.WarehouseID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return nil
	}
	page := pageFrom(c)
	out, err := h.uc.List(c.UserContext(), actor.WarehouseID, page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Locations godoc
// @Summary      Cantidades del producto por ubicación
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {array}   dto.ProductLocationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/locations [get]
func (h *ProductHandler) Locations(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return nil
	}
	out, err := h.uc.Locations(c.UserContext(), actor.WarehouseID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Movements godoc
// @Summary      Libro de movimientos del producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        from    query  string  false  "Desde (RFC3339)"
// @Param        to      query  string  false  "Hasta (RFC3339)"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.MovementListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/products/{id}/movements [get]
func (h *ProductHandler) Movements(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return nil
	}
	from, err := queryTime(c, "from")
	if err != nil {
		return writeError(c, err)
	}
	to, err := queryTime(c, "to")
	if err != nil {
		return writeError(c, err)
	}
	page := pageFrom(c)
	out, err := h.uc.Movements(c.UserContext(), actor.WarehouseID, c.Params("id"), from, to, page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reconcile godoc
// @Summary      Reconciliar contadores contra el libro
// @Description  Reconstruye el stock desde los movimientos y lo compara con los contadores guardados.
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ReconcileReportDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/reconcile [get]
func (h *ProductHandler) Reconcile(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return nil
	}
	out, err := h.reconcile.ReconcileProduct(c.UserContext(), actor.WarehouseID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar o desactivar producto
// @Description  Sin movimientos se elimina; con historial solo se desactiva.
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.DeleteProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return nil
	}
	out, err := h.uc.Delete(c.UserContext(), actor.WarehouseID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func queryTime(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s debe ser RFC3339", domain.ErrInvalidInput, key)
	}
	return &t, nil
}
