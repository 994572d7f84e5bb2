package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warely-stock/internal/application/dto"
)

// pageFrom lee limit/offset de la query y los normaliza con las reglas de dto.PageRequest.
func pageFrom(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{Limit: c.QueryInt("limit", dto.DefaultPageLimit), Offset: c.QueryInt("offset", 0)}
	p.Normalize()
	return p
}
