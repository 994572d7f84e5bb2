package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/jhoicas/warely-stock/internal/application/dto"
)

// NewRateLimiter construye el limitador en memoria a partir de un formato "<n>-<S|M|H|D>" (ej. "300-M").
func NewRateLimiter(formatted string) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, err
	}
	return limiter.New(memory.NewStore(), rate), nil
}

// RateLimit limita las peticiones por usuario (o por IP si aún no hay token) y
// expone los encabezados X-RateLimit-*. Con lim nil no limita.
func RateLimit(lim *limiter.Limiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if lim == nil {
			return c.Next()
		}
		key := GetUserID(c)
		if key == "" {
			key = c.IP()
		}
		ctx, err := lim.Get(c.UserContext(), key)
		if err != nil {
			// el store en memoria no falla; ante un error no se bloquea la petición
			return c.Next()
		}
		c.Set("X-RateLimit-Limit", strconv.FormatInt(ctx.Limit, 10))
		c.Set("X-RateLimit-Remaining", strconv.FormatInt(ctx.Remaining, 10))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(ctx.Reset, 10))
		if ctx.Reached {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "RATE_LIMITED", Message: "demasiadas peticiones, intente más tarde"})
		}
		return c.Next()
	}
}
