package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/localnerve/notary-records/internal/types"
)

// AuthRateLimit throttles the credential endpoints per client IP.
// A non-positive max disables the limit.
func AuthRateLimit(max int) fiber.Handler {
	if max <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return &types.CustomError{
				Code:    fiber.StatusTooManyRequests,
				Message: "Too many attempts, try again later",
				Type:    "rateLimit",
			}
		},
	})
}
