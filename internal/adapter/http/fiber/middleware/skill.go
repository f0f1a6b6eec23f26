package middleware

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// InvocationTimeout bounds the context handed to skill handlers. Anything
// started with c.UserContext() is cancelled once the deadline passes.
func InvocationTimeout(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if timeout <= 0 {
			return c.Next()
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()

		c.SetUserContext(ctx)
		return c.Next()
	}
}
