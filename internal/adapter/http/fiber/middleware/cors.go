package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	fibercors "github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/seu-repo/cognitunes/pkg/config"
)

const corsMaxAge = 3600

// NewCORS lets browser-based skill consoles post test events to the endpoint.
// Only the skill and probe surfaces are exposed, so methods default to GET/POST.
func NewCORS(cfg config.CORSConfig) fiber.Handler {
	maxAge := corsMaxAge
	if cfg.MaxAge > 0 {
		maxAge = cfg.MaxAge
	}

	return fibercors.New(fibercors.Config{
		AllowOrigins:     joinOr(cfg.AllowedOrigins, "*"),
		AllowMethods:     joinOr(cfg.AllowedMethods, "GET,POST,OPTIONS"),
		AllowHeaders:     joinOr(cfg.AllowedHeaders, "Origin,Content-Type,Accept,X-Request-ID"),
		ExposeHeaders:    joinOr(cfg.ExposeHeaders, "X-Request-ID"),
		AllowCredentials: cfg.Credentials,
		MaxAge:           maxAge,
	})
}

func joinOr(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return strings.Join(values, ",")
}
