package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/seu-repo/cognitunes/pkg/config"
)

func TestNewCORS_Preflight(t *testing.T) {
	app := fiber.New()
	app.Use(NewCORS(config.CORSConfig{AllowedOrigins: []string{"https://console.example.com"}}))
	app.Post("/alexa", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/alexa", nil)
	req.Header.Set("Origin", "https://console.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to make request: %v", err)
	}
	if resp.StatusCode != fiber.StatusNoContent {
		t.Errorf("Expected 204, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "https://console.example.com" {
		t.Errorf("unexpected allow-origin: %q", got)
	}
	if got := resp.Header.Get("Access-Control-Allow-Methods"); got != "GET,POST,OPTIONS" {
		t.Errorf("unexpected allow-methods: %q", got)
	}
}

func TestJoinOr(t *testing.T) {
	if got := joinOr(nil, "x"); got != "x" {
		t.Errorf("expected fallback, got %q", got)
	}
	if got := joinOr([]string{"a", "b"}, "x"); got != "a,b" {
		t.Errorf("expected joined, got %q", got)
	}
}
