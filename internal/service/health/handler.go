package health

import (
	"github.com/gofiber/fiber/v2"
)

// FiberHandler serves the liveness and readiness probes
type FiberHandler struct {
	service *Service
}

func NewFiberHandler(service *Service) *FiberHandler {
	return &FiberHandler{service: service}
}

// Mount registers /health and /ready plus their Kubernetes-style aliases.
func (h *FiberHandler) Mount(router fiber.Router) {
	for _, path := range []string{"/health", "/healthz", "/livez"} {
		router.Get(path, h.Health)
	}
	for _, path := range []string{"/ready", "/readyz"} {
		router.Get(path, h.Ready)
	}
}

func (h *FiberHandler) Health(c *fiber.Ctx) error {
	return c.JSON(h.service.Health(c.UserContext()))
}

// Ready answers 503 only when a dependency is unhealthy.
func (h *FiberHandler) Ready(c *fiber.Ctx) error {
	resp := h.service.Ready(c.UserContext())
	if !resp.Ready {
		c.Status(fiber.StatusServiceUnavailable)
	}
	return c.JSON(resp)
}
