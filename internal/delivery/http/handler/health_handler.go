package handler

import (
	"context"
	"time"

	"learnpath/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// Pinger is a dependency whose reachability is reported by /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	deps map[string]Pinger
}

// NewHealthHandler reports on deps by name. Nil entries are skipped.
func NewHealthHandler(deps map[string]Pinger) *HealthHandler {
	return &HealthHandler{deps: deps}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

// Health is always 200; dependency state is informational since every
// dependency has an in-process fallback.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	deps := make(map[string]string, len(h.deps))
	for name, p := range h.deps {
		if p == nil {
			continue
		}
		if err := p.Ping(ctx); err != nil {
			deps[name] = "unavailable"
			continue
		}
		deps[name] = "ok"
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"status": "ok", "dependencies": deps})
}
