package v1

import (
	"github.com/gofiber/fiber/v3"
)

// RegisterDashboard mounts the feature views. Each handler's usecase
// enforces the dashboard gate.
func RegisterDashboard(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	if h.Dashboard != nil {
		h.Dashboard.RegisterRoutes(r.Group("/dashboard"))
	}

	courses := r.Group("/courses")
	if h.Course != nil {
		h.Course.RegisterRoutes(courses)
	}
	if h.Quiz != nil {
		h.Quiz.RegisterRoutes(courses)
	}

	if h.Community != nil {
		h.Community.RegisterRoutes(r)
	}
}
