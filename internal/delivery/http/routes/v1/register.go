package v1

import (
	"learnpath/internal/delivery/http/handler"
	"learnpath/internal/delivery/http/middleware"
	"learnpath/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Handlers groups everything mounted under /api/v1.
type Handlers struct {
	Auth      *handler.AuthHandler
	Session   *handler.SessionHandler
	Dashboard *handler.DashboardHandler
	Course    *handler.CourseHandler
	Quiz      *handler.QuizHandler
	Community *handler.CommunityHandler
	WS        *ws.Handler
}

func Register(r fiber.Router, h Handlers, authMw *middleware.AuthMiddleware) {
	if r == nil || authMw == nil {
		return
	}

	if h.Auth != nil {
		h.Auth.RegisterRoutes(r.Group("/auth"), authMw.OptionalMiddleware(), authMw.Middleware())
	}
	if h.WS != nil {
		h.WS.RegisterRoutes(r, authMw.QueryMiddleware())
	}

	protected := r.Group("", authMw.Middleware())
	RegisterSession(protected.Group("/session"), h.Session)
	RegisterDashboard(protected, h)
}
