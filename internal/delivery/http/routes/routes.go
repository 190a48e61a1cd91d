package routes

import (
	"learnpath/internal/delivery/http/handler"
	"learnpath/internal/delivery/http/middleware"
	v1 "learnpath/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler
	v1     v1.Handlers
	auth   *middleware.AuthMiddleware
}

func NewRegistry(health *handler.HealthHandler, handlers v1.Handlers, authMw *middleware.AuthMiddleware) *Registry {
	if health == nil {
		health = handler.NewHealthHandler(nil)
	}
	return &Registry{health: health, v1: handlers, auth: authMw}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	r.health.RegisterRoutes(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.v1, r.auth)
}
