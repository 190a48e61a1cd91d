package app

import (
	"context"
	"fmt"
	"strings"

	"learnpath/internal/config"
	"learnpath/internal/delivery/http/handler"
	"learnpath/internal/delivery/http/middleware"
	"learnpath/internal/delivery/http/routes"
	v1 "learnpath/internal/delivery/http/routes/v1"
	"learnpath/internal/logging"
	"learnpath/internal/pkg/validation"
	"learnpath/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the fiber app on top of an already wired container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap wires the container, builds the app and starts the websocket
// hub and the session reaper. The returned cleanup stops both and releases
// connections.
func Bootstrap(ctx context.Context, cfg config.Config, logger logging.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	bgCtx, stop := context.WithCancel(context.Background())
	go c.Hub.Run(bgCtx)
	go c.Sessions.RunReaper(bgCtx, cfg.Session.ReapInterval)

	cleanup := func() error {
		stop()
		return c.Close()
	}
	return New(c), cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, logger logging.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil || c == nil {
		return
	}

	v := validation.New()
	deps := map[string]handler.Pinger{}
	if c.DB != nil {
		deps["postgres"] = c.DB
	}
	if c.Redis != nil {
		deps["redis"] = c.Redis
	}

	routes.NewRegistry(
		handler.NewHealthHandler(deps),
		v1.Handlers{
			Auth:      handler.NewAuthHandler(c.Auth, v),
			Session:   handler.NewSessionHandler(c.Sessions, v),
			Dashboard: handler.NewDashboardHandler(c.Dashboard),
			Course:    handler.NewCourseHandler(c.Courses, v),
			Quiz:      handler.NewQuizHandler(c.Quizzes, v),
			Community: handler.NewCommunityHandler(c.Community, v),
			WS:        ws.NewHandler(c.Hub, c.Community, c.Logger),
		},
		middleware.NewAuthMiddleware(c.JWT),
	).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
