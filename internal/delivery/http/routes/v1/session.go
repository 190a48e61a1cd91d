package v1

import (
	"learnpath/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterSession(r fiber.Router, sessionHandler *handler.SessionHandler) {
	if r == nil {
		return
	}
	if sessionHandler == nil {
		return
	}

	sessionHandler.RegisterRoutes(r)
}
