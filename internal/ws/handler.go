package ws

import (
	"net/http"

	"learnpath/internal/delivery/http/middleware"
	"learnpath/internal/logging"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type Handler struct {
	hub    *Hub
	chat   ChatResponder
	logger logging.Logger
}

func NewHandler(hub *Hub, chat ChatResponder, logger logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Handler{hub: hub, chat: chat, logger: logger.With("component", "ws")}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (h *Handler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}
	r.Get("/ws", auth, h.HandleSessionWS)
}

// HandleSessionWS upgrades an authenticated request and joins the
// connection to its session's room.
func (h *Handler) HandleSessionWS(c fiber.Ctx) error {
	if h == nil || h.hub == nil {
		return fiber.ErrServiceUnavailable
	}
	session := middleware.SessionID(c)
	if session == uuid.Nil {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	fiberHandler := adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logger.Warn(r.Context(), "ws upgrade failed", "session_id", session, "error", err)
			return
		}

		client := NewClient(h.hub, conn, session, h.chat)
		h.hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	})

	return fiberHandler(c)
}
