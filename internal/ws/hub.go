package ws

import (
	"context"
	"sync"

	"learnpath/internal/logging"

	"github.com/google/uuid"
)

type delivery struct {
	session uuid.UUID
	// target, when set, restricts the delivery to one connection.
	target  *Client
	payload []byte
}

// Hub fans events out to the live connections of each session.
type Hub struct {
	rooms      map[uuid.UUID]map[*Client]bool
	deliver    chan delivery
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	logger     logging.Logger
}

func NewHub(logger logging.Logger) *Hub {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Hub{
		rooms:      make(map[uuid.UUID]map[*Client]bool),
		deliver:    make(chan delivery, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		logger:     logger.With("component", "ws"),
	}
}

// Run serves registrations and deliveries until ctx is done, then closes
// every connection's send queue.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for id, room := range h.rooms {
				for c := range room {
					close(c.send)
				}
				delete(h.rooms, id)
			}
			h.mutex.Unlock()
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			room, ok := h.rooms[client.session]
			if !ok {
				room = make(map[*Client]bool)
				h.rooms[client.session] = room
			}
			room[client] = true
			total := len(room)
			h.mutex.Unlock()
			h.logger.Debug(ctx, "ws connected", "session_id", client.session, "session_clients", total)

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.remove(client)
			h.logger.Debug(ctx, "ws disconnected", "session_id", client.session)

		case d := <-h.deliver:
			h.mutex.RLock()
			targets := make([]*Client, 0, len(h.rooms[d.session]))
			for c := range h.rooms[d.session] {
				if d.target == nil || d.target == c {
					targets = append(targets, c)
				}
			}
			h.mutex.RUnlock()

			for _, client := range targets {
				select {
				case client.send <- d.payload:
				default:
					h.remove(client)
				}
			}
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	room, ok := h.rooms[client.session]
	if !ok {
		return
	}
	if _, ok := room[client]; ok {
		delete(room, client)
		close(client.send)
	}
	if len(room) == 0 {
		delete(h.rooms, client.session)
	}
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.unregister <- client
}

// Send queues a raw payload for every connection of session. It never
// blocks; a full queue drops the payload.
func (h *Hub) Send(session uuid.UUID, payload []byte) {
	if h == nil {
		return
	}
	select {
	case h.deliver <- delivery{session: session, payload: payload}:
	default:
		h.logger.Warn(context.Background(), "ws delivery dropped", "session_id", session, "reason", "buffer_full")
	}
}

func (h *Hub) sendTo(c *Client, payload []byte) {
	select {
	case h.deliver <- delivery{session: c.session, target: c, payload: payload}:
	default:
		h.logger.Warn(context.Background(), "ws delivery dropped", "session_id", c.session, "reason", "buffer_full")
	}
}

func (h *Hub) ClientCount(session uuid.UUID) int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.rooms[session])
}
