package ws

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event is the frame pushed to clients.
type Event struct {
	Type      string `json:"type"`
	Data      any    `json:"data,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Inbound is a frame sent by a client.
type Inbound struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

const (
	InboundChat    = "chat"
	EventChatReply = "chat_reply"
	EventError     = "error"
)

func encodeEvent(eventType string, payload any, now time.Time) ([]byte, error) {
	return json.Marshal(Event{
		Type:      eventType,
		Data:      payload,
		Timestamp: now.UTC().Format(time.RFC3339),
	})
}

// Publish pushes an event to every connection of session.
func (h *Hub) Publish(session uuid.UUID, eventType string, payload any) {
	if h == nil {
		return
	}
	b, err := encodeEvent(eventType, payload, time.Now())
	if err != nil {
		h.logger.Error(context.Background(), "encode ws event failed", "type", eventType, "error", err)
		return
	}
	h.Send(session, b)
}
