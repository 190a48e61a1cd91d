package ws

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"learnpath/internal/mockapi"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	chatTimeout    = 15 * time.Second
)

// ChatResponder answers chat frames for a session.
type ChatResponder interface {
	Chat(ctx context.Context, id uuid.UUID, message string) (mockapi.ChatReply, error)
}

// Client is one websocket connection bound to a session.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	session uuid.UUID
	chat    ChatResponder
	send    chan []byte
}

func NewClient(hub *Hub, conn *websocket.Conn, session uuid.UUID, chat ChatResponder) *Client {
	return &Client{
		hub:     hub,
		conn:    conn,
		session: session,
		chat:    chat,
		send:    make(chan []byte, 64),
	}
}

// ReadPump handles inbound frames until the connection fails.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var in Inbound
		if err := json.Unmarshal(raw, &in); err != nil {
			c.reply(EventError, map[string]string{"message": "malformed frame"})
			continue
		}
		c.handle(in)
	}
}

func (c *Client) handle(in Inbound) {
	switch in.Type {
	case InboundChat:
		if c.chat == nil || strings.TrimSpace(in.Message) == "" {
			c.reply(EventError, map[string]string{"message": "empty chat message"})
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), chatTimeout)
		defer cancel()
		reply, err := c.chat.Chat(ctx, c.session, in.Message)
		if err != nil {
			c.reply(EventError, map[string]string{"message": "chat unavailable"})
			return
		}
		c.reply(EventChatReply, reply)
	default:
		c.reply(EventError, map[string]string{"message": "unknown frame type"})
	}
}

// reply delivers an event to this connection only.
func (c *Client) reply(eventType string, payload any) {
	b, err := encodeEvent(eventType, payload, time.Now())
	if err != nil {
		return
	}
	c.hub.sendTo(c, b)
}

// WritePump drains the send queue and keeps the connection alive.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
