package usecase

import (
	"context"
	"errors"
	"strings"

	"learnpath/internal/domain/leaderboard"
	"learnpath/internal/domain/notification"
	"learnpath/internal/logging"
	"learnpath/internal/mockapi"

	"github.com/google/uuid"
)

const (
	EventNotificationRead = "notification_read"
	EventChatReply        = "chat_reply"
)

var ErrEmptyMessage = errors.New("message is empty")

type NotificationList struct {
	Items       []notification.Notification `json:"items"`
	UnreadCount int                         `json:"unread_count"`
}

type NotificationReadEvent struct {
	ID int `json:"id"`
}

type Community struct {
	sessions *SessionManager
	backend  Backend
	events   EventPublisher
	logger   logging.Logger
}

func NewCommunityUsecase(sessions *SessionManager, backend Backend, events EventPublisher, logger logging.Logger) *Community {
	if logger == nil {
		logger = logging.Nop()
	}
	if events == nil {
		events = nopPublisher{}
	}
	return &Community{
		sessions: sessions,
		backend:  backend,
		events:   events,
		logger:   logger.With("component", "community"),
	}
}

func (u *Community) Leaderboard(ctx context.Context, id uuid.UUID) ([]leaderboard.Entry, error) {
	if _, err := u.sessions.Dashboard(ctx, id); err != nil {
		return nil, err
	}
	return u.backend.GetLeaderboard(ctx)
}

func (u *Community) Notifications(ctx context.Context, id uuid.UUID) (NotificationList, error) {
	if _, err := u.sessions.Dashboard(ctx, id); err != nil {
		return NotificationList{}, err
	}
	items, err := u.backend.GetNotifications(ctx)
	if err != nil {
		return NotificationList{}, err
	}
	return NotificationList{Items: items, UnreadCount: notification.UnreadCount(items)}, nil
}

// MarkNotificationRead acknowledges a notification and tells the session's
// live connections about it.
func (u *Community) MarkNotificationRead(ctx context.Context, id uuid.UUID, notificationID int) error {
	if _, err := u.sessions.Dashboard(ctx, id); err != nil {
		return err
	}
	if err := u.backend.MarkNotificationRead(ctx, notificationID); err != nil {
		return err
	}
	u.events.Publish(id, EventNotificationRead, NotificationReadEvent{ID: notificationID})
	return nil
}

// Chat answers a message for any logged-in session; intake is not required.
func (u *Community) Chat(ctx context.Context, id uuid.UUID, message string) (mockapi.ChatReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return mockapi.ChatReply{}, ErrEmptyMessage
	}
	v, err := u.sessions.State(ctx, id)
	if err != nil {
		return mockapi.ChatReply{}, err
	}
	if !v.State.IsAuthenticated() {
		return mockapi.ChatReply{}, ErrLoginRequired
	}
	return u.backend.PostChatMessage(ctx, message)
}
