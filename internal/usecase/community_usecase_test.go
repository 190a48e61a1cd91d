package usecase

import (
	"context"
	"testing"

	"learnpath/internal/mockapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommunity_Leaderboard(t *testing.T) {
	env := newTestEnv(t, nil)
	id := env.loggedIn(t, completedEmail)

	rows, err := env.community.Leaderboard(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, rows, 8)
	assert.Equal(t, 1, rows[0].Rank)
}

func TestCommunity_Notifications(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	id := env.loggedIn(t, completedEmail)

	list, err := env.community.Notifications(ctx, id)
	require.NoError(t, err)
	assert.Len(t, list.Items, 3)
	assert.Equal(t, 2, list.UnreadCount)

	require.NoError(t, env.community.MarkNotificationRead(ctx, id, 1))
	require.Len(t, env.events.events, 1)
	assert.Equal(t, id, env.events.events[0].session)
	assert.Equal(t, EventNotificationRead, env.events.events[0].kind)
	assert.Equal(t, NotificationReadEvent{ID: 1}, env.events.events[0].payload)

	err = env.community.MarkNotificationRead(ctx, id, 99)
	assert.ErrorIs(t, err, mockapi.ErrNotificationNotFound)
	assert.Len(t, env.events.events, 1)
}

func TestCommunity_Chat(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	pending := env.loggedIn(t, newUserEmail)
	reply, err := env.community.Chat(ctx, pending, "what is a closure?")
	require.NoError(t, err)
	assert.Contains(t, reply.Response, "what is a closure?")
	assert.NotEmpty(t, reply.Timestamp)

	_, err = env.community.Chat(ctx, pending, "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)

	anon, err := env.sessions.Start(ctx)
	require.NoError(t, err)
	_, err = env.community.Chat(ctx, anon.ID, "hi")
	assert.ErrorIs(t, err, ErrLoginRequired)
}
