package usecase

import (
	"context"
	"testing"

	"learnpath/internal/domain/session"
	"learnpath/internal/mockapi"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth_LoginStartsSession(t *testing.T) {
	env := newTestEnv(t, nil)

	res, err := env.auth.Login(context.Background(), uuid.Nil, completedEmail, "password123")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, res.Session.ID)
	assert.Equal(t, session.ScreenDashboard, res.Session.Screen)
	assert.NotEmpty(t, res.Tokens.AccessToken)
	assert.NotEmpty(t, res.Tokens.RefreshToken)
}

func TestAuth_LoginReusesPresentedSession(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	v, err := env.sessions.Start(ctx)
	require.NoError(t, err)

	res, err := env.auth.Login(ctx, v.ID, newUserEmail, "password123")
	require.NoError(t, err)
	assert.Equal(t, v.ID, res.Session.ID)

	res, err = env.auth.Login(ctx, uuid.New(), newUserEmail, "password123")
	require.NoError(t, err)
	assert.NotEqual(t, v.ID, res.Session.ID, "unknown sessions are replaced")
}

func TestAuth_LoginInvalidCredentials(t *testing.T) {
	env := newTestEnv(t, nil)
	_, err := env.auth.Login(context.Background(), uuid.Nil, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, mockapi.ErrInvalidCredentials)
}

func TestAuth_FailedLoginsSaveNoSession(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	for range 50 {
		_, err := env.auth.Login(ctx, uuid.Nil, completedEmail, "bad")
		require.ErrorIs(t, err, mockapi.ErrInvalidCredentials)
	}
	assert.Equal(t, 0, env.repo.Len())

	_, err := env.auth.Login(ctx, uuid.Nil, completedEmail, "password123")
	require.NoError(t, err)
	assert.Equal(t, 1, env.repo.Len())
}

func TestAuth_Refresh(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	res, err := env.auth.Login(ctx, uuid.Nil, completedEmail, "password123")
	require.NoError(t, err)

	tokens, err := env.auth.Refresh(ctx, res.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)

	_, err = env.auth.Refresh(ctx, res.Tokens.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	_, err = env.auth.Refresh(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = env.auth.Refresh(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestAuth_Logout(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	res, err := env.auth.Login(ctx, uuid.Nil, completedEmail, "password123")
	require.NoError(t, err)

	v, err := env.auth.Logout(ctx, res.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ScreenLogin, v.Screen)
}
