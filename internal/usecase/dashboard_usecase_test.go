package usecase

import (
	"context"
	"errors"
	"testing"

	"learnpath/internal/domain/plan"
	"learnpath/internal/domain/session"
	"learnpath/internal/domain/user"
	"learnpath/internal/mockapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard_Gate(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	anon, err := env.sessions.Start(ctx)
	require.NoError(t, err)
	_, err = env.dashboard.Home(ctx, anon.ID)
	assert.ErrorIs(t, err, ErrLoginRequired)

	pending := env.loggedIn(t, newUserEmail)
	_, err = env.dashboard.Home(ctx, pending)
	assert.ErrorIs(t, err, ErrIntakeRequired)
}

func TestDashboard_Overview(t *testing.T) {
	env := newTestEnv(t, nil)
	id := env.loggedIn(t, completedEmail)

	v, err := env.dashboard.Overview(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, session.ViewHome, v.CurrentView)
	assert.Len(t, v.Navigation, 5)
	assert.Equal(t, "John Doe", v.User.Name)
}

func TestDashboard_Home(t *testing.T) {
	env := newTestEnv(t, nil)
	id := env.loggedIn(t, completedEmail)

	v, err := env.dashboard.Home(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, v.Progress)
	assert.Equal(t, 60, v.Progress.Percentage)
	assert.NotEmpty(t, v.Progress.NextSteps)
	assert.Equal(t, 2, v.UnreadNotifications)
}

type progressDownBackend struct {
	*mockapi.Backend
}

func (progressDownBackend) GetUserProgress(context.Context, int) (user.Progress, error) {
	return user.Progress{}, errors.New("progress service down")
}

func TestDashboard_Home_PartialOnFetchFailure(t *testing.T) {
	env := newTestEnv(t, nil)
	id := env.loggedIn(t, completedEmail)
	d := NewDashboardUsecase(env.sessions, progressDownBackend{env.backend}, nil)

	v, err := d.Home(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, v.Progress)
	assert.Equal(t, 2, v.UnreadNotifications)
}

func TestDashboard_Home_Cancelled(t *testing.T) {
	env := newTestEnv(t, nil)
	id := env.loggedIn(t, completedEmail)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := env.dashboard.Home(ctx, id)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDashboard_ContentLibrary(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	id := env.loggedIn(t, completedEmail)

	v, err := env.dashboard.ContentLibrary(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, PlanSourceBackend, v.Source)
	assert.Equal(t, mockapi.CannedLearningPlan(), v.Plan)

	own := plan.LearningPlan{{Title: "Mine", Tasks: []plan.Task{{ID: "m1", Title: "Read"}}}}
	_, err = env.sessions.SetPlan(ctx, id, own)
	require.NoError(t, err)

	v, err = env.dashboard.ContentLibrary(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, PlanSourceSession, v.Source)
	assert.Equal(t, own, v.Plan)
}
