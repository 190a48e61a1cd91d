package usecase

import (
	"context"
	"sync"
	"testing"

	"learnpath/internal/domain/plan"
	"learnpath/internal/domain/session"
	"learnpath/internal/domain/user"
	"learnpath/internal/mockapi"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionManager_StartRoutesToLogin(t *testing.T) {
	env := newTestEnv(t, nil)
	v, err := env.sessions.Start(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, v.ID)
	assert.Equal(t, session.ScreenLogin, v.Screen)
	assert.Equal(t, session.ViewHome, v.State.CurrentView)
	assert.Nil(t, v.State.LearningPlan)
}

func TestSessionManager_LoginRoutes(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	for _, tc := range []struct {
		email  string
		screen session.Screen
	}{
		{completedEmail, session.ScreenDashboard},
		{newUserEmail, session.ScreenUserInfo},
	} {
		v, err := env.sessions.Start(ctx)
		require.NoError(t, err)

		got, err := env.sessions.Login(ctx, v.ID, tc.email, "password123")
		require.NoError(t, err)
		assert.Equal(t, tc.screen, got.Screen, tc.email)

		reloaded, err := env.sessions.State(ctx, v.ID)
		require.NoError(t, err)
		assert.Equal(t, tc.screen, reloaded.Screen, "state is persisted")
	}
}

func TestSessionManager_LoginFailureLeavesStateUntouched(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	v, err := env.sessions.Start(ctx)
	require.NoError(t, err)

	_, err = env.sessions.Login(ctx, v.ID, completedEmail, "nope")
	assert.ErrorIs(t, err, mockapi.ErrInvalidCredentials)

	got, err := env.sessions.State(ctx, v.ID)
	require.NoError(t, err)
	assert.False(t, got.State.IsAuthenticated())
}

func TestSessionManager_UnknownSession(t *testing.T) {
	env := newTestEnv(t, nil)
	_, err := env.sessions.State(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = env.sessions.State(context.Background(), uuid.Nil)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionManager_CompleteUserInfo(t *testing.T) {
	env := newTestEnv(t, nil)
	id := env.loggedIn(t, newUserEmail)

	v, err := env.sessions.CompleteUserInfo(context.Background(), id, user.UserInfoData{
		ExperienceYears:  3,
		CurrentTechStack: "Go",
		ExpectedRole:     "Platform Engineer",
	})
	require.NoError(t, err)
	assert.Equal(t, session.ScreenDashboard, v.Screen)
	require.NotNil(t, v.State.User.OnboardingData)
	assert.Equal(t, user.OnboardingData{YearsExperience: 3, CurrentTechStack: "Go", DesiredTechStack: "Platform Engineer"}, *v.State.User.OnboardingData)
}

func TestSessionManager_IntakeRequiresLogin(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	v, err := env.sessions.Start(ctx)
	require.NoError(t, err)

	_, err = env.sessions.CompleteUserInfo(ctx, v.ID, user.UserInfoData{})
	assert.ErrorIs(t, err, ErrLoginRequired)
	_, err = env.sessions.CompleteOnboarding(ctx, v.ID, user.OnboardingData{})
	assert.ErrorIs(t, err, ErrLoginRequired)
}

func TestSessionManager_CompleteOnboarding_GeneratedPlan(t *testing.T) {
	generated := plan.LearningPlan{{Title: "Week 1: Go", Tasks: []plan.Task{{ID: "g1", Title: "Tour of Go"}}}}
	env := newTestEnv(t, fakeGenerator{plan: generated})
	id := env.loggedIn(t, newUserEmail)

	v, err := env.sessions.CompleteOnboarding(context.Background(), id, user.OnboardingData{YearsExperience: 1})
	require.NoError(t, err)
	assert.Equal(t, session.ScreenDashboard, v.Screen)
	assert.Equal(t, generated, v.State.LearningPlan)
}

func TestSessionManager_CompleteOnboarding_FallsBackToCannedPlan(t *testing.T) {
	env := newTestEnv(t, fakeGenerator{err: errGeneratorDown})
	id := env.loggedIn(t, newUserEmail)

	v, err := env.sessions.CompleteOnboarding(context.Background(), id, user.OnboardingData{})
	require.NoError(t, err)
	assert.Equal(t, mockapi.CannedLearningPlan(), v.State.LearningPlan)
}

func TestSessionManager_SetView(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	id := env.loggedIn(t, completedEmail)
	v, err := env.sessions.SetView(ctx, id, session.ViewLeaderboard)
	require.NoError(t, err)
	assert.Equal(t, session.ViewLeaderboard, v.State.CurrentView)

	v, err = env.sessions.SetView(ctx, id, "settings")
	require.NoError(t, err)
	assert.Equal(t, session.ViewHome, v.State.CurrentView)

	pending := env.loggedIn(t, newUserEmail)
	_, err = env.sessions.SetView(ctx, pending, session.ViewLeaderboard)
	assert.ErrorIs(t, err, ErrIntakeRequired)
}

func TestSessionManager_LogoutClearsStateAndRunsHooks(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	id := env.loggedIn(t, completedEmail)

	_, err := env.sessions.SetPlan(ctx, id, mockapi.CannedLearningPlan())
	require.NoError(t, err)
	_, err = env.sessions.SetView(ctx, id, session.ViewLeaderboard)
	require.NoError(t, err)

	var forgotten uuid.UUID
	env.sessions.OnLogout(func(got uuid.UUID) { forgotten = got })

	v, err := env.sessions.Logout(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, session.ScreenLogin, v.Screen)
	assert.Nil(t, v.State.LearningPlan)
	assert.Equal(t, session.ViewHome, v.State.CurrentView)
	assert.Equal(t, id, forgotten)
}

func TestSessionManager_ConcurrentMutationsAreSerialized(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	id := env.loggedIn(t, completedEmail)

	views := []session.View{session.ViewHome, session.ViewContentLibrary, session.ViewLeaderboard}
	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(v session.View) {
			defer wg.Done()
			_, err := env.sessions.SetView(ctx, id, v)
			assert.NoError(t, err)
		}(views[i%len(views)])
	}
	wg.Wait()

	got, err := env.sessions.State(ctx, id)
	require.NoError(t, err)
	assert.True(t, got.State.IsAuthenticated(), "no write lost the user")
	assert.Contains(t, views, got.State.CurrentView)
	assert.Empty(t, env.sessions.locks.locks, "lock entries are released")
}

func TestGate(t *testing.T) {
	assert.ErrorIs(t, Gate(session.State{}), ErrLoginRequired)
	assert.ErrorIs(t, Gate(session.State{User: &user.User{ID: 2}}), ErrIntakeRequired)
	assert.NoError(t, Gate(session.State{User: &user.User{ID: 1, HasCompletedUserInfo: true}}))
}
