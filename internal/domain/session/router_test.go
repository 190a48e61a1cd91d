package session

import (
	"testing"

	"learnpath/internal/domain/user"

	"github.com/stretchr/testify/assert"
)

func TestRoute(t *testing.T) {
	done := completedUser()
	pending := newUser()
	legacy := newUser()
	legacy.OnboardingData = &user.OnboardingData{YearsExperience: 3, CurrentTechStack: "React", DesiredTechStack: "AWS"}

	tests := []struct {
		name string
		st   State
		want Screen
	}{
		{name: "no user", st: State{}, want: ScreenLogin},
		{name: "intake pending", st: State{User: &pending}, want: ScreenUserInfo},
		{name: "legacy onboarding data without completion flag", st: State{User: &legacy}, want: ScreenUserInfo},
		{name: "intake complete", st: State{User: &done}, want: ScreenDashboard},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Route(tc.st))
		})
	}
}

func TestRoute_LoginWithPendingIntakeNeverReachesDashboard(t *testing.T) {
	s := NewStore()
	s.SetCurrentView(ViewLeaderboard)
	s.Login(newUser())

	assert.Equal(t, ScreenUserInfo, Route(s.Snapshot()))
}

func TestResolveView(t *testing.T) {
	for _, it := range Navigation() {
		assert.Equal(t, it.ID, ResolveView(it.ID))
	}
	assert.Equal(t, ViewHome, ResolveView("personalized-learning"))
	assert.Equal(t, ViewHome, ResolveView(""))
}

func TestNavigation_FixedFiveItems(t *testing.T) {
	nav := Navigation()
	assert.Len(t, nav, 5)
	assert.Equal(t, ViewHome, nav[0].ID)

	nav[0].Label = "changed"
	assert.Equal(t, "Home", Navigation()[0].Label)
}
