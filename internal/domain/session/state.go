package session

import (
	"sync"

	"learnpath/internal/domain/plan"
	"learnpath/internal/domain/user"
)

type View string

const (
	ViewHome             View = "home"
	ViewContentLibrary   View = "content-library"
	ViewTechnicalCourses View = "technical-courses"
	ViewSecurityTraining View = "security-training"
	ViewLeaderboard      View = "leaderboard"

	DefaultView = ViewHome
)

// State is a point-in-time copy of a session.
type State struct {
	User         *user.User        `json:"user"`
	LearningPlan plan.LearningPlan `json:"learning_plan"`
	CurrentView  View              `json:"current_view"`
}

// IsAuthenticated is derived from the user and never stored.
func (s State) IsAuthenticated() bool {
	return s.User != nil
}

func (s State) clone() State {
	out := State{LearningPlan: s.LearningPlan.Clone(), CurrentView: s.CurrentView}
	if s.User != nil {
		u := s.User.Clone()
		out.User = &u
	}
	return out
}

// Store holds the mutable state of one session. Every operation takes the
// store lock, so a write is observed whole by the next read.
type Store struct {
	mu    sync.RWMutex
	state State
}

func NewStore() *Store {
	return &Store{state: State{CurrentView: DefaultView}}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Restore replaces the whole state, typically from a persisted snapshot.
func (s *Store) Restore(st State) {
	st = st.clone()
	if st.CurrentView == "" {
		st.CurrentView = DefaultView
	}
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// Login replaces the user wholesale. Plan and view are left alone.
func (s *Store) Login(u user.User) {
	u = u.Clone()
	s.mu.Lock()
	s.state.User = &u
	s.mu.Unlock()
}

func (s *Store) Logout() {
	s.mu.Lock()
	s.state = State{CurrentView: DefaultView}
	s.mu.Unlock()
}

// CompleteOnboarding merges the intake into the current user, if any, and
// always replaces the learning plan.
func (s *Store) CompleteOnboarding(data user.OnboardingData, p plan.LearningPlan) {
	p = p.Clone()
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.User != nil {
		u := s.state.User.Clone()
		u.OnboardingData = &data
		u.HasCompletedUserInfo = true
		s.state.User = &u
	}
	s.state.LearningPlan = p
}

// CompleteUserInfo marks intake complete on the current user. It is a no-op
// without a user.
func (s *Store) CompleteUserInfo(data user.UserInfoData) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.User == nil {
		return
	}
	u := s.state.User.Clone()
	ob := data.AsOnboarding()
	u.HasCompletedUserInfo = true
	u.OnboardingData = &ob
	s.state.User = &u
}

func (s *Store) SetCurrentView(v View) {
	s.mu.Lock()
	s.state.CurrentView = v
	s.mu.Unlock()
}

func (s *Store) SetLearningPlan(p plan.LearningPlan) {
	p = p.Clone()
	s.mu.Lock()
	s.state.LearningPlan = p
	s.mu.Unlock()
}
