package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"learnpath/internal/domain/plan"
	"learnpath/internal/domain/session"
	"learnpath/internal/domain/user"
	"learnpath/internal/infrastructure/generator"
	"learnpath/internal/logging"
	"learnpath/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrLoginRequired   = errors.New("login required")
	ErrIntakeRequired  = errors.New("intake form required")
)

// SessionView is a session state together with the screen it routes to.
type SessionView struct {
	ID     uuid.UUID      `json:"session_id"`
	State  session.State  `json:"state"`
	Screen session.Screen `json:"screen"`
}

func newSessionView(id uuid.UUID, st session.State) SessionView {
	return SessionView{ID: id, State: st, Screen: session.Route(st)}
}

// Gate reports why a state may not reach the dashboard, or nil.
func Gate(st session.State) error {
	switch session.Route(st) {
	case session.ScreenLogin:
		return ErrLoginRequired
	case session.ScreenUserInfo:
		return ErrIntakeRequired
	default:
		return nil
	}
}

// SessionManager owns every session. Operations on one session id run one
// at a time: load the snapshot, apply the store operation, save it back.
type SessionManager struct {
	repo      repository.SessionRepository
	backend   Backend
	generator generator.Client
	logger    logging.Logger
	onLogout  []func(uuid.UUID)
	scoped    []SessionScoped

	locks *keyedMutex
	newID func() uuid.UUID
}

func NewSessionManager(
	repo repository.SessionRepository,
	backend Backend,
	gen generator.Client,
	logger logging.Logger,
) *SessionManager {
	if logger == nil {
		logger = logging.Nop()
	}
	return &SessionManager{
		repo:      repo,
		backend:   backend,
		generator: gen,
		logger:    logger.With("component", "session"),
		locks:     newKeyedMutex(),
		newID:     uuid.New,
	}
}

// Start opens an empty session.
func (m *SessionManager) Start(ctx context.Context) (SessionView, error) {
	id := m.newID()
	st := session.NewStore().Snapshot()
	if err := m.repo.Save(ctx, id, st); err != nil {
		return SessionView{}, err
	}
	return newSessionView(id, st), nil
}

func (m *SessionManager) State(ctx context.Context, id uuid.UUID) (SessionView, error) {
	var out SessionView
	err := m.with(ctx, id, func(s *session.Store) (bool, error) {
		out = newSessionView(id, s.Snapshot())
		return false, nil
	})
	return out, err
}

// Login authenticates against the backend and puts the user on session id.
// Credential errors leave the session untouched.
func (m *SessionManager) Login(ctx context.Context, id uuid.UUID, email, password string) (SessionView, error) {
	u, err := m.backend.Login(ctx, email, password)
	if err != nil {
		return SessionView{}, err
	}

	var out SessionView
	err = m.with(ctx, id, func(s *session.Store) (bool, error) {
		s.Login(u)
		out = newSessionView(id, s.Snapshot())
		return true, nil
	})
	if err == nil {
		m.logger.Info(ctx, "user logged in", "session_id", id, "user_id", u.ID)
	}
	return out, err
}

// LoginNew authenticates against the backend and opens a session for the
// user. Nothing is saved when the credentials are rejected.
func (m *SessionManager) LoginNew(ctx context.Context, email, password string) (SessionView, error) {
	u, err := m.backend.Login(ctx, email, password)
	if err != nil {
		return SessionView{}, err
	}

	id := m.newID()
	s := session.NewStore()
	s.Login(u)
	st := s.Snapshot()
	if err := m.repo.Save(ctx, id, st); err != nil {
		return SessionView{}, err
	}
	m.logger.Info(ctx, "user logged in", "session_id", id, "user_id", u.ID)
	return newSessionView(id, st), nil
}

func (m *SessionManager) Logout(ctx context.Context, id uuid.UUID) (SessionView, error) {
	var out SessionView
	err := m.with(ctx, id, func(s *session.Store) (bool, error) {
		s.Logout()
		out = newSessionView(id, s.Snapshot())
		return true, nil
	})
	if err != nil {
		return SessionView{}, err
	}
	for _, fn := range m.onLogout {
		fn(id)
	}
	return out, nil
}

// OnLogout registers fn to drop per-session state held outside the store.
// Register hooks before serving requests.
func (m *SessionManager) OnLogout(fn func(uuid.UUID)) {
	m.onLogout = append(m.onLogout, fn)
}

// SessionScoped is per-session state kept outside the session store.
type SessionScoped interface {
	SessionIDs() []uuid.UUID
	Forget(id uuid.UUID)
}

// Attach ties sc to session lifetime: its state is forgotten on logout and
// by Reap once the session has expired. Attach before serving requests.
func (m *SessionManager) Attach(sc SessionScoped) {
	m.scoped = append(m.scoped, sc)
	m.OnLogout(sc.Forget)
}

// Reap forgets attached state whose session the repository no longer
// holds and reports how many sessions were dropped.
func (m *SessionManager) Reap(ctx context.Context) (int, error) {
	if sw, ok := m.repo.(interface{ Sweep() int }); ok {
		sw.Sweep()
	}

	alive := make(map[uuid.UUID]bool)
	reaped := make(map[uuid.UUID]struct{})
	var errs []error

	for _, sc := range m.scoped {
		for _, id := range sc.SessionIDs() {
			live, seen := alive[id]
			if !seen {
				_, ok, err := m.repo.Load(ctx, id)
				if err != nil {
					errs = append(errs, err)
					continue
				}
				live = ok
				alive[id] = ok
			}
			if !live {
				sc.Forget(id)
				reaped[id] = struct{}{}
			}
		}
	}
	return len(reaped), errors.Join(errs...)
}

// RunReaper calls Reap every interval until ctx is done.
func (m *SessionManager) RunReaper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := m.Reap(ctx)
			if err != nil {
				m.logger.Warn(ctx, "session reap failed", "error", err)
			}
			if n > 0 {
				m.logger.Debug(ctx, "expired session state dropped", "sessions", n)
			}
		}
	}
}

// CompleteOnboarding asks the generator for a plan tailored to the intake
// and falls back to the backend's canned plan when generation fails.
func (m *SessionManager) CompleteOnboarding(ctx context.Context, id uuid.UUID, data user.OnboardingData) (SessionView, error) {
	if _, err := m.requireUser(ctx, id); err != nil {
		return SessionView{}, err
	}

	p, err := m.generatePlan(ctx, data)
	if err != nil {
		return SessionView{}, err
	}

	var out SessionView
	err = m.with(ctx, id, func(s *session.Store) (bool, error) {
		s.CompleteOnboarding(data, p)
		out = newSessionView(id, s.Snapshot())
		return true, nil
	})
	return out, err
}

func (m *SessionManager) generatePlan(ctx context.Context, data user.OnboardingData) (plan.LearningPlan, error) {
	if m.generator != nil {
		p, err := m.generator.GeneratePlan(ctx, generator.PlanRequest{
			Experience:   data.YearsExperience,
			CurrentStack: data.CurrentTechStack,
			DesiredRole:  data.DesiredTechStack,
		})
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, generator.ErrDisabled) {
			m.logger.Warn(ctx, "plan generation failed, using canned plan", "error", err)
		}
	}
	return m.backend.SubmitOnboarding(ctx, data)
}

func (m *SessionManager) CompleteUserInfo(ctx context.Context, id uuid.UUID, data user.UserInfoData) (SessionView, error) {
	if _, err := m.requireUser(ctx, id); err != nil {
		return SessionView{}, err
	}
	if err := m.backend.SubmitUserInfo(ctx, data); err != nil {
		return SessionView{}, err
	}

	var out SessionView
	err := m.with(ctx, id, func(s *session.Store) (bool, error) {
		s.CompleteUserInfo(data)
		out = newSessionView(id, s.Snapshot())
		return true, nil
	})
	return out, err
}

// SetView records the dashboard view; unknown views resolve to home.
func (m *SessionManager) SetView(ctx context.Context, id uuid.UUID, v session.View) (SessionView, error) {
	var out SessionView
	err := m.with(ctx, id, func(s *session.Store) (bool, error) {
		if err := Gate(s.Snapshot()); err != nil {
			return false, err
		}
		s.SetCurrentView(session.ResolveView(v))
		out = newSessionView(id, s.Snapshot())
		return true, nil
	})
	return out, err
}

func (m *SessionManager) SetPlan(ctx context.Context, id uuid.UUID, p plan.LearningPlan) (SessionView, error) {
	var out SessionView
	err := m.with(ctx, id, func(s *session.Store) (bool, error) {
		if !s.Snapshot().IsAuthenticated() {
			return false, ErrLoginRequired
		}
		s.SetLearningPlan(p)
		out = newSessionView(id, s.Snapshot())
		return true, nil
	})
	return out, err
}

// Dashboard returns the state of a session that has reached the dashboard.
func (m *SessionManager) Dashboard(ctx context.Context, id uuid.UUID) (session.State, error) {
	v, err := m.State(ctx, id)
	if err != nil {
		return session.State{}, err
	}
	if err := Gate(v.State); err != nil {
		return session.State{}, err
	}
	return v.State, nil
}

func (m *SessionManager) requireUser(ctx context.Context, id uuid.UUID) (session.State, error) {
	v, err := m.State(ctx, id)
	if err != nil {
		return session.State{}, err
	}
	if !v.State.IsAuthenticated() {
		return session.State{}, ErrLoginRequired
	}
	return v.State, nil
}

// with runs fn against the session's store under the session lock and
// saves the snapshot when fn reports a mutation.
func (m *SessionManager) with(ctx context.Context, id uuid.UUID, fn func(*session.Store) (bool, error)) error {
	if id == uuid.Nil {
		return ErrSessionNotFound
	}

	unlock := m.locks.Lock(id)
	defer unlock()

	st, ok, err := m.repo.Load(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrSessionNotFound
	}

	s := session.NewStore()
	s.Restore(st)

	mutated, err := fn(s)
	if err != nil {
		return err
	}
	if !mutated {
		return nil
	}
	return m.repo.Save(ctx, id, s.Snapshot())
}

type keyedMutex struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*refMutex
}

type refMutex struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[uuid.UUID]*refMutex)}
}

// Lock blocks until id is free and returns its unlock function. Entries are
// dropped once no goroutine holds or waits for them.
func (k *keyedMutex) Lock(id uuid.UUID) func() {
	k.mu.Lock()
	l, ok := k.locks[id]
	if !ok {
		l = &refMutex{}
		k.locks[id] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, id)
		}
		k.mu.Unlock()
	}
}
