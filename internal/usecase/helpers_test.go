package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"learnpath/internal/domain/course"
	"learnpath/internal/domain/plan"
	"learnpath/internal/domain/quiz"
	"learnpath/internal/infrastructure/generator"
	"learnpath/internal/mockapi"
	"learnpath/internal/pkg/jwt"
	"learnpath/internal/repository"
	"learnpath/internal/search"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var errGeneratorDown = errors.New("generator down")

type fakeGenerator struct {
	plan      plan.LearningPlan
	questions []quiz.Question
	topic     *course.TopicContent
	err       error
}

func (f fakeGenerator) GeneratePlan(context.Context, generator.PlanRequest) (plan.LearningPlan, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.plan, nil
}

func (f fakeGenerator) GenerateQuiz(context.Context, generator.QuizRequest) ([]quiz.Question, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.questions, nil
}

func (f fakeGenerator) TopicContent(context.Context, generator.TopicRequest) (course.TopicContent, error) {
	if f.err != nil {
		return course.TopicContent{}, f.err
	}
	return *f.topic, nil
}

type recordedEvent struct {
	session uuid.UUID
	kind    string
	payload any
}

type fakePublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *fakePublisher) Publish(id uuid.UUID, kind string, payload any) {
	p.mu.Lock()
	p.events = append(p.events, recordedEvent{session: id, kind: kind, payload: payload})
	p.mu.Unlock()
}

type testEnv struct {
	backend   *mockapi.Backend
	repo      *repository.MemorySessionRepository
	attempts  *repository.MemoryQuizAttemptRepository
	sessions  *SessionManager
	auth      *Auth
	dashboard *Dashboard
	courses   *Courses
	quizzes   *Quizzes
	community *Community
	events    *fakePublisher
}

func newTestEnv(t *testing.T, gen generator.Client) *testEnv {
	t.Helper()
	return newTestEnvWithRepo(t, gen, repository.NewMemorySessionRepository(time.Hour))
}

func newTestEnvWithRepo(t *testing.T, gen generator.Client, repo *repository.MemorySessionRepository) *testEnv {
	t.Helper()
	backend, err := mockapi.NewBackend(mockapi.WithDelayScale(0))
	require.NoError(t, err)
	if gen == nil {
		gen = generator.NewClient("", 0, nil)
	}

	env := &testEnv{
		backend:  backend,
		repo:     repo,
		attempts: repository.NewMemoryQuizAttemptRepository(),
		events:   &fakePublisher{},
	}
	searchSvc := search.NewService(backend)
	env.sessions = NewSessionManager(env.repo, backend, gen, nil)
	env.auth = NewAuthUsecase(env.sessions, jwt.NewHMACService("a", "r", time.Minute, time.Hour))
	env.dashboard = NewDashboardUsecase(env.sessions, backend, nil)
	env.courses = NewCoursesUsecase(env.sessions, backend, searchSvc, gen, nil)
	env.quizzes = NewQuizUsecase(env.sessions, backend, gen, env.attempts, nil)
	env.sessions.Attach(env.courses)
	env.sessions.Attach(env.quizzes)
	env.community = NewCommunityUsecase(env.sessions, backend, env.events, nil)
	return env
}

// loggedIn starts a session and logs email in with the fixture password.
func (e *testEnv) loggedIn(t *testing.T, email string) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	v, err := e.sessions.Start(ctx)
	require.NoError(t, err)
	_, err = e.sessions.Login(ctx, v.ID, email, "password123")
	require.NoError(t, err)
	return v.ID
}

const (
	completedEmail = "user@example.com"
	newUserEmail   = "anirudh@example.com"
)
