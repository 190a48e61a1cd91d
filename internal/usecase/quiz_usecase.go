package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"learnpath/internal/domain/quiz"
	"learnpath/internal/infrastructure/generator"
	"learnpath/internal/logging"
	"learnpath/internal/mockapi"
	"learnpath/internal/repository"

	"github.com/google/uuid"
)

const attemptHistoryLimit = 20

type QuizSubmission struct {
	Result  quiz.Result  `json:"result"`
	Attempt quiz.Attempt `json:"attempt"`
}

type generatedKey struct {
	session uuid.UUID
	course  string
}

// Quizzes serves quizzes and records graded attempts. A quiz generated for a
// session replaces the course's canned quiz for that session until the next
// generation, so submissions are graded against what was shown.
type Quizzes struct {
	sessions  *SessionManager
	backend   Backend
	generator generator.Client
	attempts  repository.QuizAttemptRepository
	logger    logging.Logger
	now       func() time.Time

	mu        sync.RWMutex
	generated map[generatedKey]quiz.Quiz
}

func NewQuizUsecase(
	sessions *SessionManager,
	backend Backend,
	gen generator.Client,
	attempts repository.QuizAttemptRepository,
	logger logging.Logger,
) *Quizzes {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Quizzes{
		sessions:  sessions,
		backend:   backend,
		generator: gen,
		attempts:  attempts,
		logger:    logger.With("component", "quiz"),
		now:       time.Now,
		generated: make(map[generatedKey]quiz.Quiz),
	}
}

func (u *Quizzes) Get(ctx context.Context, id uuid.UUID, courseID string) (quiz.PublicQuiz, error) {
	q, err := u.current(ctx, id, courseID)
	if err != nil {
		return quiz.PublicQuiz{}, err
	}
	return q.Public(), nil
}

// Generate asks the generator for fresh questions on topic. On failure the
// canned quiz is served instead.
func (u *Quizzes) Generate(ctx context.Context, id uuid.UUID, courseID, topic string) (quiz.PublicQuiz, error) {
	courseID = strings.TrimSpace(courseID)
	if courseID == "" {
		return quiz.PublicQuiz{}, ErrInvalidInput
	}
	if _, err := u.sessions.Dashboard(ctx, id); err != nil {
		return quiz.PublicQuiz{}, err
	}

	key := generatedKey{session: id, course: courseID}
	questions, err := u.generator.GenerateQuiz(ctx, generator.QuizRequest{Course: courseID, Topic: strings.TrimSpace(topic)})
	if err != nil {
		if ctx.Err() != nil {
			return quiz.PublicQuiz{}, ctx.Err()
		}
		if !errors.Is(err, generator.ErrDisabled) {
			u.logger.Warn(ctx, "quiz generation failed, using canned quiz", "course_id", courseID, "error", err)
		}
		u.mu.Lock()
		delete(u.generated, key)
		u.mu.Unlock()
		return mockapi.CannedQuiz(courseID).Public(), nil
	}

	q := mockapi.CannedQuiz(courseID)
	q.Questions = questions
	if t := strings.TrimSpace(topic); t != "" {
		q.Title = t + " Quiz"
		q.Description = "Generated questions on " + t
	}

	u.mu.Lock()
	u.generated[key] = q
	u.mu.Unlock()
	return q.Public(), nil
}

// Submit grades answers and records the attempt. A failed record is logged;
// the graded result is still returned.
func (u *Quizzes) Submit(ctx context.Context, id uuid.UUID, courseID string, answers []int) (QuizSubmission, error) {
	courseID = strings.TrimSpace(courseID)
	if courseID == "" {
		return QuizSubmission{}, ErrInvalidInput
	}
	st, err := u.sessions.Dashboard(ctx, id)
	if err != nil {
		return QuizSubmission{}, err
	}

	var res quiz.Result
	if q, ok := u.generatedFor(id, courseID); ok {
		res = quiz.Grade(q, answers)
	} else {
		res, err = u.backend.SubmitQuizAnswers(ctx, courseID, answers)
		if err != nil {
			return QuizSubmission{}, err
		}
	}

	a := quiz.Attempt{
		ID:        uuid.New(),
		SessionID: id,
		UserID:    st.User.ID,
		CourseID:  courseID,
		Score:     res.Score,
		Passed:    res.Passed,
		Correct:   res.Correct,
		Total:     len(res.Questions),
		CreatedAt: u.now().UTC(),
	}
	if err := u.attempts.Record(ctx, a); err != nil {
		u.logger.Error(ctx, "record quiz attempt failed", "course_id", courseID, "user_id", a.UserID, "error", err)
	}
	return QuizSubmission{Result: res, Attempt: a}, nil
}

// Attempts lists the user's recent attempts at a course, newest first.
func (u *Quizzes) Attempts(ctx context.Context, id uuid.UUID, courseID string) ([]quiz.Attempt, error) {
	courseID = strings.TrimSpace(courseID)
	if courseID == "" {
		return nil, ErrInvalidInput
	}
	st, err := u.sessions.Dashboard(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.attempts.ListByUserAndCourse(ctx, st.User.ID, courseID, attemptHistoryLimit)
}

// SessionIDs lists the sessions holding a generated quiz.
func (u *Quizzes) SessionIDs() []uuid.UUID {
	u.mu.RLock()
	defer u.mu.RUnlock()
	seen := make(map[uuid.UUID]struct{}, len(u.generated))
	out := make([]uuid.UUID, 0, len(u.generated))
	for k := range u.generated {
		if _, ok := seen[k.session]; ok {
			continue
		}
		seen[k.session] = struct{}{}
		out = append(out, k.session)
	}
	return out
}

// Forget drops the generated quizzes of a session.
func (u *Quizzes) Forget(id uuid.UUID) {
	u.mu.Lock()
	for k := range u.generated {
		if k.session == id {
			delete(u.generated, k)
		}
	}
	u.mu.Unlock()
}

func (u *Quizzes) current(ctx context.Context, id uuid.UUID, courseID string) (quiz.Quiz, error) {
	courseID = strings.TrimSpace(courseID)
	if courseID == "" {
		return quiz.Quiz{}, ErrInvalidInput
	}
	if _, err := u.sessions.Dashboard(ctx, id); err != nil {
		return quiz.Quiz{}, err
	}
	if q, ok := u.generatedFor(id, courseID); ok {
		return q, nil
	}
	return u.backend.GetQuiz(ctx, courseID)
}

func (u *Quizzes) generatedFor(id uuid.UUID, courseID string) (quiz.Quiz, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	q, ok := u.generated[generatedKey{session: id, course: courseID}]
	return q, ok
}
