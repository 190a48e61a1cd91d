package repository

import (
	"context"
	"sort"
	"sync"

	"learnpath/internal/database"
	"learnpath/internal/domain/quiz"
)

type QuizAttemptRepository interface {
	Record(ctx context.Context, a quiz.Attempt) error
	// ListByUserAndCourse returns attempts newest first.
	ListByUserAndCourse(ctx context.Context, userID int, courseID string, limit int) ([]quiz.Attempt, error)
}

type MemoryQuizAttemptRepository struct {
	mu       sync.RWMutex
	attempts []quiz.Attempt
}

func NewMemoryQuizAttemptRepository() *MemoryQuizAttemptRepository {
	return &MemoryQuizAttemptRepository{}
}

func (r *MemoryQuizAttemptRepository) Record(_ context.Context, a quiz.Attempt) error {
	r.mu.Lock()
	r.attempts = append(r.attempts, a)
	r.mu.Unlock()
	return nil
}

func (r *MemoryQuizAttemptRepository) ListByUserAndCourse(_ context.Context, userID int, courseID string, limit int) ([]quiz.Attempt, error) {
	r.mu.RLock()
	out := make([]quiz.Attempt, 0)
	for _, a := range r.attempts {
		if a.UserID == userID && a.CourseID == courseID {
			out = append(out, a)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type PostgresQuizAttemptRepository struct {
	db database.DB
}

func NewPostgresQuizAttemptRepository(db database.DB) *PostgresQuizAttemptRepository {
	return &PostgresQuizAttemptRepository{db: db}
}

func (r *PostgresQuizAttemptRepository) Record(ctx context.Context, a quiz.Attempt) error {
	_, err := r.db.Exec(
		ctx,
		`INSERT INTO quiz_attempts (id, session_id, user_id, course_id, score, passed, correct, total, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		a.ID,
		a.SessionID,
		a.UserID,
		a.CourseID,
		a.Score,
		a.Passed,
		a.Correct,
		a.Total,
		a.CreatedAt.UTC(),
	)
	return err
}

func (r *PostgresQuizAttemptRepository) ListByUserAndCourse(ctx context.Context, userID int, courseID string, limit int) ([]quiz.Attempt, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(
		ctx,
		`SELECT id, session_id, user_id, course_id, score, passed, correct, total, created_at
FROM quiz_attempts
WHERE user_id = $1 AND course_id = $2
ORDER BY created_at DESC
LIMIT $3`,
		userID,
		courseID,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]quiz.Attempt, 0)
	for rows.Next() {
		var a quiz.Attempt
		if err := rows.Scan(&a.ID, &a.SessionID, &a.UserID, &a.CourseID, &a.Score, &a.Passed, &a.Correct, &a.Total, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.CreatedAt = a.CreatedAt.UTC()
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

var (
	_ QuizAttemptRepository = (*MemoryQuizAttemptRepository)(nil)
	_ QuizAttemptRepository = (*PostgresQuizAttemptRepository)(nil)
)
