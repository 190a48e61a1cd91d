package seeder

import (
	"context"
	"time"

	"learnpath/internal/database"
	"learnpath/internal/domain/quiz"

	"github.com/google/uuid"
)

type demoAttempt struct {
	id       string
	courseID string
	score    int
	correct  int
	total    int
	daysAgo  int
}

// Fixed ids keep the seeder idempotent.
var demoAttempts = []demoAttempt{
	{id: "6f1c2a8e-6c57-4a53-9d0e-1b2f0a7c9e01", courseID: "week1", score: 67, correct: 2, total: 3, daysAgo: 6},
	{id: "6f1c2a8e-6c57-4a53-9d0e-1b2f0a7c9e02", courseID: "week1", score: 100, correct: 3, total: 3, daysAgo: 5},
	{id: "6f1c2a8e-6c57-4a53-9d0e-1b2f0a7c9e03", courseID: "week2", score: 33, correct: 1, total: 3, daysAgo: 1},
}

const demoUserID = 1

// QuizAttempts records a short quiz history for the demo user with a
// completed intake.
type QuizAttempts struct {
	Now func() time.Time
}

func (QuizAttempts) Name() string { return "quiz_attempts" }

func (s QuizAttempts) Run(ctx context.Context, db database.DB) error {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, a := range demoAttempts {
		id, err := uuid.Parse(a.id)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `
INSERT INTO quiz_attempts (id, session_id, user_id, course_id, score, passed, correct, total, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (id) DO NOTHING`,
			id, uuid.Nil, demoUserID, a.courseID, a.score, a.score >= quiz.DefaultPassingScore, a.correct, a.total,
			now().UTC().AddDate(0, 0, -a.daysAgo),
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
