package repository

import (
	"context"
	"testing"
	"time"

	"learnpath/internal/domain/quiz"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryQuizAttemptRepository(t *testing.T) {
	repo := NewMemoryQuizAttemptRepository()
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	record := func(userID int, courseID string, score int, at time.Time) {
		require.NoError(t, repo.Record(ctx, quiz.Attempt{
			ID:        uuid.New(),
			UserID:    userID,
			CourseID:  courseID,
			Score:     score,
			CreatedAt: at,
		}))
	}
	record(1, "week1", 33, base)
	record(1, "week1", 100, base.Add(time.Hour))
	record(1, "week2", 67, base.Add(2*time.Hour))
	record(2, "week1", 0, base.Add(3*time.Hour))

	got, err := repo.ListByUserAndCourse(ctx, 1, "week1", 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 100, got[0].Score, "newest first")
	assert.Equal(t, 33, got[1].Score)

	got, err = repo.ListByUserAndCourse(ctx, 1, "week1", 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = repo.ListByUserAndCourse(ctx, 3, "week1", 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}
