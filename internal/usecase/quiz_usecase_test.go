package usecase

import (
	"context"
	"testing"
	"time"

	"learnpath/internal/domain/quiz"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuizzes_GetHidesAnswers(t *testing.T) {
	env := newTestEnv(t, nil)
	id := env.loggedIn(t, completedEmail)

	q, err := env.quizzes.Get(context.Background(), id, "week1")
	require.NoError(t, err)
	assert.Equal(t, "week1-quiz", q.ID)
	assert.Len(t, q.Questions, 3)
	assert.Equal(t, 70, q.PassingScore)
}

func TestQuizzes_SubmitRecordsAttempt(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	id := env.loggedIn(t, completedEmail)
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	env.quizzes.now = func() time.Time { return fixed }

	sub, err := env.quizzes.Submit(ctx, id, "week1", []int{1, 0, quiz.Unanswered})
	require.NoError(t, err)
	assert.Equal(t, 33, sub.Result.Score)
	assert.False(t, sub.Result.Passed)
	assert.Equal(t, 1, sub.Result.Unanswered)
	assert.Equal(t, fixed, sub.Attempt.CreatedAt)
	assert.Equal(t, 3, sub.Attempt.Total)

	attempts, err := env.quizzes.Attempts(ctx, id, "week1")
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, 1, attempts[0].UserID)
	assert.Equal(t, 33, attempts[0].Score)
}

func TestQuizzes_GeneratedQuizIsGradedAsShown(t *testing.T) {
	questions := []quiz.Question{
		{ID: 1, Question: "Zero value of a Go map?", Options: []string{"empty map", "nil"}, CorrectAnswer: 1},
	}
	env := newTestEnv(t, fakeGenerator{questions: questions})
	ctx := context.Background()
	id := env.loggedIn(t, completedEmail)

	q, err := env.quizzes.Generate(ctx, id, "week1", "Go maps")
	require.NoError(t, err)
	require.Len(t, q.Questions, 1)
	assert.Equal(t, "Go maps Quiz", q.Title)

	shown, err := env.quizzes.Get(ctx, id, "week1")
	require.NoError(t, err)
	assert.Len(t, shown.Questions, 1)

	sub, err := env.quizzes.Submit(ctx, id, "week1", []int{1})
	require.NoError(t, err)
	assert.Equal(t, 100, sub.Result.Score)
	assert.True(t, sub.Result.Passed)

	_, err = env.sessions.Logout(ctx, id)
	require.NoError(t, err)
	_, ok := env.quizzes.generatedFor(id, "week1")
	assert.False(t, ok, "logout drops generated quizzes")
}

func TestQuizzes_GenerateFallsBackToCanned(t *testing.T) {
	env := newTestEnv(t, fakeGenerator{err: errGeneratorDown})
	id := env.loggedIn(t, completedEmail)

	q, err := env.quizzes.Generate(context.Background(), id, "week2", "Lambda")
	require.NoError(t, err)
	assert.Equal(t, "week2-quiz", q.ID)
	assert.Len(t, q.Questions, 3)
}

func TestQuizzes_RequireDashboard(t *testing.T) {
	env := newTestEnv(t, nil)
	id := env.loggedIn(t, newUserEmail)

	_, err := env.quizzes.Submit(context.Background(), id, "week1", []int{1})
	assert.ErrorIs(t, err, ErrIntakeRequired)
}
