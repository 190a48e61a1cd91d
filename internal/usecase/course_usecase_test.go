package usecase

import (
	"context"
	"testing"

	"learnpath/internal/domain/course"
	"learnpath/internal/search"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourses_Catalog(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	id := env.loggedIn(t, completedEmail)

	got, err := env.courses.Catalog(ctx, id, course.CategorySecurity)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	_, err = env.courses.Catalog(ctx, id, "cooking")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestCourses_Search(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	id := env.loggedIn(t, completedEmail)

	res, err := env.courses.Search(ctx, id, "  lambda ", 0)
	require.NoError(t, err)
	assert.Equal(t, "lambda", res.Query)
	require.Len(t, res.Courses, 1)
	assert.Equal(t, "AWS Lambda Fundamentals", res.Courses[0].Title)

	res, err = env.courses.Search(ctx, id, "a", 0)
	require.NoError(t, err)
	assert.Empty(t, res.Courses)

	_, err = env.courses.Search(ctx, id, "react", 10)
	require.NoError(t, err)
	_, err = env.courses.Search(ctx, id, "react", 9)
	assert.ErrorIs(t, err, search.ErrStale)
}

func TestCourses_SearchIsolatedPerSession(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	a := env.loggedIn(t, completedEmail)
	b := env.loggedIn(t, completedEmail)

	_, err := env.courses.Search(ctx, a, "react", 10)
	require.NoError(t, err)
	_, err = env.courses.Search(ctx, b, "react", 1)
	assert.NoError(t, err)
}

func TestCourses_TopicContent(t *testing.T) {
	ctx := context.Background()

	t.Run("generated", func(t *testing.T) {
		want := course.TopicContent{Title: "Hooks", Sections: []course.Section{{Heading: "h", Body: "b"}}, ExternalLinks: []course.Link{}}
		env := newTestEnv(t, fakeGenerator{topic: &want})
		id := env.loggedIn(t, completedEmail)

		got, err := env.courses.TopicContent(ctx, id, "week1", TopicContentInput{CourseTitle: "React", TopicTitle: "Hooks"})
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("fallback uses course detail title", func(t *testing.T) {
		env := newTestEnv(t, fakeGenerator{err: errGeneratorDown})
		id := env.loggedIn(t, completedEmail)

		got, err := env.courses.TopicContent(ctx, id, "week1", TopicContentInput{TopicTitle: "Custom Hooks"})
		require.NoError(t, err)
		assert.Equal(t, "Custom Hooks", got.Title)
		assert.Contains(t, got.Description, "Week 1: Mastering Advanced React Hooks")
		assert.True(t, got.QuizAvailable)
	})

	t.Run("topic required", func(t *testing.T) {
		env := newTestEnv(t, nil)
		id := env.loggedIn(t, completedEmail)
		_, err := env.courses.TopicContent(ctx, id, "week1", TopicContentInput{TopicTitle: " "})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
