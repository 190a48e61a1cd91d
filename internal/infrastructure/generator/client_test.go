package generator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"learnpath/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GeneratePlan(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/courses/generate", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var in PlanRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, 3, in.Experience)
		assert.Equal(t, "Platform Engineer", in.DesiredRole)

		_, _ = w.Write([]byte(`{"content":[{"title":"Week 1: Go","tasks":[{"id":"a","title":"Tour of Go"}]}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", time.Second, logging.Nop())
	p, err := c.GeneratePlan(context.Background(), PlanRequest{Experience: 3, CurrentStack: "Python", DesiredRole: "Platform Engineer"})
	require.NoError(t, err)
	require.Len(t, p, 1)
	assert.Equal(t, "Tour of Go", p[0].Tasks[0].Title)
}

func TestClient_GenerateQuiz(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/quiz/generate", r.URL.Path)
		_, _ = w.Write([]byte(`{"questions":[{"id":1,"question":"q","options":["a","b"],"correct_answer":1}]}`))
	}))
	defer srv.Close()

	qs, err := NewClient(srv.URL, time.Second, logging.Nop()).GenerateQuiz(context.Background(), QuizRequest{Course: "Go", Topic: "channels"})
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, 1, qs[0].CorrectAnswer)
}

func TestClient_TopicContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in TopicRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "Go", in.CourseTitle)
		_, _ = w.Write([]byte(`{"content":{"title":"Channels","description":"d"},"quizAvailable":true}`))
	}))
	defer srv.Close()

	tc, err := NewClient(srv.URL, time.Second, logging.Nop()).TopicContent(context.Background(), TopicRequest{CourseTitle: "Go", TopicTitle: "Channels"})
	require.NoError(t, err)
	assert.Equal(t, "Channels", tc.Title)
	assert.True(t, tc.QuizAvailable)
	assert.NotNil(t, tc.Sections)
	assert.NotNil(t, tc.ExternalLinks)
}

func TestClient_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second, logging.Nop()).GeneratePlan(context.Background(), PlanRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=502")
}

func TestClient_EmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second, logging.Nop()).GeneratePlan(context.Background(), PlanRequest{})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestClient_Disabled(t *testing.T) {
	c := NewClient("  ", time.Second, nil)
	_, err := c.GeneratePlan(context.Background(), PlanRequest{})
	assert.ErrorIs(t, err, ErrDisabled)
	_, err = c.GenerateQuiz(context.Background(), QuizRequest{})
	assert.ErrorIs(t, err, ErrDisabled)
	_, err = c.TopicContent(context.Background(), TopicRequest{})
	assert.ErrorIs(t, err, ErrDisabled)
}
