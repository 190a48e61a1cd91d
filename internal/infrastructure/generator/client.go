package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"learnpath/internal/domain/course"
	"learnpath/internal/domain/plan"
	"learnpath/internal/domain/quiz"
	"learnpath/internal/logging"
)

var (
	ErrDisabled      = errors.New("content generator disabled")
	ErrEmptyResponse = errors.New("content generator returned no content")
)

// Client talks to the placeholder content-generation service.
type Client interface {
	GeneratePlan(ctx context.Context, in PlanRequest) (plan.LearningPlan, error)
	GenerateQuiz(ctx context.Context, in QuizRequest) ([]quiz.Question, error)
	TopicContent(ctx context.Context, in TopicRequest) (course.TopicContent, error)
}

type PlanRequest struct {
	Experience   int    `json:"experience"`
	CurrentStack string `json:"current_stack"`
	DesiredRole  string `json:"desired_role"`
}

type QuizRequest struct {
	Course string `json:"course"`
	Topic  string `json:"topic"`
}

type TopicRequest struct {
	CourseTitle string `json:"courseTitle"`
	TopicTitle  string `json:"topicTitle"`
}

type planResponse struct {
	Content plan.LearningPlan `json:"content"`
}

type quizResponse struct {
	Questions []quiz.Question `json:"questions"`
}

type topicResponse struct {
	Content       *course.TopicContent `json:"content"`
	QuizAvailable bool                 `json:"quizAvailable"`
}

type httpClient struct {
	baseURL string
	client  *http.Client
	logger  logging.Logger
}

// NewClient returns a client for baseURL. An empty baseURL yields a client
// whose every call fails with ErrDisabled.
func NewClient(baseURL string, timeout time.Duration, logger logging.Logger) Client {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return disabledClient{}
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (c *httpClient) GeneratePlan(ctx context.Context, in PlanRequest) (plan.LearningPlan, error) {
	var out planResponse
	if err := c.post(ctx, "/api/courses/generate", in, &out); err != nil {
		return nil, err
	}
	if len(out.Content) == 0 {
		return nil, ErrEmptyResponse
	}
	return out.Content, nil
}

func (c *httpClient) GenerateQuiz(ctx context.Context, in QuizRequest) ([]quiz.Question, error) {
	var out quizResponse
	if err := c.post(ctx, "/api/quiz/generate", in, &out); err != nil {
		return nil, err
	}
	if len(out.Questions) == 0 {
		return nil, ErrEmptyResponse
	}
	return out.Questions, nil
}

func (c *httpClient) TopicContent(ctx context.Context, in TopicRequest) (course.TopicContent, error) {
	var out topicResponse
	if err := c.post(ctx, "/api/course/content", in, &out); err != nil {
		return course.TopicContent{}, err
	}
	if out.Content == nil {
		return course.TopicContent{}, ErrEmptyResponse
	}
	tc := *out.Content
	tc.QuizAvailable = out.QuizAvailable
	if tc.Sections == nil {
		tc.Sections = []course.Section{}
	}
	if tc.ExternalLinks == nil {
		tc.ExternalLinks = []course.Link{}
	}
	return tc, nil
}

func (c *httpClient) post(ctx context.Context, path string, body any, out any) error {
	endpoint := c.baseURL + path

	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		bodyStr := strings.TrimSpace(string(rb))
		if c.logger != nil {
			c.logger.Warn(ctx, "generator request failed", "endpoint", endpoint, "status", resp.StatusCode, "body", bodyStr)
		}
		return fmt.Errorf("generator request failed: status=%d body=%s", resp.StatusCode, bodyStr)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode generator response: %w", err)
	}
	return nil
}

type disabledClient struct{}

func (disabledClient) GeneratePlan(context.Context, PlanRequest) (plan.LearningPlan, error) {
	return nil, ErrDisabled
}

func (disabledClient) GenerateQuiz(context.Context, QuizRequest) ([]quiz.Question, error) {
	return nil, ErrDisabled
}

func (disabledClient) TopicContent(context.Context, TopicRequest) (course.TopicContent, error) {
	return course.TopicContent{}, ErrDisabled
}

var (
	_ Client = (*httpClient)(nil)
	_ Client = disabledClient{}
)
