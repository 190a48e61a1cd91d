package usecase

import (
	"context"

	"learnpath/internal/domain/course"
	"learnpath/internal/domain/leaderboard"
	"learnpath/internal/domain/notification"
	"learnpath/internal/domain/plan"
	"learnpath/internal/domain/quiz"
	"learnpath/internal/domain/user"
	"learnpath/internal/mockapi"

	"github.com/google/uuid"
)

// Backend is the remote learning-platform API. mockapi.Backend implements it.
type Backend interface {
	Login(ctx context.Context, email, password string) (user.User, error)
	SubmitOnboarding(ctx context.Context, data user.OnboardingData) (plan.LearningPlan, error)
	SubmitUserInfo(ctx context.Context, data user.UserInfoData) error
	GetCourses(ctx context.Context, category course.Category) ([]course.Course, error)
	SearchCourses(ctx context.Context, query string) ([]course.Course, error)
	GetUserProgress(ctx context.Context, userID int) (user.Progress, error)
	GetLeaderboard(ctx context.Context) ([]leaderboard.Entry, error)
	GetNotifications(ctx context.Context) ([]notification.Notification, error)
	MarkNotificationRead(ctx context.Context, id int) error
	PostChatMessage(ctx context.Context, message string) (mockapi.ChatReply, error)
	GetLearningPlan(ctx context.Context) (plan.LearningPlan, error)
	GetCourseDetail(ctx context.Context, courseID string) (course.Detail, error)
	GetQuiz(ctx context.Context, courseID string) (quiz.Quiz, error)
	SubmitQuizAnswers(ctx context.Context, courseID string, answers []int) (quiz.Result, error)
}

// EventPublisher pushes an event to every live connection of a session.
type EventPublisher interface {
	Publish(sessionID uuid.UUID, eventType string, payload any)
}

type nopPublisher struct{}

func (nopPublisher) Publish(uuid.UUID, string, any) {}

var _ Backend = (*mockapi.Backend)(nil)
