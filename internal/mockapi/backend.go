package mockapi

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"learnpath/internal/domain/course"
	"learnpath/internal/domain/leaderboard"
	"learnpath/internal/domain/notification"
	"learnpath/internal/domain/plan"
	"learnpath/internal/domain/quiz"
	"learnpath/internal/domain/user"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrNotificationNotFound = errors.New("notification not found")
)

const (
	delayLogin             = 1000 * time.Millisecond
	delaySubmitOnboarding  = 1500 * time.Millisecond
	delaySubmitUserInfo    = 1500 * time.Millisecond
	delayGetCourses        = 800 * time.Millisecond
	delaySearchCourses     = 600 * time.Millisecond
	delayGetUserProgress   = 500 * time.Millisecond
	delayGetLeaderboard    = 700 * time.Millisecond
	delayGetNotifications  = 400 * time.Millisecond
	delayMarkNotification  = 300 * time.Millisecond
	delayPostChatMessage   = 1000 * time.Millisecond
	delayGetLearningPlan   = 600 * time.Millisecond
	delayGetCourseDetail   = 800 * time.Millisecond
	delayGetQuiz           = 600 * time.Millisecond
	delaySubmitQuizAnswers = 1000 * time.Millisecond
)

type credential struct {
	hash []byte
	user user.User
}

// Backend simulates the learning platform's remote API: every call waits a
// fixed latency and answers from canned fixtures. It holds no per-call state.
type Backend struct {
	scale float64
	now   func() time.Time
	pick  func(n int) int

	credentials map[string]credential
}

type Option func(*Backend)

// WithDelayScale multiplies every simulated latency; 0 disables it.
func WithDelayScale(scale float64) Option {
	return func(b *Backend) {
		if scale >= 0 {
			b.scale = scale
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(b *Backend) {
		if now != nil {
			b.now = now
		}
	}
}

// WithPicker overrides the chat reply selection.
func WithPicker(pick func(n int) int) Option {
	return func(b *Backend) {
		if pick != nil {
			b.pick = pick
		}
	}
}

func NewBackend(opts ...Option) (*Backend, error) {
	b := &Backend{
		scale: 1,
		now:   time.Now,
		pick:  rand.IntN,
	}
	for _, o := range opts {
		o(b)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(fixturePassword), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("hash fixture password: %w", err)
	}
	b.credentials = map[string]credential{
		"user@example.com":    {hash: hash, user: completedUserFixture()},
		"anirudh@example.com": {hash: hash, user: newUserFixture()},
	}
	return b, nil
}

func (b *Backend) wait(ctx context.Context, d time.Duration) error {
	d = time.Duration(float64(d) * b.scale)
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Login matches the canned credentials exactly. Any mismatch, including
// case or surrounding whitespace in the email, yields ErrInvalidCredentials.
func (b *Backend) Login(ctx context.Context, email, password string) (user.User, error) {
	if err := b.wait(ctx, delayLogin); err != nil {
		return user.User{}, err
	}

	cred, ok := b.credentials[email]
	if !ok {
		return user.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(cred.hash, []byte(password)); err != nil {
		return user.User{}, ErrInvalidCredentials
	}
	return cred.user.Clone(), nil
}

// SubmitOnboarding accepts the intake and returns the canned plan.
func (b *Backend) SubmitOnboarding(ctx context.Context, _ user.OnboardingData) (plan.LearningPlan, error) {
	if err := b.wait(ctx, delaySubmitOnboarding); err != nil {
		return nil, err
	}
	return CannedLearningPlan(), nil
}

func (b *Backend) SubmitUserInfo(ctx context.Context, _ user.UserInfoData) error {
	return b.wait(ctx, delaySubmitUserInfo)
}

// GetCourses returns the catalog of a category; unknown categories are empty.
func (b *Backend) GetCourses(ctx context.Context, category course.Category) ([]course.Course, error) {
	if err := b.wait(ctx, delayGetCourses); err != nil {
		return nil, err
	}
	switch category {
	case course.CategoryTechnical:
		return technicalCourses(), nil
	case course.CategorySecurity:
		return securityCourses(), nil
	default:
		return []course.Course{}, nil
	}
}

// SearchCourses is a case-insensitive substring match over title and
// description of every course.
func (b *Backend) SearchCourses(ctx context.Context, query string) ([]course.Course, error) {
	if err := b.wait(ctx, delaySearchCourses); err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	all := append(technicalCourses(), securityCourses()...)
	out := make([]course.Course, 0, len(all))
	for _, c := range all {
		if strings.Contains(strings.ToLower(c.Title), q) || strings.Contains(strings.ToLower(c.Description), q) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (b *Backend) GetUserProgress(ctx context.Context, _ int) (user.Progress, error) {
	if err := b.wait(ctx, delayGetUserProgress); err != nil {
		return user.Progress{}, err
	}
	return progressFixture(), nil
}

func (b *Backend) GetLeaderboard(ctx context.Context) ([]leaderboard.Entry, error) {
	if err := b.wait(ctx, delayGetLeaderboard); err != nil {
		return nil, err
	}
	return leaderboardFixture(), nil
}

func (b *Backend) GetNotifications(ctx context.Context) ([]notification.Notification, error) {
	if err := b.wait(ctx, delayGetNotifications); err != nil {
		return nil, err
	}
	return notificationsFixture(), nil
}

func (b *Backend) MarkNotificationRead(ctx context.Context, id int) error {
	if err := b.wait(ctx, delayMarkNotification); err != nil {
		return err
	}
	for _, n := range notificationsFixture() {
		if n.ID == id {
			return nil
		}
	}
	return ErrNotificationNotFound
}

type ChatReply struct {
	Response  string `json:"response"`
	Timestamp string `json:"timestamp"`
}

func (b *Backend) PostChatMessage(ctx context.Context, message string) (ChatReply, error) {
	if err := b.wait(ctx, delayPostChatMessage); err != nil {
		return ChatReply{}, err
	}
	tpl := chatTemplates[b.pick(len(chatTemplates))%len(chatTemplates)]
	return ChatReply{
		Response:  fmt.Sprintf(tpl, message),
		Timestamp: b.now().UTC().Format(time.RFC3339),
	}, nil
}

func (b *Backend) GetLearningPlan(ctx context.Context) (plan.LearningPlan, error) {
	if err := b.wait(ctx, delayGetLearningPlan); err != nil {
		return nil, err
	}
	return CannedLearningPlan(), nil
}

func (b *Backend) GetCourseDetail(ctx context.Context, courseID string) (course.Detail, error) {
	if err := b.wait(ctx, delayGetCourseDetail); err != nil {
		return course.Detail{}, err
	}
	return courseDetailFixture(courseID), nil
}

func (b *Backend) GetQuiz(ctx context.Context, courseID string) (quiz.Quiz, error) {
	if err := b.wait(ctx, delayGetQuiz); err != nil {
		return quiz.Quiz{}, err
	}
	return CannedQuiz(courseID), nil
}

// SubmitQuizAnswers grades answers against the course's canned quiz.
func (b *Backend) SubmitQuizAnswers(ctx context.Context, courseID string, answers []int) (quiz.Result, error) {
	if err := b.wait(ctx, delaySubmitQuizAnswers); err != nil {
		return quiz.Result{}, err
	}
	return quiz.Grade(CannedQuiz(courseID), answers), nil
}

func taskID(week, task int) string {
	return "w" + strconv.Itoa(week) + "-t" + strconv.Itoa(task)
}
