package usecase

import (
	"context"
	"errors"
	"strings"

	"learnpath/internal/domain/course"
	"learnpath/internal/infrastructure/generator"
	"learnpath/internal/logging"
	"learnpath/internal/mockapi"
	"learnpath/internal/search"

	"github.com/google/uuid"
)

var (
	ErrInvalidCategory = errors.New("invalid course category")
	ErrInvalidInput    = errors.New("invalid input")
)

type TopicContentInput struct {
	CourseTitle string
	TopicTitle  string
}

type Courses struct {
	sessions  *SessionManager
	backend   Backend
	search    *search.Service
	generator generator.Client
	logger    logging.Logger
}

func NewCoursesUsecase(sessions *SessionManager, backend Backend, searchSvc *search.Service, gen generator.Client, logger logging.Logger) *Courses {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Courses{
		sessions:  sessions,
		backend:   backend,
		search:    searchSvc,
		generator: gen,
		logger:    logger.With("component", "courses"),
	}
}

// Catalog lists the courses of one category.
func (u *Courses) Catalog(ctx context.Context, id uuid.UUID, category course.Category) ([]course.Course, error) {
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}
	if _, err := u.sessions.Dashboard(ctx, id); err != nil {
		return nil, err
	}
	return u.backend.GetCourses(ctx, category)
}

// Search runs a course search scoped to the session, so each session's
// newer query supersedes its older ones.
func (u *Courses) Search(ctx context.Context, id uuid.UUID, query string, seq uint64) (search.Result, error) {
	if _, err := u.sessions.Dashboard(ctx, id); err != nil {
		return search.Result{}, err
	}
	return u.search.Search(ctx, id.String(), query, seq)
}

// SessionIDs lists the sessions holding a search tracker.
func (u *Courses) SessionIDs() []uuid.UUID {
	keys := u.search.Keys()
	out := make([]uuid.UUID, 0, len(keys))
	for _, k := range keys {
		if id, err := uuid.Parse(k); err == nil {
			out = append(out, id)
		}
	}
	return out
}

// Forget drops the search tracker of a session.
func (u *Courses) Forget(id uuid.UUID) {
	u.search.Forget(id.String())
}

func (u *Courses) Detail(ctx context.Context, id uuid.UUID, courseID string) (course.Detail, error) {
	courseID = strings.TrimSpace(courseID)
	if courseID == "" {
		return course.Detail{}, ErrInvalidInput
	}
	if _, err := u.sessions.Dashboard(ctx, id); err != nil {
		return course.Detail{}, err
	}
	return u.backend.GetCourseDetail(ctx, courseID)
}

// TopicContent asks the generator for reading material and substitutes the
// canned content when generation fails. An empty course title is taken
// from the course detail.
func (u *Courses) TopicContent(ctx context.Context, id uuid.UUID, courseID string, in TopicContentInput) (course.TopicContent, error) {
	in.TopicTitle = strings.TrimSpace(in.TopicTitle)
	in.CourseTitle = strings.TrimSpace(in.CourseTitle)
	if in.TopicTitle == "" {
		return course.TopicContent{}, ErrInvalidInput
	}
	if _, err := u.sessions.Dashboard(ctx, id); err != nil {
		return course.TopicContent{}, err
	}

	if in.CourseTitle == "" {
		d, err := u.backend.GetCourseDetail(ctx, courseID)
		if err != nil {
			return course.TopicContent{}, err
		}
		in.CourseTitle = d.Title
	}

	tc, err := u.generator.TopicContent(ctx, generator.TopicRequest{
		CourseTitle: in.CourseTitle,
		TopicTitle:  in.TopicTitle,
	})
	if err == nil {
		return tc, nil
	}
	if ctx.Err() != nil {
		return course.TopicContent{}, ctx.Err()
	}
	if !errors.Is(err, generator.ErrDisabled) {
		u.logger.Warn(ctx, "topic content generation failed, using canned content", "course_id", courseID, "topic", in.TopicTitle, "error", err)
	}
	return mockapi.CannedTopicContent(in.CourseTitle, in.TopicTitle), nil
}
