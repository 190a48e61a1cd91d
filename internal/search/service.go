package search

import (
	"context"
	"errors"
	"sync"

	"learnpath/internal/domain/course"
)

type Backend interface {
	SearchCourses(ctx context.Context, query string) ([]course.Course, error)
}

type Result struct {
	Query   string          `json:"query"`
	Seq     uint64          `json:"seq"`
	Courses []course.Course `json:"courses"`
}

// Service runs course searches with one Tracker per client key, so a slow
// response never overwrites the answer to a newer query.
type Service struct {
	backend Backend

	mu       sync.Mutex
	trackers map[string]*Tracker
}

func NewService(backend Backend) *Service {
	return &Service{backend: backend, trackers: make(map[string]*Tracker)}
}

func (s *Service) tracker(key string) *Tracker {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.trackers[key]
	if !ok {
		t = &Tracker{}
		s.trackers[key] = t
	}
	return t
}

// Forget drops the tracker of a client key and cancels its search in
// flight, if any.
func (s *Service) Forget(key string) {
	s.mu.Lock()
	t, ok := s.trackers[key]
	delete(s.trackers, key)
	s.mu.Unlock()
	if ok {
		t.Close()
	}
}

// Keys lists the client keys that hold a tracker.
func (s *Service) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.trackers))
	for k := range s.trackers {
		out = append(out, k)
	}
	return out
}

// Search looks up courses for key. Queries shorter than MinQueryLength
// return an empty list without calling the backend; they still supersede
// any search in flight.
func (s *Service) Search(ctx context.Context, key, query string, seq uint64) (Result, error) {
	t := s.tracker(key)
	q := NormalizeQuery(query)

	gen, runCtx, err := t.Begin(ctx, seq)
	if err != nil {
		return Result{}, err
	}

	res := Result{Query: q, Seq: gen.Token, Courses: []course.Course{}}
	if !Searchable(q) {
		if err := t.Finish(gen); err != nil {
			return Result{}, err
		}
		return res, nil
	}

	courses, err := s.backend.SearchCourses(runCtx, q)
	if finishErr := t.Finish(gen); finishErr != nil {
		return Result{}, finishErr
	}
	if err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() == nil {
			return Result{}, ErrStale
		}
		return Result{}, err
	}

	res.Courses = courses
	return res, nil
}
