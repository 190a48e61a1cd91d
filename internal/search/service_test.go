package search

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"learnpath/internal/domain/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	calls atomic.Int32
	// block, when set, holds queries equal to blockQuery until ctx is done.
	blockQuery string
	started    chan struct{}
}

func (f *fakeBackend) SearchCourses(ctx context.Context, query string) ([]course.Course, error) {
	f.calls.Add(1)
	if query == f.blockQuery {
		close(f.started)
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return []course.Course{{ID: 1, Title: query}}, nil
}

func TestNormalizeQuery(t *testing.T) {
	assert.Equal(t, "", NormalizeQuery("   "))
	assert.Equal(t, "SSL/TLS basics", NormalizeQuery("  SSL/TLS   basics "))
	assert.False(t, Searchable("a"))
	assert.True(t, Searchable("go"))
}

func TestSearch_ShortQuerySkipsBackend(t *testing.T) {
	be := &fakeBackend{}
	svc := NewService(be)

	for _, q := range []string{"", " ", "a", " b "} {
		res, err := svc.Search(context.Background(), "s1", q, 0)
		require.NoError(t, err)
		assert.Empty(t, res.Courses)
		assert.NotNil(t, res.Courses)
	}
	assert.Equal(t, int32(0), be.calls.Load())
}

func TestSearch_ReturnsResultsWithIncreasingSeq(t *testing.T) {
	svc := NewService(&fakeBackend{})

	first, err := svc.Search(context.Background(), "s1", "react", 0)
	require.NoError(t, err)
	second, err := svc.Search(context.Background(), "s1", "lambda", 0)
	require.NoError(t, err)

	require.Len(t, second.Courses, 1)
	assert.Equal(t, "lambda", second.Courses[0].Title)
	assert.Greater(t, second.Seq, first.Seq)
}

func TestSearch_ClientSeqMustIncrease(t *testing.T) {
	svc := NewService(&fakeBackend{})

	_, err := svc.Search(context.Background(), "s1", "react", 5)
	require.NoError(t, err)

	_, err = svc.Search(context.Background(), "s1", "react", 5)
	assert.ErrorIs(t, err, ErrStale)
	_, err = svc.Search(context.Background(), "s1", "react", 3)
	assert.ErrorIs(t, err, ErrStale)

	res, err := svc.Search(context.Background(), "s1", "react", 6)
	require.NoError(t, err)
	assert.Equal(t, uint64(6), res.Seq)
}

func TestSearch_NewerQueryDiscardsInFlight(t *testing.T) {
	be := &fakeBackend{blockQuery: "slow", started: make(chan struct{})}
	svc := NewService(be)

	var wg sync.WaitGroup
	var slowErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, slowErr = svc.Search(context.Background(), "s1", "slow", 0)
	}()

	select {
	case <-be.started:
	case <-time.After(2 * time.Second):
		t.Fatal("slow search never started")
	}

	res, err := svc.Search(context.Background(), "s1", "fast", 0)
	require.NoError(t, err)
	assert.Equal(t, "fast", res.Courses[0].Title)

	wg.Wait()
	assert.ErrorIs(t, slowErr, ErrStale)
}

func TestSearch_KeysAreIndependent(t *testing.T) {
	svc := NewService(&fakeBackend{})

	_, err := svc.Search(context.Background(), "s1", "react", 10)
	require.NoError(t, err)
	_, err = svc.Search(context.Background(), "s2", "react", 1)
	require.NoError(t, err)

	svc.Forget("s1")
	_, err = svc.Search(context.Background(), "s1", "react", 1)
	require.NoError(t, err)
}

func TestTracker_FinishStale(t *testing.T) {
	var tr Tracker
	g1, _, err := tr.Begin(context.Background(), 0)
	require.NoError(t, err)
	g2, _, err := tr.Begin(context.Background(), 0)
	require.NoError(t, err)

	assert.ErrorIs(t, tr.Finish(g1), ErrStale)
	assert.NoError(t, tr.Finish(g2))
	assert.Equal(t, uint64(2), tr.Latest())
}

func TestSearch_ForgetCancelsInFlight(t *testing.T) {
	backend := &fakeBackend{blockQuery: "slow", started: make(chan struct{})}
	svc := NewService(backend)

	errCh := make(chan error, 1)
	go func() {
		_, err := svc.Search(context.Background(), "s1", "slow", 0)
		errCh <- err
	}()
	<-backend.started
	assert.ElementsMatch(t, []string{"s1"}, svc.Keys())

	svc.Forget("s1")
	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, ErrStale)
	case <-time.After(time.Second):
		t.Fatal("search still running after Forget")
	}
	assert.Empty(t, svc.Keys())
}
