package search

import (
	"context"
	"errors"
	"sync"
)

// ErrStale marks a search whose result was superseded by a newer one.
var ErrStale = errors.New("search superseded by a newer request")

// Generation identifies one search request within a tracker.
type Generation struct {
	Token uint64
}

// Tracker orders the searches of one client. Each Begin supersedes every
// earlier generation and cancels the one still in flight.
type Tracker struct {
	mu     sync.Mutex
	latest uint64
	cancel context.CancelFunc
}

// Begin opens a new generation. A non-zero seq is the client's own sequence
// number and must be greater than every token seen so far.
func (t *Tracker) Begin(ctx context.Context, seq uint64) (Generation, context.Context, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	token := t.latest + 1
	if seq > 0 {
		if seq <= t.latest {
			return Generation{}, ctx, ErrStale
		}
		token = seq
	}

	if t.cancel != nil {
		t.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	t.latest = token
	t.cancel = cancel
	return Generation{Token: token}, runCtx, nil
}

// Finish closes a generation and reports ErrStale if a newer one began
// after it.
func (t *Tracker) Finish(g Generation) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if g.Token != t.latest {
		return ErrStale
	}
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	return nil
}

// Close cancels the generation in flight.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

func (t *Tracker) Latest() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.latest
}
