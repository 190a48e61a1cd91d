package repository

import (
	"context"
	"sync"
	"time"

	"learnpath/internal/domain/session"

	"github.com/google/uuid"
)

type SessionRepository interface {
	Load(ctx context.Context, id uuid.UUID) (session.State, bool, error)
	Save(ctx context.Context, id uuid.UUID, st session.State) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type memorySession struct {
	state   session.State
	savedAt time.Time
}

// MemorySessionRepository keeps snapshots in process memory. Entries older
// than ttl are treated as absent and swept at most once per ttl on Save.
type MemorySessionRepository struct {
	mu        sync.RWMutex
	items     map[uuid.UUID]memorySession
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
}

func NewMemorySessionRepository(ttl time.Duration) *MemorySessionRepository {
	return &MemorySessionRepository{
		items: make(map[uuid.UUID]memorySession),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (r *MemorySessionRepository) Load(_ context.Context, id uuid.UUID) (session.State, bool, error) {
	r.mu.RLock()
	it, ok := r.items[id]
	r.mu.RUnlock()
	if !ok {
		return session.State{}, false, nil
	}
	if r.ttl > 0 && r.now().Sub(it.savedAt) > r.ttl {
		r.mu.Lock()
		delete(r.items, id)
		r.mu.Unlock()
		return session.State{}, false, nil
	}
	return it.state, true, nil
}

func (r *MemorySessionRepository) Save(_ context.Context, id uuid.UUID, st session.State) error {
	now := r.now()
	r.mu.Lock()
	r.items[id] = memorySession{state: st, savedAt: now}
	if r.ttl > 0 && now.Sub(r.lastSweep) >= r.ttl {
		r.sweepLocked(now)
	}
	r.mu.Unlock()
	return nil
}

// Sweep removes expired entries and reports how many were removed.
func (r *MemorySessionRepository) Sweep() int {
	if r.ttl <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sweepLocked(r.now())
}

func (r *MemorySessionRepository) sweepLocked(now time.Time) int {
	n := 0
	for id, it := range r.items {
		if now.Sub(it.savedAt) > r.ttl {
			delete(r.items, id)
			n++
		}
	}
	r.lastSweep = now
	return n
}

func (r *MemorySessionRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

func (r *MemorySessionRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	delete(r.items, id)
	r.mu.Unlock()
	return nil
}

// JSONStore is the subset of the redis cache the session repository needs.
type JSONStore interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type RedisSessionRepository struct {
	store JSONStore
	ttl   time.Duration
}

func NewRedisSessionRepository(store JSONStore, ttl time.Duration) *RedisSessionRepository {
	return &RedisSessionRepository{store: store, ttl: ttl}
}

func SessionKey(id uuid.UUID) string {
	return "session:" + id.String()
}

func (r *RedisSessionRepository) Load(ctx context.Context, id uuid.UUID) (session.State, bool, error) {
	var st session.State
	ok, err := r.store.GetJSON(ctx, SessionKey(id), &st)
	if err != nil || !ok {
		return session.State{}, false, err
	}
	return st, true, nil
}

func (r *RedisSessionRepository) Save(ctx context.Context, id uuid.UUID, st session.State) error {
	return r.store.SetJSON(ctx, SessionKey(id), st, r.ttl)
}

func (r *RedisSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.Delete(ctx, SessionKey(id))
}

var (
	_ SessionRepository = (*MemorySessionRepository)(nil)
	_ SessionRepository = (*RedisSessionRepository)(nil)
)
