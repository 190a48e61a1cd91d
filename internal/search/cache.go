package search

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"learnpath/internal/domain/course"
	"learnpath/internal/logging"
)

const defaultCacheTTL = 5 * time.Minute

// Cache is a JSON key-value store with expiry.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// CachedBackend memoizes SearchCourses by query. Cache failures fall
// through to the backend.
type CachedBackend struct {
	next   Backend
	cache  Cache
	ttl    time.Duration
	logger logging.Logger
}

func NewCachedBackend(next Backend, cache Cache, ttl time.Duration, logger logging.Logger) *CachedBackend {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &CachedBackend{next: next, cache: cache, ttl: ttl, logger: logger}
}

func (b *CachedBackend) SearchCourses(ctx context.Context, query string) ([]course.Course, error) {
	key := CacheKey(query)

	var cached []course.Course
	hit, err := b.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		b.logger.Debug(ctx, "search cache read failed", "error", err)
	}
	if hit {
		return cached, nil
	}

	out, err := b.next.SearchCourses(ctx, query)
	if err != nil {
		return nil, err
	}
	if err := b.cache.SetJSON(ctx, key, out, b.ttl); err != nil {
		b.logger.Debug(ctx, "search cache write failed", "error", err)
	}
	return out, nil
}

// CacheKey folds case and whitespace since matching ignores both.
func CacheKey(query string) string {
	q := strings.Join(strings.Fields(strings.ToLower(query)), " ")
	sum := sha256.Sum256([]byte(q))
	return "courses:search:" + hex.EncodeToString(sum[:])
}
