package cache

import (
	"context"
	"errors"
	"time"

	"github.com/quillworks/blog-service/internal/domain"
)

// ErrCacheMiss is returned when no live entry exists for the feed.
var ErrCacheMiss = errors.New("cache miss")

// FeedCache caches the composed, unpaginated all-posts feed under one fixed
// key. Entries are never invalidated by post writes; they die by TTL expiry
// or an explicit Clear. Readers may observe stale output until then.
type FeedCache interface {
	// GetAllPosts returns the cached feed, or ErrCacheMiss.
	GetAllPosts(ctx context.Context) ([]domain.Post, error)

	// SetAllPosts overwrites the cached feed with the given TTL. Concurrent
	// recomputation is allowed to race; last write wins.
	SetAllPosts(ctx context.Context, posts []domain.Post, ttl time.Duration) error

	// Clear drops the cached feed immediately.
	Clear(ctx context.Context) error

	Close() error
}
