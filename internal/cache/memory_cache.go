package cache

import (
	"context"
	"sync"
	"time"

	"github.com/quillworks/blog-service/internal/domain"
)

// MemoryFeedCache implements FeedCache in process memory. It is used when no
// Redis address is configured and in tests. Lookups are plain reads under a
// mutex with lazy expiry; no background sweeping.
type MemoryFeedCache struct {
	mu       sync.RWMutex
	posts    []domain.Post
	deadline time.Time
	set      bool
}

// NewMemoryFeedCache creates an empty in-memory feed cache.
func NewMemoryFeedCache() *MemoryFeedCache {
	return &MemoryFeedCache{}
}

// GetAllPosts returns the cached feed, or ErrCacheMiss when empty or expired.
func (c *MemoryFeedCache) GetAllPosts(ctx context.Context) ([]domain.Post, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.set || time.Now().After(c.deadline) {
		return nil, ErrCacheMiss
	}

	posts := make([]domain.Post, len(c.posts))
	copy(posts, c.posts)
	return posts, nil
}

// SetAllPosts overwrites the cached feed with the given TTL.
func (c *MemoryFeedCache) SetAllPosts(ctx context.Context, posts []domain.Post, ttl time.Duration) error {
	stored := make([]domain.Post, len(posts))
	copy(stored, posts)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.posts = stored
	c.deadline = time.Now().Add(ttl)
	c.set = true
	return nil
}

// Clear drops the cached feed.
func (c *MemoryFeedCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.posts = nil
	c.set = false
	return nil
}

// Close is a no-op for the in-memory cache.
func (c *MemoryFeedCache) Close() error { return nil }

// Ensure interface is satisfied at compile time.
var _ FeedCache = (*MemoryFeedCache)(nil)
