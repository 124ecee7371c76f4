package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quillworks/blog-service/internal/domain"
)

// allPostsKey is the single fixed cache key for the all-posts feed.
// Deliberately not per-page and not per-viewer.
const allPostsKey = "feed:all:v1"

// RedisFeedCache implements FeedCache backed by Redis.
type RedisFeedCache struct {
	client *redis.Client
}

// NewRedisFeedCache creates a Redis-backed feed cache.
func NewRedisFeedCache(address, password string, db int) (*RedisFeedCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisFeedCache{client: client}, nil
}

// GetAllPosts returns the cached all-posts feed, or ErrCacheMiss.
func (c *RedisFeedCache) GetAllPosts(ctx context.Context) ([]domain.Post, error) {
	data, err := c.client.Get(ctx, allPostsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var posts []domain.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached feed: %w", err)
	}

	return posts, nil
}

// SetAllPosts overwrites the cached feed with the given TTL.
func (c *RedisFeedCache) SetAllPosts(ctx context.Context, posts []domain.Post, ttl time.Duration) error {
	data, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("failed to marshal feed: %w", err)
	}

	if err := c.client.Set(ctx, allPostsKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in redis: %w", err)
	}

	return nil
}

// Clear drops the cached feed.
func (c *RedisFeedCache) Clear(ctx context.Context) error {
	if err := c.client.Del(ctx, allPostsKey).Err(); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	return nil
}

// Close closes the Redis client.
func (c *RedisFeedCache) Close() error {
	return c.client.Close()
}

// Ensure interface is satisfied at compile time.
var _ FeedCache = (*RedisFeedCache)(nil)
