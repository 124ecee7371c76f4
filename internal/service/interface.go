package service

import (
	"context"
	"errors"

	"github.com/quillworks/blog-service/internal/domain"
)

var (
	// ErrEmptyText rejects posts and comments without text.
	ErrEmptyText = errors.New("text must not be empty")
	// ErrNotPostAuthor refuses edits by anyone but the post's author.
	ErrNotPostAuthor = errors.New("only the author may edit a post")
)

// FeedService composes the paginated post feeds. Each call is stateless and
// request-scoped; the all-posts feed may be served from the result cache.
type FeedService interface {
	AllPosts(ctx context.Context, page int) (*domain.Feed, error)
	GroupPosts(ctx context.Context, slug string, page int) (*domain.GroupFeed, error)
	// AuthorPosts includes whether viewerID follows the author; the flag is
	// false when viewerID is empty (anonymous viewer).
	AuthorPosts(ctx context.Context, username string, page int, viewerID string) (*domain.ProfileFeed, error)
	FollowedPosts(ctx context.Context, viewerID string, page int) (*domain.Feed, error)
	// ClearFeedCache is the explicit administrative invalidation; nothing
	// else ever drops the cached feed before its TTL.
	ClearFeedCache(ctx context.Context) error
}

// PostService covers reading single posts and the authorization-gated
// mutations. The actor always becomes the author of created records.
type PostService interface {
	GetPost(ctx context.Context, id uint) (*domain.PostDetail, error)
	CreatePost(ctx context.Context, actor domain.Actor, input domain.PostInput) (domain.Post, error)
	EditPost(ctx context.Context, actor domain.Actor, id uint, input domain.PostInput) (domain.Post, error)
	AddComment(ctx context.Context, actor domain.Actor, postID uint, text string) (domain.Comment, error)
}

// FollowService maintains the directed follow graph, addressed by the
// followed author's username.
type FollowService interface {
	// Follow is idempotent; a self-follow is silently ignored.
	Follow(ctx context.Context, actor domain.Actor, username string) error
	// Unfollow is idempotent; unfollowing a non-followed author is a no-op.
	Unfollow(ctx context.Context, actor domain.Actor, username string) error
}
