package repository

import (
	"context"
	"errors"

	"github.com/quillworks/blog-service/internal/domain"
)

var (
	ErrAuthorNotFound = errors.New("author not found")
	ErrGroupNotFound  = errors.New("group not found")
	ErrPostNotFound   = errors.New("post not found")
)

// AuthorRepository defines persistence operations for author identities.
// Identity lives in the external auth provider; rows here exist so posts,
// comments and follow edges have something stable to reference.
type AuthorRepository interface {
	// Ensure upserts the author row for an authenticated actor.
	Ensure(ctx context.Context, actor domain.Actor) error
	GetByID(ctx context.Context, id string) (*domain.Author, error)
	GetByUsername(ctx context.Context, username string) (*domain.Author, error)
	// Delete removes the author and cascades to their posts (and those
	// posts' comments), their comments and their follow edges.
	Delete(ctx context.Context, id string) error
}

// GroupRepository defines persistence operations for groups.
type GroupRepository interface {
	Create(ctx context.Context, group *domain.Group) error
	GetBySlug(ctx context.Context, slug string) (*domain.Group, error)
	// Delete removes the group; referencing posts lose their group
	// reference but survive.
	Delete(ctx context.Context, id uint) error
}

// PostRepository defines persistence and feed selection for posts.
// All listing methods return the feed order (created_at descending,
// insertion order for ties) with author and group eagerly attached.
type PostRepository interface {
	Create(ctx context.Context, authorID, text string, groupID *uint, imageKey string) (domain.Post, error)
	// Update changes text, group and optionally the image of a post.
	// A nil imageKey keeps the current image. CreatedAt is never touched.
	Update(ctx context.Context, id uint, text string, groupID *uint, imageKey *string) (domain.Post, error)
	GetByID(ctx context.Context, id uint) (domain.Post, error)
	All(ctx context.Context) ([]domain.Post, error)
	ByGroup(ctx context.Context, groupID uint) ([]domain.Post, error)
	ByAuthor(ctx context.Context, authorID string) ([]domain.Post, error)
	ByAuthors(ctx context.Context, authorIDs []string) ([]domain.Post, error)
	// Delete removes the post and its comments.
	Delete(ctx context.Context, id uint) error
}

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	Create(ctx context.Context, postID uint, authorID, text string) (domain.Comment, error)
	// ByPost returns a post's comments newest first.
	ByPost(ctx context.Context, postID uint) ([]domain.Comment, error)
}

// FollowRepository defines persistence operations for follow edges.
// Follow and Unfollow are idempotent; repeated calls converge on the
// same graph state.
type FollowRepository interface {
	Follow(ctx context.Context, userID, authorID string) error
	Unfollow(ctx context.Context, userID, authorID string) error
	IsFollowing(ctx context.Context, userID, authorID string) (bool, error)
	// FollowedAuthorIDs returns the ids of every author the user follows.
	FollowedAuthorIDs(ctx context.Context, userID string) ([]string, error)
}
