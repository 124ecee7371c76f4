package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/quillworks/blog-service/internal/domain"
	"github.com/quillworks/blog-service/internal/repository"
	pkglog "github.com/quillworks/blog-service/pkg/log"
	"github.com/quillworks/blog-service/pkg/storage"
)

// postService implements PostService.
type postService struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
	authors  repository.AuthorRepository
	store    storage.Storage
}

// NewPostService creates a new PostService instance.
func NewPostService(
	posts repository.PostRepository,
	comments repository.CommentRepository,
	authors repository.AuthorRepository,
	store storage.Storage,
) PostService {
	return &postService{
		posts:    posts,
		comments: comments,
		authors:  authors,
		store:    store,
	}
}

// GetPost returns one post with its comments, newest comment first.
func (s *postService) GetPost(ctx context.Context, id uint) (*domain.PostDetail, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ByPost(ctx, id)
	if err != nil {
		return nil, err
	}

	return &domain.PostDetail{Post: post, Comments: comments}, nil
}

// CreatePost stores a new post owned by the actor. Whatever author identity
// the submission carried is ignored; the actor is the author.
func (s *postService) CreatePost(ctx context.Context, actor domain.Actor, input domain.PostInput) (domain.Post, error) {
	if strings.TrimSpace(input.Text) == "" {
		return domain.Post{}, ErrEmptyText
	}

	if err := s.authors.Ensure(ctx, actor); err != nil {
		return domain.Post{}, err
	}

	imageKey := ""
	if input.Image != nil {
		key, err := s.storeImage(ctx, input.Image)
		if err != nil {
			return domain.Post{}, err
		}
		imageKey = key
	}

	post, err := s.posts.Create(ctx, actor.ID, input.Text, input.GroupID, imageKey)
	if err != nil {
		return domain.Post{}, err
	}

	logger := pkglog.Ctx(ctx)
	logger.Info().
		Uint("post_id", post.ID).
		Str("author_id", actor.ID).
		Msg("post created")

	return post, nil
}

// EditPost applies changes to an existing post, but only for its author.
// A non-author edit changes nothing and returns ErrNotPostAuthor.
func (s *postService) EditPost(ctx context.Context, actor domain.Actor, id uint, input domain.PostInput) (domain.Post, error) {
	if strings.TrimSpace(input.Text) == "" {
		return domain.Post{}, ErrEmptyText
	}

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return domain.Post{}, err
	}

	if post.Author.ID != actor.ID {
		return domain.Post{}, ErrNotPostAuthor
	}

	var imageKey *string
	if input.Image != nil {
		key, err := s.storeImage(ctx, input.Image)
		if err != nil {
			return domain.Post{}, err
		}
		imageKey = &key
	}

	return s.posts.Update(ctx, id, input.Text, input.GroupID, imageKey)
}

// AddComment stores a new comment by the actor on an existing post.
func (s *postService) AddComment(ctx context.Context, actor domain.Actor, postID uint, text string) (domain.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return domain.Comment{}, ErrEmptyText
	}

	// Resolve the post first so commenting on a missing post is NotFound,
	// not a dangling foreign key.
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return domain.Comment{}, err
	}

	if err := s.authors.Ensure(ctx, actor); err != nil {
		return domain.Comment{}, err
	}

	return s.comments.Create(ctx, postID, actor.ID, text)
}

// storeImage writes the uploaded bytes and returns the storage key that is
// kept on the post as the image reference.
func (s *postService) storeImage(ctx context.Context, img *domain.ImageUpload) (string, error) {
	key := "posts/" + uuid.New().String() + filepath.Ext(img.Filename)
	if err := s.store.Write(ctx, key, img.Reader, img.Size, img.ContentType); err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}
	return key, nil
}

// Ensure interface is satisfied at compile time.
var _ PostService = (*postService)(nil)
