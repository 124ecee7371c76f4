package service

import (
	"context"

	"github.com/quillworks/blog-service/internal/domain"
	"github.com/quillworks/blog-service/internal/repository"
	pkglog "github.com/quillworks/blog-service/pkg/log"
)

// followService implements FollowService.
type followService struct {
	authors repository.AuthorRepository
	follows repository.FollowRepository
}

// NewFollowService creates a new FollowService instance.
func NewFollowService(authors repository.AuthorRepository, follows repository.FollowRepository) FollowService {
	return &followService{authors: authors, follows: follows}
}

// Follow creates the edge from the actor to the named author. Re-following
// converges on the same single edge. A self-follow is silently ignored:
// no edge, no error.
func (s *followService) Follow(ctx context.Context, actor domain.Actor, username string) error {
	author, err := s.authors.GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	if actor.ID == author.ID {
		logger := pkglog.Ctx(ctx)
		logger.Debug().
			Str("user_id", actor.ID).
			Msg("self-follow ignored")
		return nil
	}

	if err := s.authors.Ensure(ctx, actor); err != nil {
		return err
	}

	return s.follows.Follow(ctx, actor.ID, author.ID)
}

// Unfollow removes the edge from the actor to the named author if present.
func (s *followService) Unfollow(ctx context.Context, actor domain.Actor, username string) error {
	author, err := s.authors.GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	return s.follows.Unfollow(ctx, actor.ID, author.ID)
}

// Ensure interface is satisfied at compile time.
var _ FollowService = (*followService)(nil)
