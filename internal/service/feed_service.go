package service

import (
	"context"
	"errors"
	"time"

	"github.com/quillworks/blog-service/internal/cache"
	"github.com/quillworks/blog-service/internal/domain"
	"github.com/quillworks/blog-service/internal/pagination"
	"github.com/quillworks/blog-service/internal/repository"
	pkglog "github.com/quillworks/blog-service/pkg/log"
)

// feedService implements FeedService.
type feedService struct {
	posts    repository.PostRepository
	groups   repository.GroupRepository
	authors  repository.AuthorRepository
	follows  repository.FollowRepository
	cache    cache.FeedCache
	pageSize int
	cacheTTL time.Duration
}

// NewFeedService creates a new FeedService instance.
func NewFeedService(
	posts repository.PostRepository,
	groups repository.GroupRepository,
	authors repository.AuthorRepository,
	follows repository.FollowRepository,
	feedCache cache.FeedCache,
	pageSize int,
	cacheTTL time.Duration,
) FeedService {
	return &feedService{
		posts:    posts,
		groups:   groups,
		authors:  authors,
		follows:  follows,
		cache:    feedCache,
		pageSize: pageSize,
		cacheTTL: cacheTTL,
	}
}

// toFeed converts a pagination page into the feed DTO.
func toFeed(page pagination.Page[domain.Post]) domain.Feed {
	return domain.Feed{
		Posts: page.Items,
		Meta: domain.PageMeta{
			Number:     page.Number,
			Size:       page.Size,
			TotalItems: page.TotalItems,
			TotalPages: page.TotalPages,
			HasPrev:    page.HasPrev,
			HasNext:    page.HasNext,
		},
	}
}

// AllPosts serves the all-posts feed, cache-first. A cache hit short-circuits
// the store entirely, so the page can be stale until the entry expires or is
// cleared; that trade-off is deliberate for the highest-traffic feed. Cache
// failures degrade to the store, never to an error.
func (s *feedService) AllPosts(ctx context.Context, page int) (*domain.Feed, error) {
	l := pkglog.Ctx(ctx)

	posts, err := s.cache.GetAllPosts(ctx)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			l.Warn().Err(err).Msg("feed cache read failed, falling back to store")
		}

		posts, err = s.posts.All(ctx)
		if err != nil {
			return nil, err
		}

		if err := s.cache.SetAllPosts(ctx, posts, s.cacheTTL); err != nil {
			l.Warn().Err(err).Msg("failed to populate feed cache")
		}
	}

	feed := toFeed(pagination.Paginate(posts, page, s.pageSize))
	return &feed, nil
}

// GroupPosts serves one group's feed; unknown slugs are NotFound.
func (s *feedService) GroupPosts(ctx context.Context, slug string, page int) (*domain.GroupFeed, error) {
	group, err := s.groups.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	posts, err := s.posts.ByGroup(ctx, group.ID)
	if err != nil {
		return nil, err
	}

	return &domain.GroupFeed{
		Group: *group,
		Feed:  toFeed(pagination.Paginate(posts, page, s.pageSize)),
	}, nil
}

// AuthorPosts serves one author's feed; unknown usernames are NotFound.
// The following flag reflects the viewer and stays false for anonymous reads.
func (s *feedService) AuthorPosts(ctx context.Context, username string, page int, viewerID string) (*domain.ProfileFeed, error) {
	author, err := s.authors.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	posts, err := s.posts.ByAuthor(ctx, author.ID)
	if err != nil {
		return nil, err
	}

	following := false
	if viewerID != "" {
		following, err = s.follows.IsFollowing(ctx, viewerID, author.ID)
		if err != nil {
			return nil, err
		}
	}

	return &domain.ProfileFeed{
		Author:    *author,
		Following: following,
		Feed:      toFeed(pagination.Paginate(posts, page, s.pageSize)),
	}, nil
}

// FollowedPosts serves the posts of every author the viewer follows.
// Following no one yields an empty page, not an error.
func (s *feedService) FollowedPosts(ctx context.Context, viewerID string, page int) (*domain.Feed, error) {
	authorIDs, err := s.follows.FollowedAuthorIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	posts, err := s.posts.ByAuthors(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	feed := toFeed(pagination.Paginate(posts, page, s.pageSize))
	return &feed, nil
}

// ClearFeedCache drops the cached all-posts feed.
func (s *feedService) ClearFeedCache(ctx context.Context) error {
	return s.cache.Clear(ctx)
}

// Ensure interface is satisfied at compile time.
var _ FeedService = (*feedService)(nil)
