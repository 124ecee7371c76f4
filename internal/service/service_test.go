package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/quillworks/blog-service/internal/cache"
	"github.com/quillworks/blog-service/internal/domain"
	"github.com/quillworks/blog-service/internal/repository"
	"github.com/quillworks/blog-service/pkg/storage"
)

var testCtx = context.Background()

// testEnv wires real repositories over in-memory sqlite, the in-memory feed
// cache, and tempdir-backed local storage.
type testEnv struct {
	db       *gorm.DB
	cache    *cache.MemoryFeedCache
	store    *storage.LocalStorage
	authors  repository.AuthorRepository
	groups   repository.GroupRepository
	posts    repository.PostRepository
	comments repository.CommentRepository
	follows  repository.FollowRepository

	feeds   FeedService
	postSvc PostService
	follow  FollowService
}

func newTestEnv(t *testing.T, pageSize int, cacheTTL time.Duration) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&domain.AuthorModel{},
		&domain.GroupModel{},
		&domain.PostModel{},
		&domain.CommentModel{},
		&domain.FollowModel{},
	))

	store, err := storage.NewLocalStorage(storage.LocalConfig{BasePath: t.TempDir()})
	require.NoError(t, err)

	env := &testEnv{
		db:       db,
		cache:    cache.NewMemoryFeedCache(),
		store:    store,
		authors:  repository.NewGormAuthorRepository(db),
		groups:   repository.NewGormGroupRepository(db),
		posts:    repository.NewGormPostRepository(db),
		comments: repository.NewGormCommentRepository(db),
		follows:  repository.NewGormFollowRepository(db),
	}

	env.feeds = NewFeedService(env.posts, env.groups, env.authors, env.follows,
		env.cache, pageSize, cacheTTL)
	env.postSvc = NewPostService(env.posts, env.comments, env.authors, env.store)
	env.follow = NewFollowService(env.authors, env.follows)

	return env
}

func (e *testEnv) actor(t *testing.T, id, username string) domain.Actor {
	t.Helper()
	actor := domain.Actor{ID: id, Username: username}
	require.NoError(t, e.authors.Ensure(testCtx, actor))
	return actor
}

func (e *testEnv) group(t *testing.T, title, slug, description string) domain.Group {
	t.Helper()
	group := domain.Group{Title: title, Slug: slug, Description: description}
	require.NoError(t, e.groups.Create(testCtx, &group))
	return group
}

func (e *testEnv) post(t *testing.T, author domain.Actor, text string, groupID *uint) domain.Post {
	t.Helper()
	post, err := e.postSvc.CreatePost(testCtx, author, domain.PostInput{Text: text, GroupID: groupID})
	require.NoError(t, err)
	return post
}
