package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillworks/blog-service/internal/domain"
)

func TestPostFeedOrdering(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormPostRepository(db)

	seedAuthor(t, db, "a1", "alice")
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	seedPost(t, db, "a1", "oldest", nil, base)
	seedPost(t, db, "a1", "newest", nil, base.Add(2*time.Hour))
	// Two posts sharing a timestamp keep insertion order between them.
	seedPost(t, db, "a1", "tie first", nil, base.Add(time.Hour))
	seedPost(t, db, "a1", "tie second", nil, base.Add(time.Hour))

	posts, err := repo.All(testCtx)
	require.NoError(t, err)
	require.Len(t, posts, 4)

	texts := []string{posts[0].Text, posts[1].Text, posts[2].Text, posts[3].Text}
	assert.Equal(t, []string{"newest", "tie first", "tie second", "oldest"}, texts)

	// Author is attached without extra lookups.
	assert.Equal(t, "alice", posts[0].Author.Username)
}

func TestPostFeedPartition(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormPostRepository(db)

	seedAuthor(t, db, "a1", "alice")
	seedAuthor(t, db, "a2", "bob")
	g1 := seedGroup(t, db, "Go", "go")
	g2 := seedGroup(t, db, "Rust", "rust")

	now := time.Now()
	seedPost(t, db, "a1", "go post", &g1, now)
	seedPost(t, db, "a1", "rust post", &g2, now.Add(time.Second))
	seedPost(t, db, "a2", "free post", nil, now.Add(2*time.Second))

	goPosts, err := repo.ByGroup(testCtx, g1)
	require.NoError(t, err)
	require.Len(t, goPosts, 1)
	assert.Equal(t, "go post", goPosts[0].Text)
	require.NotNil(t, goPosts[0].Group)
	assert.Equal(t, "Go", goPosts[0].Group.Title)

	rustPosts, err := repo.ByGroup(testCtx, g2)
	require.NoError(t, err)
	require.Len(t, rustPosts, 1)
	assert.Equal(t, "rust post", rustPosts[0].Text)

	// Every post shows up in exactly its author's feed.
	alicePosts, err := repo.ByAuthor(testCtx, "a1")
	require.NoError(t, err)
	assert.Len(t, alicePosts, 2)

	bobPosts, err := repo.ByAuthor(testCtx, "a2")
	require.NoError(t, err)
	require.Len(t, bobPosts, 1)
	assert.Equal(t, "free post", bobPosts[0].Text)
	assert.Nil(t, bobPosts[0].Group)
}

func TestPostsByAuthorsEmptySet(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormPostRepository(db)

	posts, err := repo.ByAuthors(testCtx, nil)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestPostUpdateKeepsCreatedAt(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormPostRepository(db)

	seedAuthor(t, db, "a1", "alice")
	g := seedGroup(t, db, "Go", "go")
	createdAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	id := seedPost(t, db, "a1", "before", &g, createdAt)

	updated, err := repo.Update(testCtx, id, "after", nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "after", updated.Text)
	assert.Nil(t, updated.Group)
	assert.True(t, updated.CreatedAt.Equal(createdAt), "created_at must never change")
}

func TestPostUpdateUnknownID(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormPostRepository(db)

	_, err := repo.Update(testCtx, 9999, "text", nil, nil)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestPostDeleteCascadesComments(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormPostRepository(db)

	seedAuthor(t, db, "a1", "alice")
	seedAuthor(t, db, "a2", "bob")
	id := seedPost(t, db, "a1", "post", nil, time.Now())
	keep := seedPost(t, db, "a1", "other", nil, time.Now())
	seedComment(t, db, id, "a2", "first")
	seedComment(t, db, id, "a1", "second")
	seedComment(t, db, keep, "a2", "unrelated")

	require.NoError(t, repo.Delete(testCtx, id))

	_, err := repo.GetByID(testCtx, id)
	assert.ErrorIs(t, err, ErrPostNotFound)
	assert.Equal(t, int64(1), count[domain.CommentModel](t, db))

	// Deleting again reports the post as gone.
	assert.ErrorIs(t, repo.Delete(testCtx, id), ErrPostNotFound)
}

func TestGroupDeleteClearsPostReference(t *testing.T) {
	db := newTestDB(t)
	groups := NewGormGroupRepository(db)
	posts := NewGormPostRepository(db)

	seedAuthor(t, db, "a1", "alice")
	g := seedGroup(t, db, "Go", "go")
	id := seedPost(t, db, "a1", "post", &g, time.Now())

	require.NoError(t, groups.Delete(testCtx, g))

	post, err := posts.GetByID(testCtx, id)
	require.NoError(t, err, "the post must survive its group")
	assert.Nil(t, post.Group)

	_, err = groups.GetBySlug(testCtx, "go")
	assert.ErrorIs(t, err, ErrGroupNotFound)
}

func TestAuthorDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	authors := NewGormAuthorRepository(db)
	posts := NewGormPostRepository(db)
	follows := NewGormFollowRepository(db)

	seedAuthor(t, db, "a1", "alice")
	seedAuthor(t, db, "a2", "bob")

	alicePost := seedPost(t, db, "a1", "alice post", nil, time.Now())
	bobPost := seedPost(t, db, "a2", "bob post", nil, time.Now())
	// Bob's comment on Alice's post dies with the post; Alice's comment on
	// Bob's post dies with Alice.
	seedComment(t, db, alicePost, "a2", "bob on alice")
	seedComment(t, db, bobPost, "a1", "alice on bob")
	bobComment := seedComment(t, db, bobPost, "a2", "bob on bob")

	require.NoError(t, follows.Follow(testCtx, "a2", "a1"))
	require.NoError(t, follows.Follow(testCtx, "a1", "a2"))

	require.NoError(t, authors.Delete(testCtx, "a1"))

	_, err := authors.GetByUsername(testCtx, "alice")
	assert.ErrorIs(t, err, ErrAuthorNotFound)

	_, err = posts.GetByID(testCtx, alicePost)
	assert.ErrorIs(t, err, ErrPostNotFound)

	survivor, err := posts.GetByID(testCtx, bobPost)
	require.NoError(t, err)
	assert.Equal(t, "bob post", survivor.Text)

	var remaining []domain.CommentModel
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, bobComment, remaining[0].ID)

	assert.Equal(t, int64(0), count[domain.FollowModel](t, db))
}

func TestAuthorEnsureIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	authors := NewGormAuthorRepository(db)

	actor := domain.Actor{ID: "a1", Username: "alice"}
	require.NoError(t, authors.Ensure(testCtx, actor))
	require.NoError(t, authors.Ensure(testCtx, actor))
	assert.Equal(t, int64(1), count[domain.AuthorModel](t, db))

	// A rename at the identity provider propagates.
	require.NoError(t, authors.Ensure(testCtx, domain.Actor{ID: "a1", Username: "alicia"}))
	author, err := authors.GetByID(testCtx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "alicia", author.Username)
}
