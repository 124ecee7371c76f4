package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillworks/blog-service/internal/domain"
)

func TestFollowIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormFollowRepository(db)

	require.NoError(t, repo.Follow(testCtx, "u1", "a1"))
	require.NoError(t, repo.Follow(testCtx, "u1", "a1"))

	assert.Equal(t, int64(1), count[domain.FollowModel](t, db), "re-following must not duplicate the edge")

	following, err := repo.IsFollowing(testCtx, "u1", "a1")
	require.NoError(t, err)
	assert.True(t, following)
}

func TestUnfollowIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormFollowRepository(db)

	require.NoError(t, repo.Follow(testCtx, "u1", "a1"))
	require.NoError(t, repo.Unfollow(testCtx, "u1", "a1"))
	require.NoError(t, repo.Unfollow(testCtx, "u1", "a1"))

	assert.Equal(t, int64(0), count[domain.FollowModel](t, db))

	following, err := repo.IsFollowing(testCtx, "u1", "a1")
	require.NoError(t, err)
	assert.False(t, following)
}

func TestFollowEdgesAreDirected(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormFollowRepository(db)

	require.NoError(t, repo.Follow(testCtx, "u1", "a1"))

	back, err := repo.IsFollowing(testCtx, "a1", "u1")
	require.NoError(t, err)
	assert.False(t, back, "a follow edge must not imply the reverse edge")
}

func TestFollowedAuthorIDs(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormFollowRepository(db)

	require.NoError(t, repo.Follow(testCtx, "u1", "a1"))
	require.NoError(t, repo.Follow(testCtx, "u1", "a2"))
	require.NoError(t, repo.Follow(testCtx, "u2", "a3"))

	ids, err := repo.FollowedAuthorIDs(testCtx, "u1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a1", "a2"}, ids)

	none, err := repo.FollowedAuthorIDs(testCtx, "u3")
	require.NoError(t, err)
	assert.Empty(t, none)
}
