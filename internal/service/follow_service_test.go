package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillworks/blog-service/internal/domain"
	"github.com/quillworks/blog-service/internal/repository"
)

func TestFollowAndUnfollow(t *testing.T) {
	env := newTestEnv(t, 10, time.Minute)
	env.actor(t, "a1", "alice")
	bob := env.actor(t, "b1", "bob")

	require.NoError(t, env.follow.Follow(testCtx, bob, "alice"))

	following, err := env.follows.IsFollowing(testCtx, bob.ID, "a1")
	require.NoError(t, err)
	assert.True(t, following)

	// Following is directed; alice does not follow bob back.
	reverse, err := env.follows.IsFollowing(testCtx, "a1", bob.ID)
	require.NoError(t, err)
	assert.False(t, reverse)

	require.NoError(t, env.follow.Unfollow(testCtx, bob, "alice"))

	following, err = env.follows.IsFollowing(testCtx, bob.ID, "a1")
	require.NoError(t, err)
	assert.False(t, following)
}

func TestFollowIsIdempotent(t *testing.T) {
	env := newTestEnv(t, 10, time.Minute)
	env.actor(t, "a1", "alice")
	bob := env.actor(t, "b1", "bob")

	require.NoError(t, env.follow.Follow(testCtx, bob, "alice"))
	require.NoError(t, env.follow.Follow(testCtx, bob, "alice"))

	ids, err := env.follows.FollowedAuthorIDs(testCtx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"a1"}, ids)
}

func TestUnfollowWithoutFollowing(t *testing.T) {
	env := newTestEnv(t, 10, time.Minute)
	env.actor(t, "a1", "alice")
	bob := env.actor(t, "b1", "bob")

	assert.NoError(t, env.follow.Unfollow(testCtx, bob, "alice"))
}

func TestSelfFollowSilentlyIgnored(t *testing.T) {
	env := newTestEnv(t, 10, time.Minute)
	alice := env.actor(t, "a1", "alice")

	require.NoError(t, env.follow.Follow(testCtx, alice, "alice"))

	ids, err := env.follows.FollowedAuthorIDs(testCtx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, ids, "a self-follow must not create an edge")
}

func TestFollowUnknownAuthor(t *testing.T) {
	env := newTestEnv(t, 10, time.Minute)
	bob := env.actor(t, "b1", "bob")

	err := env.follow.Follow(testCtx, bob, "nobody")
	assert.ErrorIs(t, err, repository.ErrAuthorNotFound)

	err = env.follow.Unfollow(testCtx, bob, "nobody")
	assert.ErrorIs(t, err, repository.ErrAuthorNotFound)
}

func TestFollowEnsuresActorIdentity(t *testing.T) {
	env := newTestEnv(t, 10, time.Minute)
	env.actor(t, "a1", "alice")

	// The follower has never posted; the follow call records their identity.
	carol := domain.Actor{ID: "c1", Username: "carol"}
	require.NoError(t, env.follow.Follow(testCtx, carol, "alice"))

	author, err := env.authors.GetByUsername(testCtx, "carol")
	require.NoError(t, err)
	assert.Equal(t, "c1", author.ID)
}
