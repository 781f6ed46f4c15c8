package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_CreatesFeedRow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u, err := env.users.Register(ctx, "fresh", "password", "hi")
	require.NoError(t, err)

	entries, err := env.timeline.Materialized(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRegister_UsernameTaken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.users.Register(ctx, "taken", "password", "")
	require.NoError(t, err)
	_, err = env.users.Register(ctx, "taken", "different", "")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAuthenticate_IssuesParsableToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u, err := env.users.Register(ctx, "loginuser", "password", "")
	require.NoError(t, err)

	token, got, err := env.users.Authenticate(ctx, "loginuser", "password")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	parsed, err := env.users.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, parsed)

	_, _, err = env.users.Authenticate(ctx, "loginuser", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfile_MergesOnlyProvidedFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u, err := env.users.Register(ctx, "before", "password", "old bio")
	require.NoError(t, err)

	bio := "new bio"
	got, err := env.users.UpdateProfile(ctx, u.ID, ProfileUpdate{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "before", got.Username)
	assert.Equal(t, "new bio", got.Bio)

	name := "after"
	got, err = env.users.UpdateProfile(ctx, u.ID, ProfileUpdate{Username: &name})
	require.NoError(t, err)
	assert.Equal(t, "after", got.Username)
	assert.Equal(t, "new bio", got.Bio)
}

// Account deletion cascades posts first: after the author is gone, no
// follower feed may still hold any of the author's freets.
func TestDeleteAccount_Cascade(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.newUser(t)
	follower := env.newUser(t)
	require.NoError(t, env.relations.Follow(ctx, follower.ID, author.ID))
	require.NoError(t, env.relations.Follow(ctx, author.ID, follower.ID))

	p1, err := env.freets.Create(ctx, author.ID, "gone soon", "", nil)
	require.NoError(t, err)
	p2, err := env.freets.Create(ctx, author.ID, "also gone", "", nil)
	require.NoError(t, err)
	theirs, err := env.freets.Create(ctx, follower.ID, "stays", "", nil)
	require.NoError(t, err)

	_, err = env.collections.Create(ctx, author.ID, "saved")
	require.NoError(t, err)

	require.NoError(t, env.users.DeleteAccount(ctx, author.ID))

	// follower's feed holds none of the deleted author's freets
	ids := env.feedIDs(t, follower.ID)
	assert.NotContains(t, ids, p1.ID)
	assert.NotContains(t, ids, p2.ID)
	assert.Contains(t, ids, theirs.ID)

	// user, freets, feed, edges and collections are all gone
	_, err = env.users.GetByID(ctx, author.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = env.freets.GetByID(ctx, p1.ID)
	assert.ErrorIs(t, err, ErrFreetNotFound)
	_, err = env.timeline.Materialized(ctx, author.ID)
	assert.ErrorIs(t, err, ErrFeedNotFound)

	followers, err := env.relations.ListFollowers(ctx, follower.ID, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, followers)

	cols, err := env.collections.ListByUser(ctx, author.ID)
	require.NoError(t, err)
	assert.Empty(t, cols)
}
