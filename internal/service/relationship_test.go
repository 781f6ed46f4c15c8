package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollow_WritesBothEdgeDirections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.newUser(t)
	b := env.newUser(t)
	require.NoError(t, env.relations.Follow(ctx, a.ID, b.ID))

	following, err := env.relations.ListFollowing(ctx, a.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID}, following)

	followers, err := env.relations.ListFollowers(ctx, b.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID}, followers)
}

func TestFollow_Rejections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.newUser(t)
	b := env.newUser(t)

	assert.ErrorIs(t, env.relations.Follow(ctx, a.ID, a.ID), ErrFollowSelf)
	assert.ErrorIs(t, env.relations.Follow(ctx, a.ID, "ghost"), ErrUserNotFound)

	require.NoError(t, env.relations.Follow(ctx, a.ID, b.ID))
	assert.ErrorIs(t, env.relations.Follow(ctx, a.ID, b.ID), ErrAlreadyFollowing)
}

func TestUnfollow_RemovesBothEdgeDirections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.newUser(t)
	b := env.newUser(t)

	assert.ErrorIs(t, env.relations.Unfollow(ctx, a.ID, b.ID), ErrNotFollowing)

	require.NoError(t, env.relations.Follow(ctx, a.ID, b.ID))
	require.NoError(t, env.relations.Unfollow(ctx, a.ID, b.ID))

	following, err := env.relations.ListFollowing(ctx, a.ID, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, following)

	followers, err := env.relations.ListFollowers(ctx, b.ID, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, followers)
}
