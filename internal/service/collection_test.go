package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollection_SaveUnsaveKeepsOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.newUser(t)
	author := env.newUser(t)
	a, err := env.freets.Create(ctx, author.ID, "a", "", nil)
	require.NoError(t, err)
	b, err := env.freets.Create(ctx, author.ID, "b", "", nil)
	require.NoError(t, err)
	c, err := env.freets.Create(ctx, author.ID, "c", "", nil)
	require.NoError(t, err)

	col, err := env.collections.Create(ctx, owner.ID, "reading list")
	require.NoError(t, err)

	require.NoError(t, env.collections.Save(ctx, owner.ID, col.ID, a.ID))
	require.NoError(t, env.collections.Save(ctx, owner.ID, col.ID, b.ID))
	require.NoError(t, env.collections.Save(ctx, owner.ID, col.ID, c.ID))
	// saving again is a no-op, not a duplicate
	require.NoError(t, env.collections.Save(ctx, owner.ID, col.ID, b.ID))

	got, err := env.collections.Get(ctx, col.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID, b.ID, c.ID}, got.FreetIDs)

	require.NoError(t, env.collections.Unsave(ctx, owner.ID, col.ID, b.ID))
	got, err = env.collections.Get(ctx, col.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID, c.ID}, got.FreetIDs)
}

func TestCollection_NameUniquePerUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u1 := env.newUser(t)
	u2 := env.newUser(t)

	_, err := env.collections.Create(ctx, u1.ID, "favs")
	require.NoError(t, err)
	_, err = env.collections.Create(ctx, u1.ID, "favs")
	assert.ErrorIs(t, err, ErrCollectionExists)
	// same name under a different user is fine
	_, err = env.collections.Create(ctx, u2.ID, "favs")
	assert.NoError(t, err)
}

func TestCollection_OwnerOnlyMutation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.newUser(t)
	stranger := env.newUser(t)
	author := env.newUser(t)
	f, err := env.freets.Create(ctx, author.ID, "x", "", nil)
	require.NoError(t, err)

	col, err := env.collections.Create(ctx, owner.ID, "mine")
	require.NoError(t, err)

	assert.ErrorIs(t, env.collections.Save(ctx, stranger.ID, col.ID, f.ID), ErrNotAuthor)
	assert.ErrorIs(t, env.collections.Delete(ctx, stranger.ID, col.ID), ErrNotAuthor)
}

func TestCollection_SaveRequiresFreet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.newUser(t)
	col, err := env.collections.Create(ctx, owner.ID, "ghosts")
	require.NoError(t, err)

	assert.ErrorIs(t, env.collections.Save(ctx, owner.ID, col.ID, "missing"), ErrFreetNotFound)
}
