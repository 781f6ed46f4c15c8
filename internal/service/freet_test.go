package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFreet_ValidationPrecedesMutation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.newUser(t)
	follower := env.newUser(t)
	require.NoError(t, env.relations.Follow(ctx, follower.ID, author.ID))

	cases := []struct {
		name       string
		content    string
		readmore   string
		categories []string
		wantErr    error
	}{
		{"empty content", "", "", nil, ErrEmptyContent},
		{"content too long", strings.Repeat("x", 141), "", nil, ErrContentTooLong},
		{"readmore too long", "ok", strings.Repeat("x", 601), nil, ErrReadmoreTooLong},
		{"category too long", "ok", "", []string{strings.Repeat("c", 25)}, ErrBadCategory},
		{"empty category", "ok", "", []string{""}, ErrBadCategory},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.freets.Create(ctx, author.ID, tc.content, tc.readmore, tc.categories)
			assert.ErrorIs(t, err, tc.wantErr)
			// rejected before touching any feed
			assert.Empty(t, env.feedIDs(t, follower.ID))
			assert.Empty(t, env.feedIDs(t, author.ID))
		})
	}
}

func TestCreateFreet_BoundaryLengthsAccepted(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.newUser(t)

	f, err := env.freets.Create(ctx, author.ID,
		strings.Repeat("a", 140), strings.Repeat("b", 600), []string{strings.Repeat("c", 24)})
	require.NoError(t, err)
	assert.Equal(t, int64(0), f.Likes)
}

func TestDeleteFreet_NotFoundLeavesFeedsUntouched(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.newUser(t)
	kept, err := env.freets.Create(ctx, author.ID, "keep me", "", nil)
	require.NoError(t, err)

	err = env.freets.Delete(ctx, author.ID, "no-such-freet")
	assert.ErrorIs(t, err, ErrFreetNotFound)
	assert.Equal(t, []string{kept.ID}, env.feedIDs(t, author.ID))
}

// Deleting a freet must clear it from every liker's and refreeter's user
// set, not just from feeds; otherwise deleted IDs dangle in profiles.
func TestDeleteFreet_PrunesLikeAndRefreetSets(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.newUser(t)
	liker := env.newUser(t)
	refreeter := env.newUser(t)

	f, err := env.freets.Create(ctx, author.ID, "short lived", "", nil)
	require.NoError(t, err)
	require.NoError(t, env.freets.Like(ctx, liker.ID, f.ID))
	_, err = env.freets.Refreet(ctx, refreeter.ID, f.ID, "")
	require.NoError(t, err)

	require.NoError(t, env.freets.Delete(ctx, author.ID, f.ID))

	u, err := env.users.GetByID(ctx, liker.ID)
	require.NoError(t, err)
	assert.False(t, u.Liked(f.ID))

	u, err = env.users.GetByID(ctx, refreeter.ID)
	require.NoError(t, err)
	assert.False(t, u.Refreeted(f.ID))
}

func TestDeleteFreet_OnlyAuthorMay(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.newUser(t)
	stranger := env.newUser(t)
	f, err := env.freets.Create(ctx, author.ID, "mine", "", nil)
	require.NoError(t, err)

	assert.ErrorIs(t, env.freets.Delete(ctx, stranger.ID, f.ID), ErrNotAuthor)
}

func TestLikeUnlike_CounterAndUserSetMoveTogether(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.newUser(t)
	liker := env.newUser(t)
	f, err := env.freets.Create(ctx, author.ID, "likeable", "", nil)
	require.NoError(t, err)

	require.NoError(t, env.freets.Like(ctx, liker.ID, f.ID))
	assert.ErrorIs(t, env.freets.Like(ctx, liker.ID, f.ID), ErrAlreadyLiked)

	got, err := env.freets.GetByID(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Likes)

	u, err := env.users.GetByID(ctx, liker.ID)
	require.NoError(t, err)
	assert.True(t, u.Liked(f.ID))

	require.NoError(t, env.freets.Unlike(ctx, liker.ID, f.ID))
	assert.ErrorIs(t, env.freets.Unlike(ctx, liker.ID, f.ID), ErrNotLiked)

	got, err = env.freets.GetByID(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Likes)
}

func TestRefreet_EmptyContentAllowed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.newUser(t)
	refreeter := env.newUser(t)
	original, err := env.freets.Create(ctx, author.ID, "original", "", nil)
	require.NoError(t, err)

	rf, err := env.freets.Refreet(ctx, refreeter.ID, original.ID, "")
	require.NoError(t, err)
	assert.Equal(t, original.ID, rf.RefreetOf)
	assert.Empty(t, rf.Content)

	// at most once per user
	_, err = env.freets.Refreet(ctx, refreeter.ID, original.ID, "again")
	assert.ErrorIs(t, err, ErrAlreadyRefreeted)

	u, err := env.users.GetByID(ctx, refreeter.ID)
	require.NoError(t, err)
	assert.True(t, u.Refreeted(original.ID))
}

func TestRefreet_TargetMustExist(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.newUser(t)

	_, err := env.freets.Refreet(ctx, u.ID, "missing", "")
	assert.ErrorIs(t, err, ErrFreetNotFound)
}

func TestReply_RequiresContentAndTarget(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.newUser(t)
	replier := env.newUser(t)
	f, err := env.freets.Create(ctx, author.ID, "question", "", nil)
	require.NoError(t, err)

	_, err = env.freets.Reply(ctx, replier.ID, f.ID, "", "")
	assert.ErrorIs(t, err, ErrEmptyContent)

	reply, err := env.freets.Reply(ctx, replier.ID, f.ID, "answer", "")
	require.NoError(t, err)
	assert.Equal(t, f.ID, reply.ReplyTo)
}

func TestUpdateCategories_MergesOnlyThatField(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.newUser(t)
	f, err := env.freets.Create(ctx, author.ID, "tagged", "extra", []string{"go"})
	require.NoError(t, err)

	require.NoError(t, env.freets.UpdateCategories(ctx, author.ID, f.ID, []string{"go", "redis"}))

	got, err := env.freets.GetByID(ctx, f.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"go", "redis"}, got.Categories)
	// untouched fields survive the partial update
	assert.Equal(t, "tagged", got.Content)
	assert.Equal(t, "extra", got.Readmore)
}

func TestListAll_NewestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.newUser(t)

	var last string
	for _, content := range []string{"one", "two", "three"} {
		f, err := env.freets.Create(ctx, author.ID, content, "", nil)
		require.NoError(t, err)
		last = f.ID
	}

	all, err := env.freets.ListAll(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, last, all[0].ID)
}
