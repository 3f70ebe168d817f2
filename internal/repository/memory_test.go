package repository

import (
	"context"
	"testing"

	"tukerank-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestMemoryUserRepoFind(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryUserRepo()
	require.NoError(t, r.Create(ctx, &models.User{Username: "alice", Elo: intPtr(1200)}))

	u, err := r.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, 1200, u.CurrentElo())
	assert.False(t, u.ID.IsZero())

	missing, err := r.FindByUsername(ctx, "Alice")
	require.NoError(t, err)
	assert.Nil(t, missing, "lookup is exact")

	assert.Error(t, r.Create(ctx, &models.User{Username: "alice"}))
}

func TestMemoryUserRepoReturnsCopies(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryUserRepo()
	require.NoError(t, r.Create(ctx, &models.User{Username: "bob", Elo: intPtr(1000)}))

	u, _ := r.FindByUsername(ctx, "bob")
	*u.Elo = 5

	again, _ := r.FindByUsername(ctx, "bob")
	assert.Equal(t, 1000, again.CurrentElo())
}

func TestMemoryUserRepoCompareAndSet(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryUserRepo()
	withElo := &models.User{Username: "carol", Elo: intPtr(1000)}
	noElo := &models.User{Username: "dave"}
	require.NoError(t, r.Create(ctx, withElo))
	require.NoError(t, r.Create(ctx, noElo))

	ok, err := r.CompareAndSetElo(ctx, withElo.ID, intPtr(999), 1016)
	require.NoError(t, err)
	assert.False(t, ok, "stale expected value")

	ok, err = r.CompareAndSetElo(ctx, withElo.ID, intPtr(1000), 1016)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = r.CompareAndSetElo(ctx, noElo.ID, intPtr(1000), 1016)
	assert.False(t, ok, "absent field does not equal the default")

	ok, _ = r.CompareAndSetElo(ctx, noElo.ID, nil, 990)
	assert.True(t, ok)

	ok, _ = r.CompareAndSetElo(ctx, noElo.ID, nil, 980)
	assert.False(t, ok, "field now present")

	c, _ := r.FindByUsername(ctx, "carol")
	d, _ := r.FindByUsername(ctx, "dave")
	assert.Equal(t, 1016, c.CurrentElo())
	assert.Equal(t, 990, d.CurrentElo())
}

func TestMemoryFeedbackRepo(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryFeedbackRepo()

	empty, err := r.ListByDriver(ctx, "alice")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, f := range []models.Feedback{
		{DriverID: "alice", Review: "first"},
		{DriverID: "bob", Review: "other"},
		{DriverID: "alice", Review: "second"},
	} {
		f := f
		require.NoError(t, r.Create(ctx, &f))
		assert.False(t, f.ID.IsZero())
		assert.False(t, f.CreatedAt.IsZero())
	}

	alice, err := r.ListByDriver(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, alice, 2)
	assert.Equal(t, "first", alice[0].Review)
	assert.Equal(t, "second", alice[1].Review)

	all, err := r.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
