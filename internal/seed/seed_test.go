package seed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-gin-gorm-crud/internal/domain"
	"go-gin-gorm-crud/internal/repo/repotest"
	"go-gin-gorm-crud/internal/seed"
)

func TestRunSeedsUsersWithPosts(t *testing.T) {
	store := repotest.NewStore(t)
	ctx := context.Background()

	sum, err := seed.Run(ctx, store, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, seed.Summary{Users: 3, Posts: 3}, sum)

	users, err := store.Users().FindMany(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)

	byEmail := map[string]domain.User{}
	for _, u := range users {
		byEmail[u.Email] = u
	}
	assert.Len(t, byEmail["alice@example.com"].Posts, 2)
	assert.Len(t, byEmail["bob@example.com"].Posts, 1)
	assert.Empty(t, byEmail["charlie@example.com"].Posts)

	published := true
	n, err := store.Posts().Count(ctx, domain.PostFilter{Published: &published})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestRunIsRepeatable(t *testing.T) {
	store := repotest.NewStore(t)
	ctx := context.Background()

	_, err := seed.Run(ctx, store, zap.NewNop())
	require.NoError(t, err)
	sum, err := seed.Run(ctx, store, zap.NewNop())
	require.NoError(t, err)

	assert.EqualValues(t, 3, sum.DeletedPosts)
	assert.EqualValues(t, 3, sum.DeletedUsers)

	n, err := store.Users().Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}
