package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestGetOrLoadJSONCachesValue(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	calls := 0
	load := func(context.Context) ([]item, error) {
		calls++
		return []item{{ID: 1, Name: "a"}}, nil
	}

	got, err := GetOrLoadJSON(c, ctx, "items", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: 1, Name: "a"}}, got)

	got, err = GetOrLoadJSON(c, ctx, "items", time.Minute, load)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 1, calls)
	assert.True(t, mr.Exists("crud:items"))
}

func TestInvalidateForcesReload(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	calls := 0
	load := func(context.Context) ([]item, error) {
		calls++
		return []item{}, nil
	}

	_, err := GetOrLoadJSON(c, ctx, "items", time.Minute, load)
	require.NoError(t, err)
	require.NoError(t, c.Invalidate(ctx, "items"))
	assert.False(t, mr.Exists("crud:items"))

	_, err = GetOrLoadJSON(c, ctx, "items", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestLoadErrorIsNotCached(t *testing.T) {
	c, mr := newTestCache(t)
	boom := errors.New("boom")

	_, err := GetOrLoadJSON(c, context.Background(), "items", time.Minute, func(context.Context) ([]item, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("crud:items"))
}

func TestNilCacheLoadsDirectly(t *testing.T) {
	var c *Cache
	calls := 0
	for i := 0; i < 2; i++ {
		got, err := GetOrLoadJSON(c, context.Background(), "items", time.Minute, func(context.Context) (int, error) {
			calls++
			return 7, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 7, got)
	}
	assert.Equal(t, 2, calls)
	assert.NoError(t, c.Invalidate(context.Background(), "items"))
	assert.NoError(t, c.Ping(context.Background()))
}

func TestRedisDownFallsBackToLoad(t *testing.T) {
	// 没有监听的端口
	c := New("127.0.0.1:1", "", 0)
	defer c.Close()

	got, err := GetOrLoadJSON(c, context.Background(), "items", time.Minute, func(context.Context) (string, error) {
		return "fresh", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", got)
}

func TestInvalidateDuringLoadSkipsWrite(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	loading := make(chan struct{})
	release := make(chan struct{})
	done := make(chan []item, 1)
	go func() {
		got, _ := GetOrLoadJSON(c, ctx, "items", time.Minute, func(context.Context) ([]item, error) {
			close(loading)
			<-release
			return []item{{ID: 1, Name: "old"}}, nil
		})
		done <- got
	}()

	<-loading
	require.NoError(t, c.Invalidate(ctx, "items"))
	close(release)
	assert.Equal(t, []item{{ID: 1, Name: "old"}}, <-done)
	assert.False(t, mr.Exists("crud:items"))

	got, err := GetOrLoadJSON(c, ctx, "items", time.Minute, func(context.Context) ([]item, error) {
		return []item{{ID: 2, Name: "new"}}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: 2, Name: "new"}}, got)
	assert.True(t, mr.Exists("crud:items"))
}

func TestInvalidateBumpsGeneration(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Invalidate(ctx, "items"))
	require.NoError(t, c.Invalidate(ctx, "items"))
	gen, err := mr.Get("crud:items:gen")
	require.NoError(t, err)
	assert.Equal(t, "2", gen)
}
