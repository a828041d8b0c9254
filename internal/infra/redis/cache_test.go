package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedObject struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, "vida:test:"), mr
}

func TestCacheRoundTrip(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	want := cachedObject{ID: "https://videos.example/videos/watch/abc", Name: "Sunset"}
	require.NoError(t, cache.SetJSON(ctx, "abc", want, time.Minute))
	assert.True(t, mr.Exists("vida:test:abc"))

	var got cachedObject
	require.NoError(t, cache.GetJSON(ctx, "abc", &got))
	assert.Equal(t, want, got)
}

func TestCacheMissAndExpiry(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	var got cachedObject
	assert.ErrorIs(t, cache.GetJSON(ctx, "missing", &got), ErrCacheMiss)

	require.NoError(t, cache.SetJSON(ctx, "short", cachedObject{ID: "x"}, time.Second))
	mr.FastForward(2 * time.Second)
	assert.ErrorIs(t, cache.GetJSON(ctx, "short", &got), ErrCacheMiss)
}

func TestCacheDelete(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SetJSON(ctx, "a", cachedObject{ID: "a"}, 0))
	require.NoError(t, cache.SetJSON(ctx, "b", cachedObject{ID: "b"}, 0))
	require.NoError(t, cache.Delete(ctx, "a", "b"))
	require.NoError(t, cache.Delete(ctx))

	assert.False(t, mr.Exists("vida:test:a"))
	assert.False(t, mr.Exists("vida:test:b"))
}

func TestCacheCorruptValue(t *testing.T) {
	cache, mr := newTestCache(t)
	require.NoError(t, mr.Set("vida:test:bad", "{not json"))

	var got cachedObject
	err := cache.GetJSON(context.Background(), "bad", &got)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}
