package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedThing struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newCacheClient(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb, mr
}

func TestCache_RoundTrip(t *testing.T) {
	rdb, _ := newCacheClient(t)
	ctx := context.Background()

	in := &cachedThing{Name: "global", Count: 3}
	require.NoError(t, SetCacheData(ctx, rdb, "thing:1", in, time.Minute))

	out, err := GetCacheData[cachedThing](ctx, rdb, "thing:1")
	require.NoError(t, err)
	assert.Equal(t, *in, *out)
}

func TestCache_MissIsSentinel(t *testing.T) {
	rdb, _ := newCacheClient(t)

	_, err := GetCacheData[cachedThing](context.Background(), rdb, "missing")

	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCache_Expiry(t *testing.T) {
	rdb, mr := newCacheClient(t)
	ctx := context.Background()

	in := &cachedThing{Name: "ephemeral"}
	require.NoError(t, SetCacheData(ctx, rdb, "thing:1", in, time.Second))

	mr.FastForward(2 * time.Second)

	_, err := GetCacheData[cachedThing](ctx, rdb, "thing:1")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCache_Delete(t *testing.T) {
	rdb, _ := newCacheClient(t)
	ctx := context.Background()

	in := &cachedThing{Name: "gone"}
	require.NoError(t, SetCacheData(ctx, rdb, "thing:1", in, time.Minute))
	require.NoError(t, DeleteCacheData(ctx, rdb, "thing:1"))

	_, err := GetCacheData[cachedThing](ctx, rdb, "thing:1")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCache_CorruptPayload(t *testing.T) {
	rdb, mr := newCacheClient(t)

	require.NoError(t, mr.Set("thing:1", "not-json"))

	_, err := GetCacheData[cachedThing](context.Background(), rdb, "thing:1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}
