package cache

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
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func withMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	prev := client
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(prev) })
	return mr
}

func TestAside_MissThenHit(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *cachedThing) func() error {
		return func() error {
			fetches++
			*dest = cachedThing{ID: 1, Name: "Soup"}
			return nil
		}
	}

	var first cachedThing
	require.NoError(t, Aside(ctx, ItemsFirstPageKey, &first, time.Minute, fetch(&first)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "Soup", first.Name)

	var second cachedThing
	require.NoError(t, Aside(ctx, ItemsFirstPageKey, &second, time.Minute, fetch(&second)))
	assert.Equal(t, 1, fetches, "second read should be served from cache")
	assert.Equal(t, first, second)
}

func TestAside_InvalidateForcesRefetch(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	fetches := 0
	var got cachedThing
	fetch := func() error {
		fetches++
		got = cachedThing{ID: 2, Name: "Stew"}
		return nil
	}

	require.NoError(t, Aside(ctx, ItemsFirstPageKey, &got, time.Minute, fetch))
	InvalidateItemsList(ctx)
	require.NoError(t, Aside(ctx, ItemsFirstPageKey, &got, time.Minute, fetch))
	assert.Equal(t, 2, fetches)
}

func TestAside_NoRedisFallsThrough(t *testing.T) {
	prev := client
	SetClient(nil)
	defer SetClient(prev)

	fetches := 0
	var got cachedThing
	fetch := func() error {
		fetches++
		got.Name = "Direct"
		return nil
	}

	require.NoError(t, Aside(context.Background(), UserKey(3), &got, time.Minute, fetch))
	require.NoError(t, Aside(context.Background(), UserKey(3), &got, time.Minute, fetch))
	assert.Equal(t, 2, fetches)
}
