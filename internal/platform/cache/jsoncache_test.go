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

func newTestCache(t *testing.T) *JSONCache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewJSONCache(client, "test:version", time.Minute)
}

func TestFetchJSONCachesLoaderResult(t *testing.T) {
	c := newTestCache(t)
	calls := 0
	loader := func(ctx context.Context) (interface{}, error) {
		calls++
		return []string{"a", "b"}, nil
	}

	var out []string
	require.NoError(t, c.FetchJSON(context.Background(), &out, loader, "things", "list"))
	assert.Equal(t, []string{"a", "b"}, out)
	require.NoError(t, c.FetchJSON(context.Background(), &out, loader, "things", "list"))
	assert.Equal(t, 1, calls)
}

func TestBumpInvalidatesWithoutScanning(t *testing.T) {
	c := newTestCache(t)
	value := "one"
	loader := func(ctx context.Context) (interface{}, error) {
		return value, nil
	}

	var out string
	require.NoError(t, c.FetchJSON(context.Background(), &out, loader, "things", "list"))
	assert.Equal(t, "one", out)

	value = "two"
	require.NoError(t, c.FetchJSON(context.Background(), &out, loader, "things", "list"))
	assert.Equal(t, "one", out, "stale until version bump")

	require.NoError(t, c.Bump(context.Background()))
	require.NoError(t, c.FetchJSON(context.Background(), &out, loader, "things", "list"))
	assert.Equal(t, "two", out)
}

func TestNilCachePassesThrough(t *testing.T) {
	var c *JSONCache
	var out []int
	err := c.FetchJSON(context.Background(), &out, func(ctx context.Context) (interface{}, error) {
		return []int{1, 2, 3}, nil
	}, "anything")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, out)
	assert.NoError(t, c.Bump(context.Background()))
}
