package redisclient

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func setupRedis(t *testing.T) *Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping Redis container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err, "Failed to start Redis container")
	t.Cleanup(func() {
		_ = testcontainers.TerminateContainer(container)
	})

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	opts, err := redis.ParseURL(uri)
	require.NoError(t, err)

	client := NewClient(redis.NewClient(opts))
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestClient_SetGet(t *testing.T) {
	client := setupRedis(t)
	ctx := context.Background()

	require.NoError(t, client.Ping(ctx).Err())
	require.NoError(t, client.Set(ctx, "lookup:52998224725", `{"id":"1"}`, time.Minute).Err())

	val, err := client.Get(ctx, "lookup:52998224725").Result()
	require.NoError(t, err)
	assert.Equal(t, `{"id":"1"}`, val)

	_, err = client.Get(ctx, "lookup:00000000000").Result()
	assert.ErrorIs(t, err, redis.Nil)
}

func TestClient_SetNX(t *testing.T) {
	client := setupRedis(t)
	ctx := context.Background()

	ok, err := client.SetNX(ctx, "booking:submit:52998224725", "a", time.Minute).Result()
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = client.SetNX(ctx, "booking:submit:52998224725", "b", time.Minute).Result()
	require.NoError(t, err)
	assert.False(t, ok)
}

const compareAndDelete = `if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

func TestClient_EvalCompareAndDelete(t *testing.T) {
	client := setupRedis(t)
	ctx := context.Background()
	key := "booking:submit:52998224725"

	require.NoError(t, client.Set(ctx, key, "holder-b", time.Minute).Err())

	n, err := client.Eval(ctx, compareAndDelete, []string{key}, "holder-a").Int64()
	require.NoError(t, err)
	assert.Zero(t, n)

	val, err := client.Get(ctx, key).Result()
	require.NoError(t, err)
	assert.Equal(t, "holder-b", val)

	n, err = client.Eval(ctx, compareAndDelete, []string{key}, "holder-b").Int64()
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = client.Get(ctx, key).Result()
	assert.ErrorIs(t, err, redis.Nil)
}
