package repositories

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Интеграционный тест кеша: нужен Redis из TEST_REDIS_ADDR.
func TestRedisCacheRepository_Integration(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR не задан")
	}
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())

	cache := NewRedisCacheRepository(client)
	key := "test:login_attempts:42"
	require.NoError(t, cache.Del(ctx, key))

	_, err := cache.Get(ctx, key)
	assert.ErrorIs(t, err, ErrCacheMiss)

	n, err := cache.Incr(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// Без Expire счётчик бессрочный.
	ttl, err := client.TTL(ctx, key).Result()
	require.NoError(t, err)
	assert.Equal(t, time.Duration(-1), ttl)

	require.NoError(t, cache.Expire(ctx, key, time.Minute))
	ttl, err = client.TTL(ctx, key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)

	require.NoError(t, cache.Del(ctx, key))
}
