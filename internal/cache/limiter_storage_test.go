package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiterStorageRoundTrip(t *testing.T) {
	rdb := requireRedis(t)
	s := NewLimiterStorage(rdb, "limiter:")

	val, err := s.Get("127.0.0.1")
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, s.Set("127.0.0.1", []byte("3"), time.Minute))
	val, err = s.Get("127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, []byte("3"), val)

	require.NoError(t, s.Delete("127.0.0.1"))
	val, err = s.Get("127.0.0.1")
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestLimiterStorageResetKeepsOtherKeys(t *testing.T) {
	rdb := requireRedis(t)
	ctx := context.Background()
	s := NewLimiterStorage(rdb, "limiter:")

	require.NoError(t, s.Set("a", []byte("1"), time.Minute))
	require.NoError(t, s.Set("b", []byte("2"), time.Minute))
	require.NoError(t, rdb.Set(ctx, "task:1", "{}", time.Minute).Err())

	require.NoError(t, s.Reset())

	n, err := rdb.Exists(ctx, "limiter:a", "limiter:b").Result()
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = rdb.Exists(ctx, "task:1").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
