package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKey(t *testing.T) {
	assert.Equal(t, "fees:compare:1000", GenerateKey("fees", "compare", 1000))

	s := NewCacheService(redis.NewClient(&redis.Options{Addr: "localhost:0"}), time.Minute)
	defer s.Close()
	assert.Equal(t, "fees:compare:abc", s.GenerateKey("fees", "compare", "abc"))
}

func TestCacheService_UnreachableRedis(t *testing.T) {
	client := NewRedisClient(&RedisConfig{
		Host:        "127.0.0.1",
		Port:        "1",
		DialTimeout: 50 * time.Millisecond,
	})
	s := NewCacheService(client, time.Minute)
	defer s.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	var dest map[string]interface{}
	found, err := s.Get(ctx, "missing", &dest)
	assert.False(t, found)
	require.Error(t, err)
	assert.Error(t, s.HealthCheck(ctx))
	assert.Equal(t, Stats{}, s.Stats())
}
