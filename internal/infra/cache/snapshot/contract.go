package snapshot

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient часть *redis.Client, которая нужна кэшу
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}
