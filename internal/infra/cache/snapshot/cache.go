package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-TableBooking/internal/availability"
)

const keyPrefix = "availability:snapshot"

// pingTimeout таймаут проверки соединения при старте
const pingTimeout = 2 * time.Second

// Cache хранит загруженные источники занятости в Redis, чтобы несколько
// экземпляров сервиса не опрашивали источники на каждом обновлении
type Cache struct {
	client RedisClient
	ttl    time.Duration
}

func NewCache(client RedisClient, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// NewRedisClient создаёт клиент и проверяет соединение
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}

// Key ключ снимка для окна
func Key(window availability.Window) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, window.Min.Key(), window.Max.Key())
}

// Get возвращает снимок для окна. Отсутствие снимка не ошибка: found = false.
func (c *Cache) Get(ctx context.Context, window availability.Window) (*availability.Input, bool, error) {
	data, err := c.client.Get(ctx, Key(window)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrCacheRead, err)
	}

	var input availability.Input
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrCorruptedSnapshot, err)
	}
	return &input, true, nil
}

// Set сохраняет снимок для окна на ttl
func (c *Cache) Set(ctx context.Context, window availability.Window, input *availability.Input) error {
	data, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrCacheWrite, err)
	}

	if err := c.client.Set(ctx, Key(window), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheWrite, err)
	}
	return nil
}
