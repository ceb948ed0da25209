package session

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// RedisBackend keeps session ids in Redis with a TTL so they survive restarts
// and are shared across instances.
type RedisBackend struct {
	client *redis.Client
}

func NewRedisBackend(client *redis.Client) *RedisBackend {
	return &RedisBackend{client: client}
}

func (b *RedisBackend) Put(ctx context.Context, jti string, userID uint, ttl time.Duration) error {
	return b.client.Set(ctx, keyPrefix+jti, strconv.FormatUint(uint64(userID), 10), ttl).Err()
}

func (b *RedisBackend) Get(ctx context.Context, jti string) (uint, error) {
	raw, err := b.client.Get(ctx, keyPrefix+jti).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrInvalidSession
	}
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, ErrInvalidSession
	}
	return uint(id), nil
}

func (b *RedisBackend) Delete(ctx context.Context, jti string) error {
	return b.client.Del(ctx, keyPrefix+jti).Err()
}
