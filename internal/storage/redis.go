package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"storefront/internal/redisx"
)

type redisBackend struct {
	client *redis.Client
}

func (b *redisBackend) name() string { return "redis" }

func (b *redisBackend) get(ctx context.Context, key string) (string, bool, error) {
	v, err := b.client.Get(ctx, redisx.Key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return v, true, nil
}

func (b *redisBackend) set(ctx context.Context, key, value string) error {
	return b.client.Set(ctx, redisx.Key(key), value, 0).Err()
}

func (b *redisBackend) remove(ctx context.Context, key string) error {
	return b.client.Del(ctx, redisx.Key(key)).Err()
}
