package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/airdesk/config"
	"github.com/redis/go-redis/v9"
)

// RedisBackend keeps each store as one string value.
type RedisBackend struct {
	client *redis.Client
	prefix string
}

func NewRedisBackend(cfg config.RedisConfig) *RedisBackend {
	return &RedisBackend{
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		prefix: cfg.KeyPrefix,
	}
}

func (b *RedisBackend) Ping(ctx context.Context) error {
	if err := b.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}
	return nil
}

func (b *RedisBackend) Close() error {
	return b.client.Close()
}

func (b *RedisBackend) Read(ctx context.Context, name string) ([]byte, error) {
	data, err := b.client.Get(ctx, b.key(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func (b *RedisBackend) Write(ctx context.Context, name string, data []byte) error {
	return b.client.Set(ctx, b.key(name), data, 0).Err()
}

func (b *RedisBackend) key(name string) string {
	return b.prefix + "store:" + name
}

var _ Backend = (*RedisBackend)(nil)
