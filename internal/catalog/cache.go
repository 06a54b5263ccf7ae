package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultSnapshotKey = "storefront:catalog:snapshot"

// ErrSnapshotMissing возвращается, когда в кэше нет снимка каталога
var ErrSnapshotMissing = errors.New("catalog snapshot missing")

// RedisCache хранит последний успешный ответ API каталога в Redis
type RedisCache struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisCache создает новый RedisCache. ttl == 0 означает хранение без срока.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		key:    defaultSnapshotKey,
		ttl:    ttl,
	}
}

// Save сохраняет снимок каталога
func (c *RedisCache) Save(ctx context.Context, payload []byte) error {
	if err := c.client.Set(ctx, c.key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("catalog cache: failed to save snapshot: %w", err)
	}
	return nil
}

// Load читает снимок каталога
func (c *RedisCache) Load(ctx context.Context) ([]byte, error) {
	payload, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSnapshotMissing
		}
		return nil, fmt.Errorf("catalog cache: failed to load snapshot: %w", err)
	}
	return payload, nil
}
