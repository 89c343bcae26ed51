package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// TokenBlacklist records revoked token ids until they would have expired anyway
type TokenBlacklist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// RedisBlacklist keeps revoked token ids as expiring redis keys
type RedisBlacklist struct {
	client *redis.Client
	prefix string
}

// NewRedisBlacklist returns a blacklist on client. Keys are namespaced by prefix.
func NewRedisBlacklist(client *redis.Client, prefix string) *RedisBlacklist {
	if prefix == "" {
		prefix = "notary-records"
	}
	return &RedisBlacklist{client: client, prefix: prefix}
}

func (b *RedisBlacklist) key(tokenID string) string {
	return fmt.Sprintf("%s:revoked:%s", b.prefix, tokenID)
}

// Revoke marks tokenID revoked for ttl. A non-positive ttl means the token
// has already expired and nothing is stored.
func (b *RedisBlacklist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return b.client.Set(ctx, b.key(tokenID), 1, ttl).Err()
}

// IsRevoked reports whether tokenID was revoked
func (b *RedisBlacklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := b.client.Get(ctx, b.key(tokenID)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Ping checks the redis connection
func (b *RedisBlacklist) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}
