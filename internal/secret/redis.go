package secret

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "oam:secret:"

// redisClient is the subset of redis.Cmdable the vault uses.
type redisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	GetDel(ctx context.Context, key string) *redis.StringCmd
}

// RedisVault shares payloads between console replicas.
type RedisVault struct {
	client redisClient
	ttl    time.Duration
}

func NewRedisVault(client redisClient, ttl time.Duration) *RedisVault {
	return &RedisVault{client: client, ttl: ttl}
}

// NewRedisVaultFromURL connects using a redis:// URL or a bare host:port.
// The returned client is owned by the caller.
func NewRedisVaultFromURL(rawURL string, ttl time.Duration) (*RedisVault, *redis.Client) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		opts = &redis.Options{Addr: rawURL}
	}
	client := redis.NewClient(opts)
	return NewRedisVault(client, ttl), client
}

func (v *RedisVault) Put(ctx context.Context, payload []byte) (string, error) {
	token := uuid.NewString()
	if err := v.client.Set(ctx, keyPrefix+token, payload, v.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store secret: %w", err)
	}
	return token, nil
}

// Take reads and deletes in one command so a token can never be read twice.
func (v *RedisVault) Take(ctx context.Context, token string) ([]byte, error) {
	data, err := v.client.GetDel(ctx, keyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to take secret: %w", err)
	}
	return data, nil
}
