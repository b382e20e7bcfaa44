package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/medibook/appointment-system/internal/core/session"
)

// sessionKeyPrefix is the single fixed namespace the persisted session lives
// under, one key per client.
const sessionKeyPrefix = "auth-storage:"

// SessionCache is a session.Cache backed by Redis. Sessions are stored
// serialized, without TTL: they survive client reloads until explicit logout.
type SessionCache struct {
	client *redis.Client
	key    string
}

// NewSessionCache returns the cache for one client key.
func NewSessionCache(client *redis.Client, clientKey string) *SessionCache {
	return &SessionCache{client: client, key: sessionKeyPrefix + clientKey}
}

// NewSessionCacheFactory adapts this cache to the session.Manager.
func NewSessionCacheFactory(client *redis.Client) session.CacheFactory {
	return func(clientKey string) session.Cache {
		return NewSessionCache(client, clientKey)
	}
}

func (c *SessionCache) Get(ctx context.Context) ([]byte, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, session.ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (c *SessionCache) Set(ctx context.Context, data []byte) error {
	return c.client.Set(ctx, c.key, data, 0).Err()
}

func (c *SessionCache) Remove(ctx context.Context) error {
	return c.client.Del(ctx, c.key).Err()
}
