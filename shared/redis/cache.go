package redis

import (
	"context"
	"encoding/json"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ViewCache is a generic JSON-backed Redis cache for read models.
// Bind it to a specific view type T; each instance holds a Redis client, a
// key prefix and an optional TTL (pass 0 for keys that should not expire).
type ViewCache[T any] struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
	logger *logrus.Logger
}

// NewViewCache creates a ViewCache backed by the provided Redis client.
func NewViewCache[T any](client *goredis.Client, prefix string, ttl time.Duration, logger *logrus.Logger) *ViewCache[T] {
	return &ViewCache[T]{client: client, prefix: prefix, ttl: ttl, logger: logger}
}

// Get retrieves and unmarshals a value from Redis.
// Returns (nil, false) on any miss or deserialisation error.
func (c *ViewCache[T]) Get(ctx context.Context, key string) (*T, bool) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.logger.WithError(err).WithField("key", c.prefix+key).Warn("ViewCache: read error")
		}
		return nil, false
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		c.logger.WithError(err).WithField("key", c.prefix+key).Warn("ViewCache: unmarshal error")
		return nil, false
	}
	return &v, true
}

// Set marshals value and stores it in Redis under key.
// Errors are logged rather than returned; a failed cache write is non-fatal.
func (c *ViewCache[T]) Set(ctx context.Context, key string, value *T) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.WithError(err).WithField("key", c.prefix+key).Warn("ViewCache: marshal error")
		return
	}
	if err := c.client.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		c.logger.WithError(err).WithField("key", c.prefix+key).Warn("ViewCache: write error")
	}
}
