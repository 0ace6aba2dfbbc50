package sharing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ViewCache holds computed shared-document views per viewer. Mutations in
// the sharing service and the ingestion pipeline invalidate entries
// explicitly; there is no eventual-consistency window within a process
// because every mutation invalidates before it returns.
type ViewCache interface {
	Get(ctx context.Context, viewerID string) ([]SharedDocument, bool, error)
	Set(ctx context.Context, viewerID string, docs []SharedDocument) error
	Invalidate(ctx context.Context, viewerID string) error
}

// NoopCache disables caching; every read recomputes the view.
type NoopCache struct{}

func (NoopCache) Get(ctx context.Context, viewerID string) ([]SharedDocument, bool, error) {
	return nil, false, nil
}

func (NoopCache) Set(ctx context.Context, viewerID string, docs []SharedDocument) error {
	return nil
}

func (NoopCache) Invalidate(ctx context.Context, viewerID string) error { return nil }

var _ ViewCache = NoopCache{}

const (
	viewKeyPrefix = "sharedview:"
	viewTTL       = 5 * time.Minute
)

// RedisCache is a Redis-backed ViewCache.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to Redis using a redis:// URL.
func NewRedisCache(redisURL string) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &RedisCache{client: client}, nil
}

// NewRedisCacheWithClient wraps an existing client.
func NewRedisCacheWithClient(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) key(viewerID string) string {
	return viewKeyPrefix + viewerID
}

// Get returns the cached view for a viewer, if present.
func (c *RedisCache) Get(ctx context.Context, viewerID string) ([]SharedDocument, bool, error) {
	raw, err := c.client.Get(ctx, c.key(viewerID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get shared view: %w", err)
	}

	var docs []SharedDocument
	if err := json.Unmarshal([]byte(raw), &docs); err != nil {
		return nil, false, fmt.Errorf("decode shared view: %w", err)
	}
	return docs, true, nil
}

// Set stores the computed view with a TTL as a backstop; explicit
// invalidation is the primary freshness mechanism.
func (c *RedisCache) Set(ctx context.Context, viewerID string, docs []SharedDocument) error {
	raw, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("encode shared view: %w", err)
	}
	if err := c.client.Set(ctx, c.key(viewerID), raw, viewTTL).Err(); err != nil {
		return fmt.Errorf("set shared view: %w", err)
	}
	return nil
}

// Invalidate drops the viewer's cached view.
func (c *RedisCache) Invalidate(ctx context.Context, viewerID string) error {
	if err := c.client.Del(ctx, c.key(viewerID)).Err(); err != nil {
		return fmt.Errorf("invalidate shared view: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

var _ ViewCache = (*RedisCache)(nil)
