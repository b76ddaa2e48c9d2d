package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultViewTTL = 5 * time.Minute
	scanBatch      = 100
)

// ViewCache keeps read results per view path in Redis.
// Key format: view:<path>|<variant>
type ViewCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewViewCache wraps client. A non-positive ttl falls back to five minutes.
func NewViewCache(client redis.UniversalClient, ttl time.Duration) *ViewCache {
	if ttl <= 0 {
		ttl = defaultViewTTL
	}
	return &ViewCache{client: client, ttl: ttl}
}

func (c *ViewCache) Load(ctx context.Context, path, variant string, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, viewKey(path, variant)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("view cache load: %w", err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("view cache decode: %w", err)
	}
	return true, nil
}

func (c *ViewCache) Store(ctx context.Context, path, variant string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("view cache encode: %w", err)
	}
	if err := c.client.Set(ctx, viewKey(path, variant), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("view cache store: %w", err)
	}
	return nil
}

// Revalidate drops every variant stored under path.
func (c *ViewCache) Revalidate(ctx context.Context, path string) error {
	iter := c.client.Scan(ctx, 0, viewPattern(path), scanBatch).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("view cache scan %s: %w", path, err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("view cache revalidate %s: %w", path, err)
	}
	return nil
}

func viewKey(path, variant string) string {
	return "view:" + path + "|" + variant
}

// viewPattern matches only the variants of path, never those of a longer
// path sharing its prefix.
func viewPattern(path string) string {
	return "view:" + escapeGlob(path) + "|*"
}

func escapeGlob(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '*', '?', '[', ']', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}

// NopViewCache never holds anything. It is used when caching is disabled.
type NopViewCache struct{}

func (NopViewCache) Load(context.Context, string, string, any) (bool, error) { return false, nil }
func (NopViewCache) Store(context.Context, string, string, any) error        { return nil }
func (NopViewCache) Revalidate(context.Context, string) error                { return nil }
