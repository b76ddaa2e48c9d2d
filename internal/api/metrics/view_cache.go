package metrics

import (
	"context"

	"github.com/acmedash/billing-admin/internal/core/ports"
)

type instrumentedViewCache struct {
	next ports.ViewCache
}

// InstrumentViewCache counts hits and misses of every Load on next.
func InstrumentViewCache(next ports.ViewCache) ports.ViewCache {
	return &instrumentedViewCache{next: next}
}

func (c *instrumentedViewCache) Load(ctx context.Context, path, variant string, dest any) (bool, error) {
	hit, err := c.next.Load(ctx, path, variant, dest)
	result := "miss"
	switch {
	case err != nil:
		result = "error"
	case hit:
		result = "hit"
	}
	ViewCacheLookupsTotal.WithLabelValues(path, result).Inc()
	return hit, err
}

func (c *instrumentedViewCache) Store(ctx context.Context, path, variant string, value any) error {
	return c.next.Store(ctx, path, variant, value)
}

func (c *instrumentedViewCache) Revalidate(ctx context.Context, path string) error {
	return c.next.Revalidate(ctx, path)
}
