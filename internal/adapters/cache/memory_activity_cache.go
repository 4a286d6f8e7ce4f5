package cache

import (
	"context"
	"group-trip-planner/internal/domain"
	"slices"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryActivityCache is the single-process activity cache used when no
// Redis address is configured.
type MemoryActivityCache struct {
	c *gocache.Cache
}

func NewMemoryActivityCache(ttl, cleanup time.Duration) *MemoryActivityCache {
	return &MemoryActivityCache{c: gocache.New(ttl, cleanup)}
}

func (m *MemoryActivityCache) Get(ctx context.Context, key string) ([]domain.Activity, bool, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	acts, ok := v.([]domain.Activity)
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(acts), true, nil
}

func (m *MemoryActivityCache) Set(ctx context.Context, key string, activities []domain.Activity) error {
	m.c.SetDefault(key, slices.Clone(activities))
	return nil
}
