package services

import (
	"group-trip-planner/internal/domain"
	"slices"
	"strings"
	"sync"
)

// BoostCache memoizes resolved boost tables for the life of the process.
// Entries are copied on the way in and out so callers can never mutate a
// cached table.
type BoostCache struct {
	mu      sync.RWMutex
	entries map[string]domain.BoostTable
}

func NewBoostCache() *BoostCache {
	return &BoostCache{entries: make(map[string]domain.BoostTable)}
}

func (c *BoostCache) Get(key string) (domain.BoostTable, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	table, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return table.Clone(), true
}

func (c *BoostCache) Put(key string, table domain.BoostTable) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = table.Clone()
}

func (c *BoostCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// BoostCacheKey is "<normalized destination>|<sorted distinct categories>".
func BoostCacheKey(destination string, categories []domain.Category) string {
	names := make([]string, 0, len(categories))
	for _, c := range DistinctCategories(categories) {
		names = append(names, string(c))
	}
	return NormalizeDestination(destination) + "|" + strings.Join(names, ",")
}

func NormalizeDestination(destination string) string {
	return strings.ToLower(strings.TrimSpace(destination))
}

// DistinctCategories returns the sorted set of non-empty categories.
func DistinctCategories(categories []domain.Category) []domain.Category {
	seen := make(map[domain.Category]struct{}, len(categories))
	out := make([]domain.Category, 0, len(categories))
	for _, c := range categories {
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// ActivityCategories lists the category of each activity.
func ActivityCategories(activities []domain.Activity) []domain.Category {
	out := make([]domain.Category, 0, len(activities))
	for _, a := range activities {
		out = append(out, a.Category)
	}
	return DistinctCategories(out)
}
