package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"group-trip-planner/internal/domain"
	"group-trip-planner/internal/platform/logger"
	"group-trip-planner/internal/platform/obs"
	"group-trip-planner/internal/ports"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

const defaultAdvisorTimeout = 8 * time.Second

// destinationProfile raises and caps category multipliers when a destination
// name contains one of its keywords. Raises apply first, then caps.
type destinationProfile struct {
	name     string
	keywords []string
	raise    map[domain.Category]float64
	cap      map[domain.Category]float64
}

var destinationProfiles = []destinationProfile{
	{
		name: "tropical",
		keywords: []string{
			"hawaii", "maui", "oahu", "kauai", "honolulu", "island",
			"beach", "bali", "maldives", "phuket", "cancun",
		},
		raise: map[domain.Category]float64{
			domain.CategoryBeach:      1.35,
			domain.CategoryPark:       1.22,
			domain.CategoryHike:       1.2,
			domain.CategorySpa:        1.18,
			domain.CategoryRelaxation: 1.2,
			domain.CategoryLandmark:   1.08,
		},
		cap: map[domain.Category]float64{
			domain.CategoryMuseum: 0.9,
		},
	},
	{
		name: "nature",
		keywords: []string{
			"national park", "mountain", "alps", "yosemite", "banff", "patagonia", "iceland",
		},
		raise: map[domain.Category]float64{
			domain.CategoryPark:       1.28,
			domain.CategoryHike:       1.28,
			domain.CategoryLandmark:   1.1,
			domain.CategoryRelaxation: 1.12,
		},
		cap: map[domain.Category]float64{
			domain.CategoryNightclub: 0.9,
		},
	},
	{
		name: "city",
		keywords: []string{
			"new york", "paris", "tokyo", "london", "rome", "barcelona", "berlin", "chicago",
		},
		raise: map[domain.Category]float64{
			domain.CategoryMuseum:     1.16,
			domain.CategoryLandmark:   1.14,
			domain.CategoryCulture:    1.12,
			domain.CategoryRestaurant: 1.08,
			domain.CategoryFood:       1.06,
		},
	},
}

// HeuristicBoosts builds a multiplier table for the given categories from
// destination keyword rules alone. Every category starts at 1.0.
func HeuristicBoosts(destination string, categories []domain.Category) domain.BoostTable {
	dest := NormalizeDestination(destination)
	table := make(domain.BoostTable, len(categories))
	for _, c := range DistinctCategories(categories) {
		table[c] = 1.0
	}

	for _, p := range destinationProfiles {
		if !containsAny(dest, p.keywords) {
			continue
		}
		for c, v := range p.raise {
			if cur, ok := table[c]; ok {
				table[c] = math.Max(cur, v)
			}
		}
		for c, v := range p.cap {
			if cur, ok := table[c]; ok {
				table[c] = math.Min(cur, v)
			}
		}
	}

	for c, v := range table {
		table[c] = domain.ClampBoost(v)
	}
	return table
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// BoostResolver produces per-destination category multipliers: keyword
// heuristics first, then an optional advisor refinement, memoized per
// destination and category set. Concurrent misses for the same key share a
// single resolution.
type BoostResolver struct {
	cache   *BoostCache
	advisor ports.BoostAdvisor
	timeout time.Duration
	log     *logger.Logger
	group   singleflight.Group
}

func NewBoostResolver(cache *BoostCache, advisor ports.BoostAdvisor, timeout time.Duration, log *logger.Logger) *BoostResolver {
	if cache == nil {
		cache = NewBoostCache()
	}
	if timeout <= 0 {
		timeout = defaultAdvisorTimeout
	}
	return &BoostResolver{
		cache:   cache,
		advisor: advisor,
		timeout: timeout,
		log:     logger.OrNop(log),
	}
}

// Resolve never fails. Advisor problems degrade to the heuristic table.
func (r *BoostResolver) Resolve(ctx context.Context, destination string, categories []domain.Category) domain.BoostTable {
	categories = DistinctCategories(categories)
	if len(categories) == 0 {
		return domain.BoostTable{}
	}

	key := BoostCacheKey(destination, categories)
	if table, ok := r.cache.Get(key); ok {
		return table
	}

	// The result is shared and cached, so one caller's cancellation must not decide it.
	shared := context.WithoutCancel(ctx)
	v, _, _ := r.group.Do(key, func() (any, error) {
		if table, ok := r.cache.Get(key); ok {
			return table, nil
		}
		table := HeuristicBoosts(destination, categories)
		refined := r.refine(shared, destination, categories, table)
		if refined.Fallback {
			r.log.Debug("category boosts: using heuristics", "destination", destination, "reason", refined.Reason)
		}
		r.cache.Put(key, refined.Value)
		return refined.Value, nil
	})

	return v.(domain.BoostTable).Clone()
}

// refine applies advisor overrides on top of base. Non-numeric values and
// categories outside the requested set are ignored; numbers are clamped.
func (r *BoostResolver) refine(
	ctx context.Context,
	destination string,
	categories []domain.Category,
	base domain.BoostTable,
) (res domain.Resolved[domain.BoostTable]) {
	if r.advisor == nil {
		return domain.Degraded(base, "no advisor configured")
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var err error
	defer obs.Time(ctx, r.log, "boosts.RefineBoosts")(&err)

	raw, err := r.advisor.RefineBoosts(ctx, destination, categories, base.Clone())
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return domain.Degraded(base, "advisor timed out")
		}
		return domain.Degraded(base, fmt.Sprintf("advisor failed: %v", err))
	}

	out := base.Clone()
	applied := 0
	for k, v := range raw {
		c := domain.NormalizeCategory(k)
		if _, ok := out[c]; !ok {
			continue
		}
		f, ok := coerceMultiplier(v)
		if !ok {
			continue
		}
		out[c] = domain.ClampBoost(f)
		applied++
	}
	if applied == 0 {
		return domain.Degraded(base, "advisor returned no usable multipliers")
	}
	return domain.Primary(out)
}

func coerceMultiplier(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
