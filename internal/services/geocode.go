package services

import (
	"context"
	"fmt"
	"group-trip-planner/internal/domain"
	"group-trip-planner/internal/platform/logger"
	"group-trip-planner/internal/ports"
	"math"
	"strings"
)

const (
	MinGeocodeQueryLen = 3
	MaxGeocodeResults  = 10
)

// Geocode resolves query through cache then geocoder. Candidates that land on
// the same point (6 decimal places) are collapsed. Cache failures are logged
// and do not fail the lookup.
func Geocode(
	ctx context.Context,
	geocoder ports.Geocoder,
	cache ports.GeocodeCache,
	log *logger.Logger,
	query string,
	limit int,
) ([]domain.GeocodeCandidate, error) {
	log = logger.OrNop(log)

	query = strings.TrimSpace(query)
	if len(query) < MinGeocodeQueryLen {
		return nil, fmt.Errorf("geocode: %w", domain.ErrInvalidInput)
	}
	limit = max(1, min(limit, MaxGeocodeResults))

	if cache != nil {
		cached, ok, err := cache.Get(ctx, query)
		if err != nil {
			log.Warn("geocode cache read failed", "err", err)
		} else if ok {
			return truncateCandidates(cached, limit), nil
		}
	}

	found, err := geocoder.Geocode(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("geocode %q: %w", query, err)
	}
	out := dedupeCandidates(found, limit)

	if cache != nil {
		if err := cache.Put(ctx, query, out); err != nil {
			log.Warn("geocode cache write failed", "err", err)
		}
	}
	return out, nil
}

func dedupeCandidates(in []domain.GeocodeCandidate, limit int) []domain.GeocodeCandidate {
	type point struct{ lat, lng float64 }
	seen := make(map[point]struct{}, len(in))
	out := make([]domain.GeocodeCandidate, 0, min(len(in), limit))
	for _, c := range in {
		p := point{math.Round(c.Lat*1e6) / 1e6, math.Round(c.Lng*1e6) / 1e6}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, c)
		if len(out) >= limit {
			break
		}
	}
	return out
}

func truncateCandidates(in []domain.GeocodeCandidate, limit int) []domain.GeocodeCandidate {
	if len(in) > limit {
		return in[:limit]
	}
	return in
}
