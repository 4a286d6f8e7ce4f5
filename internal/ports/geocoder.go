package ports

import (
	"context"
	"group-trip-planner/internal/domain"
)

// Contract for resolving free-text addresses to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, query string, limit int) ([]domain.GeocodeCandidate, error)
}

// Contract for a persistent geocode cache keyed by normalized query.
type GeocodeCache interface {
	Get(ctx context.Context, query string) ([]domain.GeocodeCandidate, bool, error)
	Put(ctx context.Context, query string, results []domain.GeocodeCandidate) error
}
