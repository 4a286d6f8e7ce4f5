package ports

import (
	"context"
	"group-trip-planner/internal/domain"
)

// Contract for retrieving candidate activities around a destination.
type ActivitySource interface {
	// Return activities near (lat, lng). An empty result is not an error.
	FetchActivities(ctx context.Context, destination string, lat, lng float64) ([]domain.Activity, error)
}

// Contract for caching activity lists per destination key.
type ActivityCache interface {
	Get(ctx context.Context, key string) ([]domain.Activity, bool, error)
	Set(ctx context.Context, key string, activities []domain.Activity) error
}
