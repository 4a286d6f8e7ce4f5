package ports

import (
	"context"
	"group-trip-planner/internal/domain"
	"time"
)

// Contract for trip persistence. Missing rows return domain.ErrNotFound.
type TripRepository interface {
	CreateTrip(ctx context.Context, trip domain.Trip, access domain.TripAccess) error
	GetTrip(ctx context.Context, tripID string) (domain.Trip, error)
	GetTripAccess(ctx context.Context, tripID string) (domain.TripAccess, error)
	AddParticipant(ctx context.Context, tripID string, p domain.Participant) error

	SaveItinerary(ctx context.Context, result domain.ItineraryResult) error
	GetItinerary(ctx context.Context, tripID string) (domain.ItineraryResult, error)

	SaveDraftPlan(ctx context.Context, plan domain.DraftPlan) error
	GetDraftPlan(ctx context.Context, tripID string) (domain.DraftPlan, error)
	GetDraftPlanByShareToken(ctx context.Context, token string) (domain.DraftPlan, error)

	SaveSettings(ctx context.Context, tripID string, settings domain.PlanningSettings, updatedAt time.Time) error
	GetSettings(ctx context.Context, tripID string) (domain.PlanningSettings, error)

	AnalyticsSummary(ctx context.Context) (domain.AnalyticsSummary, error)
}
