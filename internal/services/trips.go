package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"group-trip-planner/internal/domain"
	"group-trip-planner/internal/ports"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CreateTrip validates and stores a new trip, minting its id, owner token and
// join code.
func CreateTrip(ctx context.Context, repo ports.TripRepository, trip domain.Trip, now time.Time) (domain.Trip, domain.TripAccess, error) {
	trip.Destination = strings.TrimSpace(trip.Destination)
	if err := trip.Validate(); err != nil {
		return domain.Trip{}, domain.TripAccess{}, fmt.Errorf("create trip: %w", err)
	}
	for _, p := range trip.Participants {
		if err := p.Validate(); err != nil {
			return domain.Trip{}, domain.TripAccess{}, fmt.Errorf("create trip: %w", err)
		}
	}

	access, err := newTripAccess()
	if err != nil {
		return domain.Trip{}, domain.TripAccess{}, fmt.Errorf("create trip: %w", err)
	}

	trip.ID = uuid.NewString()
	trip.CreatedAt = now
	if trip.Participants == nil {
		trip.Participants = []domain.Participant{}
	}
	if err := repo.CreateTrip(ctx, trip, access); err != nil {
		return domain.Trip{}, domain.TripAccess{}, fmt.Errorf("create trip: %w", err)
	}
	return trip, access, nil
}

func newTripAccess() (domain.TripAccess, error) {
	owner := make([]byte, 24)
	if _, err := rand.Read(owner); err != nil {
		return domain.TripAccess{}, fmt.Errorf("generate owner token: %w", err)
	}
	join := make([]byte, 3)
	if _, err := rand.Read(join); err != nil {
		return domain.TripAccess{}, fmt.Errorf("generate join code: %w", err)
	}
	return domain.TripAccess{
		OwnerToken: base64.RawURLEncoding.EncodeToString(owner),
		JoinCode:   strings.ToUpper(hex.EncodeToString(join)),
	}, nil
}

// AuthorizeTrip checks token against the trip's owner token and join code.
// It returns ErrNotFound, ErrUnauthorized (no token) or ErrForbidden.
func AuthorizeTrip(ctx context.Context, repo ports.TripRepository, tripID, token string) error {
	access, err := repo.GetTripAccess(ctx, tripID)
	if err != nil {
		return fmt.Errorf("authorize trip %q: %w", tripID, err)
	}
	if strings.TrimSpace(token) == "" {
		return domain.ErrUnauthorized
	}
	if !access.Allows(token) {
		return domain.ErrForbidden
	}
	return nil
}

// JoinTrip appends a participant and returns the updated trip.
func JoinTrip(ctx context.Context, repo ports.TripRepository, tripID string, p domain.Participant) (domain.Trip, error) {
	p.Name = strings.TrimSpace(p.Name)
	if err := p.Validate(); err != nil {
		return domain.Trip{}, fmt.Errorf("join trip: %w", err)
	}
	if err := repo.AddParticipant(ctx, tripID, p); err != nil {
		return domain.Trip{}, fmt.Errorf("join trip: %w", err)
	}
	trip, err := repo.GetTrip(ctx, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("join trip: %w", err)
	}
	return trip, nil
}

// PlanningSettingsFor returns the stored settings, or defaults when none
// have been saved yet.
func PlanningSettingsFor(ctx context.Context, repo ports.TripRepository, tripID string) (domain.PlanningSettings, error) {
	settings, err := repo.GetSettings(ctx, tripID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.DefaultPlanningSettings(), nil
	}
	if err != nil {
		return domain.PlanningSettings{}, fmt.Errorf("get planning settings: %w", err)
	}
	return settings, nil
}

// UpdatePlanningSettings normalizes hint lists and stores the settings.
func UpdatePlanningSettings(
	ctx context.Context,
	repo ports.TripRepository,
	tripID string,
	settings domain.PlanningSettings,
	now time.Time,
) (domain.PlanningSettings, error) {
	settings = normalizeSettings(settings)
	if err := settings.Validate(); err != nil {
		return domain.PlanningSettings{}, fmt.Errorf("update planning settings: %w", err)
	}
	if err := repo.SaveSettings(ctx, tripID, settings, now); err != nil {
		return domain.PlanningSettings{}, fmt.Errorf("update planning settings: %w", err)
	}
	return settings, nil
}

func normalizeSettings(s domain.PlanningSettings) domain.PlanningSettings {
	s.DietaryNotes = strings.TrimSpace(s.DietaryNotes)
	s.MobilityNotes = strings.TrimSpace(s.MobilityNotes)
	s.MustDoPlaces = trimList(s.MustDoPlaces)
	s.AvoidPlaces = trimList(s.AvoidPlaces)
	return s
}

// trimList keeps user ordering and casing; matching normalizes later.
func trimList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// AnalyticsSummary fills the percentage fields of the repository's counts.
func AnalyticsSummary(ctx context.Context, repo ports.TripRepository) (domain.AnalyticsSummary, error) {
	s, err := repo.AnalyticsSummary(ctx)
	if err != nil {
		return domain.AnalyticsSummary{}, fmt.Errorf("analytics summary: %w", err)
	}
	s.PctTripsWithSavedDraft = domain.Pct(s.TripsWithSavedDraft, s.TotalTrips)
	s.PctSavedDraftsFullSlots = domain.Pct(s.SavedDraftsFullSlots, s.SavedDrafts)
	s.PctSavedDraftsShared = domain.Pct(s.SavedDraftsShared, s.SavedDrafts)
	return s, nil
}
