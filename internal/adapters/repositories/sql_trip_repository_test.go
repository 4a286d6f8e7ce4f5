package repositories

import (
	"context"
	"errors"
	"group-trip-planner/internal/domain"
	"group-trip-planner/internal/platform/db"
	"testing"
	"time"
)

func newRepo(t *testing.T) *SQLTripRepository {
	t.Helper()
	conn, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := InitSchema(context.Background(), conn); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	// Idempotent.
	if err := InitSchema(context.Background(), conn); err != nil {
		t.Fatalf("second init schema: %v", err)
	}
	return NewSQLTripRepository(conn)
}

func sampleTrip(id string, days int) domain.Trip {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	return domain.Trip{
		ID:                   id,
		Destination:          "Paris",
		StartDate:            start,
		EndDate:              start.AddDate(0, 0, days-1),
		AccommodationAddress: "10 Rue de Rivoli",
		Accommodation:        domain.Coordinates{Lat: 48.8556, Lng: 2.3601},
		CreatedAt:            time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC),
		Participants: []domain.Participant{{
			Name:      "Ana",
			Interests: domain.InterestVector{Food: 5, Nightlife: 2, Culture: 4, Outdoors: 3, Relaxation: 1},
			Pacing:    domain.PacingBalanced,
			Wake:      domain.WakeEarly,
		}},
	}
}

func TestTripRoundTrip(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	trip := sampleTrip("t1", 3)
	if err := repo.CreateTrip(ctx, trip, domain.TripAccess{OwnerToken: "owner", JoinCode: "ABC123"}); err != nil {
		t.Fatalf("create trip: %v", err)
	}

	bo := domain.Participant{
		Name:      "Bo",
		Interests: domain.InterestVector{Food: 1, Nightlife: 5, Culture: 1, Outdoors: 1, Relaxation: 3},
		Pacing:    domain.PacingPacked,
		Wake:      domain.WakeLate,
	}
	if err := repo.AddParticipant(ctx, "t1", bo); err != nil {
		t.Fatalf("add participant: %v", err)
	}

	got, err := repo.GetTrip(ctx, "t1")
	if err != nil {
		t.Fatalf("get trip: %v", err)
	}
	if got.DayCount() != 3 || !got.CreatedAt.Equal(trip.CreatedAt) || got.Accommodation != trip.Accommodation {
		t.Fatalf("unexpected trip: %+v", got)
	}
	if len(got.Participants) != 2 || got.Participants[0].Name != "Ana" || got.Participants[1] != bo {
		t.Fatalf("expected participants in join order, got %+v", got.Participants)
	}

	access, err := repo.GetTripAccess(ctx, "t1")
	if err != nil || access.OwnerToken != "owner" || access.JoinCode != "ABC123" {
		t.Fatalf("unexpected access: %+v %v", access, err)
	}
}

func TestMissingRowsReturnNotFound(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	if _, err := repo.GetTrip(ctx, "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for trip, got %v", err)
	}
	if err := repo.AddParticipant(ctx, "nope", domain.Participant{Name: "x"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for participant, got %v", err)
	}
	if _, err := repo.GetDraftPlan(ctx, "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for draft, got %v", err)
	}
	if _, err := repo.GetSettings(ctx, "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for settings, got %v", err)
	}
	if _, err := repo.GetDraftPlanByShareToken(ctx, ""); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty share token, got %v", err)
	}
}

func TestDraftPlanPersistenceAndAnalytics(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	for _, id := range []string{"t1", "t2", "t3"} {
		if err := repo.CreateTrip(ctx, sampleTrip(id, 1), domain.TripAccess{OwnerToken: id, JoinCode: id}); err != nil {
			t.Fatalf("create trip %s: %v", id, err)
		}
	}

	sel := func(slot domain.SlotName, name string) domain.DraftSelection {
		return domain.DraftSelection{
			SlotID:   domain.SlotID(1, slot),
			Day:      1,
			Slot:     slot,
			Activity: domain.Activity{Name: name, Category: domain.CategoryMuseum},
		}
	}

	full := domain.DraftPlan{
		TripID:  "t1",
		SavedAt: time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC),
		Selections: []domain.DraftSelection{
			sel(domain.SlotEvening, "Bar"),
			sel(domain.SlotMorning, "Louvre"),
			sel(domain.SlotAfternoon, "Orsay"),
		},
		Metadata: domain.DraftPlanMetadata{SlotFeedback: []domain.SlotFeedback{}, SelectionCoverageRatio: 1},
	}
	if err := repo.SaveDraftPlan(ctx, full); err != nil {
		t.Fatalf("save draft: %v", err)
	}

	partial := domain.DraftPlan{
		TripID:     "t2",
		SavedAt:    time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC),
		Selections: []domain.DraftSelection{sel(domain.SlotMorning, "Louvre")},
	}
	if err := repo.SaveDraftPlan(ctx, partial); err != nil {
		t.Fatalf("save draft: %v", err)
	}

	got, err := repo.GetDraftPlan(ctx, "t1")
	if err != nil {
		t.Fatalf("get draft: %v", err)
	}
	if got.Selections[0].Activity.Name != "Bar" || got.Selections[2].Activity.Name != "Orsay" {
		t.Fatalf("expected selection order preserved, got %+v", got.Selections)
	}

	shared := time.Date(2026, 5, 3, 0, 0, 0, 0, time.UTC)
	full.Metadata.SharedToken = "abc123def4567890"
	full.Metadata.SharedCount = 1
	full.Metadata.SharedAt = &shared
	if err := repo.SaveDraftPlan(ctx, full); err != nil {
		t.Fatalf("re-save draft: %v", err)
	}

	byToken, err := repo.GetDraftPlanByShareToken(ctx, "abc123def4567890")
	if err != nil || byToken.TripID != "t1" || byToken.Metadata.SharedCount != 1 {
		t.Fatalf("unexpected shared draft: %+v %v", byToken, err)
	}
	if _, err := repo.GetDraftPlanByShareToken(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown token, got %v", err)
	}

	summary, err := repo.AnalyticsSummary(ctx)
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	want := domain.AnalyticsSummary{
		TotalTrips:           3,
		TripsWithSavedDraft:  2,
		SavedDrafts:          2,
		SavedDraftsFullSlots: 1,
		SavedDraftsShared:    1,
	}
	if summary != want {
		t.Fatalf("expected %+v, got %+v", want, summary)
	}
}

func TestSettingsAndItineraryUpsert(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	if err := repo.CreateTrip(ctx, sampleTrip("t1", 2), domain.TripAccess{OwnerToken: "o", JoinCode: "J"}); err != nil {
		t.Fatalf("create trip: %v", err)
	}

	now := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)
	s := domain.DefaultPlanningSettings()
	s.MustDoPlaces = []string{"Louvre"}
	if err := repo.SaveSettings(ctx, "t1", s, now); err != nil {
		t.Fatalf("save settings: %v", err)
	}
	s.DailyBudgetPerPerson = 90
	if err := repo.SaveSettings(ctx, "t1", s, now.Add(time.Hour)); err != nil {
		t.Fatalf("update settings: %v", err)
	}
	got, err := repo.GetSettings(ctx, "t1")
	if err != nil || got.DailyBudgetPerPerson != 90 || len(got.MustDoPlaces) != 1 {
		t.Fatalf("unexpected settings: %+v %v", got, err)
	}

	result := domain.ItineraryResult{
		TripID:      "t1",
		GeneratedAt: now,
		Options:     []domain.ItineraryOption{{Name: "Balanced Exploration", Style: domain.PacingBalanced, GroupMatchScore: 81.5}},
	}
	if err := repo.SaveItinerary(ctx, result); err != nil {
		t.Fatalf("save itinerary: %v", err)
	}
	it, err := repo.GetItinerary(ctx, "t1")
	if err != nil || len(it.Options) != 1 || it.Options[0].GroupMatchScore != 81.5 {
		t.Fatalf("unexpected itinerary: %+v %v", it, err)
	}
}
