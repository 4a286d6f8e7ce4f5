package services

import (
	"errors"
	"group-trip-planner/internal/domain"
	"math"
	"testing"
)

func TestAggregatePreferencesMeansAndModes(t *testing.T) {
	people := []domain.Participant{
		participant("Ana", domain.InterestVector{Food: 5, Nightlife: 1, Culture: 4, Outdoors: 2, Relaxation: 3}, domain.PacingChill, domain.WakeLate),
		participant("Ben", domain.InterestVector{Food: 3, Nightlife: 2, Culture: 2, Outdoors: 5, Relaxation: 1}, domain.PacingPacked, domain.WakeEarly),
		participant("Cy", domain.InterestVector{Food: 1, Nightlife: 3, Culture: 3, Outdoors: 2, Relaxation: 5}, domain.PacingPacked, domain.WakeNormal),
	}

	got, err := AggregatePreferences(people)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := domain.InterestVector{Food: 3, Nightlife: 2, Culture: 3, Outdoors: 3, Relaxation: 3}
	for _, i := range domain.Interests {
		if math.Abs(got.Vector.Get(i)-want.Get(i)) > 1e-9 {
			t.Fatalf("expected %s=%v, got %v", i, want.Get(i), got.Vector.Get(i))
		}
	}
	if got.Pacing != domain.PacingPacked {
		t.Fatalf("expected pacing packed, got %q", got.Pacing)
	}
	// Every wake value appears once, so the first one seen wins.
	if got.Wake != domain.WakeLate {
		t.Fatalf("expected wake late, got %q", got.Wake)
	}
	if got.PacingCounts[domain.PacingPacked] != 2 {
		t.Fatalf("expected 2 packed votes, got %d", got.PacingCounts[domain.PacingPacked])
	}
}

func TestAggregatePreferencesRejectsEmptyGroup(t *testing.T) {
	_, err := AggregatePreferences(nil)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAggregatePreferencesRejectsOutOfRangeScores(t *testing.T) {
	p := participant("Ana", domain.InterestVector{Food: 7, Nightlife: 1, Culture: 1, Outdoors: 1, Relaxation: 1}, domain.PacingChill, domain.WakeLate)
	if _, err := AggregatePreferences([]domain.Participant{p}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
