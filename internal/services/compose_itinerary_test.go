package services

import (
	"group-trip-planner/internal/domain"
	"testing"
)

func TestComposeItineraryFillsRolesWithoutRepeats(t *testing.T) {
	trip := testTrip("Paris", "2026-05-01", "2026-05-02")
	profile := domain.GroupProfile{
		Vector: domain.InterestVector{Food: 3, Nightlife: 3, Culture: 3, Outdoors: 3, Relaxation: 3},
		Pacing: domain.PacingPacked,
		Wake:   domain.WakeEarly,
	}
	clusters := [][]domain.ScoredActivity{
		{
			scored("Louvre", domain.CategoryMuseum, 0.9),
			scored("Marche", domain.CategoryFood, 0.8),
			scored("Bistro", domain.CategoryRestaurant, 0.7),
			scored("Cave", domain.CategoryBar, 0.6),
		},
		{
			scored("Food Hall", domain.CategoryFood, 0.5),
		},
	}

	got := ComposeItinerary(ComposeInput{
		Name:     "Packed Experience",
		Style:    domain.PacingPacked,
		Clusters: clusters,
		Profile:  profile,
		Trip:     trip,
	})

	if len(got.Days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(got.Days))
	}

	d1 := got.Days[0]
	if d1.Morning.Name != "Louvre" || d1.Afternoon.Name != "Marche" || d1.Dinner.Name != "Bistro" || d1.Evening.Name != "Cave" {
		t.Fatalf("unexpected day 1: %v", names(d1.Activities()))
	}
	if len(d1.RelaxedRoles) != 0 {
		t.Fatalf("expected no relaxed roles on day 1, got %v", d1.RelaxedRoles)
	}

	d2 := got.Days[1]
	if d2.Morning == nil || d2.Morning.Name != "Food Hall" {
		t.Fatalf("expected morning fallback to Food Hall, got %v", d2.Morning)
	}
	if d2.Afternoon != nil || d2.Dinner != nil || d2.Evening != nil {
		t.Fatalf("expected remaining roles empty, got %v", names(d2.Activities()))
	}
	if len(d2.RelaxedRoles) != 1 || d2.RelaxedRoles[0] != domain.RoleMorning {
		t.Fatalf("expected morning relaxed, got %v", d2.RelaxedRoles)
	}

	for _, d := range got.Days {
		seen := map[string]bool{}
		for _, a := range d.Activities() {
			if seen[a.Name] {
				t.Fatalf("day %d repeats %q", d.Day, a.Name)
			}
			seen[a.Name] = true
		}
	}

	if got.GroupMatchScore <= 0 || got.GroupMatchScore > 100 {
		t.Fatalf("expected match score in (0, 100], got %v", got.GroupMatchScore)
	}
}

func TestComposeItineraryRespectsStyleDailyCap(t *testing.T) {
	trip := testTrip("Paris", "2026-05-01", "2026-05-01")
	clusters := [][]domain.ScoredActivity{{
		scored("Louvre", domain.CategoryMuseum, 0.9),
		scored("Marche", domain.CategoryFood, 0.8),
		scored("Bistro", domain.CategoryRestaurant, 0.7),
	}}

	got := ComposeItinerary(ComposeInput{Name: "Relaxed Trip", Style: domain.PacingChill, Clusters: clusters, Trip: trip})
	if n := len(got.Days[0].Activities()); n != 2 {
		t.Fatalf("expected chill day capped at 2 activities, got %d", n)
	}
}

func TestComposeItineraryDefaultMatchScore(t *testing.T) {
	trip := testTrip("Paris", "2026-05-01", "2026-05-03")
	got := ComposeItinerary(ComposeInput{Name: "Balanced Exploration", Style: domain.PacingBalanced, Trip: trip})

	if got.GroupMatchScore != 50 {
		t.Fatalf("expected default match score 50, got %v", got.GroupMatchScore)
	}
	if len(got.Days) != 3 {
		t.Fatalf("expected 3 padded days, got %d", len(got.Days))
	}
}
