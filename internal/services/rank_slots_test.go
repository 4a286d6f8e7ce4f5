package services

import (
	"group-trip-planner/internal/domain"
	"testing"
)

func TestRankSlotCandidatesEveningAvoidsSightseeing(t *testing.T) {
	in := []domain.ScoredActivity{
		scored("Big Museum", domain.CategoryMuseum, 0.95),
		scored("Old Landmark", domain.CategoryLandmark, 0.9),
		scored("Corner Restaurant", domain.CategoryRestaurant, 0.3),
	}

	got := RankSlotCandidates(SlotRankInput{Scored: in, Slot: domain.SlotEvening})
	if len(got.Candidates) != 1 || got.Candidates[0].Name != "Corner Restaurant" {
		t.Fatalf("expected only Corner Restaurant, got %v", got.Candidates)
	}
	if got.RelaxedWithin(MaxSlotCandidates) {
		t.Fatalf("expected no relaxation")
	}
}

func TestRankSlotCandidatesLastResortBackfill(t *testing.T) {
	in := []domain.ScoredActivity{scored("Big Museum", domain.CategoryMuseum, 0.95)}

	got := RankSlotCandidates(SlotRankInput{Scored: in, Slot: domain.SlotEvening})
	if len(got.Candidates) != 1 || got.Candidates[0].Name != "Big Museum" {
		t.Fatalf("expected museum as last resort, got %v", got.Candidates)
	}
	if !got.RelaxedWithin(1) {
		t.Fatalf("expected last resort to be flagged relaxed")
	}
}

func TestRankSlotCandidatesNeutralBackfillAfterAllowed(t *testing.T) {
	in := []domain.ScoredActivity{
		scored("Sunny Beach", domain.CategoryBeach, 0.9),
		scored("Cafe", domain.CategoryFood, 0.2),
	}

	got := RankSlotCandidates(SlotRankInput{Scored: in, Slot: domain.SlotEvening})
	if len(got.Candidates) != 2 || got.Candidates[0].Name != "Cafe" || got.Candidates[1].Name != "Sunny Beach" {
		t.Fatalf("expected [Cafe Sunny Beach], got %v", got.Candidates)
	}
	if got.RelaxedWithin(1) {
		t.Fatalf("expected top pick not relaxed")
	}
	if !got.RelaxedWithin(2) {
		t.Fatalf("expected second pick relaxed")
	}
}

func TestRankSlotCandidatesMustDoFirstAvoidRemoved(t *testing.T) {
	in := []domain.ScoredActivity{
		scored("Tourist Trap Museum", domain.CategoryMuseum, 0.99),
		scored("District Gallery", domain.CategoryMuseum, 0.78),
		scored("Louvre Museum", domain.CategoryMuseum, 0.75),
	}

	got := RankSlotCandidates(SlotRankInput{
		Scored: in,
		Slot:   domain.SlotMorning,
		MustDo: domain.NewHintSet([]string{"LOUVRE"}),
		Avoid:  domain.NewHintSet([]string{"trap"}),
	})

	if len(got.Candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got.Candidates))
	}
	if got.Candidates[0].Name != "Louvre Museum" || got.Candidates[1].Name != "District Gallery" {
		t.Fatalf("expected [Louvre Museum District Gallery], got [%s %s]", got.Candidates[0].Name, got.Candidates[1].Name)
	}
}

func TestRankSlotCandidatesDiversityAndTieBreak(t *testing.T) {
	in := []domain.ScoredActivity{
		scored("Museum B", domain.CategoryMuseum, 0.5),
		scored("Museum A", domain.CategoryMuseum, 0.5),
		scored("Park", domain.CategoryPark, 0.5),
	}

	got := RankSlotCandidates(SlotRankInput{Scored: in, Slot: domain.SlotMorning})
	if got.Candidates[0].Name != "Museum A" || got.Candidates[1].Name != "Museum B" {
		t.Fatalf("expected name tie-break [Museum A Museum B ...], got %v", got.Candidates)
	}

	used := RankSlotCandidates(SlotRankInput{
		Scored:        in,
		Slot:          domain.SlotMorning,
		CategoryUsage: map[domain.Category]int{domain.CategoryMuseum: 2},
	})
	if used.Candidates[0].Name != "Park" {
		t.Fatalf("expected diversity to promote Park, got %q", used.Candidates[0].Name)
	}
}

func TestBuildDraftSlotsPrimaryPicksNeverRepeat(t *testing.T) {
	scoredActs := ScoreActivities(SyntheticActivities(parisStay), ScoreInput{
		Group:         domain.InterestVector{Food: 3, Nightlife: 3, Culture: 3, Outdoors: 3, Relaxation: 3},
		Accommodation: parisStay,
		Wake:          domain.WakeNormal,
		Style:         domain.PacingBalanced,
	})

	settings := domain.DefaultPlanningSettings()
	settings.AvoidPlaces = []string{"lounge"}
	slots := BuildDraftSlots(DraftInput{Scored: scoredActs, DayCount: 2, Settings: settings, CandidatesPerSlot: 3})

	if len(slots) != 6 {
		t.Fatalf("expected 6 slots, got %d", len(slots))
	}
	primaries := map[string]string{}
	for _, s := range slots {
		if s.SlotID != domain.SlotID(s.Day, s.Slot) {
			t.Fatalf("expected slot id %q, got %q", domain.SlotID(s.Day, s.Slot), s.SlotID)
		}
		if len(s.Candidates) == 0 || len(s.Candidates) > 3 {
			t.Fatalf("%s: expected 1..3 candidates, got %d", s.SlotID, len(s.Candidates))
		}
		top := s.Candidates[0].Name
		if prev, ok := primaries[top]; ok {
			t.Fatalf("%q is the primary pick of both %s and %s", top, prev, s.SlotID)
		}
		primaries[top] = s.SlotID
		for _, c := range s.Candidates {
			if c.Name == "Sunset Lounge" {
				t.Fatalf("%s: avoided activity offered", s.SlotID)
			}
		}
		if s.Slot == domain.SlotEvening && !s.Relaxed {
			for _, c := range s.Candidates {
				if c.Category.In(domain.CategoryMuseum, domain.CategoryLandmark, domain.CategoryCulture) {
					t.Fatalf("%s: sightseeing offered in the evening: %q", s.SlotID, c.Name)
				}
			}
		}
	}
}

func TestBuildDraftSlotsSkipsSlotsWithNothingLeft(t *testing.T) {
	in := []domain.ScoredActivity{scored("Only Cafe", domain.CategoryFood, 0.5)}
	slots := BuildDraftSlots(DraftInput{Scored: in, DayCount: 2})

	if len(slots) != 1 || slots[0].SlotID != "day-1-morning" {
		t.Fatalf("expected a single day-1-morning slot, got %v", slots)
	}
}
