package services

import (
	"errors"
	"group-trip-planner/internal/domain"
	"strings"
	"testing"
	"time"
)

func TestBuildDraftPlanRejectsDuplicateSlot(t *testing.T) {
	trip := testTrip("Paris", "2026-05-01", "2026-05-02")
	a := SyntheticActivities(parisStay)

	_, err := BuildDraftPlan(trip, SaveDraftRequest{Selections: []domain.DraftSelection{
		selection(1, domain.SlotMorning, a[4]),
		selection(1, domain.SlotMorning, a[5]),
	}}, nil, fixedNow())
	if !errors.Is(err, domain.ErrDuplicateSlot) {
		t.Fatalf("expected ErrDuplicateSlot, got %v", err)
	}
}

func TestBuildDraftPlanValidatesSlots(t *testing.T) {
	trip := testTrip("Paris", "2026-05-01", "2026-05-02")
	a := SyntheticActivities(parisStay)[0]

	cases := map[string]domain.DraftSelection{
		"day out of range": {Day: 3, Slot: domain.SlotMorning, Activity: a},
		"unknown slot":     {Day: 1, Slot: "brunch", Activity: a},
		"mismatched id":    {SlotID: "day-2-evening", Day: 1, Slot: domain.SlotMorning, Activity: a},
		"missing activity": {Day: 1, Slot: domain.SlotMorning},
	}
	for name, sel := range cases {
		_, err := BuildDraftPlan(trip, SaveDraftRequest{Selections: []domain.DraftSelection{sel}}, nil, fixedNow())
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}
}

func TestBuildDraftPlanKeepsOrderAndShareState(t *testing.T) {
	trip := testTrip("Paris", "2026-05-01", "2026-05-02")
	a := SyntheticActivities(parisStay)
	sharedAt := fixedNow().Add(-time.Hour)
	previous := &domain.DraftPlan{Metadata: domain.DraftPlanMetadata{SharedToken: "tok", SharedCount: 2, SharedAt: &sharedAt}}

	plan, err := BuildDraftPlan(trip, SaveDraftRequest{
		Selections: []domain.DraftSelection{
			{Day: 2, Slot: domain.SlotEvening, Activity: a[7]},
			selection(1, domain.SlotMorning, a[4]),
			selection(1, domain.SlotAfternoon, a[0]),
		},
		SlotFeedback: []domain.SlotFeedback{
			{SlotID: "day-1-morning", CandidateName: "City History Museum", Votes: 3},
			{SlotID: "", CandidateName: "ignored"},
		},
	}, previous, fixedNow())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	gotIDs := []string{plan.Selections[0].SlotID, plan.Selections[1].SlotID, plan.Selections[2].SlotID}
	wantIDs := []string{"day-2-evening", "day-1-morning", "day-1-afternoon"}
	if strings.Join(gotIDs, ",") != strings.Join(wantIDs, ",") {
		t.Fatalf("expected order %v, got %v", wantIDs, gotIDs)
	}
	if plan.Metadata.SelectionCoverageRatio != 0.5 {
		t.Fatalf("expected coverage 0.5, got %v", plan.Metadata.SelectionCoverageRatio)
	}
	if len(plan.Metadata.SlotFeedback) != 1 {
		t.Fatalf("expected 1 feedback entry, got %d", len(plan.Metadata.SlotFeedback))
	}
	if plan.Metadata.SharedToken != "tok" || plan.Metadata.SharedCount != 2 || !plan.Metadata.SharedAt.Equal(sharedAt) {
		t.Fatalf("expected share state carried over, got %+v", plan.Metadata)
	}
}

func TestShareURL(t *testing.T) {
	if got := ShareURL("http://localhost:3000/", "abc"); got != "http://localhost:3000/share/abc" {
		t.Fatalf("unexpected share url %q", got)
	}
	if tok := NewShareToken(); len(tok) != 16 || strings.Contains(tok, "-") {
		t.Fatalf("unexpected share token %q", tok)
	}
}
