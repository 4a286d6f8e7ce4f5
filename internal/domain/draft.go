package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// SlotName is a position in a draft day.
type SlotName string

const (
	SlotMorning   SlotName = "morning"
	SlotAfternoon SlotName = "afternoon"
	SlotEvening   SlotName = "evening"
)

// SlotNames lists draft slots in chronological order.
var SlotNames = []SlotName{SlotMorning, SlotAfternoon, SlotEvening}

func (s SlotName) Valid() bool {
	return s == SlotMorning || s == SlotAfternoon || s == SlotEvening
}

// Order is the chronological index of the slot, or len(SlotNames) if unknown.
func (s SlotName) Order() int {
	for i, n := range SlotNames {
		if n == s {
			return i
		}
	}
	return len(SlotNames)
}

// SlotID is the stable identifier of a (day, slot) pair.
func SlotID(day int, slot SlotName) string {
	return fmt.Sprintf("day-%d-%s", day, slot)
}

// DraftSlot offers ranked alternatives for one (day, slot).
type DraftSlot struct {
	SlotID     string     `json:"slot_id"`
	Day        int        `json:"day"`
	Slot       SlotName   `json:"slot"`
	Candidates []Activity `json:"candidates"`
	Relaxed    bool       `json:"relaxed,omitempty"`
}

type DraftSchedule struct {
	TripID      string      `json:"trip_id"`
	GeneratedAt time.Time   `json:"generated_at"`
	Slots       []DraftSlot `json:"slots"`
}

// DraftSelection is the group's pick for one slot.
type DraftSelection struct {
	SlotID   string   `json:"slot_id"`
	Day      int      `json:"day"`
	Slot     SlotName `json:"slot"`
	Activity Activity `json:"activity"`
}

type SlotFeedback struct {
	SlotID        string `json:"slot_id"`
	CandidateName string `json:"candidate_name"`
	Votes         int    `json:"votes"`
	Vetoed        bool   `json:"vetoed"`
}

type DraftPlanMetadata struct {
	PlanningSettings       *PlanningSettings `json:"planning_settings,omitempty"`
	SlotFeedback           []SlotFeedback    `json:"slot_feedback"`
	SelectionCoverageRatio float64           `json:"selection_coverage_ratio"`
	SharedToken            string            `json:"shared_token,omitempty"`
	SharedCount            int               `json:"shared_count"`
	SharedAt               *time.Time        `json:"shared_at,omitempty"`
}

// DraftPlan is the persisted set of selections, in the order they were made.
type DraftPlan struct {
	TripID     string            `json:"trip_id"`
	SavedAt    time.Time         `json:"saved_at"`
	Selections []DraftSelection  `json:"selections"`
	Metadata   DraftPlanMetadata `json:"metadata"`
}

// PlanningSettings are the group's constraints for drafting and validation.
type PlanningSettings struct {
	DailyBudgetPerPerson float64  `json:"daily_budget_per_person"`
	MaxTransferMinutes   int      `json:"max_transfer_minutes"`
	DietaryNotes         string   `json:"dietary_notes"`
	MobilityNotes        string   `json:"mobility_notes"`
	MustDoPlaces         []string `json:"must_do_places"`
	AvoidPlaces          []string `json:"avoid_places"`
}

func DefaultPlanningSettings() PlanningSettings {
	return PlanningSettings{
		DailyBudgetPerPerson: 150,
		MaxTransferMinutes:   45,
		MustDoPlaces:         []string{},
		AvoidPlaces:          []string{},
	}
}

func (s PlanningSettings) Validate() error {
	if s.DailyBudgetPerPerson < 0 {
		return invalidf("daily budget cannot be negative")
	}
	if s.MaxTransferMinutes < 0 {
		return invalidf("max transfer minutes cannot be negative")
	}
	return nil
}

// HintSet is a normalized list of case-insensitive name fragments.
type HintSet []string

// NewHintSet lower-cases, trims, dedupes and sorts the hints.
func NewHintSet(values []string) HintSet {
	seen := make(map[string]struct{}, len(values))
	out := make(HintSet, 0, len(values))
	for _, v := range values {
		h := strings.ToLower(strings.TrimSpace(v))
		if h == "" {
			continue
		}
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	sort.Strings(out)
	return out
}

// Matches reports whether any hint is a substring of name.
func (h HintSet) Matches(name string) bool {
	return len(h.Matching(name)) > 0
}

// Matching returns the hints contained in name.
func (h HintSet) Matching(name string) []string {
	lowered := strings.ToLower(name)
	var out []string
	for _, hint := range h {
		if strings.Contains(lowered, hint) {
			out = append(out, hint)
		}
	}
	return out
}
