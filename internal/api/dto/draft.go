package dto

import (
	"group-trip-planner/internal/domain"
	"time"
)

type PlanningSettings struct {
	DailyBudgetPerPerson float64  `json:"daily_budget_per_person" validate:"gte=0,lte=100000"`
	MaxTransferMinutes   int      `json:"max_transfer_minutes" validate:"gte=0,lte=1440"`
	DietaryNotes         string   `json:"dietary_notes" validate:"max=1000"`
	MobilityNotes        string   `json:"mobility_notes" validate:"max=1000"`
	MustDoPlaces         []string `json:"must_do_places" validate:"max=50,dive,max=200"`
	AvoidPlaces          []string `json:"avoid_places" validate:"max=50,dive,max=200"`
}

func (s PlanningSettings) ToDomain() domain.PlanningSettings {
	return domain.PlanningSettings{
		DailyBudgetPerPerson: s.DailyBudgetPerPerson,
		MaxTransferMinutes:   s.MaxTransferMinutes,
		DietaryNotes:         s.DietaryNotes,
		MobilityNotes:        s.MobilityNotes,
		MustDoPlaces:         s.MustDoPlaces,
		AvoidPlaces:          s.AvoidPlaces,
	}
}

type DraftSelection struct {
	SlotID   string          `json:"slot_id" validate:"required"`
	Day      int             `json:"day" validate:"gte=1"`
	Slot     string          `json:"slot" validate:"required,oneof=morning afternoon evening"`
	Activity domain.Activity `json:"activity"`
}

type SlotFeedback struct {
	SlotID        string `json:"slot_id" validate:"required"`
	CandidateName string `json:"candidate_name" validate:"required"`
	Votes         int    `json:"votes" validate:"gte=0"`
	Vetoed        bool   `json:"vetoed"`
}

type SaveDraftPlanRequest struct {
	Selections       []DraftSelection  `json:"selections" validate:"dive"`
	PlanningSettings *PlanningSettings `json:"planning_settings"`
	SlotFeedback     []SlotFeedback    `json:"slot_feedback" validate:"dive"`
}

func (r SaveDraftPlanRequest) ToDomain() (selections []domain.DraftSelection, settings *domain.PlanningSettings, feedback []domain.SlotFeedback) {
	selections = make([]domain.DraftSelection, 0, len(r.Selections))
	for _, s := range r.Selections {
		selections = append(selections, domain.DraftSelection{
			SlotID:   s.SlotID,
			Day:      s.Day,
			Slot:     domain.SlotName(s.Slot),
			Activity: s.Activity,
		})
	}
	if r.PlanningSettings != nil {
		ps := r.PlanningSettings.ToDomain()
		settings = &ps
	}
	feedback = make([]domain.SlotFeedback, 0, len(r.SlotFeedback))
	for _, f := range r.SlotFeedback {
		feedback = append(feedback, domain.SlotFeedback(f))
	}
	return selections, settings, feedback
}

type ShareResponse struct {
	TripID      string     `json:"trip_id"`
	ShareToken  string     `json:"share_token"`
	ShareURL    string     `json:"share_url"`
	SharedCount int        `json:"shared_count"`
	SharedAt    *time.Time `json:"shared_at"`
}

type SharedPlanResponse struct {
	Trip       SharedTripSummary            `json:"trip"`
	DraftPlan  domain.DraftPlan             `json:"draft_plan"`
	Validation domain.DraftValidationReport `json:"validation"`
}

// SharedTripSummary omits participants from the public view.
type SharedTripSummary struct {
	ID                   string `json:"id"`
	Destination          string `json:"destination"`
	StartDate            string `json:"start_date"`
	EndDate              string `json:"end_date"`
	DayCount             int    `json:"day_count"`
	AccommodationAddress string `json:"accommodation_address"`
	ParticipantCount     int    `json:"participant_count"`
}

func NewSharedTripSummary(t domain.Trip) SharedTripSummary {
	return SharedTripSummary{
		ID:                   t.ID,
		Destination:          t.Destination,
		StartDate:            t.StartDate.Format(domain.DateLayout),
		EndDate:              t.EndDate.Format(domain.DateLayout),
		DayCount:             t.DayCount(),
		AccommodationAddress: t.AccommodationAddress,
		ParticipantCount:     len(t.Participants),
	}
}

type GeocodeResponse struct {
	Query   string                    `json:"query"`
	Results []domain.GeocodeCandidate `json:"results"`
}
