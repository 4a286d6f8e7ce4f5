package domain

import "time"

type DraftValidationDay struct {
	Day                    int      `json:"day"`
	EstimatedCostPerPerson string   `json:"estimated_cost_per_person"`
	EstimatedCostValue     float64  `json:"estimated_cost_value"`
	TransferMinutesTotal   int      `json:"transfer_minutes_total"`
	MaxTransferLegMinutes  int      `json:"max_transfer_leg_minutes"`
	Warnings               []string `json:"warnings"`
	RouteMapURL            string   `json:"route_map_url,omitempty"`
}

type DraftValidationReport struct {
	TripID                      string               `json:"trip_id"`
	GeneratedAt                 time.Time            `json:"generated_at"`
	DayCount                    int                  `json:"day_count"`
	TotalEstimatedCostPerPerson float64              `json:"total_estimated_cost_per_person"`
	Days                        []DraftValidationDay `json:"days"`
	Warnings                    []string             `json:"warnings"`
}

type AnalyticsSummary struct {
	TotalTrips              int     `json:"total_trips" db:"total_trips"`
	TripsWithSavedDraft     int     `json:"trips_with_saved_draft" db:"trips_with_saved_draft"`
	PctTripsWithSavedDraft  float64 `json:"pct_trips_with_saved_draft"`
	SavedDrafts             int     `json:"saved_drafts" db:"saved_drafts"`
	SavedDraftsFullSlots    int     `json:"saved_drafts_full_slots" db:"saved_drafts_full_slots"`
	PctSavedDraftsFullSlots float64 `json:"pct_saved_drafts_full_slots"`
	SavedDraftsShared       int     `json:"saved_drafts_shared" db:"saved_drafts_shared"`
	PctSavedDraftsShared    float64 `json:"pct_saved_drafts_shared"`
}

// Pct returns part/whole as a percentage rounded to 2 places, 0 when whole is 0.
func Pct(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return RoundTo(float64(part)/float64(whole)*100, 2)
}

// GeocodeCandidate is one result of an address lookup.
type GeocodeCandidate struct {
	Address    string  `json:"address"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	Provider   string  `json:"provider"`
	Confidence float64 `json:"confidence"`
}
