package domain

import "time"

// Role is a position in a composed itinerary day.
type Role string

const (
	RoleMorning   Role = "morning"
	RoleAfternoon Role = "afternoon"
	RoleDinner    Role = "dinner"
	RoleEvening   Role = "evening"
)

// Roles lists day roles in chronological order.
var Roles = []Role{RoleMorning, RoleAfternoon, RoleDinner, RoleEvening}

// DayPlan is one day of an itinerary option. A nil role means nothing fit.
type DayPlan struct {
	Day          int       `json:"day"`
	Morning      *Activity `json:"morning"`
	Afternoon    *Activity `json:"afternoon"`
	Dinner       *Activity `json:"dinner"`
	Evening      *Activity `json:"evening"`
	RelaxedRoles []Role    `json:"relaxed_roles,omitempty"`
}

func (d *DayPlan) Set(role Role, a *Activity) {
	switch role {
	case RoleMorning:
		d.Morning = a
	case RoleAfternoon:
		d.Afternoon = a
	case RoleDinner:
		d.Dinner = a
	case RoleEvening:
		d.Evening = a
	}
}

// Activities returns the filled roles in chronological order.
func (d DayPlan) Activities() []Activity {
	out := make([]Activity, 0, len(Roles))
	for _, a := range []*Activity{d.Morning, d.Afternoon, d.Dinner, d.Evening} {
		if a != nil {
			out = append(out, *a)
		}
	}
	return out
}

// ItineraryOption is one complete plan at a given pacing.
type ItineraryOption struct {
	Name            string      `json:"name"`
	Style           PacingStyle `json:"style"`
	GroupMatchScore float64     `json:"group_match_score"`
	Explanation     string      `json:"explanation"`
	Days            []DayPlan   `json:"days"`
}

type ItineraryResult struct {
	TripID      string            `json:"trip_id"`
	GeneratedAt time.Time         `json:"generated_at"`
	Options     []ItineraryOption `json:"options"`
}
