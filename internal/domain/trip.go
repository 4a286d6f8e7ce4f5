package domain

import (
	"strings"
	"time"
)

const (
	MaxTripDays       = 30
	DateLayout        = "2006-01-02"
	minDestinationLen = 2
)

// Trip is the planning context shared by the engine and storage.
type Trip struct {
	ID                   string        `json:"id"`
	Destination          string        `json:"destination"`
	StartDate            time.Time     `json:"start_date"`
	EndDate              time.Time     `json:"end_date"`
	AccommodationAddress string        `json:"accommodation_address"`
	Accommodation        Coordinates   `json:"accommodation"`
	Participants         []Participant `json:"participants"`
	CreatedAt            time.Time     `json:"created_at"`
}

// DayCount is the number of calendar days from start to end, inclusive.
func (t Trip) DayCount() int {
	start := truncateDay(t.StartDate)
	end := truncateDay(t.EndDate)
	return int(end.Sub(start).Hours()/24) + 1
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Validate checks the trip fields the engine depends on. Participants are
// validated separately since a trip may exist before anyone joins.
func (t Trip) Validate() error {
	if len(strings.TrimSpace(t.Destination)) < minDestinationLen {
		return invalidf("destination must be at least %d characters", minDestinationLen)
	}
	if t.StartDate.IsZero() || t.EndDate.IsZero() {
		return invalidf("start and end dates are required")
	}
	days := t.DayCount()
	if days < 1 {
		return invalidf("end date must be on or after start date")
	}
	if days > MaxTripDays {
		return invalidf("trip length cannot exceed %d days", MaxTripDays)
	}
	if !t.Accommodation.Valid() {
		return invalidf("accommodation coordinates out of range")
	}
	return nil
}

// TripAccess holds the secrets that grant access to a trip.
type TripAccess struct {
	OwnerToken string
	JoinCode   string
}

// Allows reports whether token matches the owner token or the join code.
func (a TripAccess) Allows(token string) bool {
	token = strings.TrimSpace(token)
	if token == "" {
		return false
	}
	return token == a.OwnerToken || strings.EqualFold(token, a.JoinCode)
}
