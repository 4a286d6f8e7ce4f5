package services

import (
	"group-trip-planner/internal/domain"
	"time"
)

var parisStay = domain.Coordinates{Lat: 48.8566, Lng: 2.3522}

func day(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func participant(name string, v domain.InterestVector, pacing domain.PacingStyle, wake domain.WakePreference) domain.Participant {
	return domain.Participant{Name: name, Interests: v, Pacing: pacing, Wake: wake}
}

func testTrip(destination string, start, end string, people ...domain.Participant) domain.Trip {
	return domain.Trip{
		ID:            "trip-1",
		Destination:   destination,
		StartDate:     day(start),
		EndDate:       day(end),
		Accommodation: parisStay,
		Participants:  people,
	}
}

func scored(name string, c domain.Category, score float64) domain.ScoredActivity {
	return domain.ScoredActivity{
		Activity: domain.Activity{Name: name, Category: c, Rating: 4.5, PriceLevel: 2, Lat: parisStay.Lat, Lng: parisStay.Lng, DurationMinutes: 90},
		Score:    score,
	}
}

func names(acts []domain.Activity) []string {
	out := make([]string, 0, len(acts))
	for _, a := range acts {
		out = append(out, a.Name)
	}
	return out
}
