package services

import (
	"fmt"
	"group-trip-planner/internal/domain"
)

// AggregatePreferences folds participant preferences into a single group profile.
//
// The interest vector is the per-dimension arithmetic mean. Pacing and wake
// preference are the most frequent values, with ties going to whichever value
// appeared first in participant order.
func AggregatePreferences(participants []domain.Participant) (domain.GroupProfile, error) {
	if len(participants) == 0 {
		return domain.GroupProfile{}, fmt.Errorf("aggregate preferences: %w", domain.ErrNoParticipants)
	}

	var sum domain.InterestVector
	pacing := make([]domain.PacingStyle, 0, len(participants))
	wake := make([]domain.WakePreference, 0, len(participants))
	for _, p := range participants {
		if err := p.Validate(); err != nil {
			return domain.GroupProfile{}, fmt.Errorf("aggregate preferences: %w", err)
		}
		sum = sum.Add(p.Interests)
		pacing = append(pacing, p.Pacing)
		wake = append(wake, p.Wake)
	}

	pacingMode, pacingCounts := mostFrequent(pacing)
	wakeMode, wakeCounts := mostFrequent(wake)

	return domain.GroupProfile{
		Vector:       sum.Scale(1 / float64(len(participants))),
		Pacing:       pacingMode,
		Wake:         wakeMode,
		PacingCounts: pacingCounts,
		WakeCounts:   wakeCounts,
	}, nil
}

// mostFrequent returns the mode of values and the full tally.
// Ties resolve to the value seen first.
func mostFrequent[T comparable](values []T) (T, map[T]int) {
	counts := make(map[T]int, len(values))
	var order []T
	for _, v := range values {
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}

	var best T
	bestCount := 0
	for _, v := range order {
		if counts[v] > bestCount {
			best = v
			bestCount = counts[v]
		}
	}
	return best, counts
}
