package services

import (
	"fmt"
	"group-trip-planner/internal/domain"
	"math"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

const (
	transferSpeedKmh = 25.0
	lowRatingCutoff  = 4.0
	// OpenSlotsWarning is raised for every day with fewer than three filled slots.
	OpenSlotsWarning = "Day has open slots."
)

// ValidateDraft recomputes per-day cost, transfer time and constraint
// warnings for a saved draft plan. It is a pure function of its inputs;
// GeneratedAt is left for the caller to stamp.
//
// Selections for days outside the trip are ignored. When a (day, slot) pair
// appears more than once the last selection wins.
func ValidateDraft(trip domain.Trip, plan domain.DraftPlan, settings domain.PlanningSettings) domain.DraftValidationReport {
	dayCount := trip.DayCount()
	byDay := make(map[int]map[domain.SlotName]domain.Activity)
	for _, sel := range plan.Selections {
		if byDay[sel.Day] == nil {
			byDay[sel.Day] = make(map[domain.SlotName]domain.Activity)
		}
		byDay[sel.Day][sel.Slot] = sel.Activity
	}

	mustDo := domain.NewHintSet(settings.MustDoPlaces)
	avoid := domain.NewHintSet(settings.AvoidPlaces)
	matchedMustDo := make(map[string]struct{})
	matchedAvoid := make(map[string]struct{})

	report := domain.DraftValidationReport{
		TripID:   trip.ID,
		DayCount: dayCount,
		Days:     make([]domain.DraftValidationDay, 0, dayCount),
		Warnings: []string{},
	}
	totalCost := 0.0

	for day := 1; day <= dayCount; day++ {
		ordered := make([]domain.Activity, 0, len(domain.SlotNames))
		for _, slot := range domain.SlotNames {
			if a, ok := byDay[day][slot]; ok {
				ordered = append(ordered, a)
			}
		}

		dayCost := 0.0
		transferTotal := 0
		maxLeg := 0
		warnings := []string{}
		for i, a := range ordered {
			dayCost += domain.PriceLevelValue(a.PriceLevel)

			for _, h := range mustDo.Matching(a.Name) {
				matchedMustDo[h] = struct{}{}
			}
			if hits := avoid.Matching(a.Name); len(hits) > 0 {
				for _, h := range hits {
					matchedAvoid[h] = struct{}{}
				}
				warnings = append(warnings, fmt.Sprintf("Includes avoided place hint: %s", a.Name))
			}
			if a.Rating < lowRatingCutoff {
				warnings = append(warnings, fmt.Sprintf("Low-rated stop: %s (%.1f)", a.Name, a.Rating))
			}

			if i > 0 {
				leg := TransferMinutes(ordered[i-1].Coordinates(), a.Coordinates())
				transferTotal += leg
				maxLeg = max(maxLeg, leg)
			}
		}
		totalCost += dayCost

		if dayCost > settings.DailyBudgetPerPerson {
			warnings = append(warnings, fmt.Sprintf("Over daily budget by $%.0f", dayCost-settings.DailyBudgetPerPerson))
		}
		if maxLeg > settings.MaxTransferMinutes {
			warnings = append(warnings, fmt.Sprintf("Longest transfer is %d min (limit %d min)", maxLeg, settings.MaxTransferMinutes))
		}
		if len(ordered) < len(domain.SlotNames) {
			warnings = append(warnings, OpenSlotsWarning)
		}

		report.Days = append(report.Days, domain.DraftValidationDay{
			Day:                    day,
			EstimatedCostPerPerson: domain.PriceLabel(dayCost),
			EstimatedCostValue:     domain.RoundTo(dayCost, 2),
			TransferMinutesTotal:   transferTotal,
			MaxTransferLegMinutes:  maxLeg,
			Warnings:               warnings,
			RouteMapURL:            DayRouteURL(trip.Accommodation, ordered),
		})
		for _, w := range warnings {
			report.Warnings = append(report.Warnings, fmt.Sprintf("Day %d: %s", day, w))
		}
	}

	var missing []string
	for _, h := range mustDo {
		if _, ok := matchedMustDo[h]; !ok {
			missing = append(missing, h)
		}
	}
	if len(missing) > 0 {
		report.Warnings = append(report.Warnings, "Must-do places not included yet: "+strings.Join(missing, ", "))
	}
	if len(matchedAvoid) > 0 {
		hits := make([]string, 0, len(matchedAvoid))
		for h := range matchedAvoid {
			hits = append(hits, h)
		}
		slices.Sort(hits)
		report.Warnings = append(report.Warnings, "Selections include avoided place hints: "+strings.Join(hits, ", "))
	}

	report.TotalEstimatedCostPerPerson = domain.RoundTo(totalCost, 2)
	return report
}

// TransferMinutes estimates the driving time of one leg at a fixed city speed.
func TransferMinutes(from, to domain.Coordinates) int {
	km := domain.HaversineKm(from, to)
	return int(math.Round(km / transferSpeedKmh * 60))
}

// DayRouteURL builds a Google Maps directions link from the accommodation
// through the day's stops. It returns "" for an empty day.
func DayRouteURL(origin domain.Coordinates, stops []domain.Activity) string {
	if len(stops) == 0 {
		return ""
	}

	q := url.Values{}
	q.Set("api", "1")
	q.Set("origin", formatLatLng(origin))
	q.Set("destination", formatLatLng(stops[len(stops)-1].Coordinates()))
	if len(stops) > 1 {
		waypoints := make([]string, 0, len(stops)-1)
		for _, s := range stops[:len(stops)-1] {
			waypoints = append(waypoints, formatLatLng(s.Coordinates()))
		}
		q.Set("waypoints", strings.Join(waypoints, "|"))
	}
	q.Set("travelmode", "driving")
	return "https://www.google.com/maps/dir/?" + q.Encode()
}

func formatLatLng(c domain.Coordinates) string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lng, 'f', -1, 64)
}
