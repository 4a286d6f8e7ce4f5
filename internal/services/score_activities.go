package services

import (
	"cmp"
	"group-trip-planner/internal/domain"
	"math"
	"slices"
)

// ScoreInput carries the group context an activity is scored against.
type ScoreInput struct {
	Group         domain.InterestVector
	Accommodation domain.Coordinates
	Wake          domain.WakePreference
	Style         domain.PacingStyle
	Boosts        domain.BoostTable
}

// Categories whose appeal depends on getting an early start.
var morningTimedCategories = []domain.Category{
	domain.CategoryMuseum,
	domain.CategoryPark,
	domain.CategoryLandmark,
}

var (
	packedFavored    = []domain.Category{domain.CategoryMuseum, domain.CategoryLandmark, domain.CategoryCulture, domain.CategoryNightclub, domain.CategoryBar}
	packedDisfavored = []domain.Category{domain.CategorySpa, domain.CategoryRelaxation, domain.CategoryBeach}
	chillFavored     = []domain.Category{domain.CategorySpa, domain.CategoryRelaxation, domain.CategoryPark, domain.CategoryBeach}
	chillDisfavored  = []domain.Category{domain.CategoryNightclub, domain.CategoryBar}
)

// ScoreActivities scores every activity for the group and returns them sorted
// by score descending. Equal scores keep their input order.
func ScoreActivities(activities []domain.Activity, in ScoreInput) []domain.ScoredActivity {
	settings := in.Style.Settings()
	out := make([]domain.ScoredActivity, 0, len(activities))
	for _, a := range activities {
		out = append(out, domain.ScoredActivity{
			Activity: a,
			Score:    scoreActivity(a, in, settings),
		})
	}

	slices.SortStableFunc(out, func(x, y domain.ScoredActivity) int {
		return cmp.Compare(y.Score, x.Score)
	})
	return out
}

// scoreActivity is the product of interest fit, rating, time-of-day fit,
// distance and downtime penalties, the destination boost and the style bias.
func scoreActivity(a domain.Activity, in ScoreInput, settings domain.StyleSettings) float64 {
	interest, _ := a.Category.Interest()
	interestScore := in.Group.Get(interest) / 5.0
	ratingScore := max(0, a.Rating) / 5.0

	timeFit := 1.0
	if a.Category.In(morningTimedCategories...) {
		timeFit = in.Wake.Multiplier()
	}

	km := domain.HaversineKm(in.Accommodation, a.Coordinates())
	distancePenalty := 1.0 / (1.0 + (km/5.0)*settings.DistanceWeight)

	durationFactor := math.Min(1.0, float64(max(0, a.DurationMinutes))/240.0)
	downtimePenalty := math.Max(0.6, 1.0-settings.DowntimePreference*durationFactor)

	boost := 1.0
	if in.Boosts != nil {
		boost = in.Boosts.Get(a.Category)
	}

	return interestScore * ratingScore * timeFit * distancePenalty * downtimePenalty * boost * styleBias(in.Style, a.Category)
}

func styleBias(style domain.PacingStyle, c domain.Category) float64 {
	switch style {
	case domain.PacingPacked:
		if c.In(packedFavored...) {
			return 1.12
		}
		if c.In(packedDisfavored...) {
			return 0.93
		}
	case domain.PacingChill:
		if c.In(chillFavored...) {
			return 1.15
		}
		if c.In(chillDisfavored...) {
			return 0.85
		}
	}
	return 1.0
}
