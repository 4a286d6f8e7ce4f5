package services

import (
	"group-trip-planner/internal/domain"
)

const defaultMatchScore = 50.0

// Preferred categories per day role, in priority order of the role's intent.
var roleCategories = map[domain.Role][]domain.Category{
	domain.RoleMorning:   {domain.CategoryMuseum, domain.CategoryPark, domain.CategoryLandmark, domain.CategoryCulture},
	domain.RoleAfternoon: {domain.CategoryFood, domain.CategoryRestaurant, domain.CategoryPark, domain.CategoryHike},
	domain.RoleDinner:    {domain.CategoryFood, domain.CategoryRestaurant},
	domain.RoleEvening:   {domain.CategoryBar, domain.CategoryNightclub, domain.CategoryRelaxation, domain.CategorySpa},
}

// ComposeInput is everything needed to build one itinerary option.
type ComposeInput struct {
	Name     string
	Style    domain.PacingStyle
	Clusters [][]domain.ScoredActivity
	Profile  domain.GroupProfile
	Trip     domain.Trip
	Boosts   domain.BoostTable
}

// ComposeItinerary fills one day per cluster (trip day count, padding with
// empty days). Each day draws from the cluster's top activities, as many as
// the style allows per day, picking for each role the best unused activity of
// a preferred category. When no preferred activity is left the role falls back
// to the best unused activity of any category and is marked relaxed.
//
// An activity is used at most once per day. The match score is the mean
// rescored fit of the distinct activities selected, scaled to 0..100.
func ComposeItinerary(in ComposeInput) domain.ItineraryOption {
	dayCount := in.Trip.DayCount()
	perDay := in.Style.Settings().MaxActivitiesPerDay
	days := make([]domain.DayPlan, 0, dayCount)
	var selected []domain.Activity
	seen := make(map[string]struct{})

	for day := 1; day <= dayCount; day++ {
		var cluster []domain.ScoredActivity
		if day-1 < len(in.Clusters) {
			cluster = in.Clusters[day-1]
		}
		if len(cluster) > perDay {
			cluster = cluster[:perDay]
		}

		plan := domain.DayPlan{Day: day}
		used := make(map[string]struct{}, len(domain.Roles))
		for _, role := range domain.Roles {
			pick, relaxed, ok := pickForRole(cluster, roleCategories[role], used)
			if !ok {
				continue
			}
			used[domain.NameKey(pick.Name)] = struct{}{}
			a := pick.Activity
			plan.Set(role, &a)
			if relaxed {
				plan.RelaxedRoles = append(plan.RelaxedRoles, role)
			}
			if _, dup := seen[domain.NameKey(a.Name)]; !dup {
				seen[domain.NameKey(a.Name)] = struct{}{}
				selected = append(selected, a)
			}
		}
		days = append(days, plan)
	}

	return domain.ItineraryOption{
		Name:            in.Name,
		Style:           in.Style,
		GroupMatchScore: groupMatchScore(selected, in),
		Days:            days,
	}
}

// pickForRole scans a score-sorted cluster for the first unused activity in
// categories, falling back to the first unused activity of any category.
func pickForRole(
	cluster []domain.ScoredActivity,
	categories []domain.Category,
	used map[string]struct{},
) (_ domain.ScoredActivity, relaxed bool, ok bool) {
	for _, a := range cluster {
		if _, taken := used[domain.NameKey(a.Name)]; taken {
			continue
		}
		if a.Category.In(categories...) {
			return a, false, true
		}
	}
	for _, a := range cluster {
		if _, taken := used[domain.NameKey(a.Name)]; !taken {
			return a, true, true
		}
	}
	return domain.ScoredActivity{}, false, false
}

func groupMatchScore(selected []domain.Activity, in ComposeInput) float64 {
	if len(selected) == 0 {
		return defaultMatchScore
	}

	scored := ScoreActivities(selected, ScoreInput{
		Group:         in.Profile.Vector,
		Accommodation: in.Trip.Accommodation,
		Wake:          in.Profile.Wake,
		Style:         in.Style,
		Boosts:        in.Boosts,
	})

	total := 0.0
	for _, s := range scored {
		total += s.Score
	}
	avg := total / float64(len(scored))
	return domain.RoundTo(min(100, avg*125), 1)
}
