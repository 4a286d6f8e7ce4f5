package domain

import "strings"

// Category is a normalized activity category label.
type Category string

const (
	CategoryFood       Category = "food"
	CategoryRestaurant Category = "restaurant"
	CategoryBar        Category = "bar"
	CategoryNightclub  Category = "nightclub"
	CategoryMuseum     Category = "museum"
	CategoryLandmark   Category = "landmark"
	CategoryCulture    Category = "culture"
	CategoryPark       Category = "park"
	CategoryHike       Category = "hike"
	CategoryBeach      Category = "beach"
	CategorySpa        Category = "spa"
	CategoryRelaxation Category = "relaxation"
	CategoryOutdoors   Category = "outdoors"
)

// NormalizeCategory lower-cases and trims a raw category label.
func NormalizeCategory(s string) Category {
	return Category(strings.ToLower(strings.TrimSpace(s)))
}

// Interest is one dimension of the group interest vector.
type Interest string

const (
	InterestFood       Interest = "food"
	InterestNightlife  Interest = "nightlife"
	InterestCulture    Interest = "culture"
	InterestOutdoors   Interest = "outdoors"
	InterestRelaxation Interest = "relaxation"
)

// Interests lists every interest dimension in canonical order.
var Interests = []Interest{
	InterestFood,
	InterestNightlife,
	InterestCulture,
	InterestOutdoors,
	InterestRelaxation,
}

var categoryInterest = map[Category]Interest{
	CategoryFood:       InterestFood,
	CategoryRestaurant: InterestFood,
	CategoryBar:        InterestNightlife,
	CategoryNightclub:  InterestNightlife,
	CategoryMuseum:     InterestCulture,
	CategoryLandmark:   InterestCulture,
	CategoryCulture:    InterestCulture,
	CategoryPark:       InterestOutdoors,
	CategoryHike:       InterestOutdoors,
	CategoryOutdoors:   InterestOutdoors,
	CategorySpa:        InterestRelaxation,
	CategoryBeach:      InterestRelaxation,
	CategoryRelaxation: InterestRelaxation,
}

// Interest maps a category onto its interest dimension. Unknown categories
// count as culture; ok reports whether the mapping was explicit.
func (c Category) Interest() (_ Interest, ok bool) {
	if i, found := categoryInterest[c]; found {
		return i, true
	}
	return InterestCulture, false
}

// In reports whether c is one of set.
func (c Category) In(set ...Category) bool {
	for _, s := range set {
		if c == s {
			return true
		}
	}
	return false
}
