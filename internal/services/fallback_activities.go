package services

import (
	"group-trip-planner/internal/domain"
	"net/url"
)

type syntheticSpot struct {
	name       string
	category   domain.Category
	rating     float64
	priceLevel int
	dLat, dLng float64
	duration   int
	imageURL   string
}

// A neighborhood's worth of generic stops, placed around the accommodation so
// that every day of a trip can be filled when no real data is available.
var syntheticSpots = []syntheticSpot{
	{"Neighborhood Food Hall", domain.CategoryFood, 4.4, 2, 0.010, 0.010, 90, "https://images.unsplash.com/photo-1555396273-367ea4eb4db5?w=800&q=80"},
	{"Old Quarter Bistro", domain.CategoryRestaurant, 4.4, 2, 0.007, 0.013, 95, "https://images.unsplash.com/photo-1517248135467-4c7edcad34c4?w=800&q=80"},
	{"Riverside Dinner House", domain.CategoryRestaurant, 4.5, 3, -0.004, 0.016, 100, "https://images.unsplash.com/photo-1504674900247-0877df9cc836?w=800&q=80"},
	{"Local Market Kitchen", domain.CategoryFood, 4.5, 2, 0.011, -0.004, 90, "https://images.unsplash.com/photo-1528605248644-14dd04022da1?w=800&q=80"},
	{"City History Museum", domain.CategoryMuseum, 4.5, 2, -0.012, 0.008, 120, "https://images.unsplash.com/photo-1545624783-a912bb31c9a0?w=800&q=80"},
	{"Riverside Park", domain.CategoryPark, 4.6, 0, 0.008, -0.012, 90, "https://images.unsplash.com/photo-1498144846853-6cc3a433230a?w=800&q=80"},
	{"Old Town Walking Route", domain.CategoryLandmark, 4.5, 1, -0.015, -0.010, 120, "https://images.unsplash.com/photo-1496442226666-8d4d0e62e6e9?w=800&q=80"},
	{"Sunset Lounge", domain.CategoryBar, 4.3, 3, 0.005, 0.018, 120, "https://images.unsplash.com/photo-1514362545857-3bc16c4c7d1b?w=800&q=80"},
	{"Urban Wellness Spa", domain.CategorySpa, 4.4, 3, -0.009, 0.014, 90, "https://images.unsplash.com/photo-1544465544-1b71aee9dfa3?w=800&q=80"},
	{"Local Bistro", domain.CategoryRestaurant, 4.5, 2, 0.002, -0.006, 90, "https://images.unsplash.com/photo-1511795409834-ef04bbd61622?w=800&q=80"},
}

// SyntheticActivities returns the fixed fallback set offset around center.
func SyntheticActivities(center domain.Coordinates) []domain.Activity {
	out := make([]domain.Activity, 0, len(syntheticSpots))
	for _, s := range syntheticSpots {
		out = append(out, domain.Activity{
			Name:            s.name,
			Category:        s.category,
			Rating:          s.rating,
			PriceLevel:      s.priceLevel,
			Lat:             center.Lat + s.dLat,
			Lng:             center.Lng + s.dLng,
			DurationMinutes: s.duration,
			ImageURL:        s.imageURL,
		})
	}
	return out
}

// annotateActivity fills presentation fields that sources may omit.
func annotateActivity(a domain.Activity) domain.Activity {
	a.Category = domain.NormalizeCategory(string(a.Category))
	a.PriceLevel = domain.ClampPriceLevel(a.PriceLevel)
	if a.ActivityURL == "" {
		a.ActivityURL = MapsSearchURL(a.Name)
	}
	if a.EstimatedPrice == "" {
		a.EstimatedPrice = domain.PriceLabel(domain.PriceLevelValue(a.PriceLevel))
	}
	return a
}

// MapsSearchURL links to a Google Maps search for name.
func MapsSearchURL(name string) string {
	return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(name)
}
