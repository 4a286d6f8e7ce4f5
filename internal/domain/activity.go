package domain

import (
	"math"
	"strings"
)

// Activity is a candidate place the group could visit.
type Activity struct {
	Name            string   `json:"name" yaml:"name"`
	Category        Category `json:"category" yaml:"category"`
	Rating          float64  `json:"rating" yaml:"rating"`
	PriceLevel      int      `json:"price_level" yaml:"price_level"`
	Lat             float64  `json:"lat" yaml:"lat"`
	Lng             float64  `json:"lng" yaml:"lng"`
	DurationMinutes int      `json:"duration_minutes" yaml:"duration_minutes"`
	ImageURL        string   `json:"image_url,omitempty" yaml:"image_url"`
	ActivityURL     string   `json:"activity_url,omitempty" yaml:"activity_url"`
	EstimatedPrice  string   `json:"estimated_price,omitempty" yaml:"-"`
	PriceConfidence string   `json:"price_confidence,omitempty" yaml:"-"`
	Explanation     string   `json:"explanation,omitempty" yaml:"-"`
}

func (a Activity) Coordinates() Coordinates {
	return Coordinates{Lat: a.Lat, Lng: a.Lng}
}

// ScoredActivity pairs an activity with its fit score for the group.
type ScoredActivity struct {
	Activity
	Score float64 `json:"score"`
}

// Price levels run 0 (free) to 4 (very expensive).
const (
	MinPriceLevel = 0
	MaxPriceLevel = 4
)

func ClampPriceLevel(level int) int {
	return max(MinPriceLevel, min(MaxPriceLevel, level))
}

var priceLevelValues = [...]float64{0, 12, 35, 75, 130}

// PriceLevelValue is the estimated per-person spend for a price level.
func PriceLevelValue(level int) float64 {
	return priceLevelValues[ClampPriceLevel(level)]
}

// PriceLabel renders a per-person spend estimate.
func PriceLabel(value float64) string {
	switch {
	case value <= 0:
		return "Free"
	case value <= 20:
		return "Under $20"
	case value <= 50:
		return "$20 - $50"
	case value <= 100:
		return "$50 - $100"
	default:
		return "$100+"
	}
}

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// NameKey is the case-insensitive identity used to dedupe activities.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
