package domain

import "strings"

// InterestVector holds one score per interest dimension (1..5 for raw input).
type InterestVector struct {
	Food       float64 `json:"food"`
	Nightlife  float64 `json:"nightlife"`
	Culture    float64 `json:"culture"`
	Outdoors   float64 `json:"outdoors"`
	Relaxation float64 `json:"relaxation"`
}

func (v InterestVector) Get(i Interest) float64 {
	switch i {
	case InterestFood:
		return v.Food
	case InterestNightlife:
		return v.Nightlife
	case InterestCulture:
		return v.Culture
	case InterestOutdoors:
		return v.Outdoors
	case InterestRelaxation:
		return v.Relaxation
	}
	return 0
}

func (v InterestVector) Add(o InterestVector) InterestVector {
	return InterestVector{
		Food:       v.Food + o.Food,
		Nightlife:  v.Nightlife + o.Nightlife,
		Culture:    v.Culture + o.Culture,
		Outdoors:   v.Outdoors + o.Outdoors,
		Relaxation: v.Relaxation + o.Relaxation,
	}
}

func (v InterestVector) Scale(f float64) InterestVector {
	return InterestVector{
		Food:       v.Food * f,
		Nightlife:  v.Nightlife * f,
		Culture:    v.Culture * f,
		Outdoors:   v.Outdoors * f,
		Relaxation: v.Relaxation * f,
	}
}

// Top returns the highest-scoring dimension; ties go to the earlier one in
// Interests order.
func (v InterestVector) Top() Interest {
	best := Interests[0]
	for _, i := range Interests[1:] {
		if v.Get(i) > v.Get(best) {
			best = i
		}
	}
	return best
}

// InRange reports whether every dimension is within [lo, hi].
func (v InterestVector) InRange(lo, hi float64) bool {
	for _, i := range Interests {
		if x := v.Get(i); x < lo || x > hi {
			return false
		}
	}
	return true
}

// PacingStyle is the preferred activity density for a day.
type PacingStyle string

const (
	PacingPacked   PacingStyle = "packed"
	PacingBalanced PacingStyle = "balanced"
	PacingChill    PacingStyle = "chill"
)

// StyleSettings are the per-style scoring parameters.
type StyleSettings struct {
	MaxActivitiesPerDay int
	DistanceWeight      float64
	DowntimePreference  float64
}

var styleSettings = map[PacingStyle]StyleSettings{
	PacingPacked:   {MaxActivitiesPerDay: 4, DistanceWeight: 1.0, DowntimePreference: 0.0},
	PacingBalanced: {MaxActivitiesPerDay: 3, DistanceWeight: 1.1, DowntimePreference: 0.1},
	PacingChill:    {MaxActivitiesPerDay: 2, DistanceWeight: 1.3, DowntimePreference: 0.25},
}

func (s PacingStyle) Valid() bool {
	_, ok := styleSettings[s]
	return ok
}

// Settings returns the style's parameters; unknown styles score as balanced.
func (s PacingStyle) Settings() StyleSettings {
	if st, ok := styleSettings[s]; ok {
		return st
	}
	return styleSettings[PacingBalanced]
}

// WakePreference is when the group likes to start the day.
type WakePreference string

const (
	WakeEarly  WakePreference = "early"
	WakeNormal WakePreference = "normal"
	WakeLate   WakePreference = "late"
)

var wakeMultipliers = map[WakePreference]float64{
	WakeEarly:  1.0,
	WakeNormal: 0.9,
	WakeLate:   0.8,
}

func (w WakePreference) Valid() bool {
	_, ok := wakeMultipliers[w]
	return ok
}

// Multiplier is applied to categories that are best visited in the morning.
func (w WakePreference) Multiplier() float64 {
	if m, ok := wakeMultipliers[w]; ok {
		return m
	}
	return 1.0
}

// Participant is one traveler's stated preferences.
type Participant struct {
	Name      string         `json:"name"`
	Interests InterestVector `json:"interest_vector"`
	Pacing    PacingStyle    `json:"schedule_preference"`
	Wake      WakePreference `json:"wake_preference"`
}

// Validate checks names, score ranges and enum values.
func (p Participant) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return invalidf("participant name is required")
	}
	if !p.Interests.InRange(0, 5) {
		return invalidf("participant %q: interest scores must be between 0 and 5", p.Name)
	}
	if !p.Pacing.Valid() {
		return invalidf("participant %q: unknown schedule preference %q", p.Name, p.Pacing)
	}
	if !p.Wake.Valid() {
		return invalidf("participant %q: unknown wake preference %q", p.Name, p.Wake)
	}
	return nil
}

// GroupProfile is the aggregated view of all participants.
type GroupProfile struct {
	Vector       InterestVector         `json:"vector"`
	Pacing       PacingStyle            `json:"pacing"`
	Wake         WakePreference         `json:"wake"`
	PacingCounts map[PacingStyle]int    `json:"pacing_counts"`
	WakeCounts   map[WakePreference]int `json:"wake_counts"`
}
