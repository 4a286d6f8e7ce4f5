package ports

import (
	"context"
	"group-trip-planner/internal/domain"
)

// Contract for an external advisor that refines category multipliers.
// The returned values are untrusted: callers coerce, clamp and may ignore them.
type BoostAdvisor interface {
	RefineBoosts(
		ctx context.Context,
		destination string,
		categories []domain.Category,
		current domain.BoostTable,
	) (map[string]any, error)
}

// PlanContext is what a narrator needs to explain an itinerary option.
type PlanContext struct {
	PlanName     string
	Style        domain.PacingStyle
	Destination  string
	TopInterest  domain.Interest
	PacingCounts map[domain.PacingStyle]int
	WakeCounts   map[domain.WakePreference]int
}

// ActivityContext is what a narrator needs to explain individual activities.
type ActivityContext struct {
	Destination string
	Style       domain.PacingStyle
	TopInterest domain.Interest
	Activities  []domain.Activity
}

// Contract for generating human-readable explanations.
type Narrator interface {
	ExplainPlan(ctx context.Context, pc PlanContext) (string, error)
	// Return explanations keyed by activity name. Missing names are allowed.
	ExplainActivities(ctx context.Context, ac ActivityContext) (map[string]string, error)
}
