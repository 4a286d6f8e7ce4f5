package services

import (
	"context"
	"errors"
	"fmt"
	"group-trip-planner/internal/domain"
	"group-trip-planner/internal/platform/obs"
	"group-trip-planner/internal/ports"
	"strings"
)

// PlanFallbackText is the deterministic explanation used when no narrator
// is available.
func PlanFallbackText(planName string, top domain.Interest, pacing domain.PacingStyle, wake domain.WakePreference, destination string) string {
	return fmt.Sprintf(
		"%s prioritizes %s while fitting a %s pace and %s-start days. "+
			"Activities are grouped near your stay in %s to reduce cross-city travel and keep days cohesive.",
		planName, top, pacing, wake, destination,
	)
}

// ActivityFallbackText is the deterministic per-activity explanation.
func ActivityFallbackText(a domain.Activity, destination string) string {
	return fmt.Sprintf("A great %s option for the group in %s.", a.Category, destination)
}

func (p *Planner) explainPlan(ctx context.Context, pc ports.PlanContext, profile domain.GroupProfile) (res domain.Resolved[string]) {
	fallback := PlanFallbackText(pc.PlanName, pc.TopInterest, profile.Pacing, profile.Wake, pc.Destination)
	if p.narrator == nil {
		return domain.Degraded(fallback, "no narrator configured")
	}

	ctx, cancel := context.WithTimeout(ctx, p.narrativeTimeout)
	defer cancel()

	var err error
	defer obs.Time(ctx, p.log, "narrator.ExplainPlan")(&err)

	text, err := p.narrator.ExplainPlan(ctx, pc)
	if err != nil {
		return domain.Degraded(fallback, narratorFailure(err))
	}
	if text = strings.TrimSpace(text); text == "" {
		return domain.Degraded(fallback, "narrator returned empty text")
	}
	return domain.Primary(text)
}

// explainActivities always returns an explanation for every activity name;
// names the narrator skipped get the fallback sentence.
func (p *Planner) explainActivities(ctx context.Context, ac ports.ActivityContext) domain.Resolved[map[string]string] {
	out := make(map[string]string, len(ac.Activities))
	for _, a := range ac.Activities {
		out[a.Name] = ActivityFallbackText(a, ac.Destination)
	}
	if len(ac.Activities) == 0 {
		return domain.Primary(out)
	}
	if p.narrator == nil {
		return domain.Degraded(out, "no narrator configured")
	}

	ctx, cancel := context.WithTimeout(ctx, p.narrativeTimeout)
	defer cancel()

	var err error
	defer obs.Time(ctx, p.log, "narrator.ExplainActivities")(&err)

	got, err := p.narrator.ExplainActivities(ctx, ac)
	if err != nil {
		return domain.Degraded(out, narratorFailure(err))
	}

	for _, a := range ac.Activities {
		if text := matchExplanation(got, a.Name); text != "" {
			out[a.Name] = text
		}
	}
	return domain.Primary(out)
}

// matchExplanation looks up name exactly, then by substring in either
// direction, preferring the shortest matching key.
func matchExplanation(explanations map[string]string, name string) string {
	if text := strings.TrimSpace(explanations[name]); text != "" {
		return text
	}
	best := ""
	for k, v := range explanations {
		if k == "" || strings.TrimSpace(v) == "" {
			continue
		}
		if !strings.Contains(name, k) && !strings.Contains(k, name) {
			continue
		}
		if best == "" || len(k) < len(best) || (len(k) == len(best) && k < best) {
			best = k
		}
	}
	if best == "" {
		return ""
	}
	return strings.TrimSpace(explanations[best])
}

func narratorFailure(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "narrator timed out"
	}
	return fmt.Sprintf("narrator failed: %v", err)
}
