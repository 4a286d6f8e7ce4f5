package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"group-trip-planner/internal/domain"
	"group-trip-planner/internal/platform/logger"
	"group-trip-planner/internal/ports"
	"maps"
	"slices"
	"strings"
)

// Assistant turns a TextGenerator into the planner's boost advisor and
// narrator.
type Assistant struct {
	gen TextGenerator
	log *logger.Logger

	// Sampling temperature for explanations. Boost refinement always runs cold.
	NarrativeTemperature float32
}

func NewAssistant(gen TextGenerator, log *logger.Logger) *Assistant {
	return &Assistant{gen: gen, log: logger.OrNop(log), NarrativeTemperature: 0.7}
}

var (
	_ ports.BoostAdvisor = (*Assistant)(nil)
	_ ports.Narrator     = (*Assistant)(nil)
)

func (a *Assistant) RefineBoosts(
	ctx context.Context,
	destination string,
	categories []domain.Category,
	current domain.BoostTable,
) (map[string]any, error) {
	cats, err := json.Marshal(categories)
	if err != nil {
		return nil, fmt.Errorf("refine boosts: encode categories: %w", err)
	}
	cur, err := json.Marshal(current)
	if err != nil {
		return nil, fmt.Errorf("refine boosts: encode multipliers: %w", err)
	}

	prompt := fmt.Sprintf(
		"You are tuning travel activity category relevance for a destination.\n"+
			"Destination: %s\n"+
			"Categories: %s\n"+
			"Current multipliers: %s\n"+
			"Return a JSON object with the same category keys and numeric multipliers.\n"+
			"Rules:\n"+
			"- Keep each multiplier between %.2f and %.1f.\n"+
			"- Favor destination-defining activities (e.g., islands -> beach/outdoors/relaxation).\n"+
			"- Do not overboost generic food unless destination cuisine is core.\n"+
			"- Output JSON only.",
		destination, cats, cur, domain.MinBoost, domain.MaxBoost,
	)

	text, err := a.gen.GenerateText(ctx, prompt, GenerateOptions{Temperature: 0.2, MaxOutputTokens: 280})
	if err != nil {
		return nil, fmt.Errorf("refine boosts: %w", err)
	}

	obj, err := ExtractJSONObject(text)
	if err != nil {
		return nil, fmt.Errorf("refine boosts: %w", err)
	}
	return obj, nil
}

func (a *Assistant) ExplainPlan(ctx context.Context, pc ports.PlanContext) (string, error) {
	prompt := fmt.Sprintf(
		"Write 1-2 sentences explaining this itinerary option for a group trip. "+
			"Plan: %s (%s). Destination: %s. Top interest: %s. "+
			"Energy profile: %s. Wake profile: %s. Keep it practical and concise.",
		pc.PlanName, pc.Style, pc.Destination, pc.TopInterest,
		formatCounts(pc.PacingCounts), formatCounts(pc.WakeCounts),
	)

	text, err := a.gen.GenerateText(ctx, prompt, GenerateOptions{Temperature: a.NarrativeTemperature, MaxOutputTokens: 200})
	if err != nil {
		return "", fmt.Errorf("explain plan: %w", err)
	}
	return text, nil
}

func (a *Assistant) ExplainActivities(ctx context.Context, ac ports.ActivityContext) (map[string]string, error) {
	if len(ac.Activities) == 0 {
		return map[string]string{}, nil
	}

	names := make([]string, 0, len(ac.Activities))
	for _, act := range ac.Activities {
		names = append(names, act.Name)
	}

	prompt := fmt.Sprintf(
		"For a group trip to %s with a focus on %s and pacing style '%s', "+
			"provide a 1-2 sentence explanation for why each of the following places was chosen and what it is. "+
			"Places: %s. "+
			"Return the result vertically, with each explanation on a new line starting with 'PLACE_NAME: '.",
		ac.Destination, ac.TopInterest, ac.Style, strings.Join(names, ", "),
	)

	text, err := a.gen.GenerateText(ctx, prompt, GenerateOptions{Temperature: a.NarrativeTemperature, MaxOutputTokens: 1000})
	if err != nil {
		return nil, fmt.Errorf("explain activities: %w", err)
	}
	out := ParseExplanationLines(text)
	if len(out) == 0 {
		a.log.Debug("no explanation lines in response", "chars", len(text))
	}
	return out, nil
}

// ExtractJSONObject decodes the outermost {...} span of text, tolerating
// prose or code fences around it.
func ExtractJSONObject(text string) (map[string]any, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("no JSON object in response")
	}

	dec := json.NewDecoder(strings.NewReader(text[start : end+1]))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, fmt.Errorf("decode JSON object: %w", err)
	}
	return obj, nil
}

// ParseExplanationLines reads "Name: explanation" lines. List markers and
// markdown emphasis around the name are dropped.
func ParseExplanationLines(text string) map[string]string {
	out := make(map[string]string)
	for _, line := range strings.Split(text, "\n") {
		name, expl, ok := strings.Cut(line, ": ")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		name = strings.TrimPrefix(name, "- ")
		name = strings.TrimSpace(strings.ReplaceAll(name, "*", ""))
		expl = strings.TrimSpace(expl)
		if name == "" || expl == "" {
			continue
		}
		out[name] = expl
	}
	return out
}

func formatCounts[K ~string](counts map[K]int) string {
	keys := slices.Sorted(maps.Keys(counts))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, counts[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
