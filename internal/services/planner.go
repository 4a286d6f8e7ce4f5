package services

import (
	"context"
	"fmt"
	"group-trip-planner/internal/domain"
	"group-trip-planner/internal/platform/logger"
	"group-trip-planner/internal/platform/obs"
	"group-trip-planner/internal/ports"
	"time"
)

const defaultNarrativeTimeout = 10 * time.Second

// PlanStyles are the itinerary options generated for every trip, in order.
var PlanStyles = []struct {
	Name  string
	Style domain.PacingStyle
}{
	{"Packed Experience", domain.PacingPacked},
	{"Balanced Exploration", domain.PacingBalanced},
	{"Relaxed Trip", domain.PacingChill},
}

// PlannerConfig wires a Planner. Every collaborator is optional.
type PlannerConfig struct {
	// Live activity data, e.g. a places API.
	Source ports.ActivitySource
	// Curated activities for well-known destinations.
	Catalog ports.ActivitySource

	Boosts           *BoostResolver
	Narrator         ports.Narrator
	NarrativeTimeout time.Duration
	// Candidates offered per draft slot, clamped to [1, 4].
	CandidatesPerSlot int

	Log *logger.Logger
	Now func() time.Time
}

// Planner runs the recommendation pipeline: fetch, aggregate, boost, score,
// then either cluster and compose itinerary options or rank draft slots.
type Planner struct {
	source           ports.ActivitySource
	catalog          ports.ActivitySource
	boosts           *BoostResolver
	narrator         ports.Narrator
	narrativeTimeout time.Duration
	perSlot          int
	log              *logger.Logger
	now              func() time.Time
}

func NewPlanner(cfg PlannerConfig) *Planner {
	p := &Planner{
		source:           cfg.Source,
		catalog:          cfg.Catalog,
		boosts:           cfg.Boosts,
		narrator:         cfg.Narrator,
		narrativeTimeout: cfg.NarrativeTimeout,
		perSlot:          cfg.CandidatesPerSlot,
		log:              logger.OrNop(cfg.Log),
		now:              cfg.Now,
	}
	if p.boosts == nil {
		p.boosts = NewBoostResolver(nil, nil, 0, p.log)
	}
	if p.narrativeTimeout <= 0 {
		p.narrativeTimeout = defaultNarrativeTimeout
	}
	if p.perSlot < 1 || p.perSlot > MaxSlotCandidates {
		p.perSlot = MaxSlotCandidates
	}
	if p.now == nil {
		p.now = func() time.Time { return time.Now().UTC() }
	}
	return p
}

// Generate builds the three itinerary options for trip. Only invalid input
// (no participants, bad dates) is returned as an error.
func (p *Planner) Generate(ctx context.Context, trip domain.Trip) (_ domain.ItineraryResult, err error) {
	defer obs.Time(ctx, p.log, "planner.Generate")(&err)

	if err := trip.Validate(); err != nil {
		return domain.ItineraryResult{}, fmt.Errorf("generate itinerary: %w", err)
	}
	profile, err := AggregatePreferences(trip.Participants)
	if err != nil {
		return domain.ItineraryResult{}, fmt.Errorf("generate itinerary: %w", err)
	}

	activities := p.fetchActivities(ctx, trip)
	boosts := p.boosts.Resolve(ctx, trip.Destination, ActivityCategories(activities))
	dayCount := trip.DayCount()

	result := domain.ItineraryResult{
		TripID:      trip.ID,
		GeneratedAt: p.now(),
		Options:     make([]domain.ItineraryOption, 0, len(PlanStyles)),
	}
	for _, ps := range PlanStyles {
		scored := ScoreActivities(activities, ScoreInput{
			Group:         profile.Vector,
			Accommodation: trip.Accommodation,
			Wake:          profile.Wake,
			Style:         ps.Style,
			Boosts:        boosts,
		})
		option := ComposeItinerary(ComposeInput{
			Name:     ps.Name,
			Style:    ps.Style,
			Clusters: ClusterByGeo(scored, dayCount),
			Profile:  profile,
			Trip:     trip,
			Boosts:   boosts,
		})

		explanation := p.explainPlan(ctx, ports.PlanContext{
			PlanName:     ps.Name,
			Style:        ps.Style,
			Destination:  trip.Destination,
			TopInterest:  profile.Vector.Top(),
			PacingCounts: profile.PacingCounts,
			WakeCounts:   profile.WakeCounts,
		}, profile)
		option.Explanation = explanation.Value

		p.annotateDays(ctx, option.Days, trip.Destination, ps.Style, profile)
		result.Options = append(result.Options, option)
	}

	return result, nil
}

func (p *Planner) annotateDays(ctx context.Context, days []domain.DayPlan, destination string, style domain.PacingStyle, profile domain.GroupProfile) {
	var chosen []domain.Activity
	seen := make(map[string]struct{})
	for _, d := range days {
		for _, a := range d.Activities() {
			if _, ok := seen[a.Name]; ok {
				continue
			}
			seen[a.Name] = struct{}{}
			chosen = append(chosen, a)
		}
	}

	explanations := p.explainActivities(ctx, ports.ActivityContext{
		Destination: destination,
		Style:       style,
		TopInterest: profile.Vector.Top(),
		Activities:  chosen,
	})
	for i := range days {
		for _, a := range []*domain.Activity{days[i].Morning, days[i].Afternoon, days[i].Dinner, days[i].Evening} {
			if a != nil {
				a.Explanation = explanations.Value[a.Name]
			}
		}
	}
}

// DraftSlots ranks candidates for every (day, slot) of the trip using the
// group's dominant pacing style and the given planning settings.
func (p *Planner) DraftSlots(ctx context.Context, trip domain.Trip, settings domain.PlanningSettings) (_ domain.DraftSchedule, err error) {
	defer obs.Time(ctx, p.log, "planner.DraftSlots")(&err)

	if err := trip.Validate(); err != nil {
		return domain.DraftSchedule{}, fmt.Errorf("draft slots: %w", err)
	}
	profile, err := AggregatePreferences(trip.Participants)
	if err != nil {
		return domain.DraftSchedule{}, fmt.Errorf("draft slots: %w", err)
	}

	activities := p.fetchActivities(ctx, trip)
	boosts := p.boosts.Resolve(ctx, trip.Destination, ActivityCategories(activities))
	scored := ScoreActivities(activities, ScoreInput{
		Group:         profile.Vector,
		Accommodation: trip.Accommodation,
		Wake:          profile.Wake,
		Style:         profile.Pacing,
		Boosts:        boosts,
	})

	schedule := domain.DraftSchedule{
		TripID:      trip.ID,
		GeneratedAt: p.now(),
		Slots: BuildDraftSlots(DraftInput{
			Scored:            scored,
			DayCount:          trip.DayCount(),
			Settings:          settings,
			CandidatesPerSlot: p.perSlot,
		}),
	}
	if schedule.Slots == nil {
		schedule.Slots = []domain.DraftSlot{}
	}

	var unique []domain.Activity
	seen := make(map[string]struct{})
	for _, s := range schedule.Slots {
		for _, c := range s.Candidates {
			if _, ok := seen[c.Name]; ok {
				continue
			}
			seen[c.Name] = struct{}{}
			unique = append(unique, c)
		}
	}
	explanations := p.explainActivities(ctx, ports.ActivityContext{
		Destination: trip.Destination,
		Style:       profile.Pacing,
		TopInterest: profile.Vector.Top(),
		Activities:  unique,
	})
	for i := range schedule.Slots {
		for j := range schedule.Slots[i].Candidates {
			c := &schedule.Slots[i].Candidates[j]
			c.Explanation = explanations.Value[c.Name]
		}
	}

	return schedule, nil
}

// Validate runs ValidateDraft and stamps the report time.
func (p *Planner) Validate(trip domain.Trip, plan domain.DraftPlan, settings domain.PlanningSettings) domain.DraftValidationReport {
	report := ValidateDraft(trip, plan, settings)
	report.GeneratedAt = p.now()
	return report
}

// fetchActivities tries the live source, then the curated catalog, then the
// synthetic neighborhood set. The result is never empty.
func (p *Planner) fetchActivities(ctx context.Context, trip domain.Trip) []domain.Activity {
	raw := p.fromSource(ctx, "source", p.source, trip)
	if len(raw) == 0 {
		raw = p.fromSource(ctx, "catalog", p.catalog, trip)
	}
	if len(raw) == 0 {
		raw = SyntheticActivities(trip.Accommodation)
	}

	out := make([]domain.Activity, 0, len(raw))
	for _, a := range raw {
		out = append(out, annotateActivity(a))
	}
	return out
}

func (p *Planner) fromSource(ctx context.Context, label string, src ports.ActivitySource, trip domain.Trip) []domain.Activity {
	if src == nil {
		return nil
	}
	acts, err := src.FetchActivities(ctx, trip.Destination, trip.Accommodation.Lat, trip.Accommodation.Lng)
	if err != nil {
		p.log.Warn("activity source failed, falling back",
			"source", label,
			"destination", trip.Destination,
			"req_id", obs.RequestID(ctx),
			"err", err,
		)
		return nil
	}
	return acts
}
