package services

import (
	"cmp"
	"group-trip-planner/internal/domain"
	"slices"
	"strings"
)

const (
	MaxSlotCandidates     = 4
	diversityDecay        = 0.15
	slotAffinityDefault   = 1.0
	slotAffinityPenalized = 0.6
)

type slotTier int

const (
	tierAllowed slotTier = iota
	tierNeutral
	tierInappropriate
)

// slotRule describes which categories suit a draft slot. Categories in
// neither set are neutral: used to backfill, never preferred.
type slotRule struct {
	allowed       []domain.Category
	inappropriate []domain.Category
	affinity      map[domain.Category]float64
}

var slotRules = map[domain.SlotName]slotRule{
	domain.SlotMorning: {
		allowed: []domain.Category{
			domain.CategoryMuseum, domain.CategoryLandmark, domain.CategoryCulture,
			domain.CategoryPark, domain.CategoryHike, domain.CategoryBeach, domain.CategoryFood,
		},
		inappropriate: []domain.Category{domain.CategoryBar, domain.CategoryNightclub},
		affinity: map[domain.Category]float64{
			domain.CategoryMuseum:    1.15,
			domain.CategoryLandmark:  1.15,
			domain.CategoryHike:      1.15,
			domain.CategoryCulture:   1.1,
			domain.CategoryPark:      1.1,
			domain.CategoryBar:       0.6,
			domain.CategoryNightclub: 0.5,
		},
	},
	domain.SlotAfternoon: {
		allowed: []domain.Category{
			domain.CategoryMuseum, domain.CategoryLandmark, domain.CategoryCulture,
			domain.CategoryPark, domain.CategoryHike, domain.CategoryBeach,
			domain.CategorySpa, domain.CategoryRelaxation, domain.CategoryFood, domain.CategoryRestaurant,
		},
		inappropriate: []domain.Category{domain.CategoryNightclub},
		affinity: map[domain.Category]float64{
			domain.CategoryFood:       1.1,
			domain.CategoryRestaurant: 1.1,
			domain.CategoryPark:       1.1,
			domain.CategoryBeach:      1.1,
			domain.CategoryNightclub:  0.5,
		},
	},
	domain.SlotEvening: {
		allowed: []domain.Category{
			domain.CategoryFood, domain.CategoryRestaurant, domain.CategoryBar,
			domain.CategoryNightclub, domain.CategoryRelaxation, domain.CategorySpa,
		},
		inappropriate: []domain.Category{
			domain.CategoryMuseum, domain.CategoryLandmark, domain.CategoryCulture,
			domain.CategoryHike, domain.CategoryPark,
		},
		affinity: map[domain.Category]float64{
			domain.CategoryRestaurant: 1.2,
			domain.CategoryFood:       1.15,
			domain.CategoryBar:        1.1,
			domain.CategoryNightclub:  1.05,
			domain.CategoryMuseum:     0.6,
			domain.CategoryLandmark:   0.7,
			domain.CategoryCulture:    0.7,
			domain.CategoryPark:       0.7,
			domain.CategoryHike:       0.5,
		},
	},
}

func (r slotRule) tier(c domain.Category) slotTier {
	switch {
	case c.In(r.allowed...):
		return tierAllowed
	case c.In(r.inappropriate...):
		return tierInappropriate
	default:
		return tierNeutral
	}
}

// SlotAffinity is the multiplier applied to a category in a slot.
func SlotAffinity(slot domain.SlotName, c domain.Category) float64 {
	rule, ok := slotRules[slot]
	if !ok {
		return slotAffinityDefault
	}
	if v, ok := rule.affinity[c]; ok {
		return v
	}
	if rule.tier(c) == tierInappropriate {
		return slotAffinityPenalized
	}
	return slotAffinityDefault
}

// SlotRankInput is the state needed to rank one (day, slot).
type SlotRankInput struct {
	Scored        []domain.ScoredActivity
	Slot          domain.SlotName
	MustDo        domain.HintSet
	Avoid         domain.HintSet
	CategoryUsage map[domain.Category]int
	PrimaryUsed   map[string]struct{}
}

// RankedSlot is the full ordered candidate list for a slot. Candidates from
// index BackfillFrom onward fall outside the slot's allowed categories.
type RankedSlot struct {
	Candidates   []domain.ScoredActivity
	BackfillFrom int
}

// RelaxedWithin reports whether the first n candidates include a backfill.
func (r RankedSlot) RelaxedWithin(n int) bool {
	return r.BackfillFrom < min(n, len(r.Candidates))
}

type slotCandidate struct {
	activity  domain.ScoredActivity
	effective float64
	mustDo    bool
	tier      slotTier
}

// RankSlotCandidates orders the eligible activities for one slot.
//
// Avoid-hint matches and earlier primary picks are removed outright. The rest
// are scored as score x slot affinity / (1 + 0.15 x category usage). Must-do
// matches sort first, then effective score, then name. Activities in the
// slot's allowed categories come first; when fewer than four remain, neutral
// categories backfill, and categories inappropriate for the slot are used
// only when nothing else is eligible. A must-do match counts as allowed
// unless its category is inappropriate for the slot.
func RankSlotCandidates(in SlotRankInput) RankedSlot {
	rule := slotRules[in.Slot]

	byTier := make(map[slotTier][]slotCandidate, 3)
	seen := make(map[string]struct{}, len(in.Scored))
	for _, sa := range in.Scored {
		key := domain.NameKey(sa.Name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		if _, used := in.PrimaryUsed[key]; used {
			continue
		}
		if in.Avoid.Matches(sa.Name) {
			continue
		}

		c := slotCandidate{
			activity:  sa,
			effective: sa.Score * SlotAffinity(in.Slot, sa.Category) / (1 + diversityDecay*float64(in.CategoryUsage[sa.Category])),
			mustDo:    in.MustDo.Matches(sa.Name),
			tier:      rule.tier(sa.Category),
		}
		if c.mustDo && c.tier == tierNeutral {
			c.tier = tierAllowed
		}
		byTier[c.tier] = append(byTier[c.tier], c)
	}

	for _, list := range byTier {
		slices.SortStableFunc(list, compareSlotCandidates)
	}

	ranked := byTier[tierAllowed]
	backfillFrom := len(ranked)
	if len(ranked) < MaxSlotCandidates {
		ranked = append(ranked, byTier[tierNeutral]...)
	}
	if len(ranked) == 0 {
		ranked = byTier[tierInappropriate]
	}

	out := make([]domain.ScoredActivity, 0, len(ranked))
	for _, c := range ranked {
		out = append(out, c.activity)
	}
	return RankedSlot{Candidates: out, BackfillFrom: backfillFrom}
}

func compareSlotCandidates(a, b slotCandidate) int {
	if a.mustDo != b.mustDo {
		if a.mustDo {
			return -1
		}
		return 1
	}
	if c := cmp.Compare(b.effective, a.effective); c != 0 {
		return c
	}
	return strings.Compare(a.activity.Name, b.activity.Name)
}

// DraftInput configures BuildDraftSlots.
type DraftInput struct {
	Scored            []domain.ScoredActivity
	DayCount          int
	Settings          domain.PlanningSettings
	CandidatesPerSlot int
}

// BuildDraftSlots ranks candidates for every (day, slot) pair in order. The
// top candidate of each slot becomes a primary pick: it is excluded from all
// later slots and counts toward its category's usage. Slots with no eligible
// activity are omitted.
func BuildDraftSlots(in DraftInput) []domain.DraftSlot {
	perSlot := in.CandidatesPerSlot
	if perSlot <= 0 || perSlot > MaxSlotCandidates {
		perSlot = MaxSlotCandidates
	}

	mustDo := domain.NewHintSet(in.Settings.MustDoPlaces)
	avoid := domain.NewHintSet(in.Settings.AvoidPlaces)
	usage := make(map[domain.Category]int)
	primaryUsed := make(map[string]struct{})

	var slots []domain.DraftSlot
	for day := 1; day <= in.DayCount; day++ {
		for _, slot := range domain.SlotNames {
			ranked := RankSlotCandidates(SlotRankInput{
				Scored:        in.Scored,
				Slot:          slot,
				MustDo:        mustDo,
				Avoid:         avoid,
				CategoryUsage: usage,
				PrimaryUsed:   primaryUsed,
			})
			if len(ranked.Candidates) == 0 {
				continue
			}

			top := ranked.Candidates[:min(perSlot, len(ranked.Candidates))]
			primaryUsed[domain.NameKey(top[0].Name)] = struct{}{}
			usage[top[0].Category]++

			candidates := make([]domain.Activity, 0, len(top))
			for _, sa := range top {
				candidates = append(candidates, sa.Activity)
			}
			slots = append(slots, domain.DraftSlot{
				SlotID:     domain.SlotID(day, slot),
				Day:        day,
				Slot:       slot,
				Candidates: candidates,
				Relaxed:    ranked.RelaxedWithin(perSlot),
			})
		}
	}
	return slots
}
