package services

import (
	"context"
	"errors"
	"fmt"
	"group-trip-planner/internal/domain"
	"group-trip-planner/internal/ports"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SaveDraftRequest is a user's set of slot picks plus optional extras.
type SaveDraftRequest struct {
	Selections       []domain.DraftSelection
	PlanningSettings *domain.PlanningSettings
	SlotFeedback     []domain.SlotFeedback
}

// BuildDraftPlan validates selections against the trip and assembles the
// plan to persist. Share state from previous, if any, carries over.
//
// Selection order is preserved. A slot id may appear only once
// (ErrDuplicateSlot); day, slot and slot id must agree and fall inside the
// trip (ErrInvalidInput).
func BuildDraftPlan(
	trip domain.Trip,
	req SaveDraftRequest,
	previous *domain.DraftPlan,
	now time.Time,
) (domain.DraftPlan, error) {
	dayCount := trip.DayCount()
	seen := make(map[string]struct{}, len(req.Selections))
	selections := make([]domain.DraftSelection, 0, len(req.Selections))
	for _, sel := range req.Selections {
		if !sel.Slot.Valid() {
			return domain.DraftPlan{}, fmt.Errorf("save draft plan: unknown slot %q: %w", sel.Slot, domain.ErrInvalidInput)
		}
		if sel.Day < 1 || sel.Day > dayCount {
			return domain.DraftPlan{}, fmt.Errorf("save draft plan: day %d outside 1..%d: %w", sel.Day, dayCount, domain.ErrInvalidInput)
		}
		want := domain.SlotID(sel.Day, sel.Slot)
		if sel.SlotID == "" {
			sel.SlotID = want
		}
		if sel.SlotID != want {
			return domain.DraftPlan{}, fmt.Errorf("save draft plan: slot id %q does not match %q: %w", sel.SlotID, want, domain.ErrInvalidInput)
		}
		if strings.TrimSpace(sel.Activity.Name) == "" {
			return domain.DraftPlan{}, fmt.Errorf("save draft plan: %s: activity name is required: %w", sel.SlotID, domain.ErrInvalidInput)
		}
		if _, dup := seen[sel.SlotID]; dup {
			return domain.DraftPlan{}, fmt.Errorf("save draft plan: %s: %w", sel.SlotID, domain.ErrDuplicateSlot)
		}
		seen[sel.SlotID] = struct{}{}
		sel.Activity.Category = domain.NormalizeCategory(string(sel.Activity.Category))
		selections = append(selections, sel)
	}

	feedback := make([]domain.SlotFeedback, 0, len(req.SlotFeedback))
	for _, f := range req.SlotFeedback {
		if strings.TrimSpace(f.SlotID) == "" || strings.TrimSpace(f.CandidateName) == "" {
			continue
		}
		f.Votes = max(0, f.Votes)
		feedback = append(feedback, f)
	}

	plan := domain.DraftPlan{
		TripID:     trip.ID,
		SavedAt:    now,
		Selections: selections,
		Metadata: domain.DraftPlanMetadata{
			PlanningSettings:       req.PlanningSettings,
			SlotFeedback:           feedback,
			SelectionCoverageRatio: domain.RoundTo(min(1, float64(len(selections))/float64(max(1, dayCount*len(domain.SlotNames)))), 4),
		},
	}
	if previous != nil {
		plan.Metadata.SharedToken = previous.Metadata.SharedToken
		plan.Metadata.SharedCount = previous.Metadata.SharedCount
		plan.Metadata.SharedAt = previous.Metadata.SharedAt
	}
	return plan, nil
}

// SaveDraftPlan stores the group's selections, upserting planning settings
// first when the request carries them. The plan snapshots the request's
// settings, else the trip's stored settings, else the defaults.
func SaveDraftPlan(
	ctx context.Context,
	repo ports.TripRepository,
	trip domain.Trip,
	req SaveDraftRequest,
	now time.Time,
) (domain.DraftPlan, error) {
	var previous *domain.DraftPlan
	existing, err := repo.GetDraftPlan(ctx, trip.ID)
	switch {
	case err == nil:
		previous = &existing
	case !errors.Is(err, domain.ErrNotFound):
		return domain.DraftPlan{}, fmt.Errorf("save draft plan: %w", err)
	}

	provided := req.PlanningSettings != nil
	var settings domain.PlanningSettings
	if provided {
		settings = normalizeSettings(*req.PlanningSettings)
		if err := settings.Validate(); err != nil {
			return domain.DraftPlan{}, fmt.Errorf("save draft plan: %w", err)
		}
	} else if settings, err = PlanningSettingsFor(ctx, repo, trip.ID); err != nil {
		return domain.DraftPlan{}, fmt.Errorf("save draft plan: %w", err)
	}
	// Every saved plan carries the settings it is validated against.
	req.PlanningSettings = &settings

	plan, err := BuildDraftPlan(trip, req, previous, now)
	if err != nil {
		return domain.DraftPlan{}, err
	}
	if provided {
		if err := repo.SaveSettings(ctx, trip.ID, *req.PlanningSettings, now); err != nil {
			return domain.DraftPlan{}, fmt.Errorf("save draft plan: %w", err)
		}
	}
	if err := repo.SaveDraftPlan(ctx, plan); err != nil {
		return domain.DraftPlan{}, fmt.Errorf("save draft plan: %w", err)
	}
	return plan, nil
}

// ShareDraftPlan assigns a share token on first use and counts every share.
func ShareDraftPlan(ctx context.Context, repo ports.TripRepository, tripID string, now time.Time) (domain.DraftPlan, error) {
	plan, err := repo.GetDraftPlan(ctx, tripID)
	if err != nil {
		return domain.DraftPlan{}, fmt.Errorf("share draft plan: %w", err)
	}

	if plan.Metadata.SharedToken == "" {
		plan.Metadata.SharedToken = NewShareToken()
	}
	plan.Metadata.SharedCount++
	plan.Metadata.SharedAt = &now

	if err := repo.SaveDraftPlan(ctx, plan); err != nil {
		return domain.DraftPlan{}, fmt.Errorf("share draft plan: %w", err)
	}
	return plan, nil
}

// NewShareToken returns a short, URL-safe, unguessable token.
func NewShareToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}

// ShareURL is the public link to a shared draft.
func ShareURL(frontendBaseURL, token string) string {
	return strings.TrimRight(frontendBaseURL, "/") + "/share/" + token
}
