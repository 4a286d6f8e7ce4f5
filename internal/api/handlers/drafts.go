package handlers

import (
	"errors"
	"group-trip-planner/internal/api/dto"
	"group-trip-planner/internal/domain"
	"group-trip-planner/internal/services"
	"net/http"
)

const draftNotFound = "Draft plan not saved yet"

// SaveDraftPlan stores the group's slot selections. Duplicate slot ids are
// rejected with 422.
func (h *Handler) SaveDraftPlan(w http.ResponseWriter, r *http.Request) {
	trip, ok := h.authorizedTrip(w, r)
	if !ok {
		return
	}

	var req dto.SaveDraftPlanRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	selections, settings, feedback := req.ToDomain()

	plan, err := services.SaveDraftPlan(r.Context(), h.Repo, trip, services.SaveDraftRequest{
		Selections:       selections,
		PlanningSettings: settings,
		SlotFeedback:     feedback,
	}, h.now())
	if err != nil {
		h.writeServiceError(w, r, err, tripNotFound)
		return
	}
	h.writeJSON(w, r, http.StatusOK, plan)
}

func (h *Handler) GetDraftPlan(w http.ResponseWriter, r *http.Request) {
	trip, ok := h.authorizedTrip(w, r)
	if !ok {
		return
	}

	plan, err := h.Repo.GetDraftPlan(r.Context(), trip.ID)
	if err != nil {
		h.writeServiceError(w, r, err, draftNotFound)
		return
	}
	h.writeJSON(w, r, http.StatusOK, plan)
}

// DraftValidation checks the saved plan against the settings it was saved with.
func (h *Handler) DraftValidation(w http.ResponseWriter, r *http.Request) {
	trip, ok := h.authorizedTrip(w, r)
	if !ok {
		return
	}

	plan, err := h.Repo.GetDraftPlan(r.Context(), trip.ID)
	if err != nil {
		h.writeServiceError(w, r, err, draftNotFound)
		return
	}

	settings, err := h.snapshotSettings(r, plan)
	if err != nil {
		h.writeServiceError(w, r, err, tripNotFound)
		return
	}

	h.writeJSON(w, r, http.StatusOK, h.Planner.Validate(trip, plan, settings))
}

// ShareDraftPlan returns the public link for the saved plan.
func (h *Handler) ShareDraftPlan(w http.ResponseWriter, r *http.Request) {
	trip, ok := h.authorizedTrip(w, r)
	if !ok {
		return
	}

	plan, err := services.ShareDraftPlan(r.Context(), h.Repo, trip.ID, h.now())
	if errors.Is(err, domain.ErrNotFound) {
		h.writeError(w, r, http.StatusBadRequest, "Save a draft plan before creating a share link")
		return
	}
	if err != nil {
		h.writeServiceError(w, r, err, tripNotFound)
		return
	}

	h.writeJSON(w, r, http.StatusOK, dto.ShareResponse{
		TripID:      trip.ID,
		ShareToken:  plan.Metadata.SharedToken,
		ShareURL:    services.ShareURL(h.FrontendBaseURL, plan.Metadata.SharedToken),
		SharedCount: plan.Metadata.SharedCount,
		SharedAt:    plan.Metadata.SharedAt,
	})
}

// SharedDraftPlan is the public, token-addressed view of a shared plan.
func (h *Handler) SharedDraftPlan(w http.ResponseWriter, r *http.Request) {
	const notFound = "Shared itinerary not found"

	plan, err := h.Repo.GetDraftPlanByShareToken(r.Context(), r.PathValue("token"))
	if err != nil {
		h.writeServiceError(w, r, err, notFound)
		return
	}
	trip, err := h.Repo.GetTrip(r.Context(), plan.TripID)
	if err != nil {
		h.writeServiceError(w, r, err, notFound)
		return
	}

	settings, err := h.snapshotSettings(r, plan)
	if err != nil {
		h.writeServiceError(w, r, err, notFound)
		return
	}

	h.writeJSON(w, r, http.StatusOK, dto.SharedPlanResponse{
		Trip:       dto.NewSharedTripSummary(trip),
		DraftPlan:  plan,
		Validation: h.Planner.Validate(trip, plan, settings),
	})
}

// snapshotSettings is the settings a saved plan is validated against. Plans
// stored without a snapshot use the trip's current settings.
func (h *Handler) snapshotSettings(r *http.Request, plan domain.DraftPlan) (domain.PlanningSettings, error) {
	if plan.Metadata.PlanningSettings != nil {
		return *plan.Metadata.PlanningSettings, nil
	}
	return h.settingsFor(r, plan.TripID)
}
