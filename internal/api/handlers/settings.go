package handlers

import (
	"group-trip-planner/internal/api/dto"
	"group-trip-planner/internal/domain"
	"group-trip-planner/internal/services"
	"net/http"
)

func (h *Handler) settingsFor(r *http.Request, tripID string) (domain.PlanningSettings, error) {
	return services.PlanningSettingsFor(r.Context(), h.Repo, tripID)
}

func (h *Handler) GetPlanningSettings(w http.ResponseWriter, r *http.Request) {
	trip, ok := h.authorizedTrip(w, r)
	if !ok {
		return
	}

	settings, err := h.settingsFor(r, trip.ID)
	if err != nil {
		h.writeServiceError(w, r, err, tripNotFound)
		return
	}
	h.writeJSON(w, r, http.StatusOK, settings)
}

func (h *Handler) PutPlanningSettings(w http.ResponseWriter, r *http.Request) {
	trip, ok := h.authorizedTrip(w, r)
	if !ok {
		return
	}

	var req dto.PlanningSettings
	if !h.decodeJSON(w, r, &req) {
		return
	}

	settings, err := services.UpdatePlanningSettings(r.Context(), h.Repo, trip.ID, req.ToDomain(), h.now())
	if err != nil {
		h.writeServiceError(w, r, err, tripNotFound)
		return
	}
	h.writeJSON(w, r, http.StatusOK, settings)
}
