package handlers

import (
	"net/http"
)

// GenerateItinerary builds and stores the three itinerary options.
func (h *Handler) GenerateItinerary(w http.ResponseWriter, r *http.Request) {
	trip, ok := h.authorizedTrip(w, r)
	if !ok {
		return
	}

	result, err := h.Planner.Generate(r.Context(), trip)
	if err != nil {
		h.writeServiceError(w, r, err, tripNotFound)
		return
	}
	if err := h.Repo.SaveItinerary(r.Context(), result); err != nil {
		h.writeServiceError(w, r, err, tripNotFound)
		return
	}
	h.writeJSON(w, r, http.StatusOK, result)
}

func (h *Handler) GetItinerary(w http.ResponseWriter, r *http.Request) {
	trip, ok := h.authorizedTrip(w, r)
	if !ok {
		return
	}

	result, err := h.Repo.GetItinerary(r.Context(), trip.ID)
	if err != nil {
		h.writeServiceError(w, r, err, "Itinerary not generated yet")
		return
	}
	h.writeJSON(w, r, http.StatusOK, result)
}

// DraftSlots returns ranked candidates per (day, slot) under the trip's
// current planning settings.
func (h *Handler) DraftSlots(w http.ResponseWriter, r *http.Request) {
	trip, ok := h.authorizedTrip(w, r)
	if !ok {
		return
	}

	settings, err := h.settingsFor(r, trip.ID)
	if err != nil {
		h.writeServiceError(w, r, err, tripNotFound)
		return
	}

	schedule, err := h.Planner.DraftSlots(r.Context(), trip, settings)
	if err != nil {
		h.writeServiceError(w, r, err, tripNotFound)
		return
	}
	h.writeJSON(w, r, http.StatusOK, schedule)
}
