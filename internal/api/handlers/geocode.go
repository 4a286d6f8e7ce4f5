package handlers

import (
	"group-trip-planner/internal/api/dto"
	"group-trip-planner/internal/domain"
	"group-trip-planner/internal/services"
	"net/http"
	"strings"
)

// Geocode resolves the q parameter to address candidates.
func (h *Handler) Geocode(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if len(query) < services.MinGeocodeQueryLen {
		h.writeError(w, r, http.StatusUnprocessableEntity, "Address query must be at least 3 characters")
		return
	}
	if h.Geocoder == nil {
		h.writeJSON(w, r, http.StatusOK, dto.GeocodeResponse{Query: query, Results: []domain.GeocodeCandidate{}})
		return
	}

	// Provider failures degrade to an empty result list.
	results, err := services.Geocode(r.Context(), h.Geocoder, h.GeocodeCache, h.Log, query, h.GeocodeMaxResults)
	if err != nil {
		h.Log.Warn("geocode failed", "err", err)
		results = []domain.GeocodeCandidate{}
	}
	h.writeJSON(w, r, http.StatusOK, dto.GeocodeResponse{Query: query, Results: results})
}
