package handlers

import (
	"group-trip-planner/internal/services"
	"net/http"
)

func (h *Handler) AnalyticsSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := services.AnalyticsSummary(r.Context(), h.Repo)
	if err != nil {
		h.writeServiceError(w, r, err, "not found")
		return
	}
	h.writeJSON(w, r, http.StatusOK, summary)
}
