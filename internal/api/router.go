package api

import (
	"group-trip-planner/internal/api/handlers"
	"group-trip-planner/internal/platform/logger"
	"net/http"
)

// NewRouter wires HTTP handlers and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(h *handlers.Handler, corsOrigins []string) http.Handler {
	h.Log = logger.OrNop(h.Log)

	mux := http.NewServeMux()

	mux.HandleFunc("/health", h.Health)

	mux.HandleFunc("POST /trips", h.CreateTrip)
	mux.HandleFunc("GET /trips/{id}", h.GetTrip)
	mux.HandleFunc("POST /trips/{id}/join", h.JoinTrip)

	mux.HandleFunc("POST /trips/{id}/itinerary", h.GenerateItinerary)
	mux.HandleFunc("GET /trips/{id}/itinerary", h.GetItinerary)
	mux.HandleFunc("GET /trips/{id}/draft-slots", h.DraftSlots)

	mux.HandleFunc("GET /trips/{id}/planning-settings", h.GetPlanningSettings)
	mux.HandleFunc("PUT /trips/{id}/planning-settings", h.PutPlanningSettings)

	mux.HandleFunc("POST /trips/{id}/draft-plan", h.SaveDraftPlan)
	mux.HandleFunc("GET /trips/{id}/draft-plan", h.GetDraftPlan)
	mux.HandleFunc("GET /trips/{id}/draft-validation", h.DraftValidation)

	mux.HandleFunc("POST /trips/{id}/share", h.ShareDraftPlan)
	mux.HandleFunc("GET /share/{token}", h.SharedDraftPlan)

	mux.HandleFunc("GET /analytics/summary", h.AnalyticsSummary)
	mux.HandleFunc("GET /geocode", h.Geocode)

	return loggingMiddleware(h.Log, corsMiddleware(corsOrigins, mux))
}
