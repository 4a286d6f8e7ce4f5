package handlers

import (
	"group-trip-planner/internal/api/dto"
	"group-trip-planner/internal/domain"
	"group-trip-planner/internal/services"
	"net/http"
)

const tripNotFound = "Trip not found"

// authorizedTrip checks the X-Trip-Token header and loads the trip. On
// failure it has already written the response.
func (h *Handler) authorizedTrip(w http.ResponseWriter, r *http.Request) (domain.Trip, bool) {
	tripID := r.PathValue("id")
	if err := services.AuthorizeTrip(r.Context(), h.Repo, tripID, tripToken(r)); err != nil {
		h.writeServiceError(w, r, err, tripNotFound)
		return domain.Trip{}, false
	}

	trip, err := h.Repo.GetTrip(r.Context(), tripID)
	if err != nil {
		h.writeServiceError(w, r, err, tripNotFound)
		return domain.Trip{}, false
	}
	return trip, true
}

// CreateTrip registers a trip and returns its owner token and join code.
func (h *Handler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTripRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	trip, access, err := services.CreateTrip(r.Context(), h.Repo, req.ToDomain(), h.now())
	if err != nil {
		h.writeServiceError(w, r, err, tripNotFound)
		return
	}

	h.Log.Info("trip created", "trip_id", trip.ID, "days", trip.DayCount())
	h.writeJSON(w, r, http.StatusCreated, dto.CreateTripResponse{
		TripResponse: dto.NewTripResponse(trip),
		OwnerToken:   access.OwnerToken,
		JoinCode:     access.JoinCode,
	})
}

func (h *Handler) GetTrip(w http.ResponseWriter, r *http.Request) {
	trip, ok := h.authorizedTrip(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, r, http.StatusOK, dto.NewTripResponse(trip))
}

// JoinTrip appends the caller as a participant.
func (h *Handler) JoinTrip(w http.ResponseWriter, r *http.Request) {
	tripID := r.PathValue("id")
	if err := services.AuthorizeTrip(r.Context(), h.Repo, tripID, tripToken(r)); err != nil {
		h.writeServiceError(w, r, err, tripNotFound)
		return
	}

	var req dto.ParticipantRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	trip, err := services.JoinTrip(r.Context(), h.Repo, tripID, req.ToDomain())
	if err != nil {
		h.writeServiceError(w, r, err, tripNotFound)
		return
	}
	h.writeJSON(w, r, http.StatusOK, dto.NewTripResponse(trip))
}
