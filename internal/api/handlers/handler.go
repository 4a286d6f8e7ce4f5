package handlers

import (
	"group-trip-planner/internal/platform/logger"
	"group-trip-planner/internal/ports"
	"group-trip-planner/internal/services"
	"time"
)

// Handler serves the trip planning API. Geocoder and GeocodeCache are
// optional; without a geocoder /geocode returns no results.
type Handler struct {
	Repo    ports.TripRepository
	Planner *services.Planner

	Geocoder          ports.Geocoder
	GeocodeCache      ports.GeocodeCache
	GeocodeMaxResults int

	FrontendBaseURL string

	Log *logger.Logger
	Now func() time.Time
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now().UTC()
}
