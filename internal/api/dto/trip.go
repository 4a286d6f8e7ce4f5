package dto

import (
	"group-trip-planner/internal/domain"
	"time"
)

type InterestVector struct {
	Food       float64 `json:"food" validate:"gte=0,lte=5"`
	Nightlife  float64 `json:"nightlife" validate:"gte=0,lte=5"`
	Culture    float64 `json:"culture" validate:"gte=0,lte=5"`
	Outdoors   float64 `json:"outdoors" validate:"gte=0,lte=5"`
	Relaxation float64 `json:"relaxation" validate:"gte=0,lte=5"`
}

type ParticipantRequest struct {
	Name               string         `json:"name" validate:"required,max=80"`
	InterestVector     InterestVector `json:"interest_vector"`
	SchedulePreference string         `json:"schedule_preference" validate:"required,oneof=packed balanced chill"`
	WakePreference     string         `json:"wake_preference" validate:"required,oneof=early normal late"`
}

func (p ParticipantRequest) ToDomain() domain.Participant {
	return domain.Participant{
		Name: p.Name,
		Interests: domain.InterestVector{
			Food:       p.InterestVector.Food,
			Nightlife:  p.InterestVector.Nightlife,
			Culture:    p.InterestVector.Culture,
			Outdoors:   p.InterestVector.Outdoors,
			Relaxation: p.InterestVector.Relaxation,
		},
		Pacing: domain.PacingStyle(p.SchedulePreference),
		Wake:   domain.WakePreference(p.WakePreference),
	}
}

type CreateTripRequest struct {
	Destination          string               `json:"destination" validate:"required,min=2,max=120"`
	StartDate            string               `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate              string               `json:"end_date" validate:"required,datetime=2006-01-02"`
	AccommodationAddress string               `json:"accommodation_address" validate:"max=300"`
	AccommodationLat     float64              `json:"accommodation_lat" validate:"latitude"`
	AccommodationLng     float64              `json:"accommodation_lng" validate:"longitude"`
	Participants         []ParticipantRequest `json:"participants" validate:"omitempty,dive"`
}

// ToDomain assumes the request already passed validation.
func (r CreateTripRequest) ToDomain() domain.Trip {
	start, _ := time.Parse(domain.DateLayout, r.StartDate)
	end, _ := time.Parse(domain.DateLayout, r.EndDate)

	participants := make([]domain.Participant, 0, len(r.Participants))
	for _, p := range r.Participants {
		participants = append(participants, p.ToDomain())
	}

	return domain.Trip{
		Destination:          r.Destination,
		StartDate:            start,
		EndDate:              end,
		AccommodationAddress: r.AccommodationAddress,
		Accommodation:        domain.Coordinates{Lat: r.AccommodationLat, Lng: r.AccommodationLng},
		Participants:         participants,
	}
}

type ParticipantResponse struct {
	Name               string         `json:"name"`
	InterestVector     InterestVector `json:"interest_vector"`
	SchedulePreference string         `json:"schedule_preference"`
	WakePreference     string         `json:"wake_preference"`
}

type TripResponse struct {
	ID                   string                `json:"id"`
	Destination          string                `json:"destination"`
	StartDate            string                `json:"start_date"`
	EndDate              string                `json:"end_date"`
	DayCount             int                   `json:"day_count"`
	AccommodationAddress string                `json:"accommodation_address"`
	AccommodationLat     float64               `json:"accommodation_lat"`
	AccommodationLng     float64               `json:"accommodation_lng"`
	Participants         []ParticipantResponse `json:"participants"`
	CreatedAt            time.Time             `json:"created_at"`
}

type CreateTripResponse struct {
	TripResponse
	OwnerToken string `json:"owner_token"`
	JoinCode   string `json:"join_code"`
}

func NewTripResponse(t domain.Trip) TripResponse {
	participants := make([]ParticipantResponse, 0, len(t.Participants))
	for _, p := range t.Participants {
		participants = append(participants, ParticipantResponse{
			Name: p.Name,
			InterestVector: InterestVector{
				Food:       p.Interests.Food,
				Nightlife:  p.Interests.Nightlife,
				Culture:    p.Interests.Culture,
				Outdoors:   p.Interests.Outdoors,
				Relaxation: p.Interests.Relaxation,
			},
			SchedulePreference: string(p.Pacing),
			WakePreference:     string(p.Wake),
		})
	}

	return TripResponse{
		ID:                   t.ID,
		Destination:          t.Destination,
		StartDate:            t.StartDate.Format(domain.DateLayout),
		EndDate:              t.EndDate.Format(domain.DateLayout),
		DayCount:             t.DayCount(),
		AccommodationAddress: t.AccommodationAddress,
		AccommodationLat:     t.Accommodation.Lat,
		AccommodationLng:     t.Accommodation.Lng,
		Participants:         participants,
		CreatedAt:            t.CreatedAt,
	}
}
