package flights

import (
	"time"

	"github.com/google/uuid"
)

type FlightResponse struct {
	ID              uuid.UUID `json:"id"`
	FlightNumber    string    `json:"flight_number"`
	Origin          string    `json:"origin"`
	Destination     string    `json:"destination"`
	DepartureTime   time.Time `json:"departure_time"`
	ArrivalTime     time.Time `json:"arrival_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          Status    `json:"status"`
	BasePrice       float64   `json:"base_price"`
	AircraftID      uuid.UUID `json:"aircraft_id"`
	AircraftModel   string    `json:"aircraft_model,omitempty"`
}

type FlightListResponse struct {
	Flights []FlightResponse `json:"flights"`
	Total   int64            `json:"total"`
	Page    int              `json:"page"`
	Limit   int              `json:"limit"`
}

func ToResponse(f *Flight) FlightResponse {
	resp := FlightResponse{
		ID:              f.ID,
		FlightNumber:    f.FlightNumber,
		Origin:          f.Origin,
		Destination:     f.Destination,
		DepartureTime:   f.DepartureTime,
		ArrivalTime:     f.ArrivalTime,
		DurationMinutes: int(f.Duration / time.Minute),
		Status:          f.Status,
		BasePrice:       f.BasePrice,
		AircraftID:      f.AircraftID,
	}
	if f.Aircraft != nil {
		resp.AircraftModel = f.Aircraft.Model
	}
	return resp
}

func ToResponses(list []Flight) []FlightResponse {
	out := make([]FlightResponse, 0, len(list))
	for i := range list {
		out = append(out, ToResponse(&list[i]))
	}
	return out
}
