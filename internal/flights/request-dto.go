package flights

import "time"

type CreateFlightRequest struct {
	FlightNumber    string    `json:"flight_number" validate:"required,min=2,max=10"`
	Origin          string    `json:"origin" validate:"required,min=2,max=100"`
	Destination     string    `json:"destination" validate:"required,min=2,max=100,nefield=Origin"`
	DepartureTime   time.Time `json:"departure_time" validate:"required"`
	ArrivalTime     time.Time `json:"arrival_time" validate:"required"`
	DurationMinutes *int      `json:"duration_minutes,omitempty" validate:"omitempty,min=1"`
	BasePrice       float64   `json:"base_price" validate:"gte=0"`
	AircraftID      string    `json:"aircraft_id" validate:"required,uuid"`
}

type UpdateFlightRequest struct {
	FlightNumber    *string    `json:"flight_number,omitempty" validate:"omitempty,min=2,max=10"`
	Origin          *string    `json:"origin,omitempty" validate:"omitempty,min=2,max=100"`
	Destination     *string    `json:"destination,omitempty" validate:"omitempty,min=2,max=100"`
	DepartureTime   *time.Time `json:"departure_time,omitempty"`
	ArrivalTime     *time.Time `json:"arrival_time,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty" validate:"omitempty,min=1"`
	BasePrice       *float64   `json:"base_price,omitempty" validate:"omitempty,gte=0"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=SCHEDULED CANCELLED IN_PROGRESS COMPLETED"`
}

type SearchFlightsRequest struct {
	Origin      string `form:"origin"`
	Destination string `form:"destination"`
	Page        int    `form:"page"`
	Limit       int    `form:"limit"`
}
