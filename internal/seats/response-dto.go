package seats

import "github.com/google/uuid"

type AircraftGridResponse struct {
	AircraftID uuid.UUID `json:"aircraft_id"`
	Model      string    `json:"model"`
	Capacity   int       `json:"capacity"`
	Grid       Grid      `json:"grid"`
}

type FlightGridResponse struct {
	FlightID     uuid.UUID `json:"flight_id"`
	FlightNumber string    `json:"flight_number"`
	AircraftID   uuid.UUID `json:"aircraft_id"`
	Bookable     bool      `json:"bookable"`
	Grid         Grid      `json:"grid"`
}
