package reservations

import (
	"time"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID            uuid.UUID  `json:"id"`
	Code          string     `json:"code"`
	Status        Status     `json:"status"`
	TotalPrice    float64    `json:"total_price"`
	FlightID      uuid.UUID  `json:"flight_id"`
	FlightNumber  string     `json:"flight_number,omitempty"`
	Origin        string     `json:"origin,omitempty"`
	Destination   string     `json:"destination,omitempty"`
	DepartureTime *time.Time `json:"departure_time,omitempty"`
	PassengerID   uuid.UUID  `json:"passenger_id"`
	PassengerName string     `json:"passenger_name,omitempty"`
	SeatID        uuid.UUID  `json:"seat_id"`
	SeatNumber    string     `json:"seat_number,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`
}

type BookingResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPrice   float64               `json:"total_price"`
}

type ManifestEntry struct {
	SeatNumber     string `json:"seat_number"`
	CabinClass     string `json:"cabin_class"`
	PassengerName  string `json:"passenger_name"`
	DocumentType   string `json:"document_type"`
	DocumentNumber string `json:"document_number"`
	Code           string `json:"reservation_code"`
}

func ToResponse(r *Reservation) ReservationResponse {
	resp := ReservationResponse{
		ID:          r.ID,
		Code:        r.Code,
		Status:      r.Status,
		TotalPrice:  r.TotalPrice,
		FlightID:    r.FlightID,
		PassengerID: r.PassengerID,
		SeatID:      r.SeatID,
		CreatedAt:   r.CreatedAt,
		CancelledAt: r.CancelledAt,
	}
	if r.Flight != nil {
		departure := r.Flight.DepartureTime
		resp.FlightNumber = r.Flight.FlightNumber
		resp.Origin = r.Flight.Origin
		resp.Destination = r.Flight.Destination
		resp.DepartureTime = &departure
	}
	if r.Passenger != nil {
		resp.PassengerName = r.Passenger.FullName()
	}
	if r.Seat != nil {
		resp.SeatNumber = r.Seat.Number
	}
	return resp
}

func ToResponses(list []Reservation) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(list))
	for i := range list {
		out = append(out, ToResponse(&list[i]))
	}
	return out
}

func ToBookingResponse(list []Reservation) BookingResponse {
	resp := BookingResponse{Reservations: ToResponses(list)}
	for _, r := range list {
		resp.TotalPrice += r.TotalPrice
	}
	return resp
}

func ToManifest(list []Reservation) []ManifestEntry {
	out := make([]ManifestEntry, 0, len(list))
	for _, r := range list {
		entry := ManifestEntry{Code: r.Code}
		if r.Seat != nil {
			entry.SeatNumber = r.Seat.Number
			entry.CabinClass = string(r.Seat.CabinClass)
		}
		if r.Passenger != nil {
			entry.PassengerName = r.Passenger.FullName()
			entry.DocumentType = string(r.Passenger.DocumentType)
			entry.DocumentNumber = r.Passenger.DocumentNumber
		}
		out = append(out, entry)
	}
	return out
}
