package tickets

import (
	"time"

	"github.com/google/uuid"
)

type TicketResponse struct {
	ID              uuid.UUID  `json:"id"`
	Code            string     `json:"code"`
	Status          Status     `json:"status"`
	IssuedAt        time.Time  `json:"issued_at"`
	UsedAt          *time.Time `json:"used_at,omitempty"`
	ReservationID   uuid.UUID  `json:"reservation_id"`
	ReservationCode string     `json:"reservation_code,omitempty"`
	PassengerName   string     `json:"passenger_name,omitempty"`
	FlightNumber    string     `json:"flight_number,omitempty"`
	SeatNumber      string     `json:"seat_number,omitempty"`
}

func ToResponse(t *Ticket) TicketResponse {
	resp := TicketResponse{
		ID:            t.ID,
		Code:          t.Code,
		Status:        t.Status,
		IssuedAt:      t.IssuedAt,
		UsedAt:        t.UsedAt,
		ReservationID: t.ReservationID,
	}
	if r := t.Reservation; r != nil {
		resp.ReservationCode = r.Code
		if r.Passenger != nil {
			resp.PassengerName = r.Passenger.FullName()
		}
		if r.Flight != nil {
			resp.FlightNumber = r.Flight.FlightNumber
		}
		if r.Seat != nil {
			resp.SeatNumber = r.Seat.Number
		}
	}
	return resp
}
