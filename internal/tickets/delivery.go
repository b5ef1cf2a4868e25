package tickets

import (
	"context"
	"fmt"

	"skybook/internal/notifications"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Delivery implements reservations.TicketDeliverer: it renders the boarding
// pass and publishes it for the passenger.
type Delivery struct {
	renderer  Renderer
	publisher notifications.Publisher
}

func NewDelivery(renderer Renderer, publisher notifications.Publisher) *Delivery {
	return &Delivery{renderer: renderer, publisher: publisher}
}

// DeliverTicket never returns an error; a false result carries the reason.
func (d *Delivery) DeliverTicket(ctx context.Context, tx *gorm.DB, ticketID uuid.UUID) (bool, string) {
	ticket, err := NewRepository(tx).GetByID(ctx, ticketID)
	if err != nil {
		return false, fmt.Sprintf("load ticket: %v", err)
	}

	pdf, err := d.renderer.Render(ticket)
	if err != nil {
		return false, fmt.Sprintf("render ticket: %v", err)
	}

	r := ticket.Reservation
	message := notifications.NewTicketMessage()
	message.TicketID = ticket.ID
	message.TicketCode = ticket.Code
	message.ReservationID = r.ID
	message.ReservationCode = r.Code
	message.RecipientID = r.UserID
	message.PassengerName = r.Passenger.FullName()
	message.FlightNumber = r.Flight.FlightNumber
	message.Origin = r.Flight.Origin
	message.Destination = r.Flight.Destination
	message.DepartureTime = r.Flight.DepartureTime
	message.SeatNumber = r.Seat.Number
	message.CabinClass = string(r.Seat.CabinClass)
	message.PDF = pdf

	if err := d.publisher.PublishTicket(ctx, message); err != nil {
		return false, fmt.Sprintf("publish ticket: %v", err)
	}
	return true, d.publisher.Describe()
}
