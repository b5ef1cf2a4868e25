package reservations

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrEmptyBatch          = errors.New("at least one seat must be selected")
	ErrDuplicatePassenger  = errors.New("a passenger may only appear once per booking")
	ErrFlightNotBookable   = errors.New("flight is not open for booking")
	ErrSeatNotFound        = errors.New("seat does not belong to this flight's aircraft")
	ErrNotPending          = errors.New("only pending reservations can be confirmed")
	ErrTicketUsed          = errors.New("reservation ticket has already been used")
	ErrTicketExists        = errors.New("a ticket already exists for this reservation")
	ErrIntentNotFound      = errors.New("booking intent not found or expired")
)

// SeatUnavailableError reports the seat that collided with an active
// reservation. The whole batch is rejected.
type SeatUnavailableError struct {
	SeatID     uuid.UUID
	SeatNumber string
}

func (e *SeatUnavailableError) Error() string {
	if e.SeatNumber != "" {
		return fmt.Sprintf("seat %s is no longer available", e.SeatNumber)
	}
	return fmt.Sprintf("seat %s is no longer available", e.SeatID)
}

type PassengerNotOwnedError struct {
	PassengerID uuid.UUID
}

func (e *PassengerNotOwnedError) Error() string {
	return fmt.Sprintf("passenger %s does not belong to the booking user", e.PassengerID)
}

type PassengerSeatCountMismatchError struct {
	Expected int
	Actual   int
}

func (e *PassengerSeatCountMismatchError) Error() string {
	return fmt.Sprintf("expected %d seat selections, got %d", e.Expected, e.Actual)
}

// DeliveryFailedError aborts a confirmation when the ticket could not be
// delivered.
type DeliveryFailedError struct {
	TicketID uuid.UUID
	Message  string
}

func (e *DeliveryFailedError) Error() string {
	return fmt.Sprintf("ticket delivery failed: %s", e.Message)
}
