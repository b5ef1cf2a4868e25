package tickets

import (
	"context"
	"errors"
	"fmt"

	"skybook/internal/reservations"
	"skybook/internal/shared/utils/codegen"
	"skybook/internal/shared/utils/dbutil"
	"skybook/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const codeLength = 12

var (
	ErrTicketNotFound  = errors.New("ticket not found")
	ErrTicketNotIssued = errors.New("ticket is not in ISSUED state")
	// ErrTicketExists is shared with the reservation lifecycle.
	ErrTicketExists = reservations.ErrTicketExists
	ErrTicketUsed   = reservations.ErrTicketUsed
)

// Issuer implements reservations.TicketIssuer on the caller's transaction.
type Issuer struct {
	generate func(n int) (string, error)
}

func NewIssuer() *Issuer {
	return &Issuer{generate: codegen.Generate}
}

func (i *Issuer) IssueTicket(ctx context.Context, tx *gorm.DB, reservation *reservations.Reservation) (uuid.UUID, error) {
	repo := NewRepository(tx)

	exists, err := repo.ExistsForReservation(ctx, reservation.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to check existing ticket: %w", err)
	}
	if exists {
		return uuid.Nil, ErrTicketExists
	}

	code, err := i.generate(codeLength)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to generate ticket code: %w", err)
	}

	ticket := &Ticket{
		ReservationID: reservation.ID,
		Code:          code,
		Status:        StatusIssued,
	}
	if err := repo.Create(ctx, ticket); err != nil {
		if dbutil.IsUniqueViolation(err) {
			return uuid.Nil, fmt.Errorf("%w: %v", ErrTicketExists, err)
		}
		return uuid.Nil, err
	}

	logger.GetDefault().LogTicketIssued(ctx, ticket.ID.String(), reservation.ID.String())
	return ticket.ID, nil
}

// VoidTicket cancels an ISSUED ticket. Reservations without one are left alone.
func (i *Issuer) VoidTicket(ctx context.Context, tx *gorm.DB, reservationID uuid.UUID) error {
	_, err := NewRepository(tx).TransitionByReservation(ctx, reservationID, StatusIssued, StatusCancelled)
	return err
}

func (i *Issuer) HasUsedTicket(ctx context.Context, tx *gorm.DB, reservationID uuid.UUID) (bool, error) {
	used, err := NewRepository(tx).CountByStatus(ctx, reservationID, StatusUsed)
	return used > 0, err
}
