package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skybook/internal/seats"
	"skybook/internal/users"
	"skybook/pkg/logger"
	"skybook/pkg/metrics"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TicketIssuer mints and voids tickets inside the caller's transaction
// (declared here to avoid circular dependency).
type TicketIssuer interface {
	IssueTicket(ctx context.Context, tx *gorm.DB, reservation *Reservation) (uuid.UUID, error)
	VoidTicket(ctx context.Context, tx *gorm.DB, reservationID uuid.UUID) error
	HasUsedTicket(ctx context.Context, tx *gorm.DB, reservationID uuid.UUID) (bool, error)
}

// TicketDeliverer hands an issued ticket to the passenger. A false result
// aborts the confirmation.
type TicketDeliverer interface {
	DeliverTicket(ctx context.Context, tx *gorm.DB, ticketID uuid.UUID) (bool, string)
}

type Confirmation struct {
	Reservation *Reservation `json:"reservation"`
	TicketID    uuid.UUID    `json:"ticket_id"`
	Delivery    string       `json:"delivery"`
}

type CancelResult struct {
	Reservation *Reservation `json:"reservation"`
	// Warning is set when the reservation was already cancelled and nothing
	// changed.
	Warning string `json:"warning,omitempty"`
}

type Lifecycle struct {
	repo      Repository
	seats     seats.Repository
	issuer    TicketIssuer
	deliverer TicketDeliverer
	metrics   *metrics.Recorder
	now       func() time.Time
}

func NewLifecycle(repo Repository, seatRepo seats.Repository, issuer TicketIssuer, deliverer TicketDeliverer, recorder *metrics.Recorder) *Lifecycle {
	return &Lifecycle{
		repo:      repo,
		seats:     seatRepo,
		issuer:    issuer,
		deliverer: deliverer,
		metrics:   recorder,
		now:       time.Now,
	}
}

// Confirm moves a PENDING reservation to CONFIRMED, issues its ticket and
// delivers it, all in one transaction. If issuance or delivery fails nothing
// is committed.
func (l *Lifecycle) Confirm(ctx context.Context, actor users.Actor, reservationID uuid.UUID) (*Confirmation, error) {
	if !actor.Role.CanConfirmReservations() {
		return nil, users.ErrForbidden
	}

	var result *Confirmation
	err := l.repo.Transaction(ctx, func(repo Repository) error {
		reservation, err := repo.LockByID(ctx, reservationID)
		if err != nil {
			return err
		}
		if !reservation.Status.CanBeConfirmed() {
			return ErrNotPending
		}

		if err := repo.UpdateStatus(ctx, reservation.ID, StatusConfirmed, nil); err != nil {
			return fmt.Errorf("failed to confirm reservation: %w", err)
		}
		reservation.Status = StatusConfirmed

		ticketID, err := l.issuer.IssueTicket(ctx, repo.Conn(), reservation)
		if err != nil {
			return fmt.Errorf("failed to issue ticket: %w", err)
		}

		ok, message := l.deliverer.DeliverTicket(ctx, repo.Conn(), ticketID)
		l.metrics.TicketDelivery(ok)
		if !ok {
			logger.GetDefault().LogTicketDeliveryFailed(ctx, ticketID.String(), message)
			return &DeliveryFailedError{TicketID: ticketID, Message: message}
		}

		if _, err := l.seats.RefreshSeatStatus(ctx, repo.Conn(), reservation.SeatID); err != nil {
			return fmt.Errorf("failed to refresh seat status: %w", err)
		}

		result = &Confirmation{
			Reservation: reservation,
			TicketID:    ticketID,
			Delivery:    message,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.metrics.ReservationConfirmed()
	logger.GetDefault().LogReservationConfirmed(ctx, reservationID.String(), result.TicketID.String(), actor.UserID.String())
	return result, nil
}

// Cancel releases the reservation's seat. The owner or staff may cancel;
// cancelling twice is a no-op reported through CancelResult.Warning.
func (l *Lifecycle) Cancel(ctx context.Context, actor users.Actor, reservationID uuid.UUID) (*CancelResult, error) {
	var result *CancelResult
	err := l.repo.Transaction(ctx, func(repo Repository) error {
		reservation, err := repo.LockByID(ctx, reservationID)
		if err != nil {
			return err
		}
		if !actor.Owns(reservation.UserID) && !actor.Role.CanCancelAnyReservation() {
			return users.ErrForbidden
		}

		if reservation.Status == StatusCancelled {
			result = &CancelResult{
				Reservation: reservation,
				Warning:     fmt.Sprintf("reservation %s is already cancelled", reservation.Code),
			}
			return nil
		}

		used, err := l.issuer.HasUsedTicket(ctx, repo.Conn(), reservation.ID)
		if err != nil {
			return fmt.Errorf("failed to check ticket: %w", err)
		}
		if used {
			return ErrTicketUsed
		}

		cancelledAt := l.now().UTC()
		if err := repo.UpdateStatus(ctx, reservation.ID, StatusCancelled, &cancelledAt); err != nil {
			return fmt.Errorf("failed to cancel reservation: %w", err)
		}
		reservation.Status = StatusCancelled
		reservation.CancelledAt = &cancelledAt

		if err := l.issuer.VoidTicket(ctx, repo.Conn(), reservation.ID); err != nil {
			return fmt.Errorf("failed to void ticket: %w", err)
		}
		if _, err := l.seats.RefreshSeatStatus(ctx, repo.Conn(), reservation.SeatID); err != nil {
			return fmt.Errorf("failed to refresh seat status: %w", err)
		}

		result = &CancelResult{Reservation: reservation}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Warning != "" {
		logger.GetDefault().Warn("cancel ignored", "reservation_id", reservationID.String(), "warning", result.Warning)
		return result, nil
	}

	l.metrics.ReservationCancelled()
	logger.GetDefault().LogReservationCancelled(ctx, reservationID.String(), actor.UserID.String())
	return result, nil
}

// IsConflict reports whether err is a named collision the caller can act on.
func IsConflict(err error) bool {
	var unavailable *SeatUnavailableError
	return errors.As(err, &unavailable) ||
		errors.Is(err, ErrNotPending) ||
		errors.Is(err, ErrTicketExists) ||
		errors.Is(err, ErrTicketUsed)
}
