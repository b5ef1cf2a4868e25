package tickets

import (
	"context"
	"fmt"
	"time"

	"skybook/internal/reservations"
	"skybook/internal/seats"
	"skybook/internal/users"
	"skybook/pkg/logger"

	"github.com/google/uuid"
)

type Service interface {
	Get(ctx context.Context, actor users.Actor, id uuid.UUID) (*Ticket, error)
	GetByReservation(ctx context.Context, actor users.Actor, reservationID uuid.UUID) (*Ticket, error)
	PDF(ctx context.Context, actor users.Actor, id uuid.UUID) (*Ticket, []byte, error)
	Board(ctx context.Context, actor users.Actor, id uuid.UUID) (*Ticket, error)
}

type service struct {
	repo     Repository
	seats    seats.Repository
	renderer Renderer
	now      func() time.Time
}

func NewService(repo Repository, seatRepo seats.Repository, renderer Renderer) Service {
	return &service{
		repo:     repo,
		seats:    seatRepo,
		renderer: renderer,
		now:      time.Now,
	}
}

func canSee(actor users.Actor, ticket *Ticket) bool {
	if actor.Role.CanViewAllReservations() {
		return true
	}
	return ticket.Reservation != nil && actor.Owns(ticket.Reservation.UserID)
}

// Get hides tickets the actor may not see behind ErrTicketNotFound.
func (s *service) Get(ctx context.Context, actor users.Actor, id uuid.UUID) (*Ticket, error) {
	ticket, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canSee(actor, ticket) {
		return nil, ErrTicketNotFound
	}
	return ticket, nil
}

func (s *service) GetByReservation(ctx context.Context, actor users.Actor, reservationID uuid.UUID) (*Ticket, error) {
	ticket, err := s.repo.GetByReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if !canSee(actor, ticket) {
		return nil, ErrTicketNotFound
	}
	return ticket, nil
}

func (s *service) PDF(ctx context.Context, actor users.Actor, id uuid.UUID) (*Ticket, []byte, error) {
	ticket, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, nil, err
	}
	if ticket.Status == StatusCancelled {
		return nil, nil, ErrTicketNotIssued
	}

	pdf, err := s.renderer.Render(ticket)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to render ticket: %w", err)
	}
	return ticket, pdf, nil
}

// Board marks an ISSUED ticket USED and its seat OCCUPIED.
func (s *service) Board(ctx context.Context, actor users.Actor, id uuid.UUID) (*Ticket, error) {
	if !actor.Role.CanConfirmReservations() {
		return nil, users.ErrForbidden
	}

	err := s.repo.Transaction(ctx, func(repo Repository) error {
		ticket, err := repo.LockByID(ctx, id)
		if err != nil {
			return err
		}
		switch ticket.Status {
		case StatusUsed:
			return ErrTicketUsed
		case StatusCancelled:
			return ErrTicketNotIssued
		}
		if ticket.Reservation == nil || ticket.Reservation.Status != reservations.StatusConfirmed {
			return ErrTicketNotIssued
		}

		if err := repo.MarkUsed(ctx, ticket.ID, s.now().UTC()); err != nil {
			return err
		}
		if _, err := s.seats.RefreshSeatStatus(ctx, repo.Conn(), ticket.Reservation.SeatID); err != nil {
			return fmt.Errorf("failed to refresh seat status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.GetDefault().Info("ticket boarded", "ticket_id", id.String(), "actor_id", actor.UserID.String())
	return s.repo.GetByID(ctx, id)
}
