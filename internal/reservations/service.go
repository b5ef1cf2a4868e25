package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skybook/internal/flights"
	"skybook/internal/users"

	"github.com/google/uuid"
)

type Service interface {
	DeclareIntent(ctx context.Context, actor users.Actor, flightID uuid.UUID, passengerCount int) (*Intent, error)
	Book(ctx context.Context, actor users.Actor, req CreateReservationRequest) ([]Reservation, error)

	Get(ctx context.Context, actor users.Actor, id uuid.UUID) (*Reservation, error)
	List(ctx context.Context, actor users.Actor, query ListReservationsQuery) ([]Reservation, int64, error)
	History(ctx context.Context, actor users.Actor) ([]Reservation, error)
	Manifest(ctx context.Context, actor users.Actor, flightID uuid.UUID) ([]Reservation, error)
}

type service struct {
	repo       Repository
	flightRepo flights.Repository
	allocator  *Allocator
	intents    IntentStore
	now        func() time.Time
}

func NewService(repo Repository, flightRepo flights.Repository, allocator *Allocator, intents IntentStore) Service {
	return &service{
		repo:       repo,
		flightRepo: flightRepo,
		allocator:  allocator,
		intents:    intents,
		now:        time.Now,
	}
}

func (s *service) DeclareIntent(ctx context.Context, actor users.Actor, flightID uuid.UUID, passengerCount int) (*Intent, error) {
	flight, err := s.flightRepo.GetByID(ctx, flightID)
	if err != nil {
		return nil, err
	}
	if !flight.IsBookable() {
		return nil, ErrFlightNotBookable
	}
	return s.intents.Declare(ctx, flightID, actor.UserID, passengerCount)
}

// Book resolves the optional intent and allocates the batch for the actor.
// A consumed intent is discarded.
func (s *service) Book(ctx context.Context, actor users.Actor, req CreateReservationRequest) ([]Reservation, error) {
	flightID, err := uuid.Parse(req.FlightID)
	if err != nil {
		return nil, fmt.Errorf("invalid flight id: %w", err)
	}

	pairs := make([]SeatPassenger, 0, len(req.Selections))
	for _, sel := range req.Selections {
		seatID, err := uuid.Parse(sel.SeatID)
		if err != nil {
			return nil, fmt.Errorf("invalid seat id: %w", err)
		}
		passengerID, err := uuid.Parse(sel.PassengerID)
		if err != nil {
			return nil, fmt.Errorf("invalid passenger id: %w", err)
		}
		pairs = append(pairs, SeatPassenger{SeatID: seatID, PassengerID: passengerID})
	}

	var intent *Intent
	if req.IntentID != "" {
		intentID, err := uuid.Parse(req.IntentID)
		if err != nil {
			return nil, ErrIntentNotFound
		}
		if intent, err = s.intents.Get(ctx, intentID); err != nil {
			return nil, err
		}
	}

	created, err := s.allocator.Allocate(ctx, AllocationRequest{
		FlightID: flightID,
		UserID:   actor.UserID,
		Pairs:    pairs,
		Intent:   intent,
	})
	if err != nil {
		return nil, err
	}

	if intent != nil {
		// Expiry cleans up anyway.
		_ = s.intents.Discard(ctx, intent.ID)
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, actor users.Actor, id uuid.UUID) (*Reservation, error) {
	reservation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(reservation.UserID) && !actor.Role.CanViewAllReservations() {
		return nil, ErrReservationNotFound
	}
	return reservation, nil
}

// List returns the actor's reservations. Staff may ask for everyone's.
func (s *service) List(ctx context.Context, actor users.Actor, query ListReservationsQuery) ([]Reservation, int64, error) {
	filter := ListFilter{Limit: query.Limit, Offset: query.Offset}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	if query.Status != "" {
		status, err := ParseStatus(query.Status)
		if err != nil {
			return nil, 0, err
		}
		filter.Status = status
	}

	if query.All {
		if !actor.Role.CanViewAllReservations() {
			return nil, 0, users.ErrForbidden
		}
	} else {
		userID := actor.UserID
		filter.UserID = &userID
	}

	list, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reservations: %w", err)
	}
	return list, total, nil
}

func (s *service) History(ctx context.Context, actor users.Actor) ([]Reservation, error) {
	list, err := s.repo.History(ctx, actor.UserID, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return list, nil
}

func (s *service) Manifest(ctx context.Context, actor users.Actor, flightID uuid.UUID) ([]Reservation, error) {
	if !actor.Role.CanViewManifests() {
		return nil, users.ErrForbidden
	}
	if _, err := s.flightRepo.GetByID(ctx, flightID); err != nil {
		if errors.Is(err, flights.ErrFlightNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load flight: %w", err)
	}

	list, err := s.repo.Manifest(ctx, flightID)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}
	return list, nil
}
