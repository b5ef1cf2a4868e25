package reservations

import (
	"context"
	"errors"
	"fmt"

	"skybook/internal/seats"
	"skybook/internal/shared/utils/codegen"
	"skybook/internal/shared/utils/dbutil"
	"skybook/pkg/logger"
	"skybook/pkg/metrics"

	"github.com/google/uuid"
)

const codeLength = 10

// SeatPassenger is one selection of an allocation batch.
type SeatPassenger struct {
	SeatID      uuid.UUID
	PassengerID uuid.UUID
}

type AllocationRequest struct {
	FlightID uuid.UUID
	UserID   uuid.UUID
	Pairs    []SeatPassenger
	// Intent, when set, is the passenger count the user declared earlier.
	Intent *Intent
}

type Allocator struct {
	repo     Repository
	seats    seats.Repository
	metrics  *metrics.Recorder
	generate func(n int) (string, error)
}

func NewAllocator(repo Repository, seatRepo seats.Repository, recorder *metrics.Recorder) *Allocator {
	return &Allocator{
		repo:     repo,
		seats:    seatRepo,
		metrics:  recorder,
		generate: codegen.Generate,
	}
}

// Allocate books every pair of the batch or none of them. Pairs are checked
// in the order given and the first taken seat aborts the batch with a
// *SeatUnavailableError.
//
// Double booking is prevented at three points: the flight row lock, the
// active-set check under that lock, and the partial unique index on
// (flight_id, seat_id) at insert time.
func (a *Allocator) Allocate(ctx context.Context, req AllocationRequest) ([]Reservation, error) {
	if err := validateBatch(req); err != nil {
		return nil, err
	}

	var created []Reservation
	err := a.repo.Transaction(ctx, func(repo Repository) error {
		passengerIDs := make([]uuid.UUID, 0, len(req.Pairs))
		seatIDs := make([]uuid.UUID, 0, len(req.Pairs))
		for _, pair := range req.Pairs {
			passengerIDs = append(passengerIDs, pair.PassengerID)
			seatIDs = append(seatIDs, pair.SeatID)
		}

		owned, err := repo.PassengersByID(ctx, passengerIDs)
		if err != nil {
			return fmt.Errorf("failed to load passengers: %w", err)
		}
		for _, pair := range req.Pairs {
			p, ok := owned[pair.PassengerID]
			if !ok || p.OwnerID != req.UserID {
				return &PassengerNotOwnedError{PassengerID: pair.PassengerID}
			}
		}

		flight, err := repo.LockFlight(ctx, req.FlightID)
		if err != nil {
			return err
		}
		if !flight.IsBookable() {
			return ErrFlightNotBookable
		}

		taken, err := a.seats.ActiveReservedSeatIDs(ctx, repo.Conn(), flight.ID)
		if err != nil {
			return fmt.Errorf("failed to load active reservations: %w", err)
		}
		onboard, err := repo.SeatsOnAircraft(ctx, flight.AircraftID, seatIDs)
		if err != nil {
			return fmt.Errorf("failed to load seats: %w", err)
		}

		for _, pair := range req.Pairs {
			seat, ok := onboard[pair.SeatID]
			if !ok {
				return fmt.Errorf("%w: %s", ErrSeatNotFound, pair.SeatID)
			}
			if _, held := taken[pair.SeatID]; held {
				return &SeatUnavailableError{SeatID: seat.ID, SeatNumber: seat.Number}
			}
		}

		codes, err := a.freshCodes(ctx, repo, len(req.Pairs))
		if err != nil {
			return err
		}

		batch := make([]Reservation, 0, len(req.Pairs))
		for i, pair := range req.Pairs {
			reservation := Reservation{
				Code:        codes[i],
				FlightID:    flight.ID,
				PassengerID: pair.PassengerID,
				SeatID:      pair.SeatID,
				UserID:      req.UserID,
				Status:      StatusPending,
				TotalPrice:  flight.BasePrice,
			}
			if err := repo.Create(ctx, &reservation); err != nil {
				if dbutil.IsUniqueViolation(err) {
					seat := onboard[pair.SeatID]
					return &SeatUnavailableError{SeatID: seat.ID, SeatNumber: seat.Number}
				}
				return fmt.Errorf("failed to create reservation: %w", err)
			}
			batch = append(batch, reservation)
		}

		for _, pair := range req.Pairs {
			if _, err := a.seats.RefreshSeatStatus(ctx, repo.Conn(), pair.SeatID); err != nil {
				return fmt.Errorf("failed to refresh seat status: %w", err)
			}
		}

		created = batch
		return nil
	})
	if err != nil {
		var unavailable *SeatUnavailableError
		if errors.As(err, &unavailable) {
			a.metrics.SeatCollision()
			logger.GetDefault().LogSeatCollision(ctx, req.FlightID.String(), unavailable.SeatNumber)
		}
		return nil, err
	}

	codes := make([]string, 0, len(created))
	for _, r := range created {
		codes = append(codes, r.Code)
	}
	a.metrics.ReservationsAllocated(len(created))
	logger.GetDefault().LogReservationsAllocated(ctx, req.FlightID.String(), req.UserID.String(), codes)
	return created, nil
}

// validateBatch runs the checks that need no store access.
func validateBatch(req AllocationRequest) error {
	if len(req.Pairs) == 0 {
		return ErrEmptyBatch
	}

	if req.Intent != nil {
		if req.Intent.FlightID != req.FlightID || req.Intent.UserID != req.UserID {
			return ErrIntentNotFound
		}
		if req.Intent.PassengerCount != len(req.Pairs) {
			return &PassengerSeatCountMismatchError{
				Expected: req.Intent.PassengerCount,
				Actual:   len(req.Pairs),
			}
		}
	}

	seenSeats := make(map[uuid.UUID]struct{}, len(req.Pairs))
	seenPassengers := make(map[uuid.UUID]struct{}, len(req.Pairs))
	for _, pair := range req.Pairs {
		if _, dup := seenSeats[pair.SeatID]; dup {
			return &SeatUnavailableError{SeatID: pair.SeatID}
		}
		seenSeats[pair.SeatID] = struct{}{}

		if _, dup := seenPassengers[pair.PassengerID]; dup {
			return ErrDuplicatePassenger
		}
		seenPassengers[pair.PassengerID] = struct{}{}
	}
	return nil
}

// freshCodes draws n distinct codes not yet used by any reservation, so a
// unique violation on insert can only come from the seat index.
func (a *Allocator) freshCodes(ctx context.Context, repo Repository, n int) ([]string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		codes := make([]string, 0, n)
		seen := make(map[string]struct{}, n)
		for len(codes) < n {
			code, err := a.generate(codeLength)
			if err != nil {
				return nil, fmt.Errorf("failed to generate reservation code: %w", err)
			}
			if _, dup := seen[code]; dup {
				continue
			}
			seen[code] = struct{}{}
			codes = append(codes, code)
		}

		inUse, err := repo.CodesInUse(ctx, codes)
		if err != nil {
			return nil, fmt.Errorf("failed to check reservation codes: %w", err)
		}
		if inUse == 0 {
			return codes, nil
		}
	}
	return nil, errors.New("could not generate unique reservation codes")
}
