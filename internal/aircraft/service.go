package aircraft

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"skybook/internal/shared/constants"
	"skybook/internal/users"
	"skybook/pkg/cache"
	"skybook/pkg/logger"

	"github.com/google/uuid"
)

var (
	ErrAircraftNotFound = errors.New("aircraft not found")
	ErrSeatNotFound     = errors.New("seat not found")
	ErrInvalidCabin     = errors.New("invalid cabin class")
)

type Service interface {
	// Create persists the aircraft and then ensures its seat map, in one
	// transaction. It returns the number of seats generated.
	Create(ctx context.Context, actor users.Actor, req CreateAircraftRequest) (*Aircraft, int, error)
	Get(ctx context.Context, id uuid.UUID) (*Aircraft, error)
	List(ctx context.Context, limit, offset int) ([]Aircraft, int64, error)
	Reconfigure(ctx context.Context, actor users.Actor, id uuid.UUID, req UpdateAircraftRequest) (*Aircraft, int, error)
	Delete(ctx context.Context, actor users.Actor, id uuid.UUID) error

	EnsureSeatMap(ctx context.Context, actor users.Actor, id uuid.UUID) (int, error)
	ListSeats(ctx context.Context, id uuid.UUID) ([]Seat, error)
	UpdateSeatClass(ctx context.Context, actor users.Actor, aircraftID, seatID uuid.UUID, class CabinClass) (*Seat, error)
}

type service struct {
	repo  Repository
	cache cache.Service
}

// NewService wires the aircraft service. cacheService may be nil.
func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{repo: repo, cache: cacheService}
}

func (s *service) Create(ctx context.Context, actor users.Actor, req CreateAircraftRequest) (*Aircraft, int, error) {
	if !actor.Role.CanManageFleet() {
		return nil, 0, users.ErrForbidden
	}

	aircraft := &Aircraft{
		Model:   strings.TrimSpace(req.Model),
		Rows:    req.Rows,
		Columns: req.Columns,
	}

	created := 0
	err := s.repo.Transaction(ctx, func(repo Repository) error {
		if err := repo.Create(ctx, aircraft); err != nil {
			return err
		}
		n, err := repo.EnsureSeatMap(ctx, aircraft.ID)
		if err != nil {
			return err
		}
		created = n
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInvalidDimensions) {
			return nil, 0, err
		}
		return nil, 0, fmt.Errorf("failed to create aircraft: %w", err)
	}

	logger.GetDefault().LogAircraftCreated(ctx, aircraft.ID.String(), created)
	return aircraft, created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Aircraft, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, limit, offset int) ([]Aircraft, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}

// Reconfigure changes model or dimensions. Capacity follows the new
// dimensions; existing seats are left untouched.
func (s *service) Reconfigure(ctx context.Context, actor users.Actor, id uuid.UUID, req UpdateAircraftRequest) (*Aircraft, int, error) {
	if !actor.Role.CanManageFleet() {
		return nil, 0, users.ErrForbidden
	}

	var (
		aircraft *Aircraft
		created  int
	)
	err := s.repo.Transaction(ctx, func(repo Repository) error {
		var err error
		aircraft, err = repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if req.Model != nil {
			aircraft.Model = strings.TrimSpace(*req.Model)
		}
		if req.Rows != nil {
			aircraft.Rows = *req.Rows
		}
		if req.Columns != nil {
			aircraft.Columns = *req.Columns
		}
		if err := repo.Save(ctx, aircraft); err != nil {
			return err
		}
		created, err = repo.EnsureSeatMap(ctx, aircraft.ID)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrAircraftNotFound) || errors.Is(err, ErrInvalidDimensions) {
			return nil, 0, err
		}
		return nil, 0, fmt.Errorf("failed to reconfigure aircraft: %w", err)
	}

	s.invalidateSeats(ctx, id)
	return aircraft, created, nil
}

func (s *service) Delete(ctx context.Context, actor users.Actor, id uuid.UUID) error {
	if !actor.Role.CanManageFleet() {
		return users.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateSeats(ctx, id)
	return nil
}

func (s *service) EnsureSeatMap(ctx context.Context, actor users.Actor, id uuid.UUID) (int, error) {
	if !actor.Role.CanManageFleet() {
		return 0, users.ErrForbidden
	}
	created, err := s.repo.EnsureSeatMap(ctx, id)
	if err != nil {
		return 0, err
	}
	if created > 0 {
		s.invalidateSeats(ctx, id)
	}
	return created, nil
}

func (s *service) ListSeats(ctx context.Context, id uuid.UUID) ([]Seat, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.ListSeats(ctx, id)
}

func (s *service) UpdateSeatClass(ctx context.Context, actor users.Actor, aircraftID, seatID uuid.UUID, class CabinClass) (*Seat, error) {
	if !actor.Role.CanManageFleet() {
		return nil, users.ErrForbidden
	}
	if !class.IsValid() {
		return nil, ErrInvalidCabin
	}

	seat, err := s.repo.GetSeat(ctx, aircraftID, seatID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateSeatClass(ctx, seat.ID, class); err != nil {
		return nil, fmt.Errorf("failed to update seat class: %w", err)
	}
	seat.CabinClass = class

	s.invalidateSeats(ctx, aircraftID)
	return seat, nil
}

func (s *service) invalidateSeats(ctx context.Context, aircraftID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, constants.BuildAircraftSeatsKey(aircraftID.String())); err != nil {
		logger.GetDefault().Warn("failed to invalidate seat cache", "aircraft_id", aircraftID, "error", err)
	}
}
