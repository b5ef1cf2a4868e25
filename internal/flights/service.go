package flights

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"skybook/internal/aircraft"
	"skybook/internal/shared/constants"
	"skybook/internal/users"
	"skybook/pkg/cache"
	"skybook/pkg/logger"

	"github.com/google/uuid"
)

var (
	ErrFlightNotFound          = errors.New("flight not found")
	ErrInvalidStatusTransition = errors.New("invalid flight status transition")
)

type Service interface {
	Create(ctx context.Context, actor users.Actor, req CreateFlightRequest) (*Flight, error)
	Get(ctx context.Context, id uuid.UUID) (*Flight, error)
	UpdateSchedule(ctx context.Context, actor users.Actor, id uuid.UUID, req UpdateFlightRequest) (*Flight, error)
	ChangeStatus(ctx context.Context, actor users.Actor, id uuid.UUID, status Status) (*Flight, error)
	Search(ctx context.Context, req SearchFlightsRequest) (*FlightListResponse, error)
}

type service struct {
	repo  Repository
	cache cache.Service
	now   func() time.Time
}

// NewService wires the flight service. cacheService may be nil.
func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{
		repo:  repo,
		cache: cacheService,
		now:   time.Now,
	}
}

func (s *service) Create(ctx context.Context, actor users.Actor, req CreateFlightRequest) (*Flight, error) {
	if !actor.Role.CanManageFleet() {
		return nil, users.ErrForbidden
	}

	aircraftID, err := uuid.Parse(req.AircraftID)
	if err != nil {
		return nil, fmt.Errorf("invalid aircraft id: %w", err)
	}
	exists, err := s.repo.AircraftExists(ctx, aircraftID)
	if err != nil {
		return nil, fmt.Errorf("failed to check aircraft: %w", err)
	}
	if !exists {
		return nil, aircraft.ErrAircraftNotFound
	}

	flight := &Flight{
		FlightNumber:  strings.ToUpper(strings.TrimSpace(req.FlightNumber)),
		Origin:        strings.TrimSpace(req.Origin),
		Destination:   strings.TrimSpace(req.Destination),
		DepartureTime: req.DepartureTime.UTC(),
		ArrivalTime:   req.ArrivalTime.UTC(),
		BasePrice:     req.BasePrice,
		AircraftID:    aircraftID,
		Status:        StatusScheduled,
	}
	if req.DurationMinutes != nil {
		flight.Duration = time.Duration(*req.DurationMinutes) * time.Minute
	}

	if err := s.repo.Create(ctx, flight); err != nil {
		if errors.Is(err, ErrInvalidSchedule) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create flight: %w", err)
	}

	s.invalidateSearch(ctx)
	return flight, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Flight, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateSchedule replaces the supplied fields. A time change without an
// explicit duration re-derives it.
func (s *service) UpdateSchedule(ctx context.Context, actor users.Actor, id uuid.UUID, req UpdateFlightRequest) (*Flight, error) {
	if !actor.Role.CanManageFleet() {
		return nil, users.ErrForbidden
	}

	flight, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FlightNumber != nil {
		flight.FlightNumber = strings.ToUpper(strings.TrimSpace(*req.FlightNumber))
	}
	if req.Origin != nil {
		flight.Origin = strings.TrimSpace(*req.Origin)
	}
	if req.Destination != nil {
		flight.Destination = strings.TrimSpace(*req.Destination)
	}
	if req.DepartureTime != nil {
		flight.DepartureTime = req.DepartureTime.UTC()
		flight.Duration = 0
	}
	if req.ArrivalTime != nil {
		flight.ArrivalTime = req.ArrivalTime.UTC()
		flight.Duration = 0
	}
	if req.DurationMinutes != nil {
		flight.Duration = time.Duration(*req.DurationMinutes) * time.Minute
	}
	if req.BasePrice != nil {
		flight.BasePrice = *req.BasePrice
	}

	if err := s.repo.Save(ctx, flight); err != nil {
		if errors.Is(err, ErrInvalidSchedule) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update flight: %w", err)
	}

	s.invalidateSearch(ctx)
	return flight, nil
}

func (s *service) ChangeStatus(ctx context.Context, actor users.Actor, id uuid.UUID, status Status) (*Flight, error) {
	if !actor.Role.CanManageFleet() {
		return nil, users.ErrForbidden
	}

	flight, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !flight.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidStatusTransition, flight.Status, status)
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	flight.Status = status

	s.invalidateSearch(ctx)
	return flight, nil
}

func (s *service) Search(ctx context.Context, req SearchFlightsRequest) (*FlightListResponse, error) {
	if req.Limit <= 0 || req.Limit > 100 {
		req.Limit = 20
	}
	if req.Page <= 0 {
		req.Page = 1
	}
	origin := strings.TrimSpace(req.Origin)
	destination := strings.TrimSpace(req.Destination)

	fetch := func() (interface{}, error) {
		list, total, err := s.repo.Search(ctx, SearchFilter{
			Origin:      origin,
			Destination: destination,
			After:       s.now().UTC(),
			Limit:       req.Limit,
			Offset:      (req.Page - 1) * req.Limit,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to search flights: %w", err)
		}
		return &FlightListResponse{
			Flights: ToResponses(list),
			Total:   total,
			Page:    req.Page,
			Limit:   req.Limit,
		}, nil
	}

	if s.cache == nil {
		result, err := fetch()
		if err != nil {
			return nil, err
		}
		return result.(*FlightListResponse), nil
	}

	var result FlightListResponse
	key := constants.BuildFlightSearchKey(strings.ToLower(origin), strings.ToLower(destination), req.Page, req.Limit)
	if err := s.cache.GetOrSet(ctx, key, constants.TTL_FLIGHT_SEARCH, fetch, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *service) invalidateSearch(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, constants.PATTERN_INVALIDATE_FLIGHT_SEARCH); err != nil {
		logger.GetDefault().Warn("failed to invalidate flight search cache", "error", err)
	}
}
