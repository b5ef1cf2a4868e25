package seats

import (
	"context"
	"fmt"

	"skybook/internal/aircraft"
	"skybook/internal/flights"
	"skybook/internal/shared/constants"
	"skybook/pkg/cache"

	"github.com/google/uuid"
)

type Service interface {
	// AircraftGrid lays out the aircraft's seats with their cached status.
	AircraftGrid(ctx context.Context, aircraftID uuid.UUID) (*AircraftGridResponse, error)

	// FlightGrid lays out the flight's seats, marking those held by an active
	// reservation.
	FlightGrid(ctx context.Context, flightID uuid.UUID) (*FlightGridResponse, error)
}

type service struct {
	repo         Repository
	aircraftRepo aircraft.Repository
	flightRepo   flights.Repository
	cache        cache.Service
}

// NewService wires the seat grid service. cacheService may be nil.
func NewService(repo Repository, aircraftRepo aircraft.Repository, flightRepo flights.Repository, cacheService cache.Service) Service {
	return &service{
		repo:         repo,
		aircraftRepo: aircraftRepo,
		flightRepo:   flightRepo,
		cache:        cacheService,
	}
}

func (s *service) AircraftGrid(ctx context.Context, aircraftID uuid.UUID) (*AircraftGridResponse, error) {
	plane, err := s.aircraftRepo.GetByID(ctx, aircraftID)
	if err != nil {
		return nil, err
	}
	seats, err := s.aircraftRepo.ListSeats(ctx, aircraftID)
	if err != nil {
		return nil, fmt.Errorf("failed to list seats: %w", err)
	}

	return &AircraftGridResponse{
		AircraftID: plane.ID,
		Model:      plane.Model,
		Capacity:   plane.Capacity,
		Grid:       BuildGrid(plane.Rows, plane.Columns, seats, nil),
	}, nil
}

func (s *service) FlightGrid(ctx context.Context, flightID uuid.UUID) (*FlightGridResponse, error) {
	flight, err := s.flightRepo.GetByID(ctx, flightID)
	if err != nil {
		return nil, err
	}
	plane := flight.Aircraft
	if plane == nil {
		if plane, err = s.aircraftRepo.GetByID(ctx, flight.AircraftID); err != nil {
			return nil, err
		}
	}

	seats, err := s.layout(ctx, plane.ID)
	if err != nil {
		return nil, err
	}
	reserved, err := s.repo.ActiveReservedSeatIDs(ctx, nil, flightID)
	if err != nil {
		return nil, fmt.Errorf("failed to load active reservations: %w", err)
	}

	return &FlightGridResponse{
		FlightID:     flight.ID,
		FlightNumber: flight.FlightNumber,
		AircraftID:   plane.ID,
		Bookable:     flight.IsBookable(),
		Grid:         BuildGrid(plane.Rows, plane.Columns, seats, reserved),
	}, nil
}

// layout returns the aircraft's seats, through the cache when one is set.
// Only placement and cabin class are read from it; availability comes from
// the active reservation set.
func (s *service) layout(ctx context.Context, aircraftID uuid.UUID) ([]aircraft.Seat, error) {
	fetch := func() (interface{}, error) {
		seats, err := s.aircraftRepo.ListSeats(ctx, aircraftID)
		if err != nil {
			return nil, fmt.Errorf("failed to list seats: %w", err)
		}
		return seats, nil
	}

	if s.cache == nil {
		seats, err := fetch()
		if err != nil {
			return nil, err
		}
		return seats.([]aircraft.Seat), nil
	}

	var seats []aircraft.Seat
	key := constants.BuildAircraftSeatsKey(aircraftID.String())
	if err := s.cache.GetOrSet(ctx, key, constants.TTL_AIRCRAFT_SEATS, fetch, &seats); err != nil {
		return nil, err
	}
	return seats, nil
}
