package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skybook/internal/aircraft"
	"skybook/internal/flights"
	"skybook/internal/passengers"
	"skybook/internal/reservations"
	"skybook/internal/tickets"
	"skybook/internal/users"
	"skybook/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Seeder loads fixtures through the domain services so seat maps and
// schedule checks run exactly as they do for API calls.
type Seeder struct {
	db         *gorm.DB
	users      users.Repository
	aircraft   aircraft.Service
	flights    flights.Service
	passengers passengers.Service
	now        func() time.Time
}

// Summary counts what a run created.
type Summary struct {
	Users      int
	Aircraft   int
	Seats      int
	Flights    int
	Passengers int
}

func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{
		db:         db,
		users:      users.NewRepository(db),
		aircraft:   aircraft.NewService(aircraft.NewRepository(db), nil),
		flights:    flights.NewService(flights.NewRepository(db), nil),
		passengers: passengers.NewService(passengers.NewRepository(db)),
		now:        time.Now,
	}
}

// Clean removes every row, children first.
func (s *Seeder) Clean(ctx context.Context) error {
	models := []interface{}{
		&tickets.Ticket{},
		&reservations.Reservation{},
		&passengers.Passenger{},
		&flights.Flight{},
		&aircraft.Seat{},
		&aircraft.Aircraft{},
		&users.User{},
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range models {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("failed to clean %T: %w", model, err)
			}
		}
		return nil
	})
}

// Seed creates the fixture's users, fleet, flights and passengers.
func (s *Seeder) Seed(ctx context.Context, f *Fixture) (*Summary, error) {
	log := logger.GetDefault()
	summary := &Summary{}

	byEmail := make(map[string]*users.User, len(f.Users))
	var admin users.Actor
	for _, uf := range f.Users {
		user, created, err := s.ensureUser(ctx, uf)
		if err != nil {
			return nil, fmt.Errorf("user %s: %w", uf.Email, err)
		}
		if created {
			summary.Users++
		}
		byEmail[uf.Email] = user
		if user.Role == users.RoleAdmin && admin.UserID == uuid.Nil {
			admin = users.Actor{UserID: user.ID, Role: user.Role}
		}
	}
	if admin.UserID == uuid.Nil {
		return nil, errors.New("no admin account to seed the fleet with")
	}

	fleet := make(map[string]uuid.UUID, len(f.Aircraft))
	for _, af := range f.Aircraft {
		created, seats, err := s.aircraft.Create(ctx, admin, aircraft.CreateAircraftRequest{
			Model:   af.Model,
			Rows:    af.Rows,
			Columns: af.Columns,
		})
		if err != nil {
			return nil, fmt.Errorf("aircraft %s: %w", af.Key, err)
		}
		fleet[af.Key] = created.ID
		summary.Aircraft++
		summary.Seats += seats
		log.Info("seeded aircraft", "key", af.Key, "model", af.Model, "seats", seats)
	}

	now := s.now().UTC().Truncate(time.Minute)
	for _, ff := range f.Flights {
		departure := now.Add(ff.DepartsIn)
		minutes := int(ff.Duration / time.Minute)
		flight, err := s.flights.Create(ctx, admin, flights.CreateFlightRequest{
			FlightNumber:    ff.FlightNumber,
			Origin:          ff.Origin,
			Destination:     ff.Destination,
			DepartureTime:   departure,
			ArrivalTime:     departure.Add(ff.Duration),
			DurationMinutes: &minutes,
			BasePrice:       ff.BasePrice,
			AircraftID:      fleet[ff.Aircraft].String(),
		})
		if err != nil {
			return nil, fmt.Errorf("flight %s: %w", ff.FlightNumber, err)
		}
		summary.Flights++
		log.Info("seeded flight", "flight_number", flight.FlightNumber, "departure", flight.DepartureTime)
	}

	for _, pf := range f.Passengers {
		owner := byEmail[pf.Owner]
		_, err := s.passengers.Create(ctx, users.Actor{UserID: owner.ID, Role: owner.Role}, passengers.CreatePassengerRequest{
			FirstName:      pf.FirstName,
			LastName:       pf.LastName,
			DocumentType:   pf.DocumentType,
			DocumentNumber: pf.DocumentNumber,
			DateOfBirth:    pf.DateOfBirth,
			Email:          pf.Email,
		})
		if errors.Is(err, passengers.ErrDuplicateDocument) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("passenger %s: %w", pf.DocumentNumber, err)
		}
		summary.Passengers++
	}

	return summary, nil
}

// ensureUser returns the existing account for the email or creates it.
func (s *Seeder) ensureUser(ctx context.Context, uf UserFixture) (*users.User, bool, error) {
	existing, err := s.users.GetByEmail(ctx, uf.Email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, users.ErrUserNotFound) {
		return nil, false, err
	}

	role, err := users.ParseRole(uf.Role)
	if err != nil {
		return nil, false, err
	}
	user := &users.User{
		FirstName: uf.FirstName,
		LastName:  uf.LastName,
		Email:     uf.Email,
		Role:      role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}

// Token signs an access token for the account with the given email.
func (s *Seeder) Token(ctx context.Context, secret, email string, ttl time.Duration) (string, *users.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	token, err := users.IssueAccessToken(secret, user, ttl)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, user, nil
}
