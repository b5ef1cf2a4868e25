// Package testutil builds throwaway stores for package tests: an in-memory
// SQLite database carrying the real migrations, a miniredis instance, and
// fixtures for the common rows.
package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"skybook/internal/aircraft"
	"skybook/internal/flights"
	"skybook/internal/passengers"
	"skybook/internal/shared/database"
	"skybook/internal/users"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var seq atomic.Int64

func next() int64 {
	return seq.Add(1)
}

// NewDB opens a fresh in-memory database with every table and constraint.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.OpenSQLite(":memory:", database.GormConfig(false))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.MigrateConstraints(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// NewRedis starts a miniredis server and returns a client bound to it.
func NewRedis(t testing.TB) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func CreateUser(t testing.TB, db *gorm.DB, role users.Role) *users.User {
	t.Helper()

	n := next()
	user := &users.User{
		FirstName: "Test",
		LastName:  fmt.Sprintf("User%d", n),
		Email:     fmt.Sprintf("user%d@skybook.test", n),
		Role:      role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func ActorOf(user *users.User) users.Actor {
	return users.Actor{UserID: user.ID, Role: user.Role}
}

// CreateAircraft creates an aircraft with its full seat map and returns the
// seats in row-major order.
func CreateAircraft(t testing.TB, db *gorm.DB, rows, cols int) (*aircraft.Aircraft, []aircraft.Seat) {
	t.Helper()

	repo := aircraft.NewRepository(db)
	ac := &aircraft.Aircraft{
		Model:   fmt.Sprintf("A3%02d", next()%100),
		Rows:    rows,
		Columns: cols,
	}
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, ac))
	_, err := repo.EnsureSeatMap(ctx, ac.ID)
	require.NoError(t, err)

	seats, err := repo.ListSeats(ctx, ac.ID)
	require.NoError(t, err)
	return ac, seats
}

// SeatByLabel finds a seat such as "1-1" in a seat list.
func SeatByLabel(t testing.TB, seats []aircraft.Seat, label string) aircraft.Seat {
	t.Helper()

	for _, s := range seats {
		if s.Number == label {
			return s
		}
	}
	t.Fatalf("seat %s not found", label)
	return aircraft.Seat{}
}

// CreateFlight schedules a two hour flight priced at 100.00.
func CreateFlight(t testing.TB, db *gorm.DB, aircraftID uuid.UUID, departure time.Time) *flights.Flight {
	t.Helper()

	departure = departure.UTC()
	flight := &flights.Flight{
		FlightNumber:  fmt.Sprintf("SB%d", 100+next()),
		Origin:        "Lisbon",
		Destination:   "Madrid",
		DepartureTime: departure,
		ArrivalTime:   departure.Add(2 * time.Hour),
		BasePrice:     100,
		AircraftID:    aircraftID,
	}
	require.NoError(t, db.Create(flight).Error)
	return flight
}

func CreatePassenger(t testing.TB, db *gorm.DB, ownerID uuid.UUID) *passengers.Passenger {
	t.Helper()

	n := next()
	passenger := &passengers.Passenger{
		OwnerID:        ownerID,
		FirstName:      "Pax",
		LastName:       fmt.Sprintf("Number%d", n),
		DocumentType:   passengers.DocumentPassport,
		DocumentNumber: fmt.Sprintf("P%08d", n),
		DateOfBirth:    time.Date(1990, time.March, 14, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(passenger).Error)
	return passenger
}

// SeatStatus reloads a seat's cached status.
func SeatStatus(t testing.TB, db *gorm.DB, seatID uuid.UUID) aircraft.SeatStatus {
	t.Helper()

	var seat aircraft.Seat
	require.NoError(t, db.First(&seat, "id = ?", seatID).Error)
	return seat.Status
}
