package database

import (
	"skybook/internal/aircraft"
	"skybook/internal/flights"
	"skybook/internal/passengers"
	"skybook/internal/reservations"
	"skybook/internal/tickets"
	"skybook/internal/users"

	"gorm.io/gorm"
)

// Migrate creates tables parents first so foreign keys resolve.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&aircraft.Aircraft{},
		&aircraft.Seat{},
		&flights.Flight{},
		&passengers.Passenger{},
		&reservations.Reservation{},
		&tickets.Ticket{},
	)
}
