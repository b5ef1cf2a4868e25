package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds the indexes gorm tags cannot express. The partial
// unique index is the commit-time guard against double booking a seat: a
// second active reservation for the same (flight, seat) fails on insert.
// Both PostgreSQL and SQLite accept the statements as written.
func MigrateConstraints(db *gorm.DB) error {
	statements := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_reservations_active_flight_seat
			ON reservations (flight_id, seat_id)
			WHERE status IN ('PENDING', 'CONFIRMED')`,
		`CREATE INDEX IF NOT EXISTS idx_reservations_flight_status
			ON reservations (flight_id, status)`,
		`CREATE INDEX IF NOT EXISTS idx_flights_departure_status
			ON flights (departure_time, status)`,
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
