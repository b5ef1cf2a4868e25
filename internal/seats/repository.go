package seats

import (
	"context"

	"skybook/internal/aircraft"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActiveReservationStatuses are the reservation states that hold a seat.
var ActiveReservationStatuses = []string{"PENDING", "CONFIRMED"}

const ticketStatusUsed = "USED"

// Repository answers availability questions straight from the reservations
// and tickets tables. Every method takes the connection to run on so callers
// can stay inside their own transaction; nil means the repository's pool.
type Repository interface {
	// ActiveReservedSeatIDs is the authoritative availability signal for a
	// flight.
	ActiveReservedSeatIDs(ctx context.Context, tx *gorm.DB, flightID uuid.UUID) (map[uuid.UUID]struct{}, error)

	// RefreshSeatStatus recomputes the cached Seat.status projection.
	RefreshSeatStatus(ctx context.Context, tx *gorm.DB, seatID uuid.UUID) (aircraft.SeatStatus, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx.WithContext(ctx)
	}
	return r.db.WithContext(ctx)
}

func (r *repository) ActiveReservedSeatIDs(ctx context.Context, tx *gorm.DB, flightID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	var ids []uuid.UUID
	err := r.conn(ctx, tx).
		Table("reservations").
		Where("flight_id = ? AND status IN ?", flightID, ActiveReservationStatuses).
		Pluck("seat_id", &ids).Error
	if err != nil {
		return nil, err
	}

	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// RefreshSeatStatus sets OCCUPIED when an active reservation's ticket has been
// used, RESERVED when any active reservation exists, AVAILABLE otherwise.
func (r *repository) RefreshSeatStatus(ctx context.Context, tx *gorm.DB, seatID uuid.UUID) (aircraft.SeatStatus, error) {
	db := r.conn(ctx, tx)

	var active int64
	err := db.Table("reservations").
		Where("seat_id = ? AND status IN ?", seatID, ActiveReservationStatuses).
		Count(&active).Error
	if err != nil {
		return "", err
	}

	status := aircraft.SeatAvailable
	if active > 0 {
		status = aircraft.SeatReserved

		var boarded int64
		err := db.Table("reservations").
			Joins("JOIN tickets ON tickets.reservation_id = reservations.id").
			Where("reservations.seat_id = ? AND reservations.status IN ? AND tickets.status = ?",
				seatID, ActiveReservationStatuses, ticketStatusUsed).
			Count(&boarded).Error
		if err != nil {
			return "", err
		}
		if boarded > 0 {
			status = aircraft.SeatOccupied
		}
	}

	err = db.Model(&aircraft.Seat{}).Where("id = ?", seatID).Update("status", status).Error
	return status, err
}
