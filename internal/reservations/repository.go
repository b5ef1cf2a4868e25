package reservations

import (
	"context"
	"errors"
	"time"

	"skybook/internal/aircraft"
	"skybook/internal/flights"
	"skybook/internal/passengers"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ListFilter struct {
	UserID *uuid.UUID
	Status Status
	Limit  int
	Offset int
}

type Repository interface {
	// Transaction runs fn against a repository bound to one transaction.
	Transaction(ctx context.Context, fn func(repo Repository) error) error
	// Conn is the connection the repository runs on, handed to collaborators
	// that must join the same transaction.
	Conn() *gorm.DB

	LockFlight(ctx context.Context, flightID uuid.UUID) (*flights.Flight, error)
	SeatsOnAircraft(ctx context.Context, aircraftID uuid.UUID, seatIDs []uuid.UUID) (map[uuid.UUID]aircraft.Seat, error)
	PassengersByID(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]passengers.Passenger, error)
	CodesInUse(ctx context.Context, codes []string) (int64, error)
	Create(ctx context.Context, reservation *Reservation) error

	LockByID(ctx context.Context, id uuid.UUID) (*Reservation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status, cancelledAt *time.Time) error

	GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error)
	List(ctx context.Context, filter ListFilter) ([]Reservation, int64, error)
	History(ctx context.Context, userID uuid.UUID, before time.Time) ([]Reservation, error)
	Manifest(ctx context.Context, flightID uuid.UUID) ([]Reservation, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Transaction(ctx context.Context, fn func(repo Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&repository{db: tx})
	})
}

func (r *repository) Conn() *gorm.DB {
	return r.db
}

// LockFlight takes a row lock on the flight, serialising allocations for it.
// SQLite ignores the clause; its single writer gives the same guarantee.
func (r *repository) LockFlight(ctx context.Context, flightID uuid.UUID) (*flights.Flight, error) {
	var flight flights.Flight
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&flight, "id = ?", flightID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, flights.ErrFlightNotFound
	}
	if err != nil {
		return nil, err
	}
	return &flight, nil
}

func (r *repository) SeatsOnAircraft(ctx context.Context, aircraftID uuid.UUID, seatIDs []uuid.UUID) (map[uuid.UUID]aircraft.Seat, error) {
	var list []aircraft.Seat
	err := r.db.WithContext(ctx).
		Where("aircraft_id = ? AND id IN ?", aircraftID, seatIDs).
		Find(&list).Error
	if err != nil {
		return nil, err
	}

	out := make(map[uuid.UUID]aircraft.Seat, len(list))
	for _, seat := range list {
		out[seat.ID] = seat
	}
	return out, nil
}

func (r *repository) PassengersByID(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]passengers.Passenger, error) {
	var list []passengers.Passenger
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, err
	}

	out := make(map[uuid.UUID]passengers.Passenger, len(list))
	for _, p := range list {
		out[p.ID] = p
	}
	return out, nil
}

func (r *repository) CodesInUse(ctx context.Context, codes []string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Reservation{}).Where("code IN ?", codes).Count(&count).Error
	return count, err
}

func (r *repository) Create(ctx context.Context, reservation *Reservation) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(reservation).Error
}

func (r *repository) LockByID(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	var reservation Reservation
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&reservation, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status, cancelledAt *time.Time) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}
	if cancelledAt != nil {
		updates["cancelled_at"] = *cancelledAt
	}

	result := r.db.WithContext(ctx).Model(&Reservation{}).Where("id = ?", id).UpdateColumns(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReservationNotFound
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	var reservation Reservation
	err := r.db.WithContext(ctx).
		Preload("Flight").
		Preload("Passenger").
		Preload("Seat").
		First(&reservation, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Reservation, int64, error) {
	var (
		list  []Reservation
		total int64
	)

	query := r.db.WithContext(ctx).Model(&Reservation{})
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Flight").
		Preload("Passenger").
		Preload("Seat").
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&list).Error
	return list, total, err
}

// History lists the user's confirmed reservations on flights that departed
// before the given time, most recent first.
func (r *repository) History(ctx context.Context, userID uuid.UUID, before time.Time) ([]Reservation, error) {
	var list []Reservation
	err := r.db.WithContext(ctx).
		Joins("JOIN flights ON flights.id = reservations.flight_id").
		Where("reservations.user_id = ? AND reservations.status = ? AND flights.departure_time < ?",
			userID, StatusConfirmed, before).
		Preload("Flight").
		Preload("Passenger").
		Preload("Seat").
		Order("flights.departure_time DESC").
		Find(&list).Error
	return list, err
}

// Manifest lists confirmed reservations on the flight in seat order.
func (r *repository) Manifest(ctx context.Context, flightID uuid.UUID) ([]Reservation, error) {
	var list []Reservation
	err := r.db.WithContext(ctx).
		Joins("JOIN seats ON seats.id = reservations.seat_id").
		Where("reservations.flight_id = ? AND reservations.status = ?", flightID, StatusConfirmed).
		Preload("Passenger").
		Preload("Seat").
		Order("seats.seat_row ASC, seats.seat_column ASC").
		Find(&list).Error
	return list, err
}
