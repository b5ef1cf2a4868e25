package tickets

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(repo Repository) error) error
	Conn() *gorm.DB

	Create(ctx context.Context, ticket *Ticket) error
	ExistsForReservation(ctx context.Context, reservationID uuid.UUID) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Ticket, error)
	GetByReservation(ctx context.Context, reservationID uuid.UUID) (*Ticket, error)
	LockByID(ctx context.Context, id uuid.UUID) (*Ticket, error)
	TransitionByReservation(ctx context.Context, reservationID uuid.UUID, from, to Status) (int64, error)
	MarkUsed(ctx context.Context, id uuid.UUID, at time.Time) error
	CountByStatus(ctx context.Context, reservationID uuid.UUID, status Status) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Transaction(ctx context.Context, fn func(repo Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

func (r *repository) Conn() *gorm.DB {
	return r.db
}

func (r *repository) Create(ctx context.Context, ticket *Ticket) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(ticket).Error
}

func (r *repository) ExistsForReservation(ctx context.Context, reservationID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Ticket{}).Where("reservation_id = ?", reservationID).Count(&count).Error
	return count > 0, err
}

func (r *repository) withDetails(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Reservation").
		Preload("Reservation.Flight").
		Preload("Reservation.Passenger").
		Preload("Reservation.Seat")
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Ticket, error) {
	var ticket Ticket
	err := r.withDetails(ctx).First(&ticket, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTicketNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *repository) GetByReservation(ctx context.Context, reservationID uuid.UUID) (*Ticket, error) {
	var ticket Ticket
	err := r.withDetails(ctx).First(&ticket, "reservation_id = ?", reservationID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTicketNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *repository) LockByID(ctx context.Context, id uuid.UUID) (*Ticket, error) {
	var ticket Ticket
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Reservation").
		First(&ticket, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTicketNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// TransitionByReservation moves the reservation's ticket from one status to
// another and reports how many rows changed.
func (r *repository) TransitionByReservation(ctx context.Context, reservationID uuid.UUID, from, to Status) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&Ticket{}).
		Where("reservation_id = ? AND status = ?", reservationID, from).
		UpdateColumns(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now().UTC(),
		})
	return result.RowsAffected, result.Error
}

func (r *repository) MarkUsed(ctx context.Context, id uuid.UUID, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&Ticket{}).
		Where("id = ? AND status = ?", id, StatusIssued).
		UpdateColumns(map[string]interface{}{
			"status":     StatusUsed,
			"used_at":    at,
			"updated_at": at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTicketNotIssued
	}
	return nil
}

func (r *repository) CountByStatus(ctx context.Context, reservationID uuid.UUID, status Status) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Ticket{}).
		Where("reservation_id = ? AND status = ?", reservationID, status).
		Count(&count).Error
	return count, err
}
