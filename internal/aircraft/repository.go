package aircraft

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	// Transaction runs fn against a repository bound to one transaction.
	Transaction(ctx context.Context, fn func(repo Repository) error) error

	Create(ctx context.Context, aircraft *Aircraft) error
	GetByID(ctx context.Context, id uuid.UUID) (*Aircraft, error)
	List(ctx context.Context, limit, offset int) ([]Aircraft, int64, error)
	Save(ctx context.Context, aircraft *Aircraft) error
	Delete(ctx context.Context, id uuid.UUID) error

	// EnsureSeatMap generates the aircraft's seats unless it already has any.
	EnsureSeatMap(ctx context.Context, aircraftID uuid.UUID) (int, error)
	CountSeats(ctx context.Context, aircraftID uuid.UUID) (int64, error)
	ListSeats(ctx context.Context, aircraftID uuid.UUID) ([]Seat, error)
	GetSeat(ctx context.Context, aircraftID, seatID uuid.UUID) (*Seat, error)
	UpdateSeatClass(ctx context.Context, seatID uuid.UUID, class CabinClass) error
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

func (r *repository) Create(ctx context.Context, aircraft *Aircraft) error {
	return r.db.WithContext(ctx).Create(aircraft).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Aircraft, error) {
	var aircraft Aircraft
	err := r.db.WithContext(ctx).First(&aircraft, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAircraftNotFound
	}
	if err != nil {
		return nil, err
	}
	return &aircraft, nil
}

func (r *repository) List(ctx context.Context, limit, offset int) ([]Aircraft, int64, error) {
	var (
		list  []Aircraft
		total int64
	)

	query := r.db.WithContext(ctx).Model(&Aircraft{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("model ASC, created_at ASC").Limit(limit).Offset(offset).Find(&list).Error
	return list, total, err
}

func (r *repository) Save(ctx context.Context, aircraft *Aircraft) error {
	return r.db.WithContext(ctx).Save(aircraft).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Aircraft{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAircraftNotFound
	}
	return nil
}

// EnsureSeatMap locks the aircraft row so two concurrent callers cannot both
// observe zero seats and generate the map twice.
func (r *repository) EnsureSeatMap(ctx context.Context, aircraftID uuid.UUID) (int, error) {
	created := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var aircraft Aircraft
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&aircraft, "id = ?", aircraftID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAircraftNotFound
		}
		if err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&Seat{}).Where("aircraft_id = ?", aircraftID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return nil
		}

		seats := GenerateSeatMap(aircraft.ID, aircraft.Rows, aircraft.Columns)
		if len(seats) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(&seats, 200).Error; err != nil {
			return err
		}
		created = len(seats)
		return nil
	})
	return created, err
}

func (r *repository) CountSeats(ctx context.Context, aircraftID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Seat{}).Where("aircraft_id = ?", aircraftID).Count(&count).Error
	return count, err
}

func (r *repository) ListSeats(ctx context.Context, aircraftID uuid.UUID) ([]Seat, error) {
	var seats []Seat
	err := r.db.WithContext(ctx).
		Where("aircraft_id = ?", aircraftID).
		Order("seat_row ASC, seat_column ASC").
		Find(&seats).Error
	return seats, err
}

func (r *repository) GetSeat(ctx context.Context, aircraftID, seatID uuid.UUID) (*Seat, error) {
	var seat Seat
	err := r.db.WithContext(ctx).First(&seat, "id = ? AND aircraft_id = ?", seatID, aircraftID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSeatNotFound
	}
	if err != nil {
		return nil, err
	}
	return &seat, nil
}

func (r *repository) UpdateSeatClass(ctx context.Context, seatID uuid.UUID, class CabinClass) error {
	return r.db.WithContext(ctx).Model(&Seat{}).Where("id = ?", seatID).Update("cabin_class", class).Error
}
