package flights

import (
	"context"
	"errors"
	"strings"
	"time"

	"skybook/internal/aircraft"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SearchFilter struct {
	Origin      string
	Destination string
	After       time.Time
	Limit       int
	Offset      int
}

type Repository interface {
	Create(ctx context.Context, flight *Flight) error
	GetByID(ctx context.Context, id uuid.UUID) (*Flight, error)
	Save(ctx context.Context, flight *Flight) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	Search(ctx context.Context, filter SearchFilter) ([]Flight, int64, error)
	AircraftExists(ctx context.Context, aircraftID uuid.UUID) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, flight *Flight) error {
	return r.db.WithContext(ctx).Create(flight).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Flight, error) {
	var flight Flight
	err := r.db.WithContext(ctx).Preload("Aircraft").First(&flight, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFlightNotFound
	}
	if err != nil {
		return nil, err
	}
	return &flight, nil
}

func (r *repository) Save(ctx context.Context, flight *Flight) error {
	return r.db.WithContext(ctx).Omit("Aircraft").Save(flight).Error
}

// UpdateStatus skips hooks; the schedule is not being changed.
func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	result := r.db.WithContext(ctx).Model(&Flight{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{"status": status, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFlightNotFound
	}
	return nil
}

func (r *repository) Search(ctx context.Context, filter SearchFilter) ([]Flight, int64, error) {
	var (
		list  []Flight
		total int64
	)

	query := r.db.WithContext(ctx).Model(&Flight{}).
		Where("status = ?", StatusScheduled).
		Where("departure_time > ?", filter.After)
	if filter.Origin != "" {
		query = query.Where("LOWER(origin) LIKE ?", "%"+strings.ToLower(filter.Origin)+"%")
	}
	if filter.Destination != "" {
		query = query.Where("LOWER(destination) LIKE ?", "%"+strings.ToLower(filter.Destination)+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("departure_time ASC").Limit(filter.Limit).Offset(filter.Offset).Find(&list).Error
	return list, total, err
}

func (r *repository) AircraftExists(ctx context.Context, aircraftID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&aircraft.Aircraft{}).Where("id = ?", aircraftID).Count(&count).Error
	return count > 0, err
}
