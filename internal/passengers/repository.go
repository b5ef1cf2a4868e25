package passengers

import (
	"context"
	"errors"

	"skybook/internal/shared/utils/dbutil"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, passenger *Passenger) error
	GetByID(ctx context.Context, id uuid.UUID) (*Passenger, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Passenger, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, passenger *Passenger) error {
	err := r.db.WithContext(ctx).Create(passenger).Error
	if dbutil.IsUniqueViolation(err) {
		return ErrDuplicateDocument
	}
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Passenger, error) {
	var passenger Passenger
	err := r.db.WithContext(ctx).First(&passenger, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPassengerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &passenger, nil
}

func (r *repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Passenger, error) {
	var list []Passenger
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("last_name ASC, first_name ASC").
		Find(&list).Error
	return list, err
}
