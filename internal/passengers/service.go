package passengers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"skybook/internal/users"

	"github.com/google/uuid"
)

var (
	ErrPassengerNotFound = errors.New("passenger not found")
	ErrDuplicateDocument = errors.New("a passenger with this document number already exists")
	ErrInvalidBirthDate  = errors.New("date of birth must be in the past")
)

type Service interface {
	Create(ctx context.Context, actor users.Actor, req CreatePassengerRequest) (*Passenger, error)
	Get(ctx context.Context, actor users.Actor, id uuid.UUID) (*Passenger, error)
	List(ctx context.Context, actor users.Actor) ([]Passenger, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Create(ctx context.Context, actor users.Actor, req CreatePassengerRequest) (*Passenger, error) {
	dob, err := time.Parse(DateLayout, req.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBirthDate, err)
	}
	if !dob.Before(s.now()) {
		return nil, ErrInvalidBirthDate
	}

	passenger := &Passenger{
		OwnerID:        actor.UserID,
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		DocumentType:   DocumentType(strings.ToUpper(req.DocumentType)),
		DocumentNumber: strings.ToUpper(strings.TrimSpace(req.DocumentNumber)),
		DateOfBirth:    dob,
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:          strings.TrimSpace(req.Phone),
	}
	if err := s.repo.Create(ctx, passenger); err != nil {
		if errors.Is(err, ErrDuplicateDocument) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create passenger: %w", err)
	}
	return passenger, nil
}

// Get returns a passenger to its owner, or to staff.
func (s *service) Get(ctx context.Context, actor users.Actor, id uuid.UUID) (*Passenger, error) {
	passenger, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(passenger.OwnerID) && !actor.Role.CanViewAllReservations() {
		return nil, ErrPassengerNotFound
	}
	return passenger, nil
}

func (s *service) List(ctx context.Context, actor users.Actor) ([]Passenger, error) {
	return s.repo.ListByOwner(ctx, actor.UserID)
}
