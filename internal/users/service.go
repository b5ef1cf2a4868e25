package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
	ErrForbidden    = errors.New("insufficient permissions")
	ErrLastAdmin    = errors.New("cannot demote the last admin")
)

type Service interface {
	Get(ctx context.Context, id uuid.UUID) (*User, error)
	Create(ctx context.Context, actor Actor, req CreateUserRequest) (*User, error)
	List(ctx context.Context, actor Actor, role Role, limit, offset int) ([]User, int64, error)
	ChangeRole(ctx context.Context, actor Actor, userID uuid.UUID, role Role) (*User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, actor Actor, req CreateUserRequest) (*User, error) {
	if !actor.Role.CanManageUsers() {
		return nil, ErrForbidden
	}

	role := RoleCustomer
	if req.Role != "" {
		parsed, err := ParseRole(req.Role)
		if err != nil {
			return nil, err
		}
		role = parsed
	}

	user := &User{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Role:      role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *service) List(ctx context.Context, actor Actor, role Role, limit, offset int) ([]User, int64, error) {
	if !actor.Role.CanManageUsers() {
		return nil, 0, ErrForbidden
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, role, limit, offset)
}

// ChangeRole lets an admin move an account between roles.
func (s *service) ChangeRole(ctx context.Context, actor Actor, userID uuid.UUID, role Role) (*User, error) {
	if !actor.Role.CanManageUsers() {
		return nil, ErrForbidden
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("unknown role %q", role)
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.Role == RoleAdmin && role != RoleAdmin {
		_, admins, err := s.repo.List(ctx, RoleAdmin, 1, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to count admins: %w", err)
		}
		if admins <= 1 {
			return nil, ErrLastAdmin
		}
	}

	if err := s.repo.UpdateRole(ctx, userID, role); err != nil {
		return nil, err
	}
	user.Role = role
	return user, nil
}
