package users

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleStaff    Role = "STAFF"
	RoleAdmin    Role = "ADMIN"
)

// ParseRole accepts a role name in any case.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

func (r Role) isStaffOrAdmin() bool {
	return r == RoleStaff || r == RoleAdmin
}

// CanConfirmReservations covers confirmation and boarding.
func (r Role) CanConfirmReservations() bool {
	return r.isStaffOrAdmin()
}

func (r Role) CanCancelAnyReservation() bool {
	return r.isStaffOrAdmin()
}

func (r Role) CanManageFleet() bool {
	return r.isStaffOrAdmin()
}

func (r Role) CanViewManifests() bool {
	return r.isStaffOrAdmin()
}

func (r Role) CanViewAllReservations() bool {
	return r.isStaffOrAdmin()
}

func (r Role) CanManageUsers() bool {
	return r == RoleAdmin
}
