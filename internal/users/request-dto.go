package users

type CreateUserRequest struct {
	FirstName string `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string `json:"last_name" validate:"required,min=1,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Role      string `json:"role,omitempty" validate:"omitempty,oneof=CUSTOMER STAFF ADMIN customer staff admin"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=CUSTOMER STAFF ADMIN customer staff admin"`
}
