package aircraft

type CreateAircraftRequest struct {
	Model   string `json:"model" validate:"required,min=1,max=100"`
	Rows    int    `json:"rows" validate:"required,min=1,max=120"`
	Columns int    `json:"columns" validate:"required,min=1,max=12"`
}

type UpdateAircraftRequest struct {
	Model   *string `json:"model,omitempty" validate:"omitempty,min=1,max=100"`
	Rows    *int    `json:"rows,omitempty" validate:"omitempty,min=1,max=120"`
	Columns *int    `json:"columns,omitempty" validate:"omitempty,min=1,max=12"`
}

type UpdateSeatClassRequest struct {
	CabinClass string `json:"cabin_class" validate:"required,oneof=ECONOMY BUSINESS PREMIUM"`
}
