package reservations

type SeatSelection struct {
	SeatID      string `json:"seat_id" validate:"required,uuid"`
	PassengerID string `json:"passenger_id" validate:"required,uuid"`
}

type CreateReservationRequest struct {
	FlightID   string          `json:"flight_id" validate:"required,uuid"`
	IntentID   string          `json:"intent_id,omitempty" validate:"omitempty,uuid"`
	Selections []SeatSelection `json:"selections" validate:"required,min=1,max=9,dive"`
}

type DeclareIntentRequest struct {
	PassengerCount int `json:"passenger_count" validate:"required,min=1,max=9"`
}

type ListReservationsQuery struct {
	Status string `form:"status"`
	All    bool   `form:"all"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}
