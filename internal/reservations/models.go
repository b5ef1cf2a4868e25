package reservations

import (
	"time"

	"skybook/internal/aircraft"
	"skybook/internal/flights"
	"skybook/internal/passengers"
	"skybook/internal/users"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reservation binds one passenger to one seat on one flight. At most one
// active reservation may exist per (flight, seat); see
// idx_reservations_active_flight_seat.
type Reservation struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Code        string     `gorm:"type:varchar(10);not null;uniqueIndex" json:"code"`
	FlightID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"flight_id"`
	PassengerID uuid.UUID  `gorm:"type:uuid;not null;index" json:"passenger_id"`
	SeatID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"seat_id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Status      Status     `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	TotalPrice  float64    `gorm:"type:decimal(10,2);not null" json:"total_price"`
	CreatedAt   time.Time  `gorm:"<-:create" json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	Flight    *flights.Flight       `gorm:"foreignKey:FlightID;constraint:OnDelete:CASCADE" json:"flight,omitempty"`
	Passenger *passengers.Passenger `gorm:"foreignKey:PassengerID;constraint:OnDelete:CASCADE" json:"passenger,omitempty"`
	Seat      *aircraft.Seat        `gorm:"foreignKey:SeatID;constraint:OnDelete:CASCADE" json:"seat,omitempty"`
	User      *users.User           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Reservation) TableName() string {
	return "reservations"
}

func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Status == "" {
		r.Status = StatusPending
	}
	return nil
}
