package aircraft

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrInvalidDimensions = errors.New("aircraft rows and columns must be positive")

type CabinClass string

const (
	CabinEconomy  CabinClass = "ECONOMY"
	CabinBusiness CabinClass = "BUSINESS"
	CabinPremium  CabinClass = "PREMIUM"
)

func (c CabinClass) IsValid() bool {
	switch c {
	case CabinEconomy, CabinBusiness, CabinPremium:
		return true
	}
	return false
}

type SeatStatus string

const (
	SeatAvailable SeatStatus = "AVAILABLE"
	SeatReserved  SeatStatus = "RESERVED"
	SeatOccupied  SeatStatus = "OCCUPIED"
)

type Aircraft struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Model     string    `gorm:"type:varchar(100);not null" json:"model"`
	Rows      int       `gorm:"not null" json:"rows"`
	Columns   int       `gorm:"not null" json:"columns"`
	Capacity  int       `gorm:"not null" json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Aircraft) TableName() string {
	return "aircraft"
}

func (a *Aircraft) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// BeforeSave keeps capacity equal to rows x columns. Capacity is never taken
// from input.
func (a *Aircraft) BeforeSave(tx *gorm.DB) error {
	if a.Rows <= 0 || a.Columns <= 0 {
		return ErrInvalidDimensions
	}
	a.Capacity = a.Rows * a.Columns
	return nil
}

// Seat is one cell of an aircraft's grid. Seats are only removed through the
// aircraft cascade.
type Seat struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	AircraftID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_seats_aircraft_grid,priority:1" json:"aircraft_id"`
	Row        int        `gorm:"column:seat_row;not null;uniqueIndex:idx_seats_aircraft_grid,priority:2" json:"row"`
	Column     int        `gorm:"column:seat_column;not null;uniqueIndex:idx_seats_aircraft_grid,priority:3" json:"column"`
	Number     string     `gorm:"column:seat_number;type:varchar(10);not null" json:"seat_number"`
	CabinClass CabinClass `gorm:"type:varchar(20);not null;default:'ECONOMY'" json:"cabin_class"`
	Status     SeatStatus `gorm:"type:varchar(20);not null;default:'AVAILABLE'" json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	Aircraft *Aircraft `gorm:"foreignKey:AircraftID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Seat) TableName() string {
	return "seats"
}

func (s *Seat) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
