package flights

import (
	"errors"
	"time"

	"skybook/internal/aircraft"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrInvalidSchedule = errors.New("arrival time must be after departure time")

type Flight struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	FlightNumber  string        `gorm:"type:varchar(10);not null;index" json:"flight_number"`
	Origin        string        `gorm:"type:varchar(100);not null" json:"origin"`
	Destination   string        `gorm:"type:varchar(100);not null" json:"destination"`
	DepartureTime time.Time     `gorm:"not null" json:"departure_time"`
	ArrivalTime   time.Time     `gorm:"not null" json:"arrival_time"`
	Duration      time.Duration `gorm:"not null" json:"duration"`
	Status        Status        `gorm:"type:varchar(20);not null;default:'SCHEDULED'" json:"status"`
	BasePrice     float64       `gorm:"type:decimal(10,2);not null" json:"base_price"`
	AircraftID    uuid.UUID     `gorm:"type:uuid;not null;index" json:"aircraft_id"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	// Deleting an aircraft deletes its flights.
	Aircraft *aircraft.Aircraft `gorm:"foreignKey:AircraftID;constraint:OnDelete:CASCADE" json:"aircraft,omitempty"`
}

func (Flight) TableName() string {
	return "flights"
}

func (f *Flight) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	if f.Status == "" {
		f.Status = StatusScheduled
	}
	return nil
}

// BeforeSave rejects impossible schedules and caches the duration when the
// caller did not supply one.
func (f *Flight) BeforeSave(tx *gorm.DB) error {
	if !f.ArrivalTime.After(f.DepartureTime) {
		return ErrInvalidSchedule
	}
	if f.Duration == 0 {
		f.Duration = f.ArrivalTime.Sub(f.DepartureTime)
	}
	return nil
}

func (f *Flight) IsBookable() bool {
	return f.Status == StatusScheduled
}
