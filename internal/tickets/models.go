package tickets

import (
	"fmt"
	"strings"
	"time"

	"skybook/internal/reservations"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Status string

const (
	StatusIssued    Status = "ISSUED"
	StatusCancelled Status = "CANCELLED"
	StatusUsed      Status = "USED"
)

func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(s)))
	switch status {
	case StatusIssued, StatusCancelled, StatusUsed:
		return status, nil
	}
	return "", fmt.Errorf("unknown ticket status %q", s)
}

// Ticket is issued once per confirmed reservation.
type Ticket struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ReservationID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"reservation_id"`
	Code          string     `gorm:"type:varchar(12);not null;uniqueIndex" json:"code"`
	Status        Status     `gorm:"type:varchar(20);not null;default:'ISSUED'" json:"status"`
	IssuedAt      time.Time  `gorm:"not null" json:"issued_at"`
	UsedAt        *time.Time `json:"used_at,omitempty"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Reservation *reservations.Reservation `gorm:"foreignKey:ReservationID;constraint:OnDelete:CASCADE" json:"reservation,omitempty"`
}

func (Ticket) TableName() string {
	return "tickets"
}

func (t *Ticket) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Status == "" {
		t.Status = StatusIssued
	}
	if t.IssuedAt.IsZero() {
		t.IssuedAt = time.Now().UTC()
	}
	return nil
}
