package passengers

import (
	"time"

	"skybook/internal/users"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentType string

const (
	DocumentNationalID DocumentType = "NATIONAL_ID"
	DocumentPassport   DocumentType = "PASSPORT"
	DocumentOther      DocumentType = "OTHER"
)

// Passenger is a traveller registered by an account holder.
type Passenger struct {
	ID             uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID        uuid.UUID    `gorm:"type:uuid;not null;index" json:"owner_id"`
	FirstName      string       `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName       string       `gorm:"type:varchar(100);not null" json:"last_name"`
	DocumentType   DocumentType `gorm:"type:varchar(20);not null" json:"document_type"`
	DocumentNumber string       `gorm:"type:varchar(50);not null;uniqueIndex" json:"document_number"`
	DateOfBirth    time.Time    `gorm:"not null" json:"date_of_birth"`
	Email          string       `gorm:"type:varchar(255)" json:"email"`
	Phone          string       `gorm:"type:varchar(30)" json:"phone"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`

	Owner *users.User `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Passenger) TableName() string {
	return "passengers"
}

func (p *Passenger) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p *Passenger) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Age in whole years at now.
func (p *Passenger) Age(now time.Time) int {
	if p.DateOfBirth.IsZero() || now.Before(p.DateOfBirth) {
		return 0
	}
	years := now.Year() - p.DateOfBirth.Year()
	if now.Month() < p.DateOfBirth.Month() ||
		(now.Month() == p.DateOfBirth.Month() && now.Day() < p.DateOfBirth.Day()) {
		years--
	}
	return years
}
