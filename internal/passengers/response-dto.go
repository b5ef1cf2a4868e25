package passengers

import (
	"time"

	"github.com/google/uuid"
)

type PassengerResponse struct {
	ID             uuid.UUID    `json:"id"`
	FirstName      string       `json:"first_name"`
	LastName       string       `json:"last_name"`
	DocumentType   DocumentType `json:"document_type"`
	DocumentNumber string       `json:"document_number"`
	DateOfBirth    string       `json:"date_of_birth"`
	Age            int          `json:"age"`
	Email          string       `json:"email,omitempty"`
	Phone          string       `json:"phone,omitempty"`
}

func ToResponse(p *Passenger, now time.Time) PassengerResponse {
	return PassengerResponse{
		ID:             p.ID,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		DocumentType:   p.DocumentType,
		DocumentNumber: p.DocumentNumber,
		DateOfBirth:    p.DateOfBirth.Format(DateLayout),
		Age:            p.Age(now),
		Email:          p.Email,
		Phone:          p.Phone,
	}
}
