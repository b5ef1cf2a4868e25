package passengers

// DateLayout is the accepted date_of_birth format.
const DateLayout = "2006-01-02"

type CreatePassengerRequest struct {
	FirstName      string `json:"first_name" validate:"required,min=1,max=100"`
	LastName       string `json:"last_name" validate:"required,min=1,max=100"`
	DocumentType   string `json:"document_type" validate:"required,oneof=NATIONAL_ID PASSPORT OTHER"`
	DocumentNumber string `json:"document_number" validate:"required,min=3,max=50"`
	DateOfBirth    string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Email          string `json:"email,omitempty" validate:"omitempty,email"`
	Phone          string `json:"phone,omitempty" validate:"omitempty,e164"`
}
