package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeTicketIssued NotificationType = "TICKET_ISSUED"
)

type NotificationChannel string

const (
	NotificationChannelEmail NotificationChannel = "EMAIL"
)

// TicketMessage carries an issued ticket to the delivery pipeline. The PDF
// is base64 encoded by encoding/json.
type TicketMessage struct {
	ID       uuid.UUID           `json:"id"`
	Type     NotificationType    `json:"type"`
	Channel  NotificationChannel `json:"channel"`
	Producer string              `json:"producer"`

	TicketID        uuid.UUID `json:"ticket_id"`
	TicketCode      string    `json:"ticket_code"`
	ReservationID   uuid.UUID `json:"reservation_id"`
	ReservationCode string    `json:"reservation_code"`
	RecipientID     uuid.UUID `json:"recipient_id"`

	PassengerName string    `json:"passenger_name"`
	FlightNumber  string    `json:"flight_number"`
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	DepartureTime time.Time `json:"departure_time"`
	SeatNumber    string    `json:"seat_number"`
	CabinClass    string    `json:"cabin_class"`

	PDF       []byte    `json:"pdf"`
	CreatedAt time.Time `json:"created_at"`
}

func NewTicketMessage() *TicketMessage {
	return &TicketMessage{
		ID:        uuid.New(),
		Type:      NotificationTypeTicketIssued,
		Channel:   NotificationChannelEmail,
		Producer:  "skybook-tickets",
		CreatedAt: time.Now().UTC(),
	}
}

// PartitionKey keeps every message for one reservation on one partition.
func (m *TicketMessage) PartitionKey() string {
	return m.ReservationID.String()
}

func (m *TicketMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func TicketMessageFromJSON(data []byte) (*TicketMessage, error) {
	var m TicketMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
