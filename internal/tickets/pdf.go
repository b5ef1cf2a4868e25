package tickets

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Document is everything printed on a boarding pass.
type Document struct {
	IssuerName      string
	TicketCode      string
	ReservationCode string
	PassengerName   string
	FlightNumber    string
	Origin          string
	Destination     string
	DepartureTime   time.Time
	ArrivalTime     time.Time
	SeatNumber      string
	CabinClass      string
	Price           float64
}

// DocumentFor builds the printable view of a ticket loaded with its
// reservation, flight, passenger and seat.
func DocumentFor(ticket *Ticket, issuerName string) (Document, error) {
	r := ticket.Reservation
	if r == nil || r.Flight == nil || r.Passenger == nil || r.Seat == nil {
		return Document{}, errors.New("ticket is missing reservation details")
	}

	return Document{
		IssuerName:      issuerName,
		TicketCode:      ticket.Code,
		ReservationCode: r.Code,
		PassengerName:   r.Passenger.FullName(),
		FlightNumber:    r.Flight.FlightNumber,
		Origin:          r.Flight.Origin,
		Destination:     r.Flight.Destination,
		DepartureTime:   r.Flight.DepartureTime,
		ArrivalTime:     r.Flight.ArrivalTime,
		SeatNumber:      r.Seat.Number,
		CabinClass:      string(r.Seat.CabinClass),
		Price:           r.TotalPrice,
	}, nil
}

// RenderPDF lays out an A5 landscape boarding pass with the QR code on the
// right.
func RenderPDF(doc Document, qrPNG []byte) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A5", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pdf.SetFillColor(20, 60, 120)
	pdf.Rect(0, 0, 210, 22, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 16)
	pdf.SetXY(12, 7)
	pdf.CellFormat(120, 8, tr(doc.IssuerName), "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(66, 8, "BOARDING PASS", "", 1, "R", false, 0, "")

	pdf.SetTextColor(30, 30, 30)
	pdf.SetY(30)

	field := func(label, value string) {
		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(110, 110, 110)
		pdf.SetX(12)
		pdf.CellFormat(120, 5, label, "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "B", 13)
		pdf.SetTextColor(30, 30, 30)
		pdf.SetX(12)
		pdf.CellFormat(120, 7, tr(value), "", 1, "L", false, 0, "")
		pdf.Ln(1.5)
	}

	field("PASSENGER", doc.PassengerName)
	field("FLIGHT", fmt.Sprintf("%s  %s -> %s", doc.FlightNumber, doc.Origin, doc.Destination))
	field("DEPARTURE (UTC)", doc.DepartureTime.UTC().Format("02 Jan 2006 15:04"))
	field("ARRIVAL (UTC)", doc.ArrivalTime.UTC().Format("02 Jan 2006 15:04"))
	field("SEAT / CLASS", fmt.Sprintf("%s / %s", doc.SeatNumber, doc.CabinClass))
	field("FARE", fmt.Sprintf("%.2f", doc.Price))

	if len(qrPNG) > 0 {
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		name := "qr_" + doc.TicketCode
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(qrPNG))
		pdf.ImageOptions(name, 140, 32, 56, 56, false, opts, 0, "")
	}

	pdf.SetFont("Arial", "I", 9)
	pdf.SetTextColor(90, 90, 90)
	pdf.SetXY(140, 92)
	pdf.CellFormat(56, 5, "Ticket "+doc.TicketCode, "", 1, "C", false, 0, "")
	pdf.SetX(140)
	pdf.CellFormat(56, 5, "Booking "+doc.ReservationCode, "", 1, "C", false, 0, "")

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to lay out PDF: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Renderer produces the PDF for a loaded ticket.
type Renderer struct {
	IssuerName string
	QRSize     int
}

func (r Renderer) Render(ticket *Ticket) ([]byte, error) {
	doc, err := DocumentFor(ticket, r.IssuerName)
	if err != nil {
		return nil, err
	}
	qr, err := QRCodePNG(ticket.Code, r.QRSize)
	if err != nil {
		return nil, err
	}
	return RenderPDF(doc, qr)
}
