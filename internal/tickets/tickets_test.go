package tickets_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"skybook/internal/aircraft"
	"skybook/internal/notifications"
	"skybook/internal/reservations"
	"skybook/internal/seats"
	"skybook/internal/shared/testutil"
	"skybook/internal/tickets"
	"skybook/internal/users"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	messages []*notifications.TicketMessage
	err      error
}

func (p *recordingPublisher) PublishTicket(ctx context.Context, m *notifications.TicketMessage) error {
	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, m)
	return nil
}

func (p *recordingPublisher) Describe() string { return "recorded" }
func (p *recordingPublisher) Close() error     { return nil }

var renderer = tickets.Renderer{IssuerName: "SkyBook Airlines", QRSize: 128}

type env struct {
	db        *gorm.DB
	customer  *users.User
	staff     *users.User
	seat      aircraft.Seat
	publisher *recordingPublisher
	lifecycle *reservations.Lifecycle
	service   tickets.Service
	reserved  reservations.Reservation
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db := testutil.NewDB(t)
	e := &env{
		db:        db,
		customer:  testutil.CreateUser(t, db, users.RoleCustomer),
		staff:     testutil.CreateUser(t, db, users.RoleStaff),
		publisher: &recordingPublisher{},
	}

	ac, seatList := testutil.CreateAircraft(t, db, 1, 2)
	flight := testutil.CreateFlight(t, db, ac.ID, time.Now().Add(24*time.Hour))
	pax := testutil.CreatePassenger(t, db, e.customer.ID)
	e.seat = seatList[0]

	repo := reservations.NewRepository(db)
	seatRepo := seats.NewRepository(db)
	allocator := reservations.NewAllocator(repo, seatRepo, nil)
	e.lifecycle = reservations.NewLifecycle(repo, seatRepo, tickets.NewIssuer(), tickets.NewDelivery(renderer, e.publisher), nil)
	e.service = tickets.NewService(tickets.NewRepository(db), seatRepo, renderer)

	created, err := allocator.Allocate(context.Background(), reservations.AllocationRequest{
		FlightID: flight.ID,
		UserID:   e.customer.ID,
		Pairs:    []reservations.SeatPassenger{{SeatID: e.seat.ID, PassengerID: pax.ID}},
	})
	require.NoError(t, err)
	e.reserved = created[0]
	return e
}

func (e *env) confirm(t *testing.T) uuid.UUID {
	t.Helper()

	confirmation, err := e.lifecycle.Confirm(context.Background(), testutil.ActorOf(e.staff), e.reserved.ID)
	require.NoError(t, err)
	return confirmation.TicketID
}

func TestQRCodePNG(t *testing.T) {
	png, err := tickets.QRCodePNG("ABCDEFGH2345", 128)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG\r\n\x1a\n")))
}

func TestRenderPDF(t *testing.T) {
	qr, err := tickets.QRCodePNG("ABCDEFGH2345", 128)
	require.NoError(t, err)

	pdf, err := tickets.RenderPDF(tickets.Document{
		IssuerName:      "SkyBook Airlines",
		TicketCode:      "ABCDEFGH2345",
		ReservationCode: "RSV0000001",
		PassengerName:   "José Álvarez",
		FlightNumber:    "SB101",
		Origin:          "Lisbon",
		Destination:     "Madrid",
		DepartureTime:   time.Date(2030, 5, 1, 9, 30, 0, 0, time.UTC),
		ArrivalTime:     time.Date(2030, 5, 1, 11, 0, 0, 0, time.UTC),
		SeatNumber:      "1-1",
		CabinClass:      "ECONOMY",
		Price:           100,
	}, qr)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
}

func TestDocumentFor_RequiresDetails(t *testing.T) {
	_, err := tickets.DocumentFor(&tickets.Ticket{Code: "X"}, "SkyBook")
	assert.Error(t, err)
}

func TestIssuer(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	issuer := tickets.NewIssuer()

	id, err := issuer.IssueTicket(ctx, e.db, &e.reserved)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	_, err = issuer.IssueTicket(ctx, e.db, &e.reserved)
	assert.ErrorIs(t, err, tickets.ErrTicketExists)

	used, err := issuer.HasUsedTicket(ctx, e.db, e.reserved.ID)
	require.NoError(t, err)
	assert.False(t, used)

	require.NoError(t, issuer.VoidTicket(ctx, e.db, e.reserved.ID))
	var ticket tickets.Ticket
	require.NoError(t, e.db.First(&ticket, "id = ?", id).Error)
	assert.Equal(t, tickets.StatusCancelled, ticket.Status)

	// Voiding a reservation without a ticket is a no-op.
	assert.NoError(t, issuer.VoidTicket(ctx, e.db, uuid.New()))
}

func TestDelivery_PublishesRenderedTicket(t *testing.T) {
	e := newEnv(t)
	ticketID := e.confirm(t)

	require.Len(t, e.publisher.messages, 1)
	m := e.publisher.messages[0]
	assert.Equal(t, ticketID, m.TicketID)
	assert.Equal(t, e.reserved.Code, m.ReservationCode)
	assert.Equal(t, e.customer.ID, m.RecipientID)
	assert.Equal(t, e.seat.Number, m.SeatNumber)
	assert.True(t, bytes.HasPrefix(m.PDF, []byte("%PDF-")))
}

func TestDelivery_PublishFailure(t *testing.T) {
	e := newEnv(t)
	e.publisher.err = errors.New("broker down")

	_, err := e.lifecycle.Confirm(context.Background(), testutil.ActorOf(e.staff), e.reserved.ID)
	var failed *reservations.DeliveryFailedError
	require.ErrorAs(t, err, &failed)
	assert.Contains(t, failed.Message, "broker down")

	delivery := tickets.NewDelivery(renderer, e.publisher)
	ok, reason := delivery.DeliverTicket(context.Background(), e.db, uuid.New())
	assert.False(t, ok)
	assert.Contains(t, reason, "not found")
}

func TestService_Board(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ticketID := e.confirm(t)

	_, err := e.service.Board(ctx, testutil.ActorOf(e.customer), ticketID)
	assert.ErrorIs(t, err, users.ErrForbidden)

	boarded, err := e.service.Board(ctx, testutil.ActorOf(e.staff), ticketID)
	require.NoError(t, err)
	assert.Equal(t, tickets.StatusUsed, boarded.Status)
	assert.NotNil(t, boarded.UsedAt)
	assert.Equal(t, aircraft.SeatOccupied, testutil.SeatStatus(t, e.db, e.seat.ID))

	_, err = e.service.Board(ctx, testutil.ActorOf(e.staff), ticketID)
	assert.ErrorIs(t, err, tickets.ErrTicketUsed)

	_, err = e.lifecycle.Cancel(ctx, testutil.ActorOf(e.customer), e.reserved.ID)
	assert.ErrorIs(t, err, reservations.ErrTicketUsed)
}

func TestService_Visibility(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ticketID := e.confirm(t)
	stranger := testutil.CreateUser(t, e.db, users.RoleCustomer)

	got, err := e.service.Get(ctx, testutil.ActorOf(e.customer), ticketID)
	require.NoError(t, err)
	assert.Equal(t, e.reserved.ID, got.ReservationID)

	_, err = e.service.Get(ctx, testutil.ActorOf(stranger), ticketID)
	assert.ErrorIs(t, err, tickets.ErrTicketNotFound)

	byReservation, err := e.service.GetByReservation(ctx, testutil.ActorOf(e.staff), e.reserved.ID)
	require.NoError(t, err)
	assert.Equal(t, ticketID, byReservation.ID)

	_, err = e.lifecycle.Cancel(ctx, testutil.ActorOf(e.customer), e.reserved.ID)
	require.NoError(t, err)
	_, _, err = e.service.PDF(ctx, testutil.ActorOf(e.customer), ticketID)
	assert.ErrorIs(t, err, tickets.ErrTicketNotIssued)
}

func TestController_Download(t *testing.T) {
	gin.SetMode(gin.TestMode)
	e := newEnv(t)
	ticketID := e.confirm(t)

	router := gin.New()
	auth := func(c *gin.Context) {
		users.SetActor(c, testutil.ActorOf(e.customer))
		c.Next()
	}
	tickets.SetupTicketRoutes(router.Group("/api/v1"), tickets.NewController(e.service), auth)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tickets/"+ticketID.String()+"/pdf", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "ticket-")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/tickets/"+ticketID.String()+"/board", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/tickets/not-a-uuid", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
