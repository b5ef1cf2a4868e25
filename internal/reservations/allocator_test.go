package reservations_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"skybook/internal/aircraft"
	"skybook/internal/flights"
	"skybook/internal/notifications"
	"skybook/internal/passengers"
	"skybook/internal/reservations"
	"skybook/internal/seats"
	"skybook/internal/shared/testutil"
	"skybook/internal/shared/utils/dbutil"
	"skybook/internal/tickets"
	"skybook/internal/users"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db        *gorm.DB
	repo      reservations.Repository
	seatRepo  seats.Repository
	allocator *reservations.Allocator
	lifecycle *reservations.Lifecycle

	customerA *users.User
	customerB *users.User
	staff     *users.User

	aircraft *aircraft.Aircraft
	seats    []aircraft.Seat
	flight   *flights.Flight
	paxA     *passengers.Passenger
	paxB     *passengers.Passenger
}

func newFixture(t *testing.T, rows, cols int) *fixture {
	t.Helper()

	db := testutil.NewDB(t)
	repo := reservations.NewRepository(db)
	seatRepo := seats.NewRepository(db)
	delivery := tickets.NewDelivery(tickets.Renderer{IssuerName: "SkyBook", QRSize: 128}, notifications.NewLogPublisher())

	f := &fixture{
		db:        db,
		repo:      repo,
		seatRepo:  seatRepo,
		allocator: reservations.NewAllocator(repo, seatRepo, nil),
		lifecycle: reservations.NewLifecycle(repo, seatRepo, tickets.NewIssuer(), delivery, nil),
		customerA: testutil.CreateUser(t, db, users.RoleCustomer),
		customerB: testutil.CreateUser(t, db, users.RoleCustomer),
		staff:     testutil.CreateUser(t, db, users.RoleStaff),
	}
	f.aircraft, f.seats = testutil.CreateAircraft(t, db, rows, cols)
	f.flight = testutil.CreateFlight(t, db, f.aircraft.ID, time.Now().Add(48*time.Hour))
	f.paxA = testutil.CreatePassenger(t, db, f.customerA.ID)
	f.paxB = testutil.CreatePassenger(t, db, f.customerB.ID)
	return f
}

func (f *fixture) seat(t *testing.T, label string) aircraft.Seat {
	return testutil.SeatByLabel(t, f.seats, label)
}

func (f *fixture) allocate(user *users.User, pairs ...reservations.SeatPassenger) ([]reservations.Reservation, error) {
	return f.allocator.Allocate(context.Background(), reservations.AllocationRequest{
		FlightID: f.flight.ID,
		UserID:   user.ID,
		Pairs:    pairs,
	})
}

func pair(seat aircraft.Seat, pax *passengers.Passenger) reservations.SeatPassenger {
	return reservations.SeatPassenger{SeatID: seat.ID, PassengerID: pax.ID}
}

func countActive(t *testing.T, db *gorm.DB, flightID, seatID uuid.UUID) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(&reservations.Reservation{}).
		Where("flight_id = ? AND seat_id = ? AND status IN ?", flightID, seatID, seats.ActiveReservationStatuses).
		Count(&n).Error)
	return n
}

func countTickets(t *testing.T, db *gorm.DB, reservationID uuid.UUID) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(&tickets.Ticket{}).Where("reservation_id = ?", reservationID).Count(&n).Error)
	return n
}

func TestAllocate_WorkedExample(t *testing.T) {
	f := newFixture(t, 2, 2)
	ctx := context.Background()

	labels := make([]string, 0, len(f.seats))
	for _, s := range f.seats {
		labels = append(labels, s.Number)
		assert.Equal(t, aircraft.SeatAvailable, s.Status)
	}
	assert.Equal(t, []string{"1-1", "1-2", "2-1", "2-2"}, labels)

	seat := f.seat(t, "1-1")
	created, err := f.allocate(f.customerA, pair(seat, f.paxA))
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, reservations.StatusPending, created[0].Status)
	assert.InDelta(t, 100.00, created[0].TotalPrice, 0.001)
	assert.Len(t, created[0].Code, 10)
	assert.Equal(t, aircraft.SeatReserved, testutil.SeatStatus(t, f.db, seat.ID))

	confirmation, err := f.lifecycle.Confirm(ctx, testutil.ActorOf(f.staff), created[0].ID)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, confirmation.TicketID)
	assert.Equal(t, int64(1), countTickets(t, f.db, created[0].ID))

	_, err = f.allocate(f.customerB, pair(seat, f.paxB))
	var unavailable *reservations.SeatUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "1-1", unavailable.SeatNumber)

	result, err := f.lifecycle.Cancel(ctx, testutil.ActorOf(f.customerA), created[0].ID)
	require.NoError(t, err)
	assert.Empty(t, result.Warning)
	assert.Equal(t, reservations.StatusCancelled, result.Reservation.Status)

	again, err := f.lifecycle.Cancel(ctx, testutil.ActorOf(f.customerA), created[0].ID)
	require.NoError(t, err)
	assert.NotEmpty(t, again.Warning)
	assert.Equal(t, reservations.StatusCancelled, again.Reservation.Status)
}

func TestAllocate_BatchIsAllOrNothing(t *testing.T) {
	f := newFixture(t, 1, 3)
	paxA2 := testutil.CreatePassenger(t, f.db, f.customerA.ID)
	paxA3 := testutil.CreatePassenger(t, f.db, f.customerA.ID)

	taken := f.seat(t, "1-2")
	_, err := f.allocate(f.customerB, pair(taken, f.paxB))
	require.NoError(t, err)

	_, err = f.allocate(f.customerA,
		pair(f.seat(t, "1-1"), f.paxA),
		pair(taken, paxA2),
		pair(f.seat(t, "1-3"), paxA3),
	)
	var unavailable *reservations.SeatUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, taken.ID, unavailable.SeatID)

	var mine int64
	require.NoError(t, f.db.Model(&reservations.Reservation{}).Where("user_id = ?", f.customerA.ID).Count(&mine).Error)
	assert.Zero(t, mine)

	assert.Equal(t, aircraft.SeatAvailable, testutil.SeatStatus(t, f.db, f.seat(t, "1-1").ID))
	assert.Equal(t, aircraft.SeatAvailable, testutil.SeatStatus(t, f.db, f.seat(t, "1-3").ID))
	assert.Equal(t, aircraft.SeatReserved, testutil.SeatStatus(t, f.db, taken.ID))
}

func TestAllocate_UniqueIndexGuardsActivePair(t *testing.T) {
	f := newFixture(t, 1, 2)
	ctx := context.Background()
	seat := f.seat(t, "1-1")

	first := &reservations.Reservation{
		Code: "GUARD00001", FlightID: f.flight.ID, PassengerID: f.paxA.ID,
		SeatID: seat.ID, UserID: f.customerA.ID, Status: reservations.StatusPending, TotalPrice: 100,
	}
	require.NoError(t, f.repo.Create(ctx, first))

	second := &reservations.Reservation{
		Code: "GUARD00002", FlightID: f.flight.ID, PassengerID: f.paxB.ID,
		SeatID: seat.ID, UserID: f.customerB.ID, Status: reservations.StatusConfirmed, TotalPrice: 100,
	}
	err := f.repo.Create(ctx, second)
	require.Error(t, err)
	assert.True(t, dbutil.IsUniqueViolation(err))

	cancelled := &reservations.Reservation{
		Code: "GUARD00003", FlightID: f.flight.ID, PassengerID: f.paxB.ID,
		SeatID: seat.ID, UserID: f.customerB.ID, Status: reservations.StatusCancelled, TotalPrice: 100,
	}
	require.NoError(t, f.repo.Create(ctx, cancelled))
	assert.Equal(t, int64(1), countActive(t, f.db, f.flight.ID, seat.ID))
}

func TestAllocate_ConcurrentSameSeat(t *testing.T) {
	f := newFixture(t, 1, 1)
	seat := f.seat(t, "1-1")

	var (
		wg   sync.WaitGroup
		errs = make([]error, 2)
	)
	requests := []struct {
		user *users.User
		pax  *passengers.Passenger
	}{
		{f.customerA, f.paxA},
		{f.customerB, f.paxB},
	}
	for i, req := range requests {
		wg.Add(1)
		go func(i int, user *users.User, pax *passengers.Passenger) {
			defer wg.Done()
			_, errs[i] = f.allocate(user, pair(seat, pax))
		}(i, req.user, req.pax)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		var unavailable *reservations.SeatUnavailableError
		assert.ErrorAs(t, err, &unavailable)
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, int64(1), countActive(t, f.db, f.flight.ID, seat.ID))
}

func TestAllocate_CancelledSeatCanBeRebooked(t *testing.T) {
	f := newFixture(t, 1, 2)
	ctx := context.Background()
	seat := f.seat(t, "1-2")

	created, err := f.allocate(f.customerA, pair(seat, f.paxA))
	require.NoError(t, err)
	_, err = f.lifecycle.Confirm(ctx, testutil.ActorOf(f.staff), created[0].ID)
	require.NoError(t, err)

	_, err = f.lifecycle.Cancel(ctx, testutil.ActorOf(f.staff), created[0].ID)
	require.NoError(t, err)
	assert.Equal(t, aircraft.SeatAvailable, testutil.SeatStatus(t, f.db, seat.ID))

	rebooked, err := f.allocate(f.customerB, pair(seat, f.paxB))
	require.NoError(t, err)
	require.Len(t, rebooked, 1)
	assert.Equal(t, aircraft.SeatReserved, testutil.SeatStatus(t, f.db, seat.ID))
	assert.Equal(t, int64(1), countActive(t, f.db, f.flight.ID, seat.ID))
}

func TestAllocate_Rejections(t *testing.T) {
	f := newFixture(t, 2, 2)
	ctx := context.Background()

	_, otherSeats := testutil.CreateAircraft(t, f.db, 1, 1)
	paxA2 := testutil.CreatePassenger(t, f.db, f.customerA.ID)

	cancelledFlight := testutil.CreateFlight(t, f.db, f.aircraft.ID, time.Now().Add(72*time.Hour))
	require.NoError(t, f.db.Model(cancelledFlight).Update("status", flights.StatusCancelled).Error)

	s11, s12 := f.seat(t, "1-1"), f.seat(t, "1-2")

	tests := []struct {
		name  string
		req   reservations.AllocationRequest
		check func(t *testing.T, err error)
	}{
		{
			name: "empty batch",
			req:  reservations.AllocationRequest{FlightID: f.flight.ID, UserID: f.customerA.ID},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, reservations.ErrEmptyBatch)
			},
		},
		{
			name: "same seat twice",
			req: reservations.AllocationRequest{FlightID: f.flight.ID, UserID: f.customerA.ID,
				Pairs: []reservations.SeatPassenger{pair(s11, f.paxA), pair(s11, paxA2)}},
			check: func(t *testing.T, err error) {
				var unavailable *reservations.SeatUnavailableError
				assert.ErrorAs(t, err, &unavailable)
			},
		},
		{
			name: "same passenger twice",
			req: reservations.AllocationRequest{FlightID: f.flight.ID, UserID: f.customerA.ID,
				Pairs: []reservations.SeatPassenger{pair(s11, f.paxA), pair(s12, f.paxA)}},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, reservations.ErrDuplicatePassenger)
			},
		},
		{
			name: "passenger of another account",
			req: reservations.AllocationRequest{FlightID: f.flight.ID, UserID: f.customerA.ID,
				Pairs: []reservations.SeatPassenger{pair(s11, f.paxB)}},
			check: func(t *testing.T, err error) {
				var notOwned *reservations.PassengerNotOwnedError
				require.ErrorAs(t, err, &notOwned)
				assert.Equal(t, f.paxB.ID, notOwned.PassengerID)
			},
		},
		{
			name: "seat from another aircraft",
			req: reservations.AllocationRequest{FlightID: f.flight.ID, UserID: f.customerA.ID,
				Pairs: []reservations.SeatPassenger{pair(otherSeats[0], f.paxA)}},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, reservations.ErrSeatNotFound)
			},
		},
		{
			name: "declared count differs",
			req: reservations.AllocationRequest{FlightID: f.flight.ID, UserID: f.customerA.ID,
				Pairs: []reservations.SeatPassenger{pair(s11, f.paxA)},
				Intent: &reservations.Intent{ID: uuid.New(), FlightID: f.flight.ID, UserID: f.customerA.ID, PassengerCount: 2}},
			check: func(t *testing.T, err error) {
				var mismatch *reservations.PassengerSeatCountMismatchError
				require.ErrorAs(t, err, &mismatch)
				assert.Equal(t, 2, mismatch.Expected)
				assert.Equal(t, 1, mismatch.Actual)
			},
		},
		{
			name: "intent for another flight",
			req: reservations.AllocationRequest{FlightID: f.flight.ID, UserID: f.customerA.ID,
				Pairs:  []reservations.SeatPassenger{pair(s11, f.paxA)},
				Intent: &reservations.Intent{ID: uuid.New(), FlightID: uuid.New(), UserID: f.customerA.ID, PassengerCount: 1}},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, reservations.ErrIntentNotFound)
			},
		},
		{
			name: "cancelled flight",
			req: reservations.AllocationRequest{FlightID: cancelledFlight.ID, UserID: f.customerA.ID,
				Pairs: []reservations.SeatPassenger{pair(s11, f.paxA)}},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, reservations.ErrFlightNotBookable)
			},
		},
		{
			name: "unknown flight",
			req: reservations.AllocationRequest{FlightID: uuid.New(), UserID: f.customerA.ID,
				Pairs: []reservations.SeatPassenger{pair(s11, f.paxA)}},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, flights.ErrFlightNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created, err := f.allocator.Allocate(ctx, tt.req)
			require.Error(t, err)
			assert.Nil(t, created)
			tt.check(t, err)
		})
	}

	var total int64
	require.NoError(t, f.db.Model(&reservations.Reservation{}).Count(&total).Error)
	assert.Zero(t, total)
}

func TestAllocate_SeatStatusFollowsActiveSet(t *testing.T) {
	f := newFixture(t, 2, 2)
	ctx := context.Background()
	paxA2 := testutil.CreatePassenger(t, f.db, f.customerA.ID)

	created, err := f.allocate(f.customerA, pair(f.seat(t, "1-1"), f.paxA), pair(f.seat(t, "2-2"), paxA2))
	require.NoError(t, err)
	require.Len(t, created, 2)
	_, err = f.lifecycle.Confirm(ctx, testutil.ActorOf(f.staff), created[0].ID)
	require.NoError(t, err)
	_, err = f.lifecycle.Cancel(ctx, testutil.ActorOf(f.customerA), created[1].ID)
	require.NoError(t, err)

	active, err := f.seatRepo.ActiveReservedSeatIDs(ctx, nil, f.flight.ID)
	require.NoError(t, err)

	for _, s := range f.seats {
		status := testutil.SeatStatus(t, f.db, s.ID)
		if _, held := active[s.ID]; held {
			assert.Equal(t, aircraft.SeatReserved, status, s.Number)
		} else {
			assert.Equal(t, aircraft.SeatAvailable, status, s.Number)
		}
	}
}

func TestSeatUnavailableError_Message(t *testing.T) {
	err := error(&reservations.SeatUnavailableError{SeatID: uuid.New(), SeatNumber: "3-4"})
	assert.Equal(t, "seat 3-4 is no longer available", err.Error())
	assert.True(t, reservations.IsConflict(err))
	assert.True(t, reservations.IsConflict(reservations.ErrTicketUsed))
	assert.False(t, reservations.IsConflict(errors.New("boom")))
}
