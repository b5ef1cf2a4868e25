package flights_test

import (
	"context"
	"testing"
	"time"

	"skybook/internal/aircraft"
	"skybook/internal/flights"
	"skybook/internal/shared/testutil"
	"skybook/internal/users"
	"skybook/pkg/cache"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc      flights.Service
	staff    users.Actor
	aircraft *aircraft.Aircraft
}

func newFixture(t *testing.T, cacheService cache.Service) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	ac, _ := testutil.CreateAircraft(t, db, 2, 2)
	return &fixture{
		svc:      flights.NewService(flights.NewRepository(db), cacheService),
		staff:    testutil.ActorOf(testutil.CreateUser(t, db, users.RoleStaff)),
		aircraft: ac,
	}
}

func (f *fixture) request(number, origin, destination string, departure time.Time, length time.Duration) flights.CreateFlightRequest {
	return flights.CreateFlightRequest{
		FlightNumber:  number,
		Origin:        origin,
		Destination:   destination,
		DepartureTime: departure,
		ArrivalTime:   departure.Add(length),
		BasePrice:     120,
		AircraftID:    f.aircraft.ID.String(),
	}
}

func TestCreate_DerivesDuration(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	departure := time.Now().Add(48 * time.Hour).Truncate(time.Minute)

	flight, err := f.svc.Create(ctx, f.staff, f.request(" sb101 ", "Lisbon", "Madrid", departure, 95*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, "SB101", flight.FlightNumber)
	assert.Equal(t, 95*time.Minute, flight.Duration)
	assert.Equal(t, flights.StatusScheduled, flight.Status)
	assert.True(t, flight.IsBookable())

	explicit := 90
	req := f.request("SB102", "Lisbon", "Madrid", departure, 95*time.Minute)
	req.DurationMinutes = &explicit
	flight, err = f.svc.Create(ctx, f.staff, req)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, flight.Duration)
}

func TestCreate_Rejections(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	departure := time.Now().Add(24 * time.Hour)

	_, err := f.svc.Create(ctx, f.staff, f.request("SB1", "A", "B", departure, -time.Hour))
	assert.ErrorIs(t, err, flights.ErrInvalidSchedule)

	_, err = f.svc.Create(ctx, f.staff, f.request("SB1", "A", "B", departure, 0))
	assert.ErrorIs(t, err, flights.ErrInvalidSchedule)

	req := f.request("SB1", "A", "B", departure, time.Hour)
	req.AircraftID = uuid.NewString()
	_, err = f.svc.Create(ctx, f.staff, req)
	assert.ErrorIs(t, err, aircraft.ErrAircraftNotFound)

	customer := users.Actor{UserID: uuid.New(), Role: users.RoleCustomer}
	_, err = f.svc.Create(ctx, customer, f.request("SB1", "A", "B", departure, time.Hour))
	assert.ErrorIs(t, err, users.ErrForbidden)
}

func TestUpdateSchedule_RederivesDuration(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	departure := time.Now().Add(24 * time.Hour).Truncate(time.Minute)

	flight, err := f.svc.Create(ctx, f.staff, f.request("SB7", "Porto", "Paris", departure, 2*time.Hour))
	require.NoError(t, err)

	arrival := departure.Add(150 * time.Minute)
	updated, err := f.svc.UpdateSchedule(ctx, f.staff, flight.ID, flights.UpdateFlightRequest{ArrivalTime: &arrival})
	require.NoError(t, err)
	assert.Equal(t, 150*time.Minute, updated.Duration)

	early := departure.Add(-time.Hour)
	_, err = f.svc.UpdateSchedule(ctx, f.staff, flight.ID, flights.UpdateFlightRequest{ArrivalTime: &early})
	assert.ErrorIs(t, err, flights.ErrInvalidSchedule)

	_, err = f.svc.UpdateSchedule(ctx, f.staff, uuid.New(), flights.UpdateFlightRequest{ArrivalTime: &arrival})
	assert.ErrorIs(t, err, flights.ErrFlightNotFound)
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to flights.Status
		ok       bool
	}{
		{flights.StatusScheduled, flights.StatusInProgress, true},
		{flights.StatusScheduled, flights.StatusCancelled, true},
		{flights.StatusInProgress, flights.StatusCompleted, true},
		{flights.StatusScheduled, flights.StatusCompleted, false},
		{flights.StatusInProgress, flights.StatusCancelled, false},
		{flights.StatusCancelled, flights.StatusScheduled, false},
		{flights.StatusCompleted, flights.StatusInProgress, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.ok, tt.from.CanTransitionTo(tt.to))
		})
	}

	_, err := flights.ParseStatus("landed")
	assert.Error(t, err)
	status, err := flights.ParseStatus("in_progress")
	require.NoError(t, err)
	assert.Equal(t, flights.StatusInProgress, status)
}

func TestChangeStatus(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	flight, err := f.svc.Create(ctx, f.staff, f.request("SB9", "Faro", "Dublin", time.Now().Add(24*time.Hour), 3*time.Hour))
	require.NoError(t, err)

	cancelled, err := f.svc.ChangeStatus(ctx, f.staff, flight.ID, flights.StatusCancelled)
	require.NoError(t, err)
	assert.False(t, cancelled.IsBookable())

	_, err = f.svc.ChangeStatus(ctx, f.staff, flight.ID, flights.StatusScheduled)
	assert.ErrorIs(t, err, flights.ErrInvalidStatusTransition)

	reloaded, err := f.svc.Get(ctx, flight.ID)
	require.NoError(t, err)
	assert.Equal(t, flights.StatusCancelled, reloaded.Status)
	require.NotNil(t, reloaded.Aircraft)
	assert.Equal(t, f.aircraft.Model, reloaded.Aircraft.Model)
}

func TestSearch(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	base := time.Now().Add(24 * time.Hour)

	_, err := f.svc.Create(ctx, f.staff, f.request("SB2", "Lisbon", "Madrid", base.Add(2*time.Hour), time.Hour))
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, f.staff, f.request("SB1", "Lisbon", "Madrid", base, time.Hour))
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, f.staff, f.request("SB3", "Porto", "Madrid", base, time.Hour))
	require.NoError(t, err)
	cancelled, err := f.svc.Create(ctx, f.staff, f.request("SB4", "Lisbon", "Madrid", base, time.Hour))
	require.NoError(t, err)
	_, err = f.svc.ChangeStatus(ctx, f.staff, cancelled.ID, flights.StatusCancelled)
	require.NoError(t, err)

	result, err := f.svc.Search(ctx, flights.SearchFlightsRequest{Origin: "lisbon", Destination: "MADRID"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, result.Total)
	require.Len(t, result.Flights, 2)
	assert.Equal(t, "SB1", result.Flights[0].FlightNumber)
	assert.Equal(t, "SB2", result.Flights[1].FlightNumber)
	assert.Equal(t, 60, result.Flights[0].DurationMinutes)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 20, result.Limit)

	page, err := f.svc.Search(ctx, flights.SearchFlightsRequest{Origin: "lisbon", Page: 2, Limit: 1})
	require.NoError(t, err)
	require.Len(t, page.Flights, 1)
	assert.Equal(t, "SB2", page.Flights[0].FlightNumber)
}

func TestSearch_CacheInvalidatedOnWrite(t *testing.T) {
	_, client := testutil.NewRedis(t)
	f := newFixture(t, cache.NewService(client))
	ctx := context.Background()
	base := time.Now().Add(24 * time.Hour)

	_, err := f.svc.Create(ctx, f.staff, f.request("SB1", "Lisbon", "Madrid", base, time.Hour))
	require.NoError(t, err)

	first, err := f.svc.Search(ctx, flights.SearchFlightsRequest{Origin: "Lisbon"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, first.Total)

	_, err = f.svc.Create(ctx, f.staff, f.request("SB2", "Lisbon", "Madrid", base.Add(time.Hour), time.Hour))
	require.NoError(t, err)

	second, err := f.svc.Search(ctx, flights.SearchFlightsRequest{Origin: "Lisbon"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, second.Total)
}
