package aircraft_test

import (
	"context"
	"testing"

	"skybook/internal/aircraft"
	"skybook/internal/shared/constants"
	"skybook/internal/shared/testutil"
	"skybook/internal/users"
	"skybook/pkg/cache"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSeatMap(t *testing.T) {
	id := uuid.New()
	seats := aircraft.GenerateSeatMap(id, 3, 4)
	require.Len(t, seats, 12)

	assert.Equal(t, "1-1", seats[0].Number)
	assert.Equal(t, "1-4", seats[3].Number)
	assert.Equal(t, "2-1", seats[4].Number)
	assert.Equal(t, "3-4", seats[11].Number)
	for _, s := range seats {
		assert.Equal(t, id, s.AircraftID)
		assert.Equal(t, aircraft.CabinEconomy, s.CabinClass)
		assert.Equal(t, aircraft.SeatAvailable, s.Status)
	}

	assert.Empty(t, aircraft.GenerateSeatMap(id, 0, 4))
	assert.Empty(t, aircraft.GenerateSeatMap(id, 3, -1))
}

func newService(t *testing.T) (aircraft.Service, aircraft.Repository, users.Actor) {
	t.Helper()
	db := testutil.NewDB(t)
	repo := aircraft.NewRepository(db)
	staff := testutil.ActorOf(testutil.CreateUser(t, db, users.RoleStaff))
	return aircraft.NewService(repo, nil), repo, staff
}

func TestService_Create(t *testing.T) {
	svc, repo, staff := newService(t)
	ctx := context.Background()

	ac, created, err := svc.Create(ctx, staff, aircraft.CreateAircraftRequest{Model: " A320 ", Rows: 30, Columns: 6})
	require.NoError(t, err)
	assert.Equal(t, "A320", ac.Model)
	assert.Equal(t, 180, ac.Capacity)
	assert.Equal(t, 180, created)

	count, err := repo.CountSeats(ctx, ac.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 180, count)

	customer := users.Actor{UserID: uuid.New(), Role: users.RoleCustomer}
	_, _, err = svc.Create(ctx, customer, aircraft.CreateAircraftRequest{Model: "A320", Rows: 1, Columns: 1})
	assert.ErrorIs(t, err, users.ErrForbidden)
}

func TestService_CreateRejectsBadDimensions(t *testing.T) {
	svc, repo, staff := newService(t)
	ctx := context.Background()

	_, _, err := svc.Create(ctx, staff, aircraft.CreateAircraftRequest{Model: "Broken", Rows: 0, Columns: 6})
	assert.ErrorIs(t, err, aircraft.ErrInvalidDimensions)

	list, total, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, list)
}

func TestService_EnsureSeatMapIsIdempotent(t *testing.T) {
	svc, repo, staff := newService(t)
	ctx := context.Background()

	ac := &aircraft.Aircraft{Model: "E190", Rows: 2, Columns: 2}
	require.NoError(t, repo.Create(ctx, ac))

	created, err := svc.EnsureSeatMap(ctx, staff, ac.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, created)

	created, err = svc.EnsureSeatMap(ctx, staff, ac.ID)
	require.NoError(t, err)
	assert.Zero(t, created)

	seats, err := svc.ListSeats(ctx, ac.ID)
	require.NoError(t, err)
	assert.Len(t, seats, 4)

	_, err = svc.EnsureSeatMap(ctx, staff, uuid.New())
	assert.ErrorIs(t, err, aircraft.ErrAircraftNotFound)
}

func TestService_ReconfigureKeepsSeats(t *testing.T) {
	svc, repo, staff := newService(t)
	ctx := context.Background()

	ac, _, err := svc.Create(ctx, staff, aircraft.CreateAircraftRequest{Model: "A319", Rows: 2, Columns: 3})
	require.NoError(t, err)

	rows := 4
	updated, created, err := svc.Reconfigure(ctx, staff, ac.ID, aircraft.UpdateAircraftRequest{Rows: &rows})
	require.NoError(t, err)
	assert.Equal(t, 12, updated.Capacity)
	assert.Zero(t, created)

	count, err := repo.CountSeats(ctx, ac.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 6, count)
}

func TestService_UpdateSeatClassInvalidatesCache(t *testing.T) {
	db := testutil.NewDB(t)
	mr, client := testutil.NewRedis(t)
	svc := aircraft.NewService(aircraft.NewRepository(db), cache.NewService(client))
	staff := testutil.ActorOf(testutil.CreateUser(t, db, users.RoleAdmin))
	ctx := context.Background()

	ac, seats := testutil.CreateAircraft(t, db, 2, 2)
	key := constants.BuildAircraftSeatsKey(ac.ID.String())
	require.NoError(t, mr.Set(key, "[]"))

	seat, err := svc.UpdateSeatClass(ctx, staff, ac.ID, seats[0].ID, aircraft.CabinBusiness)
	require.NoError(t, err)
	assert.Equal(t, aircraft.CabinBusiness, seat.CabinClass)
	assert.False(t, mr.Exists(key))

	_, err = svc.UpdateSeatClass(ctx, staff, ac.ID, seats[0].ID, aircraft.CabinClass("FIRST"))
	assert.ErrorIs(t, err, aircraft.ErrInvalidCabin)

	_, err = svc.UpdateSeatClass(ctx, staff, uuid.New(), seats[0].ID, aircraft.CabinPremium)
	assert.ErrorIs(t, err, aircraft.ErrSeatNotFound)
}

func TestService_DeleteCascadesSeats(t *testing.T) {
	db := testutil.NewDB(t)
	svc := aircraft.NewService(aircraft.NewRepository(db), nil)
	staff := testutil.ActorOf(testutil.CreateUser(t, db, users.RoleStaff))
	ctx := context.Background()

	ac, _ := testutil.CreateAircraft(t, db, 2, 2)
	require.NoError(t, svc.Delete(ctx, staff, ac.ID))

	var remaining int64
	require.NoError(t, db.Model(&aircraft.Seat{}).Where("aircraft_id = ?", ac.ID).Count(&remaining).Error)
	assert.Zero(t, remaining)

	assert.ErrorIs(t, svc.Delete(ctx, staff, ac.ID), aircraft.ErrAircraftNotFound)
}
