package reservations_test

import (
	"context"
	"testing"
	"time"

	"skybook/internal/reservations"
	"skybook/internal/shared/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntentStore_RoundTrip(t *testing.T) {
	_, client := testutil.NewRedis(t)
	store := reservations.NewIntentStore(client, 5*time.Minute)
	ctx := context.Background()

	flightID, userID := uuid.New(), uuid.New()
	intent, err := store.Declare(ctx, flightID, userID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, intent.PassengerCount)

	loaded, err := store.Get(ctx, intent.ID)
	require.NoError(t, err)
	assert.Equal(t, flightID, loaded.FlightID)
	assert.Equal(t, userID, loaded.UserID)
	assert.Equal(t, 3, loaded.PassengerCount)

	require.NoError(t, store.Discard(ctx, intent.ID))
	_, err = store.Get(ctx, intent.ID)
	assert.ErrorIs(t, err, reservations.ErrIntentNotFound)
}

func TestIntentStore_Expires(t *testing.T) {
	mr, client := testutil.NewRedis(t)
	store := reservations.NewIntentStore(client, time.Minute)
	ctx := context.Background()

	intent, err := store.Declare(ctx, uuid.New(), uuid.New(), 1)
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)
	_, err = store.Get(ctx, intent.ID)
	assert.ErrorIs(t, err, reservations.ErrIntentNotFound)
}

func TestIntentStore_RejectsEmptyDeclaration(t *testing.T) {
	_, client := testutil.NewRedis(t)
	store := reservations.NewIntentStore(client, time.Minute)

	_, err := store.Declare(context.Background(), uuid.New(), uuid.New(), 0)
	assert.ErrorIs(t, err, reservations.ErrEmptyBatch)
}
