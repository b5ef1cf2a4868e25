package reservations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"skybook/internal/shared/constants"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Intent is a short-lived declaration that the user will pick exactly
// PassengerCount seats on FlightID. Callers pass it to Allocate; the
// allocator never looks it up itself.
type Intent struct {
	ID             uuid.UUID `json:"id"`
	FlightID       uuid.UUID `json:"flight_id"`
	UserID         uuid.UUID `json:"user_id"`
	PassengerCount int       `json:"passenger_count"`
	ExpiresAt      time.Time `json:"expires_at"`
}

type IntentStore interface {
	Declare(ctx context.Context, flightID, userID uuid.UUID, passengerCount int) (*Intent, error)
	Get(ctx context.Context, id uuid.UUID) (*Intent, error)
	Discard(ctx context.Context, id uuid.UUID) error
}

type redisIntentStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewIntentStore(client *redis.Client, ttl time.Duration) IntentStore {
	return &redisIntentStore{client: client, ttl: ttl}
}

func (s *redisIntentStore) Declare(ctx context.Context, flightID, userID uuid.UUID, passengerCount int) (*Intent, error) {
	if passengerCount <= 0 {
		return nil, ErrEmptyBatch
	}

	intent := &Intent{
		ID:             uuid.New(),
		FlightID:       flightID,
		UserID:         userID,
		PassengerCount: passengerCount,
		ExpiresAt:      time.Now().UTC().Add(s.ttl),
	}
	data, err := json.Marshal(intent)
	if err != nil {
		return nil, fmt.Errorf("failed to encode intent: %w", err)
	}
	if err := s.client.Set(ctx, constants.BuildIntentKey(intent.ID.String()), data, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("failed to store intent: %w", err)
	}
	return intent, nil
}

func (s *redisIntentStore) Get(ctx context.Context, id uuid.UUID) (*Intent, error) {
	data, err := s.client.Get(ctx, constants.BuildIntentKey(id.String())).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrIntentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load intent: %w", err)
	}

	var intent Intent
	if err := json.Unmarshal(data, &intent); err != nil {
		return nil, fmt.Errorf("failed to decode intent: %w", err)
	}
	return &intent, nil
}

func (s *redisIntentStore) Discard(ctx context.Context, id uuid.UUID) error {
	return s.client.Del(ctx, constants.BuildIntentKey(id.String())).Err()
}
