package constants

import (
	"fmt"
	"time"
)

// Redis key layout for SkyBook.
// Pattern: skybook:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

const (
	TTL_STATIC_MEDIUM     = 12 * time.Hour   // aircraft layouts
	TTL_SEMI_STATIC_QUICK = 15 * time.Minute // flight search results
	TTL_REALTIME_SHORT    = 30 * time.Second // live seat availability
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "skybook"
)

// ================== AIRCRAFT MODULE ==================

const (
	CACHE_KEY_AIRCRAFT_SEATS = CACHE_PREFIX + ":aircraft:seats:uuid:" // + aircraft-id
)

const (
	TTL_AIRCRAFT_SEATS = TTL_STATIC_MEDIUM
)

// ================== FLIGHTS MODULE ==================

const (
	CACHE_KEY_FLIGHT_SEARCH = CACHE_PREFIX + ":flights:search" // + :origin:X:destination:Y:page:Z
)

const (
	TTL_FLIGHT_SEARCH = TTL_SEMI_STATIC_QUICK
)

// ================== RESERVATIONS MODULE ==================

const (
	// Short-lived passenger-count declarations
	REDIS_KEY_INTENT = CACHE_PREFIX + ":reservations:intent:uuid:" // + intent-id
)

// ================== INVALIDATION PATTERNS ==================

const (
	PATTERN_INVALIDATE_FLIGHT_SEARCH = CACHE_KEY_FLIGHT_SEARCH + ":*"
)

// ================== HELPER FUNCTIONS ==================

func BuildAircraftSeatsKey(aircraftID string) string {
	return CACHE_KEY_AIRCRAFT_SEATS + aircraftID
}

func BuildFlightSearchKey(origin, destination string, page, limit int) string {
	return fmt.Sprintf("%s:origin:%s:destination:%s:page:%d:limit:%d", CACHE_KEY_FLIGHT_SEARCH, origin, destination, page, limit)
}

func BuildIntentKey(intentID string) string {
	return REDIS_KEY_INTENT + intentID
}
