// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"skybook/internal/aircraft"
	"skybook/internal/flights"
	"skybook/internal/notifications"
	"skybook/internal/passengers"
	"skybook/internal/reservations"
	"skybook/internal/seats"
	"skybook/internal/shared/config"
	"skybook/internal/shared/database"
	"skybook/internal/shared/middleware"
	"skybook/internal/tickets"
	"skybook/internal/users"
	"skybook/pkg/cache"
	"skybook/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	publisher notifications.Publisher
	recorder  *metrics.Recorder

	auth         gin.HandlerFunc
	requireFleet gin.HandlerFunc
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, publisher notifications.Publisher, recorder *metrics.Recorder) *Router {
	return &Router{
		config:       cfg,
		db:           db,
		publisher:    publisher,
		recorder:     recorder,
		auth:         middleware.JWTAuth(cfg.JWT.Secret),
		requireFleet: middleware.RequireCapability(users.Role.CanManageFleet),
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	var cacheService cache.Service
	if r.db.Redis != nil {
		cacheService = cache.NewService(r.db.Redis)
	}

	sqlDB := r.db.SQL
	userRepo := users.NewRepository(sqlDB)
	aircraftRepo := aircraft.NewRepository(sqlDB)
	flightRepo := flights.NewRepository(sqlDB)
	passengerRepo := passengers.NewRepository(sqlDB)
	seatRepo := seats.NewRepository(sqlDB)
	reservationRepo := reservations.NewRepository(sqlDB)
	ticketRepo := tickets.NewRepository(sqlDB)

	renderer := tickets.Renderer{
		IssuerName: r.config.Tickets.IssuerName,
		QRSize:     r.config.Tickets.QRSize,
	}
	allocator := reservations.NewAllocator(reservationRepo, seatRepo, r.recorder)
	lifecycle := reservations.NewLifecycle(
		reservationRepo,
		seatRepo,
		tickets.NewIssuer(),
		tickets.NewDelivery(renderer, r.publisher),
		r.recorder,
	)
	intents := reservations.NewIntentStore(r.db.Redis, r.config.Redis.IntentTTL)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		users.SetupUserRoutes(api,
			users.NewController(users.NewService(userRepo)), r.auth)

		aircraft.SetupAircraftRoutes(api,
			aircraft.NewController(aircraft.NewService(aircraftRepo, cacheService)), r.auth, r.requireFleet)

		flights.SetupFlightRoutes(api,
			flights.NewController(flights.NewService(flightRepo, cacheService)), r.auth, r.requireFleet)

		passengers.SetupPassengerRoutes(api,
			passengers.NewController(passengers.NewService(passengerRepo)), r.auth)

		seats.SetupSeatRoutes(api,
			seats.NewController(seats.NewService(seatRepo, aircraftRepo, flightRepo, cacheService)), r.auth)

		reservations.SetupReservationRoutes(api,
			reservations.NewController(
				reservations.NewService(reservationRepo, flightRepo, allocator, intents),
				lifecycle,
			), r.auth)

		tickets.SetupTicketRoutes(api,
			tickets.NewController(tickets.NewService(ticketRepo, seatRepo, renderer)), r.auth)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "skybook-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "skybook-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":          "operational",
			"api_version":     r.config.APIVersion,
			"ticket_delivery": r.publisher.Describe(),
			"redis_connected": r.db.Redis != nil,
			"database_driver": r.config.Database.Driver,
			"timestamp":       time.Now(),
		})
	})

	if r.recorder != nil {
		engine.GET("/metrics", gin.WrapH(r.recorder.Handler()))
	}
}
