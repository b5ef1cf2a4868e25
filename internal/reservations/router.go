package reservations

import "github.com/gin-gonic/gin"

// SetupReservationRoutes configures booking routes. Every route needs auth;
// role checks happen in the service.
func SetupReservationRoutes(rg *gin.RouterGroup, controller *Controller, auth gin.HandlerFunc) {
	reservations := rg.Group("/reservations")
	reservations.Use(auth)
	{
		reservations.POST("", controller.Create)
		reservations.GET("", controller.List)
		reservations.GET("/history", controller.History)
		reservations.GET("/:id", controller.Get)
		reservations.POST("/:id/confirm", controller.Confirm)
		reservations.POST("/:id/cancel", controller.Cancel)
	}

	flights := rg.Group("/flights")
	{
		flights.POST("/:id/intents", auth, controller.DeclareIntent)
		flights.GET("/:id/manifest", auth, controller.Manifest)
	}
}
