package flights

import "github.com/gin-gonic/gin"

// SetupFlightRoutes configures flight routes. Search and detail are public.
func SetupFlightRoutes(rg *gin.RouterGroup, controller *Controller, auth, requireFleet gin.HandlerFunc) {
	flights := rg.Group("/flights")
	{
		flights.GET("", controller.Search)
		flights.GET("/:id", controller.Get)

		flights.POST("", auth, requireFleet, controller.Create)
		flights.PUT("/:id", auth, requireFleet, controller.Update)
		flights.PATCH("/:id/status", auth, requireFleet, controller.ChangeStatus)
	}
}
