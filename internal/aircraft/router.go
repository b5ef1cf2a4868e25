package aircraft

import "github.com/gin-gonic/gin"

// SetupAircraftRoutes configures fleet routes. requireFleet must reject
// actors without the fleet capability.
func SetupAircraftRoutes(rg *gin.RouterGroup, controller *Controller, auth, requireFleet gin.HandlerFunc) {
	fleet := rg.Group("/aircraft")
	fleet.Use(auth)
	{
		fleet.GET("", controller.List)
		fleet.GET("/:id", controller.Get)

		fleet.POST("", requireFleet, controller.Create)
		fleet.PATCH("/:id", requireFleet, controller.Reconfigure)
		fleet.DELETE("/:id", requireFleet, controller.Delete)
		fleet.POST("/:id/seat-map", requireFleet, controller.EnsureSeatMap)
		fleet.PATCH("/:id/seats/:seatId", requireFleet, controller.UpdateSeatClass)
	}
}
