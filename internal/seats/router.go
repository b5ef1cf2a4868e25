package seats

import "github.com/gin-gonic/gin"

func SetupSeatRoutes(rg *gin.RouterGroup, controller *Controller, auth gin.HandlerFunc) {
	rg.GET("/aircraft/:id/seat-map", auth, controller.AircraftSeatMap)
	rg.GET("/flights/:id/seats", controller.FlightSeats)
}
