package tickets

import "github.com/gin-gonic/gin"

func SetupTicketRoutes(rg *gin.RouterGroup, controller *Controller, auth gin.HandlerFunc) {
	tickets := rg.Group("/tickets")
	tickets.Use(auth)
	{
		tickets.GET("/:id", controller.Get)
		tickets.GET("/:id/pdf", controller.Download)
		tickets.POST("/:id/board", controller.Board)
	}

	rg.GET("/reservations/:id/ticket", auth, controller.GetByReservation)
}
