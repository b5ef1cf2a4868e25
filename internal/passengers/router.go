package passengers

import "github.com/gin-gonic/gin"

func SetupPassengerRoutes(rg *gin.RouterGroup, controller *Controller, auth gin.HandlerFunc) {
	passengers := rg.Group("/passengers")
	passengers.Use(auth)
	{
		passengers.POST("", controller.Create)
		passengers.GET("", controller.List)
		passengers.GET("/:id", controller.Get)
	}
}
