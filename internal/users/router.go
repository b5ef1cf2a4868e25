package users

import "github.com/gin-gonic/gin"

// SetupUserRoutes configures account routes. auth must populate the actor.
func SetupUserRoutes(rg *gin.RouterGroup, controller *Controller, auth gin.HandlerFunc) {
	users := rg.Group("/users")
	users.Use(auth)
	{
		users.GET("/me", controller.Me)
		users.GET("", controller.List)
		users.POST("", controller.Create)
		users.PATCH("/:id/role", controller.ChangeRole)
	}
}
