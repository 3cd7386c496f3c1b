package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/reachfood/reachfood-api/controllers"
	"github.com/reachfood/reachfood-api/middlewares"
)

func AuthRoutes(server *gin.Engine, ctrl *controllers.AuthController, requireAuth gin.HandlerFunc) {
	auth := server.Group("/auth")
	{
		auth.POST("/login", ctrl.Login)
		auth.POST("/refresh", ctrl.Refresh)
		auth.GET("/profile", requireAuth, ctrl.GetProfile)
		auth.POST("/change-password", requireAuth, ctrl.ChangePassword)
		auth.POST("/register", requireAuth, middlewares.RequireSuperAdmin(), ctrl.Register)
	}
}
