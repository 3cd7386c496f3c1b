package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/reachfood/reachfood-api/controllers"
)

func DefaultRoutes(server *gin.Engine, ctrl *controllers.DefaultController) {
	server.GET("/", ctrl.GetHome)
	server.GET("/health", ctrl.Health)
}
