package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/reachfood/reachfood-api/controllers"
	"github.com/reachfood/reachfood-api/middlewares"
)

func CustomerRoutes(server *gin.Engine, ctrl *controllers.CustomerController, requireAuth gin.HandlerFunc) {
	admin := server.Group("/customers", requireAuth, middlewares.RequireAdmin())
	{
		admin.GET("", ctrl.GetCustomers)
		admin.GET("/:id", ctrl.GetCustomer)
	}
}
