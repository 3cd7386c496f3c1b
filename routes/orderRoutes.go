package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/reachfood/reachfood-api/controllers"
	"github.com/reachfood/reachfood-api/middlewares"
)

func OrderRoutes(server *gin.Engine, ctrl *controllers.OrderController, requireAuth gin.HandlerFunc) {
	server.POST("/orders", ctrl.CreateOrder)
	server.GET("/track/:orderNumber", ctrl.GetOrderByNumber)

	admin := server.Group("/orders", requireAuth, middlewares.RequireAdmin())
	{
		admin.GET("", ctrl.GetOrders)
		admin.GET("/stats", ctrl.GetOrderStats)
		admin.GET("/:id", ctrl.GetOrderByID)
		admin.PATCH("/:id/status", ctrl.UpdateOrderStatus)
		admin.POST("/:id/tracking", ctrl.AddTrackingUpdate)
	}
}
