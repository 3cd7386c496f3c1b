package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/reachfood/reachfood-api/controllers"
	"github.com/reachfood/reachfood-api/middlewares"
)

func CheckoutRoutes(server *gin.Engine, ctrl *controllers.CheckoutController, requireAuth gin.HandlerFunc) {
	checkout := server.Group("/checkout")
	{
		checkout.POST("/session", ctrl.UpsertSession)
		checkout.POST("/abandon", ctrl.MarkAbandoned)
		checkout.POST("/complete", ctrl.CompleteSession)
		checkout.GET("/stats", requireAuth, middlewares.RequireAdmin(), ctrl.GetAbandonmentStats)
	}
}
