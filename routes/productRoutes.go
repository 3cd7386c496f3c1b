package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/reachfood/reachfood-api/controllers"
	"github.com/reachfood/reachfood-api/middlewares"
)

func ProductRoutes(server *gin.Engine, ctrl *controllers.ProductController, requireAuth gin.HandlerFunc) {
	server.GET("/products", ctrl.GetProducts)
	server.GET("/products/:id", ctrl.GetProduct)
	server.GET("/subscription-plans", ctrl.GetPlans)
	server.GET("/subscription-plans/:id", ctrl.GetPlan)

	admin := server.Group("/", requireAuth, middlewares.RequireAdmin())
	{
		admin.POST("/products", ctrl.CreateProduct)
		admin.PUT("/products/:id", ctrl.UpdateProduct)
		admin.POST("/products/:id/image", ctrl.UploadProductImage)
		admin.POST("/subscription-plans", ctrl.CreatePlan)
		admin.PUT("/subscription-plans/:id", ctrl.UpdatePlan)
	}
}
