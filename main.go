package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/reachfood/reachfood-api/controllers"
	"github.com/reachfood/reachfood-api/initializers"
	"github.com/reachfood/reachfood-api/middlewares"
	"github.com/reachfood/reachfood-api/routes"
	"github.com/reachfood/reachfood-api/services"
)

func main() {
	initializers.LoadEnv()

	db, err := initializers.ConnectToDB()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := initializers.SyncDatabase(db); err != nil {
		log.Fatal("Failed to sync database:", err)
	}
	if err := initializers.SeedDatabase(db); err != nil {
		log.Fatal("Failed to seed database:", err)
	}

	authService := services.NewAuthService(db)
	orderService := services.NewOrderService(db)
	checkoutService := services.NewCheckoutService(db)
	productService := services.NewProductService(db)
	customerService := services.NewCustomerService(db)

	server := gin.Default()

	allowOrigins := []string{"http://localhost:5173"}
	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowOrigins = append(allowOrigins, frontendURL)
	}
	server.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	requireAuth := middlewares.RequireAuth(authService)

	routes.DefaultRoutes(server, controllers.NewDefaultController(db))
	routes.AuthRoutes(server, controllers.NewAuthController(authService), requireAuth)
	routes.ProductRoutes(server, controllers.NewProductController(productService), requireAuth)
	routes.OrderRoutes(server, controllers.NewOrderController(orderService), requireAuth)
	routes.CustomerRoutes(server, controllers.NewCustomerController(customerService), requireAuth)
	routes.CheckoutRoutes(server, controllers.NewCheckoutController(checkoutService), requireAuth)

	server.Run()
}
