package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DefaultController struct {
	db *gorm.DB
}

func NewDefaultController(db *gorm.DB) *DefaultController {
	return &DefaultController{db: db}
}

func (c *DefaultController) GetHome(ctx *gin.Context) {
	message := `Welcome to the ReachFood API ❤️. Enjoy seamless interaction with this API.

The following are the endpoints for this API:

AUTH
- POST "/auth/login" - Admin login
- POST "/auth/refresh" - Refresh the access token
- GET "/auth/profile" - Current admin profile
- POST "/auth/change-password" - Change password
- POST "/auth/register" - Create an admin account (super admin)

CATALOG
- GET "/products" - List products
- GET "/products/{id}" - Get product by ID
- GET "/subscription-plans" - List subscription plans
- GET "/subscription-plans/{id}" - Get plan by ID
- POST "/products", PUT "/products/{id}", POST "/products/{id}/image" - Admin catalog management
- POST "/subscription-plans", PUT "/subscription-plans/{id}" - Admin plan management

ORDERS
- POST "/orders" - Create a new order (cash on delivery)
- GET "/track/{orderNumber}" - Track an order
- GET "/orders" - List orders (admin)
- GET "/orders/{id}" - Get order by ID (admin)
- PATCH "/orders/{id}/status" - Update order status (admin)
- POST "/orders/{id}/tracking" - Add a tracking update (admin)
- GET "/orders/stats" - Order statistics (admin)

CUSTOMERS
- GET "/customers" - List customers (admin)
- GET "/customers/{id}" - Get customer with order history (admin)

CHECKOUT TRACKING
- POST "/checkout/session" - Upsert a checkout session
- POST "/checkout/abandon" - Mark a session abandoned
- POST "/checkout/complete" - Link a session to its order
- GET "/checkout/stats" - Abandonment statistics (admin)`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}

// Health reports liveness plus a live database ping.
func (c *DefaultController) Health(ctx *gin.Context) {
	sqlDB, err := c.db.DB()
	if err == nil {
		err = sqlDB.Ping()
	}

	if err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"success":   false,
			"message":   "API is running but database is unavailable",
			"database":  "disconnected",
			"timestamp": time.Now().Format(time.RFC3339),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "API is running",
		"database":  "connected",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
