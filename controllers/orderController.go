package controllers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/reachfood/reachfood-api/models"
	"github.com/reachfood/reachfood-api/services"
	"github.com/reachfood/reachfood-api/utils"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// sendOrderConfirmationEmail is best-effort: failures are logged, never fatal
// to the request.
func sendOrderConfirmationEmail(order *models.Order) {
	if os.Getenv("SMTP_ADDRESS") == "" {
		return
	}

	emailData := utils.EmailData{
		Name:        order.Customer.FirstName,
		Message:     "Thank you for your order! We will deliver it to you soon. Payment is collected on delivery.",
		OrderNumber: order.OrderNumber,
		Total:       strconv.FormatFloat(order.Total, 'f', 2, 64),
		LogoURL:     os.Getenv("FRONTEND_URL") + "/images/logo.jpg",
	}

	templatePath := filepath.Join("templates", "order_confirmation.html")
	if err := utils.SendEmail(order.Customer.Email, "Your ReachFood order "+order.OrderNumber, emailData, templatePath); err != nil {
		log.Println("Error sending order confirmation email:", err)
	} else {
		log.Println("Order confirmation email sent to:", order.Customer.Email)
	}
}

func (c *OrderController) CreateOrder(ctx *gin.Context) {
	var input services.CreateOrderInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		log.Println("Bind error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	order, err := c.orders.CreateOrder(input)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	sendOrderConfirmationEmail(order)
	if err := utils.NotifyOrderCreated(order); err != nil {
		log.Println("Order webhook notification failed:", err)
	}

	sendData(ctx, http.StatusCreated, order)
}

func (c *OrderController) GetOrders(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	customerID, _ := strconv.ParseUint(ctx.Query("customerId"), 10, 64)

	params := services.OrderListParams{
		Page:       page,
		Limit:      limit,
		SortBy:     ctx.DefaultQuery("sortBy", "createdAt"),
		SortOrder:  ctx.DefaultQuery("sortOrder", "desc"),
		Status:     ctx.Query("status"),
		OrderType:  ctx.Query("orderType"),
		CustomerID: uint(customerID),
	}

	orders, pagination, err := c.orders.GetOrders(params)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	sendPage(ctx, orders, pagination)
}

func (c *OrderController) GetOrderByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	order, err := c.orders.GetOrderByID(id)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	sendData(ctx, http.StatusOK, order)
}

func (c *OrderController) GetOrderByNumber(ctx *gin.Context) {
	order, err := c.orders.GetOrderByNumber(ctx.Param("orderNumber"))
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	sendData(ctx, http.StatusOK, order)
}

func (c *OrderController) UpdateOrderStatus(ctx *gin.Context) {
	var body struct {
		Status string `json:"status" binding:"required"`
		Notes  string `json:"notes"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	order, err := c.orders.UpdateOrderStatus(id, body.Status, body.Notes)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	sendData(ctx, http.StatusOK, order)
}

func (c *OrderController) AddTrackingUpdate(ctx *gin.Context) {
	var body struct {
		Status   string `json:"status" binding:"required"`
		Location string `json:"location"`
		Notes    string `json:"notes"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	tracking, err := c.orders.AddTrackingUpdate(id, body.Status, body.Location, body.Notes)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	sendData(ctx, http.StatusCreated, tracking)
}

func (c *OrderController) GetOrderStats(ctx *gin.Context) {
	stats, err := c.orders.GetOrderStats()
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	sendData(ctx, http.StatusOK, stats)
}
