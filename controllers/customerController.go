package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/reachfood/reachfood-api/services"
)

type CustomerController struct {
	customers *services.CustomerService
}

func NewCustomerController(customers *services.CustomerService) *CustomerController {
	return &CustomerController{customers: customers}
}

func (c *CustomerController) GetCustomers(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	customers, pagination, err := c.customers.GetCustomers(page, limit, ctx.Query("search"))
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	sendPage(ctx, customers, pagination)
}

func (c *CustomerController) GetCustomer(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	customer, err := c.customers.GetCustomerByID(id)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	sendData(ctx, http.StatusOK, customer)
}
