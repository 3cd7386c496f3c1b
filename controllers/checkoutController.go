package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reachfood/reachfood-api/services"
)

type CheckoutController struct {
	checkout *services.CheckoutService
}

func NewCheckoutController(checkout *services.CheckoutService) *CheckoutController {
	return &CheckoutController{checkout: checkout}
}

func (c *CheckoutController) UpsertSession(ctx *gin.Context) {
	var body struct {
		SessionID string `json:"sessionId" binding:"required"`
		services.UpsertSessionInput
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		log.Println("Bind error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	session, err := c.checkout.UpsertSession(body.SessionID, body.UpsertSessionInput)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	sendData(ctx, http.StatusOK, session)
}

func (c *CheckoutController) MarkAbandoned(ctx *gin.Context) {
	var body struct {
		SessionID       string `json:"sessionId" binding:"required"`
		AbandonedAtStep int    `json:"abandonedAtStep"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if err := c.checkout.MarkAbandoned(body.SessionID, body.AbandonedAtStep); err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

func (c *CheckoutController) CompleteSession(ctx *gin.Context) {
	var body struct {
		SessionID   string `json:"sessionId" binding:"required"`
		OrderNumber string `json:"orderNumber" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if err := c.checkout.CompleteSession(body.SessionID, body.OrderNumber); err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

func (c *CheckoutController) GetAbandonmentStats(ctx *gin.Context) {
	stats, err := c.checkout.GetAbandonmentStats()
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	sendData(ctx, http.StatusOK, stats)
}
