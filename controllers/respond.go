package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reachfood/reachfood-api/utils"
)

const msgInvalidInput = "Invalid request body"

func sendData(ctx *gin.Context, status int, data any) {
	ctx.JSON(status, gin.H{"success": true, "data": data})
}

func sendMessage(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"success": true, "message": message})
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"success": false, "message": message})
}

// respondWithServiceError maps an AppError to its HTTP status; anything else
// is logged and surfaces as a 500.
func respondWithServiceError(ctx *gin.Context, err error) {
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		sendErrorResponse(ctx, appErr.StatusCode, appErr.Message)
		return
	}
	log.Println("Unexpected service error:", err)
	sendErrorResponse(ctx, http.StatusInternalServerError, "Internal server error")
}

func sendPage(ctx *gin.Context, data any, pagination any) {
	ctx.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       data,
		"pagination": pagination,
	})
}
