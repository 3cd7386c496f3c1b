package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reachfood/reachfood-api/middlewares"
	"github.com/reachfood/reachfood-api/services"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

func (c *AuthController) Login(ctx *gin.Context) {
	var body struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		log.Println("Bind error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	result, err := c.auth.Login(body.Email, body.Password)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	sendData(ctx, http.StatusOK, result)
}

func (c *AuthController) Refresh(ctx *gin.Context) {
	var body struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	accessToken, err := c.auth.RefreshAccessToken(body.RefreshToken)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	sendData(ctx, http.StatusOK, gin.H{"accessToken": accessToken})
}

func (c *AuthController) GetProfile(ctx *gin.Context) {
	claims, ok := middlewares.ClaimsFromContext(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	profile, err := c.auth.GetProfile(claims.UserID)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	sendData(ctx, http.StatusOK, profile)
}

func (c *AuthController) ChangePassword(ctx *gin.Context) {
	var body struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required,min=8"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	claims, ok := middlewares.ClaimsFromContext(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	if err := c.auth.ChangePassword(claims.UserID, body.CurrentPassword, body.NewPassword); err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	sendMessage(ctx, http.StatusOK, "Password changed successfully")
}

func (c *AuthController) Register(ctx *gin.Context) {
	var input services.CreateAdminInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	profile, err := c.auth.CreateAdmin(input)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	sendData(ctx, http.StatusCreated, profile)
}
