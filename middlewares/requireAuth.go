package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/reachfood/reachfood-api/services"
)

const claimsKey = "claims"

// RequireAuth validates the Bearer access token and stores its claims in the
// request context.
func RequireAuth(auth *services.AuthService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Missing access token"})
			return
		}

		claims, err := auth.VerifyAccessToken(token)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": err.Error()})
			return
		}

		ctx.Set(claimsKey, claims)
		ctx.Next()
	}
}

func ClaimsFromContext(ctx *gin.Context) (*services.TokenClaims, bool) {
	value, exists := ctx.Get(claimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*services.TokenClaims)
	return claims, ok
}
