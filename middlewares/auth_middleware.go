package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

// AuthMiddleware requires a "Bearer <jwt>" Authorization header.
func AuthMiddleware(tokens *utils.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			utils.RespondError(c, utils.Unauthorized("Authorization header missing"))
			return
		}
		if !strings.HasPrefix(header, "Bearer ") {
			utils.RespondError(c, utils.Unauthorized("Invalid authorization format"))
			return
		}

		claims, err := tokens.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			utils.RespondError(c, utils.Unauthorized("Invalid or expired token"))
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// RequireRole lets through only the listed roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		utils.RespondError(c, utils.Forbidden("You do not have permission"))
	}
}
