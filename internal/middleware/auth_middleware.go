package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/studybridge/crm-backend/internal/config"
	"github.com/studybridge/crm-backend/internal/models"
	"github.com/studybridge/crm-backend/internal/utils"
)

func unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{Success: false, Error: msg})
}

// JWTAuthMiddleware validates the Bearer token and stores the caller's user
// id under "userID" in the request context
func JWTAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "Authorization header is required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			unauthorized(c, "Authorization header format must be Bearer {token}")
			return
		}

		claims, err := utils.ValidateJWT(parts[1], cfg)
		if err != nil {
			unauthorized(c, "Invalid token")
			return
		}

		sub, ok := claims["sub"].(string)
		if !ok || sub == "" {
			unauthorized(c, "Invalid token")
			return
		}

		c.Set("claims", claims)
		c.Set("userID", sub)
		c.Next()
	}
}
