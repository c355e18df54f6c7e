package middleware

import (
	"net/http"
	"strings"

	"github.com/coderhafiz/Murajiah-sub001/internal/services"

	"github.com/gin-gonic/gin"
)

func JWTAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}

		userID, err := authService.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}

// RequireModeration gates a route group on moderation rights. The role is
// re-resolved from the store on every request; a demotion takes effect
// immediately.
func RequireModeration(roles *services.RoleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !roles.HasModerationRights(c.GetUint("user_id")) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "moderation rights required"})
			return
		}
		c.Next()
	}
}

func RequireAdmin(roles *services.RoleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !roles.IsAdmin(c.GetUint("user_id")) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin rights required"})
			return
		}
		c.Next()
	}
}

func RequireOwner(roles *services.RoleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !roles.IsOwner(c.GetUint("user_id")) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "owner rights required"})
			return
		}
		c.Next()
	}
}
