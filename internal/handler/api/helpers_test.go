//go:build unit

package api_test

import (
	"net/http"

	"stay-calendar/internal/domain/user"

	"github.com/gin-gonic/gin"
)

const testToken = "bearer-token"

// mockAuth stands in for RequireAuth: any bearer token authenticates as actor.
func mockAuth(actor *user.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", actor.ID)
		c.Set("user_role", actor.Role)
		c.Next()
	}
}

// mockOptionalAuth stands in for OptionalAuth.
func mockOptionalAuth(actor *user.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			c.Set("user_id", actor.ID)
			c.Set("user_role", actor.Role)
		}
		c.Next()
	}
}
