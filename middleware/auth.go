package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AryanYadav09/Ecommerce/services"
)

const UserContextKey = "userID"

// tokenFromRequest accepts either the legacy "token" header or a standard
// Authorization bearer header; storefront clients send the former.
func tokenFromRequest(c *gin.Context) string {
	if token := c.GetHeader("token"); token != "" {
		return token
	}
	auth := c.GetHeader("Authorization")
	return strings.TrimPrefix(auth, "Bearer ")
}

// AuthUser validates a user token and stores the caller's id in the context.
func AuthUser(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := tokenFromRequest(c)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authorized, login again"})
			return
		}

		claims, err := tokens.ValidateToken(tokenStr, "user")
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authorized, login again"})
			return
		}

		userID, _ := claims["id"].(string)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authorized, login again"})
			return
		}

		c.Set(UserContextKey, userID)
		c.Next()
	}
}

// AuthAdmin validates an admin token.
func AuthAdmin(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := tokenFromRequest(c)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			return
		}

		if _, err := tokens.ValidateToken(tokenStr, "admin"); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			return
		}
		c.Next()
	}
}

// GetUserID returns the authenticated user's id from the gin context.
func GetUserID(c *gin.Context) (string, error) {
	if val, ok := c.Get(UserContextKey); ok {
		if id, ok := val.(string); ok && id != "" {
			return id, nil
		}
	}
	return "", errors.New("user ID not found in context")
}
