package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"control_gastos/internal/utils" // JWT utility functions

	"github.com/gin-gonic/gin" // Gin web framework
)

// UsernameKey is the gin context key holding the authenticated username
const UsernameKey = "username"

// JWTAuthMiddleware validates bearer tokens and stores the username in the context
func JWTAuthMiddleware(tokens *utils.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Falta el encabezado Authorization o no es válido"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string
		username, err := tokens.ParseJWT(tokenStr)            // Verify signature, method and expiry
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token inválido o expirado"})
			return
		}
		c.Set(UsernameKey, username) // Store username in context
		c.Next()                     // Proceed to the next handler
	}
}
