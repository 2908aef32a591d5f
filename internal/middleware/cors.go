package middleware

import (
	"time" // Preflight cache duration

	"github.com/gin-contrib/cors" // CORS handling for gin
	"github.com/gin-gonic/gin"    // Gin web framework
)

// CORSMiddleware admits cross-origin requests from the frontend origin only.
// Requests carrying any other Origin are rejected with 403.
func CORSMiddleware(origin string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     []string{origin},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
