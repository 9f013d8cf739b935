package middleware

import (
	"log"
	"net/http"

	"main/utils"

	"github.com/gin-gonic/gin"
)

// RecoveryMiddleware converts panics into 500 responses instead of killing
// the process.
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("ERROR: [HTTP] Panic on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
				utils.TrackError("http", "panic_recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "internal server error",
				})
			}
		}()
		c.Next()
	}
}
