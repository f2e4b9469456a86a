package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware sets the CORS headers for the catalog API. In production
// only origins listed in ALLOWED_ORIGINS (comma separated) are echoed back;
// everywhere else any origin is accepted so the dashboard can run against a
// local API.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if os.Getenv("ENVIRONMENT") == "production" {
			if originAllowed(origin, os.Getenv("ALLOWED_ORIGINS")) {
				c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			}
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Vary", "Origin")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Content-Length")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func originAllowed(origin, allowedList string) bool {
	if origin == "" {
		return false
	}
	for _, allowed := range strings.Split(allowedList, ",") {
		if strings.TrimSpace(allowed) == origin {
			return true
		}
	}
	return false
}
