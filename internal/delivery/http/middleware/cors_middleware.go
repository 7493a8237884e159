package middleware

import (
	"github.com/gin-gonic/gin"
)

// CORSMiddleware allows the configured frontend origin plus local dev hosts.
// Requests from other origins get no CORS headers and are blocked by the
// browser.
func CORSMiddleware(frontendURL string) gin.HandlerFunc {
	allowed := map[string]bool{
		"http://localhost:3000": true,
		"http://localhost:5173": true,
		"http://127.0.0.1:3000": true,
		"http://127.0.0.1:5173": true,
	}
	if frontendURL != "" {
		allowed[frontendURL] = true
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		// Same-origin requests carry no Origin header.
		if origin == "" || allowed[origin] {
			if origin != "" {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept, Origin, X-Request-ID")
				c.Header("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
				c.Header("Access-Control-Max-Age", "86400")
			}
			c.Header("Vary", "Origin")

			if c.Request.Method == "OPTIONS" {
				c.AbortWithStatus(204)
				return
			}
			c.Next()
			return
		}

		c.Header("Vary", "Origin")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(403)
			return
		}
		c.Next()
	}
}
