package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HeaderAPIKey is the shared-secret header checked on protected routes.
const HeaderAPIKey = "X-API-Key"

// APIKeyAuth returns middleware that rejects requests whose X-API-Key
// header does not match the configured secret.
func APIKeyAuth(key string) gin.HandlerFunc {
	secret := []byte(key)
	return func(c *gin.Context) {
		provided := []byte(c.GetHeader(HeaderAPIKey))
		if subtle.ConstantTimeCompare(provided, secret) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Status:  "error",
				Message: "Invalid API key or malformed request",
			})
			return
		}
		c.Next()
	}
}
