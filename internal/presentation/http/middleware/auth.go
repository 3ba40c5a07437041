package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sangkips/salay-pos/internal/presentation/http/dto/response"
)

// ClerkKey is the gin context key holding the authenticated clerk.
const ClerkKey = "clerk"

// TokenAuthenticator validates a bearer token and names its clerk.
type TokenAuthenticator interface {
	Enabled() bool
	Authenticate(token string) (string, error)
}

// AuthMiddleware requires a clerk token when clerk login is enabled. With
// login disabled every request passes through.
func AuthMiddleware(auth TokenAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.Enabled() {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			return
		}

		clerk, err := auth.Authenticate(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(ClerkKey, clerk)
		c.Next()
	}
}

// ClientKey identifies the caller for rate limiting and idempotency: the
// clerk when authenticated, otherwise the client IP.
func ClientKey(c *gin.Context) string {
	if clerk := c.GetString(ClerkKey); clerk != "" {
		return "clerk:" + clerk
	}
	return "ip:" + c.ClientIP()
}
