package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sangkips/salay-pos/internal/presentation/http/middleware"
)

// GetClerk extracts the authenticated clerk from the Gin context
func GetClerk(c *gin.Context) string {
	return c.GetString(middleware.ClerkKey)
}

// parseID reads the :id path parameter as a transaction id.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
