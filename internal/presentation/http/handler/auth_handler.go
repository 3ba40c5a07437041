package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sangkips/salay-pos/internal/application/service"
	"github.com/sangkips/salay-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/salay-pos/internal/presentation/http/dto/response"
)

// AuthHandler handles clerk login
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login exchanges the clerk PIN for a token
// @Summary Login
// @Description Exchange the shop clerk PIN for a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Clerk and PIN"
// @Success 200 {object} service.LoginOutput
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	output, err := h.authService.Login(c.Request.Context(), req.Clerk, req.PIN)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"token":      output.Token,
		"token_type": "Bearer",
		"clerk":      output.Clerk,
		"expires_at": output.ExpiresAt,
	})
}
