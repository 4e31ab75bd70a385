package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campustrack/campustrack/internal/app/models/dto"
	"github.com/campustrack/campustrack/internal/app/services"
	"github.com/campustrack/campustrack/internal/middleware"
)

// AuthController handles authentication operations
type AuthController struct {
	authService services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Register handles account creation
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	user, err := c.authService.Register(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(user, "Account created"))
}

// Login verifies credentials and returns a token pair
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	resp, err := c.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Login successful"))
}

// Logout acknowledges a logout. Access tokens are stateless; the client
// drops its copy.
func (c *AuthController) Logout(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Logged out"))
}

// Me returns the authenticated account
func (c *AuthController) Me(ctx *gin.Context) {
	userID := ctx.GetString(middleware.ContextUserID)

	user, err := c.authService.GetUserByID(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(user, ""))
}
