package handlers

import (
	"errors"
	"net/http"

	"log/slog"

	"github.com/BUSAN-4/front-back/internal/middleware"
	"github.com/BUSAN-4/front-back/internal/models"
	"github.com/BUSAN-4/front-back/internal/service"

	"github.com/gin-gonic/gin"
)

const refreshCookieName = "refresh_token"

type AuthHandlers struct {
	s          *service.UserService
	jwtService *service.JWTService
}

func NewAuthHandlers(userService *service.UserService, jwtService *service.JWTService) *AuthHandlers {
	return &AuthHandlers{
		s:          userService,
		jwtService: jwtService,
	}
}

// POST /api/auth/register
func (h *AuthHandlers) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("Invalid registration request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authResponse, err := h.s.RegisterWithTokens(c, &req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.setRefreshTokenCookie(c, authResponse.RefreshToken)

	c.JSON(http.StatusCreated, gin.H{
		"message":      "User registered successfully",
		"user":         authResponse.User,
		"access_token": authResponse.AccessToken,
		"token_type":   authResponse.TokenType,
		"expires_in":   authResponse.ExpiresIn,
	})
}

// POST /api/auth/login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authResponse, err := h.s.LoginWithTokens(c, &req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	h.setRefreshTokenCookie(c, authResponse.RefreshToken)

	c.JSON(http.StatusOK, gin.H{
		"message":      "Login successful",
		"user":         authResponse.User,
		"access_token": authResponse.AccessToken,
		"token_type":   authResponse.TokenType,
		"expires_in":   authResponse.ExpiresIn,
	})
}

// POST /api/auth/refresh
func (h *AuthHandlers) RefreshToken(c *gin.Context) {
	refreshToken, err := c.Cookie(refreshCookieName)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "refresh token required"})
		return
	}

	authResponse, err := h.s.RefreshToken(c, refreshToken)
	if err != nil {
		c.SetCookie(refreshCookieName, "", -1, "/", "", false, true)
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	h.setRefreshTokenCookie(c, authResponse.RefreshToken)

	c.JSON(http.StatusOK, gin.H{
		"access_token": authResponse.AccessToken,
		"token_type":   authResponse.TokenType,
		"expires_in":   authResponse.ExpiresIn,
	})
}

// POST /api/auth/logout
func (h *AuthHandlers) Logout(c *gin.Context) {
	c.SetCookie(refreshCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// GET /api/auth/me
func (h *AuthHandlers) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *AuthHandlers) setRefreshTokenCookie(c *gin.Context, refreshToken string) {
	c.SetCookie(
		refreshCookieName,
		refreshToken,
		7*24*60*60,
		"/",
		"",
		false, // secure, true behind HTTPS
		true,  // httpOnly
	)
}
