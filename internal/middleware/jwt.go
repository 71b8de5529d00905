package middleware

import (
	"net/http"
	"strings"

	"log/slog"

	"github.com/BUSAN-4/front-back/internal/models"
	"github.com/BUSAN-4/front-back/internal/service"

	"github.com/gin-gonic/gin"
)

type JWTMiddleware struct {
	jwtService  *service.JWTService
	userService *service.UserService
}

func NewJWTMiddleware(jwtService *service.JWTService, userService *service.UserService) *JWTMiddleware {
	return &JWTMiddleware{
		jwtService:  jwtService,
		userService: userService,
	}
}

// RequireAuth validates the bearer token and loads the account behind it
// into the request context.
func (m *JWTMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := m.extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization token required"})
			c.Abort()
			return
		}

		claims, err := m.jwtService.ValidateToken(token)
		if err != nil {
			slog.Warn("Invalid token", "error", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		user, err := m.userService.GetUserByID(c, claims.UserID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			c.Abort()
			return
		}
		if !user.IsActive {
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is deactivated"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user", user)
		c.Set("claims", claims)

		c.Next()
	}
}

// RequireAdminOf allows only ADMIN accounts of the given organizations.
// Must run after RequireAuth.
func (m *JWTMiddleware) RequireAdminOf(orgs ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization required"})
			c.Abort()
			return
		}
		if !user.IsAdminOf(orgs...) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireGeneralRole allows only GENERAL accounts. The personal driving
// endpoints have no meaning for organization admins.
func (m *JWTMiddleware) RequireGeneralRole() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization required"})
			c.Abort()
			return
		}
		if user.Role != models.RoleGeneral {
			c.JSON(http.StatusForbidden, gin.H{"error": "Endpoint is for general users only"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated account from the request context,
// or nil outside an authenticated route.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get("user")
	if !ok {
		return nil
	}
	user, ok := v.(*models.User)
	if !ok {
		return nil
	}
	return user
}

// CurrentUserID returns the authenticated account id, or 0.
func CurrentUserID(c *gin.Context) int {
	return c.GetInt("user_id")
}

func (m *JWTMiddleware) extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if bearerToken != "" {
		tokenParts := strings.Split(bearerToken, " ")
		if len(tokenParts) == 2 && strings.ToLower(tokenParts[0]) == "bearer" {
			return tokenParts[1]
		}
	}
	return ""
}
