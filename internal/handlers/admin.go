package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/BUSAN-4/front-back/internal/middleware"
	"github.com/BUSAN-4/front-back/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminHandlers serves the system-admin account management endpoints.
type AdminHandlers struct {
	s *service.UserService
}

func NewAdminHandlers(userService *service.UserService) *AdminHandlers {
	return &AdminHandlers{s: userService}
}

// GET /api/users?search=
func (h *AdminHandlers) ListUsers(c *gin.Context) {
	users, err := h.s.ListUsers(c, c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "total": len(users)})
}

// DELETE /api/users/:id
func (h *AdminHandlers) DeleteUser(c *gin.Context) {
	targetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	err = h.s.DeleteUser(c, middleware.CurrentUserID(c), targetID)
	switch {
	case errors.Is(err, service.ErrCannotDeleteSelf):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete user"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
	}
}

type roleUpdateRequest struct {
	Role string `json:"role" binding:"required"`
}

// PUT /api/users/:id/role
func (h *AdminHandlers) UpdateRole(c *gin.Context) {
	targetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var req roleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.s.UpdateRole(c, targetID, req.Role)
	switch {
	case errors.Is(err, service.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update role"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Role updated", "user": user})
	}
}
