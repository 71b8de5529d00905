package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/BUSAN-4/front-back/internal/middleware"
	"github.com/BUSAN-4/front-back/internal/models"
	"github.com/BUSAN-4/front-back/internal/service"

	"github.com/gin-gonic/gin"
)

type VehicleHandlers struct {
	s *service.VehicleService
}

func NewVehicleHandlers(vehicleService *service.VehicleService) *VehicleHandlers {
	return &VehicleHandlers{s: vehicleService}
}

// POST /api/vehicles
func (h *VehicleHandlers) Register(c *gin.Context) {
	var req models.VehicleCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vehicle, err := h.s.Register(c, middleware.CurrentUserID(c), &req)
	switch {
	case errors.Is(err, service.ErrInvalidVehicleType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPlateTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register vehicle"})
	default:
		c.JSON(http.StatusCreated, vehicle)
	}
}

// GET /api/vehicles
func (h *VehicleHandlers) List(c *gin.Context) {
	vehicles, err := h.s.ListByUser(c, middleware.CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list vehicles"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicles": vehicles, "total": len(vehicles)})
}

// GET /api/vehicles/:id
func (h *VehicleHandlers) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vehicle id"})
		return
	}

	vehicle, err := h.s.GetForUser(c, id, middleware.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrVehicleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load vehicle"})
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

// PUT /api/vehicles/:id
func (h *VehicleHandlers) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vehicle id"})
		return
	}

	var req models.VehicleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vehicle, err := h.s.Update(c, id, middleware.CurrentUserID(c), &req)
	switch {
	case errors.Is(err, service.ErrVehicleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidVehicleType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPlateTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update vehicle"})
	default:
		c.JSON(http.StatusOK, vehicle)
	}
}

// DELETE /api/vehicles/:id
func (h *VehicleHandlers) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vehicle id"})
		return
	}

	err = h.s.Delete(c, id, middleware.CurrentUserID(c))
	switch {
	case errors.Is(err, service.ErrVehicleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete vehicle"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted"})
	}
}
