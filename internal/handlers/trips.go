package handlers

import (
	"errors"
	"net/http"

	"github.com/BUSAN-4/front-back/internal/middleware"
	"github.com/BUSAN-4/front-back/internal/service"

	"github.com/gin-gonic/gin"
)

// TripHandlers serves the raw trip listings behind the driving-history UI.
type TripHandlers struct {
	s *service.SafetyService
}

func NewTripHandlers(safetyService *service.SafetyService) *TripHandlers {
	return &TripHandlers{s: safetyService}
}

// GET /api/trips?carId=&startDate=&endDate=
func (h *TripHandlers) List(c *gin.Context) {
	start, ok := dateParam(c, "startDate")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid startDate"})
		return
	}
	end, ok := dateParam(c, "endDate")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid endDate"})
		return
	}

	sessions, err := h.s.UserSessions(c, middleware.CurrentUserID(c), service.SessionFilter{
		CarID:     c.Query("carId"),
		SessionID: c.Query("sessionId"),
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list trips"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": sessions, "total": len(sessions)})
}

// GET /api/trips/:sessionId
func (h *TripHandlers) Detail(c *gin.Context) {
	timeline, err := h.s.SessionTimeline(c, middleware.CurrentUserID(c), c.Param("sessionId"))
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSessionNotOwned):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load trip"})
	default:
		c.JSON(http.StatusOK, timeline)
	}
}
