package handlers

import (
	"errors"
	"net/http"

	"github.com/BUSAN-4/front-back/internal/middleware"
	"github.com/BUSAN-4/front-back/internal/service"

	"github.com/gin-gonic/gin"
)

// SafetyHandlers serves the personal driving-score endpoints.
type SafetyHandlers struct {
	s *service.SafetyService
}

func NewSafetyHandlers(safetyService *service.SafetyService) *SafetyHandlers {
	return &SafetyHandlers{s: safetyService}
}

// GET /api/trips/scores?year=&month=
func (h *SafetyHandlers) MonthlyScores(c *gin.Context) {
	year, month, ok := yearMonthParams(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year or month"})
		return
	}

	scores, err := h.s.MonthlySessionScores(c, middleware.CurrentUserID(c), year, month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute scores"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"year":   year,
		"month":  month,
		"scores": scores,
		"total":  len(scores),
	})
}

// GET /api/trips/scores/:sessionId
func (h *SafetyHandlers) ScoreDetail(c *gin.Context) {
	detail, err := h.s.SessionDetail(c, middleware.CurrentUserID(c), c.Param("sessionId"))
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSessionNotOwned):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute score"})
	default:
		c.JSON(http.StatusOK, detail)
	}
}
