package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/BUSAN-4/front-back/internal/middleware"
	"github.com/BUSAN-4/front-back/internal/service"

	"github.com/gin-gonic/gin"
)

// PoliceHandlers serves the missing-person detection feed for police
// organization admins.
type PoliceHandlers struct {
	s *service.DetectionService
}

func NewPoliceHandlers(detectionService *service.DetectionService) *PoliceHandlers {
	return &PoliceHandlers{s: detectionService}
}

type resultUpdateRequest struct {
	NewResult *bool   `json:"newResult" binding:"required"`
	Reason    *string `json:"reason"`
}

func detectionFilter(c *gin.Context) (service.DetectionFilter, bool) {
	success, ok := boolParam(c, "success")
	if !ok {
		return service.DetectionFilter{}, false
	}
	resolved, ok := boolParam(c, "resolved")
	if !ok {
		return service.DetectionFilter{}, false
	}
	start, ok := dateParam(c, "startDate")
	if !ok {
		return service.DetectionFilter{}, false
	}
	end, ok := dateParam(c, "endDate")
	if !ok {
		return service.DetectionFilter{}, false
	}
	return service.DetectionFilter{
		Page:      intParam(c, "page", 1),
		Limit:     intParam(c, "limit", 20),
		Success:   success,
		Resolved:  resolved,
		StartDate: start,
		EndDate:   end,
	}, true
}

// GET /api/police/detections
func (h *PoliceHandlers) List(c *gin.Context) {
	f, ok := detectionFilter(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filter parameter"})
		return
	}
	f.Subject = c.Query("missingId")

	page, err := h.s.ListMissingDetections(c, f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list detections"})
		return
	}
	c.JSON(http.StatusOK, page)
}

// GET /api/police/detections/recent?since=
func (h *PoliceHandlers) Recent(c *gin.Context) {
	since, ok := dateParam(c, "since")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid since"})
		return
	}
	if since == nil {
		t := time.Now().Add(-24 * time.Hour)
		since = &t
	}

	items, err := h.s.RecentMissingDetections(c, *since)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list detections"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"detections": items, "total": len(items)})
}

// PUT /api/police/detections/:detectionId/result
func (h *PoliceHandlers) UpdateResult(c *gin.Context) {
	var req resultUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.s.UpdateMissingResult(c, c.Param("detectionId"), *req.NewResult, req.Reason, middleware.CurrentUserID(c))
	switch {
	case errors.Is(err, service.ErrDetectionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update result"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Detection result updated"})
	}
}

// POST /api/police/detections/:detectionId/resolve
func (h *PoliceHandlers) Resolve(c *gin.Context) {
	err := h.s.ResolveMissingDetection(c, c.Param("detectionId"), middleware.CurrentUserID(c))
	switch {
	case errors.Is(err, service.ErrDetectionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAlreadyResolved):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve detection"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Detection resolved"})
	}
}

// GET /api/police/stats?year=&month=
func (h *PoliceHandlers) Stats(c *gin.Context) {
	year, month, ok := yearMonthParams(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year or month"})
		return
	}

	stats, err := h.s.MissingStats(c, year, month, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GET /api/police/stats/trend?year=&month=
func (h *PoliceHandlers) Trend(c *gin.Context) {
	year, month, ok := yearMonthParams(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year or month"})
		return
	}

	points, err := h.s.MissingTrend(c, year, month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute trend"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"trend": points})
}
