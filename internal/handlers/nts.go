package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/BUSAN-4/front-back/internal/middleware"
	"github.com/BUSAN-4/front-back/internal/service"

	"github.com/gin-gonic/gin"
)

// NTSHandlers serves the vehicle-tax arrears detection feed for national
// tax service admins.
type NTSHandlers struct {
	s *service.DetectionService
}

func NewNTSHandlers(detectionService *service.DetectionService) *NTSHandlers {
	return &NTSHandlers{s: detectionService}
}

// GET /api/nts/detections
func (h *NTSHandlers) List(c *gin.Context) {
	f, ok := detectionFilter(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filter parameter"})
		return
	}
	f.Subject = c.Query("carPlateNumber")

	page, err := h.s.ListArrearsDetections(c, f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list detections"})
		return
	}
	c.JSON(http.StatusOK, page)
}

// GET /api/nts/detections/recent?since=
func (h *NTSHandlers) Recent(c *gin.Context) {
	since, ok := dateParam(c, "since")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid since"})
		return
	}
	if since == nil {
		t := time.Now().Add(-24 * time.Hour)
		since = &t
	}

	items, err := h.s.RecentArrearsDetections(c, *since)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list detections"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"detections": items, "total": len(items)})
}

// PUT /api/nts/detections/:detectionId/result
func (h *NTSHandlers) UpdateResult(c *gin.Context) {
	var req resultUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.s.UpdateArrearsResult(c, c.Param("detectionId"), *req.NewResult, req.Reason, middleware.CurrentUserID(c))
	switch {
	case errors.Is(err, service.ErrDetectionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update result"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Detection result updated"})
	}
}

// POST /api/nts/detections/:detectionId/resolve
func (h *NTSHandlers) Resolve(c *gin.Context) {
	err := h.s.ResolveArrearsDetection(c, c.Param("detectionId"), middleware.CurrentUserID(c))
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

// GET /api/nts/stats
func (h *NTSHandlers) Stats(c *gin.Context) {
	stats, err := h.s.ArrearsStats(c, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GET /api/nts/stats/trend?year=&month=
func (h *NTSHandlers) Trend(c *gin.Context) {
	year, month, ok := yearMonthParams(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year or month"})
		return
	}

	points, err := h.s.ArrearsTrend(c, year, month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute trend"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"trend": points})
}
