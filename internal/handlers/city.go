package handlers

import (
	"errors"
	"net/http"

	"github.com/BUSAN-4/front-back/internal/scoring"
	"github.com/BUSAN-4/front-back/internal/service"

	"github.com/gin-gonic/gin"
)

// CityHandlers serves the city-hall fleet statistics: cohort safety rates,
// fleet summaries and the best-driver leaderboards.
type CityHandlers struct {
	s *service.SafetyService
}

func NewCityHandlers(safetyService *service.SafetyService) *CityHandlers {
	return &CityHandlers{s: safetyService}
}

// GET /api/city/safety-rate?year=&month=&groupBy=district|demographic|hour
func (h *CityHandlers) SafetyRate(c *gin.Context) {
	year, month, ok := yearMonthParams(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year or month"})
		return
	}
	groupBy := c.DefaultQuery("groupBy", service.GroupByDistrict)

	stats, err := h.s.MonthlySafetyRate(c, year, month, groupBy)
	if err != nil {
		if errors.Is(err, service.ErrUnknownGroupBy) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute safety rates"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"year":    year,
		"month":   month,
		"groupBy": groupBy,
		"groups":  stats,
	})
}

// GET /api/city/stats?year=&month=
func (h *CityHandlers) FleetStats(c *gin.Context) {
	year, month, ok := yearMonthParams(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year or month"})
		return
	}

	stats, err := h.s.MonthlyFleetStats(c, year, month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute fleet stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GET /api/city/best-drivers?year=&month=
func (h *CityHandlers) BestDriversByRate(c *gin.Context) {
	year, month, ok := yearMonthParams(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year or month"})
		return
	}

	drivers, err := h.s.BestDriversByRate(c, year, month, intParam(c, "limit", scoring.DefaultRateRankingLimit))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rank drivers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"year": year, "month": month, "drivers": drivers})
}

// GET /api/city/best-drivers/score?year=&month=&limit=
func (h *CityHandlers) BestDriversByScore(c *gin.Context) {
	year, month, ok := yearMonthParams(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year or month"})
		return
	}

	drivers, err := h.s.BestDriversByScore(c, year, month, intParam(c, "limit", scoring.DefaultScoreRankingLimit))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rank drivers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"year": year, "month": month, "drivers": drivers})
}

// GET /api/city/best-drivers/all
func (h *CityHandlers) BestDriversAllMonths(c *gin.Context) {
	boards, err := h.s.BestDriversAllMonths(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rank drivers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"months": boards})
}
