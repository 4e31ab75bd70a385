package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campustrack/campustrack/internal/app/models/dto"
	"github.com/campustrack/campustrack/internal/app/services"
	"github.com/campustrack/campustrack/internal/middleware"
)

// AnalyticsController serves the aggregate dashboard counters
type AnalyticsController struct {
	analyticsService services.AnalyticsService
}

// NewAnalyticsController creates a new AnalyticsController
func NewAnalyticsController(analyticsService services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{analyticsService: analyticsService}
}

// GetStatistics returns counters across all collections
func (c *AnalyticsController) GetStatistics(ctx *gin.Context) {
	stats, err := c.analyticsService.GetStatistics(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stats, ""))
}
