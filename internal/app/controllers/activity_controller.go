package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campustrack/campustrack/internal/app/models"
	"github.com/campustrack/campustrack/internal/app/models/dto"
	"github.com/campustrack/campustrack/internal/app/services"
	"github.com/campustrack/campustrack/internal/middleware"
)

// ActivityController handles activity operations
type ActivityController struct {
	activityService  services.ActivityService
	analyticsService services.AnalyticsService
}

// NewActivityController creates a new ActivityController
func NewActivityController(activityService services.ActivityService, analyticsService services.AnalyticsService) *ActivityController {
	return &ActivityController{
		activityService:  activityService,
		analyticsService: analyticsService,
	}
}

// GetAllActivities lists activities, optionally filtered by ?status=
func (c *ActivityController) GetAllActivities(ctx *gin.Context) {
	var (
		activities []models.Activity
		err        error
	)
	if statusParam := ctx.Query("status"); statusParam != "" {
		activities, err = c.activityService.GetActivitiesByStatus(ctx, models.Status(statusParam))
	} else {
		activities, err = c.activityService.GetAllActivities(ctx)
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(activities, ""))
}

// GetActivityByID retrieves a single activity
func (c *ActivityController) GetActivityByID(ctx *gin.Context) {
	activity, err := c.activityService.GetActivityByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(activity, ""))
}

// SearchActivities lists activities matching ?q=
func (c *ActivityController) SearchActivities(ctx *gin.Context) {
	activities, err := c.activityService.SearchActivities(ctx, ctx.Query("q"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(activities, ""))
}

// CreateActivity submits a new activity for review
func (c *ActivityController) CreateActivity(ctx *gin.Context) {
	var req dto.CreateActivityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	created, err := c.activityService.CreateActivity(ctx, req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.analyticsService.InvalidateStatistics(ctx)
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(created, "Activity submitted"))
}

// UpdateActivity applies a partial update
func (c *ActivityController) UpdateActivity(ctx *gin.Context) {
	var patch models.ActivityPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	updated, err := c.activityService.UpdateActivity(ctx, ctx.Param("id"), patch)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.analyticsService.InvalidateStatistics(ctx)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(updated, ""))
}

// ApproveActivity transitions a pending activity to approved
func (c *ActivityController) ApproveActivity(ctx *gin.Context) {
	var req dto.ReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	updated, err := c.activityService.ApproveActivity(ctx, ctx.Param("id"), req.Actor, req.Comment)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.analyticsService.InvalidateStatistics(ctx)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(updated, "Activity approved"))
}

// RejectActivity transitions a pending activity to rejected
func (c *ActivityController) RejectActivity(ctx *gin.Context) {
	var req dto.ReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	updated, err := c.activityService.RejectActivity(ctx, ctx.Param("id"), req.Actor, req.Comment)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.analyticsService.InvalidateStatistics(ctx)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(updated, "Activity rejected"))
}
