package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campustrack/campustrack/internal/app/models"
	"github.com/campustrack/campustrack/internal/app/models/dto"
	"github.com/campustrack/campustrack/internal/app/services"
	"github.com/campustrack/campustrack/internal/middleware"
)

// EventController handles event operations
type EventController struct {
	eventService     services.EventService
	analyticsService services.AnalyticsService
}

// NewEventController creates a new EventController
func NewEventController(eventService services.EventService, analyticsService services.AnalyticsService) *EventController {
	return &EventController{
		eventService:     eventService,
		analyticsService: analyticsService,
	}
}

// GetAllEvents lists events, optionally filtered by ?organizer=
func (c *EventController) GetAllEvents(ctx *gin.Context) {
	var (
		events []models.Event
		err    error
	)
	if organizer := ctx.Query("organizer"); organizer != "" {
		events, err = c.eventService.GetEventsByOrganizer(ctx, organizer)
	} else {
		events, err = c.eventService.GetAllEvents(ctx)
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(events, ""))
}

// GetEventByID retrieves a single event
func (c *EventController) GetEventByID(ctx *gin.Context) {
	event, err := c.eventService.GetEventByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event, ""))
}

// SearchEvents lists events matching ?q=
func (c *EventController) SearchEvents(ctx *gin.Context) {
	events, err := c.eventService.SearchEvents(ctx, ctx.Query("q"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(events, ""))
}

// CreateEvent creates a new event open for registration
func (c *EventController) CreateEvent(ctx *gin.Context) {
	var req dto.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	event := req.ToModel()
	event.CreatedBy = ctx.GetString(middleware.ContextUserID)

	created, err := c.eventService.CreateEvent(ctx, event)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.analyticsService.InvalidateStatistics(ctx)
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(created, "Event created"))
}

// UpdateEvent applies a partial update
func (c *EventController) UpdateEvent(ctx *gin.Context) {
	var patch models.EventPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	updated, err := c.eventService.UpdateEvent(ctx, ctx.Param("id"), patch)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.analyticsService.InvalidateStatistics(ctx)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(updated, ""))
}

// DeleteEvent removes an event and returns the removed record
func (c *EventController) DeleteEvent(ctx *gin.Context) {
	removed, err := c.eventService.DeleteEvent(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.analyticsService.InvalidateStatistics(ctx)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(removed, "Event deleted"))
}

// RegisterForEvent registers a student for an event
func (c *EventController) RegisterForEvent(ctx *gin.Context) {
	var req dto.RegisterForEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	registration, err := c.eventService.RegisterForEvent(ctx, ctx.Param("id"), req.StudentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(registration, "Registration confirmed"))
}

// GetEventRegistrations lists the registrations for an event
func (c *EventController) GetEventRegistrations(ctx *gin.Context) {
	registrations, err := c.eventService.GetEventRegistrations(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(registrations, ""))
}
