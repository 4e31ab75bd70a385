package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campustrack/campustrack/internal/app/models"
	"github.com/campustrack/campustrack/internal/app/models/dto"
	"github.com/campustrack/campustrack/internal/app/services"
	"github.com/campustrack/campustrack/internal/middleware"
)

// FacultyController handles faculty profile operations
type FacultyController struct {
	facultyService services.FacultyService
}

// NewFacultyController creates a new FacultyController
func NewFacultyController(facultyService services.FacultyService) *FacultyController {
	return &FacultyController{facultyService: facultyService}
}

// GetAllFaculty lists all faculty members
func (c *FacultyController) GetAllFaculty(ctx *gin.Context) {
	faculty, err := c.facultyService.GetAllFaculty(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(faculty, ""))
}

// GetFacultyByID retrieves a single faculty member
func (c *FacultyController) GetFacultyByID(ctx *gin.Context) {
	faculty, err := c.facultyService.GetFacultyByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(faculty, ""))
}

// CreateFaculty creates a new faculty profile
func (c *FacultyController) CreateFaculty(ctx *gin.Context) {
	var req dto.CreateFacultyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	created, err := c.facultyService.CreateFaculty(ctx, req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(created, "Faculty created"))
}

// UpdateFaculty applies a partial update
func (c *FacultyController) UpdateFaculty(ctx *gin.Context) {
	var patch models.FacultyPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	updated, err := c.facultyService.UpdateFaculty(ctx, ctx.Param("id"), patch)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(updated, ""))
}
