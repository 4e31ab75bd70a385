package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campustrack/campustrack/internal/app/models"
	"github.com/campustrack/campustrack/internal/app/models/dto"
	"github.com/campustrack/campustrack/internal/app/services"
	"github.com/campustrack/campustrack/internal/middleware"
)

// StudentController handles student profile operations and the nested
// per-student activity and certificate listings.
type StudentController struct {
	studentService     services.StudentService
	activityService    services.ActivityService
	certificateService services.CertificateService
}

// NewStudentController creates a new StudentController
func NewStudentController(
	studentService services.StudentService,
	activityService services.ActivityService,
	certificateService services.CertificateService,
) *StudentController {
	return &StudentController{
		studentService:     studentService,
		activityService:    activityService,
		certificateService: certificateService,
	}
}

// GetAllStudents lists all students
func (c *StudentController) GetAllStudents(ctx *gin.Context) {
	students, err := c.studentService.GetAllStudents(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(students, ""))
}

// GetStudentByID retrieves a single student
func (c *StudentController) GetStudentByID(ctx *gin.Context) {
	student, err := c.studentService.GetStudentByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(student, ""))
}

// CreateStudent creates a new student profile
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	created, err := c.studentService.CreateStudent(ctx, req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(created, "Student created"))
}

// UpdateStudent applies a partial update
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	var patch models.StudentPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	updated, err := c.studentService.UpdateStudent(ctx, ctx.Param("id"), patch)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(updated, ""))
}

// GetStudentActivities lists a student's activities
func (c *StudentController) GetStudentActivities(ctx *gin.Context) {
	id := ctx.Param("id")
	if _, err := c.studentService.GetStudentByID(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	activities, err := c.activityService.GetActivitiesByStudent(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(activities, ""))
}

// GetStudentCertificates lists a student's certificates
func (c *StudentController) GetStudentCertificates(ctx *gin.Context) {
	id := ctx.Param("id")
	if _, err := c.studentService.GetStudentByID(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	certificates, err := c.certificateService.GetCertificatesByStudent(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(certificates, ""))
}
