package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campustrack/campustrack/internal/app/models"
	"github.com/campustrack/campustrack/internal/app/models/dto"
	"github.com/campustrack/campustrack/internal/app/services"
	"github.com/campustrack/campustrack/internal/middleware"
)

// CertificateController handles certificate operations
type CertificateController struct {
	certificateService services.CertificateService
	analyticsService   services.AnalyticsService
}

// NewCertificateController creates a new CertificateController
func NewCertificateController(certificateService services.CertificateService, analyticsService services.AnalyticsService) *CertificateController {
	return &CertificateController{
		certificateService: certificateService,
		analyticsService:   analyticsService,
	}
}

// GetAllCertificates lists certificates, optionally filtered by ?status=
func (c *CertificateController) GetAllCertificates(ctx *gin.Context) {
	var (
		certificates []models.Certificate
		err          error
	)
	if statusParam := ctx.Query("status"); statusParam != "" {
		certificates, err = c.certificateService.GetCertificatesByStatus(ctx, models.Status(statusParam))
	} else {
		certificates, err = c.certificateService.GetAllCertificates(ctx)
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(certificates, ""))
}

// GetCertificateByID retrieves a single certificate
func (c *CertificateController) GetCertificateByID(ctx *gin.Context) {
	certificate, err := c.certificateService.GetCertificateByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(certificate, ""))
}

// CreateCertificate uploads a new certificate for review
func (c *CertificateController) CreateCertificate(ctx *gin.Context) {
	var req dto.CreateCertificateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	created, err := c.certificateService.CreateCertificate(ctx, req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.analyticsService.InvalidateStatistics(ctx)
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(created, "Certificate uploaded"))
}

// UpdateCertificate applies a partial update
func (c *CertificateController) UpdateCertificate(ctx *gin.Context) {
	var patch models.CertificatePatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	updated, err := c.certificateService.UpdateCertificate(ctx, ctx.Param("id"), patch)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.analyticsService.InvalidateStatistics(ctx)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(updated, ""))
}

// DeleteCertificate withdraws a pending certificate
func (c *CertificateController) DeleteCertificate(ctx *gin.Context) {
	removed, err := c.certificateService.DeleteCertificate(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.analyticsService.InvalidateStatistics(ctx)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(removed, "Certificate deleted"))
}

// ApproveCertificate transitions a pending certificate to approved
func (c *CertificateController) ApproveCertificate(ctx *gin.Context) {
	var req dto.ReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	updated, err := c.certificateService.ApproveCertificate(ctx, ctx.Param("id"), req.Actor, req.Comment)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.analyticsService.InvalidateStatistics(ctx)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(updated, "Certificate approved"))
}

// RejectCertificate transitions a pending certificate to rejected
func (c *CertificateController) RejectCertificate(ctx *gin.Context) {
	var req dto.ReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	updated, err := c.certificateService.RejectCertificate(ctx, ctx.Param("id"), req.Actor, req.Comment)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.analyticsService.InvalidateStatistics(ctx)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(updated, "Certificate rejected"))
}
