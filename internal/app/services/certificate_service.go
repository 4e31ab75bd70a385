package services

import (
	"context"
	"strings"
	"time"

	"github.com/campustrack/campustrack/internal/app/models"
	"github.com/campustrack/campustrack/internal/app/repositories"
	"github.com/campustrack/campustrack/internal/pkg/apperrors"
	"github.com/campustrack/campustrack/internal/pkg/logger"
)

// CertificateService defines the interface for certificate operations
type CertificateService interface {
	CreateCertificate(ctx context.Context, certificate models.Certificate) (*models.Certificate, error)
	GetCertificateByID(ctx context.Context, id string) (*models.Certificate, error)
	GetAllCertificates(ctx context.Context) ([]models.Certificate, error)
	GetCertificatesByStudent(ctx context.Context, studentID string) ([]models.Certificate, error)
	GetCertificatesByStatus(ctx context.Context, status models.Status) ([]models.Certificate, error)
	UpdateCertificate(ctx context.Context, id string, patch models.CertificatePatch) (*models.Certificate, error)
	DeleteCertificate(ctx context.Context, id string) (*models.Certificate, error)
	ApproveCertificate(ctx context.Context, id, approver, comment string) (*models.Certificate, error)
	RejectCertificate(ctx context.Context, id, actor, comment string) (*models.Certificate, error)
}

// certificateServiceImpl implements the CertificateService interface
type certificateServiceImpl struct {
	certificateRepo *repositories.CertificateRepository
	studentRepo     *repositories.StudentRepository
}

// NewCertificateService creates a new certificate service instance
func NewCertificateService(certificateRepo *repositories.CertificateRepository, studentRepo *repositories.StudentRepository) CertificateService {
	return &certificateServiceImpl{
		certificateRepo: certificateRepo,
		studentRepo:     studentRepo,
	}
}

// CreateCertificate creates a new certificate. New uploads always enter
// review as pending with clean audit fields.
func (s *certificateServiceImpl) CreateCertificate(ctx context.Context, certificate models.Certificate) (*models.Certificate, error) {
	if strings.TrimSpace(certificate.Title) == "" {
		return nil, apperrors.NewValidationError("title cannot be empty")
	}
	if strings.TrimSpace(certificate.Issuer) == "" {
		return nil, apperrors.NewValidationError("issuer cannot be empty")
	}
	if _, err := s.studentRepo.GetByID(ctx, certificate.StudentID); err != nil {
		return nil, err
	}

	certificate.ID = models.NewID(models.PrefixCertificate)
	certificate.Status = models.StatusPending
	certificate.UploadDate = time.Now()
	certificate.ApprovedBy = nil
	certificate.RejectedBy = nil
	certificate.ApprovalDate = nil
	certificate.RejectionDate = nil
	certificate.ApprovalComment = nil
	certificate.RejectionComment = nil

	if err := s.certificateRepo.Create(ctx, &certificate); err != nil {
		return nil, err
	}

	logger.Info().Str("certificateId", certificate.ID).Str("studentId", certificate.StudentID).Msg("Certificate uploaded")
	return &certificate, nil
}

// GetCertificateByID retrieves a certificate by ID
func (s *certificateServiceImpl) GetCertificateByID(ctx context.Context, id string) (*models.Certificate, error) {
	return s.certificateRepo.GetByID(ctx, id)
}

// GetAllCertificates retrieves all certificates
func (s *certificateServiceImpl) GetAllCertificates(ctx context.Context) ([]models.Certificate, error) {
	return s.certificateRepo.GetAll(ctx)
}

// GetCertificatesByStudent retrieves certificates for a student
func (s *certificateServiceImpl) GetCertificatesByStudent(ctx context.Context, studentID string) ([]models.Certificate, error) {
	return s.certificateRepo.GetByStudent(ctx, studentID)
}

// GetCertificatesByStatus retrieves certificates in a review status
func (s *certificateServiceImpl) GetCertificatesByStatus(ctx context.Context, status models.Status) ([]models.Certificate, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("unknown status: " + string(status))
	}
	return s.certificateRepo.GetByStatus(ctx, status)
}

// UpdateCertificate applies a partial update. A status change away from a
// terminal state is rejected.
func (s *certificateServiceImpl) UpdateCertificate(ctx context.Context, id string, patch models.CertificatePatch) (*models.Certificate, error) {
	current, err := s.certificateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Status != nil && *patch.Status != current.Status && current.Status.Terminal() {
		return nil, apperrors.NewConflictError("certificate review is already finalized")
	}
	return s.certificateRepo.Update(ctx, id, patch)
}

// DeleteCertificate removes a certificate. Only pending uploads can be
// withdrawn.
func (s *certificateServiceImpl) DeleteCertificate(ctx context.Context, id string) (*models.Certificate, error) {
	current, err := s.certificateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status != models.StatusPending {
		return nil, apperrors.NewConflictError("only pending certificates can be deleted")
	}

	if err := s.certificateRepo.Delete(ctx, id); err != nil {
		return nil, err
	}
	logger.Info().Str("certificateId", id).Msg("Certificate deleted")
	return current, nil
}

// ApproveCertificate transitions a pending certificate to approved
func (s *certificateServiceImpl) ApproveCertificate(ctx context.Context, id, approver, comment string) (*models.Certificate, error) {
	current, err := s.certificateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status != models.StatusPending {
		return nil, apperrors.NewConflictError("only pending certificates can be approved")
	}

	updated, err := s.certificateRepo.Update(ctx, id, models.CertificateApproval(approver, comment))
	if err != nil {
		return nil, err
	}
	logger.Info().Str("certificateId", id).Str("approver", approver).Msg("Certificate approved")
	return updated, nil
}

// RejectCertificate transitions a pending certificate to rejected
func (s *certificateServiceImpl) RejectCertificate(ctx context.Context, id, actor, comment string) (*models.Certificate, error) {
	current, err := s.certificateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status != models.StatusPending {
		return nil, apperrors.NewConflictError("only pending certificates can be rejected")
	}

	updated, err := s.certificateRepo.Update(ctx, id, models.CertificateRejection(actor, comment))
	if err != nil {
		return nil, err
	}
	logger.Info().Str("certificateId", id).Str("actor", actor).Msg("Certificate rejected")
	return updated, nil
}
