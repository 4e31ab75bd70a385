package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campustrack/campustrack/internal/app/models"
	"github.com/campustrack/campustrack/internal/pkg/apperrors"
	"github.com/campustrack/campustrack/internal/pkg/logger"
)

var certificateColumns = []string{
	"id", "student_id", "title", "issuer", "issue_date", "upload_date",
	"file_type", "file_size", "file_url", "verification_code",
	"status", "approved_by", "rejected_by", "approval_date", "rejection_date",
	"approval_comment", "rejection_comment",
}

// CertificateRepository handles database operations for uploaded certificates
type CertificateRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCertificateRepository creates a new CertificateRepository
func NewCertificateRepository(db *pgxpool.Pool) *CertificateRepository {
	return &CertificateRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanCertificate(row pgx.Row) (*models.Certificate, error) {
	var c models.Certificate
	err := row.Scan(
		&c.ID, &c.StudentID, &c.Title, &c.Issuer, &c.IssueDate, &c.UploadDate,
		&c.FileType, &c.FileSize, &c.FileURL, &c.VerificationCode,
		&c.Status, &c.ApprovedBy, &c.RejectedBy, &c.ApprovalDate, &c.RejectionDate,
		&c.ApprovalComment, &c.RejectionComment,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CertificateRepository) queryMany(ctx context.Context, builder squirrel.SelectBuilder) ([]models.Certificate, error) {
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build certificate query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing certificates: %w", err)
	}
	defer rows.Close()

	certificates := []models.Certificate{}
	for rows.Next() {
		c, err := scanCertificate(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning certificate: %w", err)
		}
		certificates = append(certificates, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return certificates, nil
}

func (r *CertificateRepository) selectAll() squirrel.SelectBuilder {
	return r.sb.Select(certificateColumns...).From("certificates").OrderBy("upload_date DESC", "id")
}

// Create inserts a new certificate
func (r *CertificateRepository) Create(ctx context.Context, certificate *models.Certificate) error {
	sql, args, err := r.sb.Insert("certificates").
		Columns(certificateColumns...).
		Values(
			certificate.ID, certificate.StudentID, certificate.Title, certificate.Issuer,
			certificate.IssueDate, certificate.UploadDate, certificate.FileType,
			certificate.FileSize, certificate.FileURL, certificate.VerificationCode,
			certificate.Status, certificate.ApprovedBy, certificate.RejectedBy,
			certificate.ApprovalDate, certificate.RejectionDate,
			certificate.ApprovalComment, certificate.RejectionComment,
		).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building insert certificate SQL")
		return fmt.Errorf("failed to build insert certificate query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if isDuplicateKeyError(err) {
			return apperrors.ErrResourceAlreadyExists
		}
		if isForeignKeyError(err) {
			return apperrors.NewNotFoundError("student not found")
		}
		return fmt.Errorf("error creating certificate: %w", err)
	}

	return nil
}

// GetByID retrieves a certificate by ID
func (r *CertificateRepository) GetByID(ctx context.Context, id string) (*models.Certificate, error) {
	sql, args, err := r.sb.Select(certificateColumns...).
		From("certificates").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get certificate query: %w", err)
	}

	certificate, err := scanCertificate(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving certificate: %w", err)
	}

	return certificate, nil
}

// GetAll retrieves all certificates, newest upload first
func (r *CertificateRepository) GetAll(ctx context.Context) ([]models.Certificate, error) {
	return r.queryMany(ctx, r.selectAll())
}

// GetByStudent retrieves all certificates uploaded by a student
func (r *CertificateRepository) GetByStudent(ctx context.Context, studentID string) ([]models.Certificate, error) {
	return r.queryMany(ctx, r.selectAll().Where(squirrel.Eq{"student_id": studentID}))
}

// GetByStatus retrieves all certificates in the given review status
func (r *CertificateRepository) GetByStatus(ctx context.Context, status models.Status) ([]models.Certificate, error) {
	return r.queryMany(ctx, r.selectAll().Where(squirrel.Eq{"status": status}))
}

// Update applies a partial update and returns the stored record
func (r *CertificateRepository) Update(ctx context.Context, id string, patch models.CertificatePatch) (*models.Certificate, error) {
	set := map[string]interface{}{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Issuer != nil {
		set["issuer"] = *patch.Issuer
	}
	if patch.IssueDate != nil {
		set["issue_date"] = *patch.IssueDate
	}
	if patch.FileType != nil {
		set["file_type"] = *patch.FileType
	}
	if patch.FileSize != nil {
		set["file_size"] = *patch.FileSize
	}
	if patch.FileURL != nil {
		set["file_url"] = *patch.FileURL
	}
	if patch.VerificationCode != nil {
		set["verification_code"] = *patch.VerificationCode
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.ApprovedBy != nil {
		set["approved_by"] = *patch.ApprovedBy
	}
	if patch.RejectedBy != nil {
		set["rejected_by"] = *patch.RejectedBy
	}
	if patch.ApprovalDate != nil {
		set["approval_date"] = *patch.ApprovalDate
	}
	if patch.RejectionDate != nil {
		set["rejection_date"] = *patch.RejectionDate
	}
	if patch.ApprovalComment != nil {
		set["approval_comment"] = *patch.ApprovalComment
	}
	if patch.RejectionComment != nil {
		set["rejection_comment"] = *patch.RejectionComment
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	sql, args, err := r.sb.Update("certificates").
		SetMap(set).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update certificate SQL")
		return nil, fmt.Errorf("failed to build update certificate query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error updating certificate: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, apperrors.ErrResourceNotFound
	}

	return r.GetByID(ctx, id)
}

// Delete removes a certificate by ID
func (r *CertificateRepository) Delete(ctx context.Context, id string) error {
	sql, args, err := r.sb.Delete("certificates").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete certificate query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting certificate: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}
