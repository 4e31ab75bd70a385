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

// ActivityService defines the interface for activity operations
type ActivityService interface {
	CreateActivity(ctx context.Context, activity models.Activity) (*models.Activity, error)
	GetActivityByID(ctx context.Context, id string) (*models.Activity, error)
	GetAllActivities(ctx context.Context) ([]models.Activity, error)
	GetActivitiesByStudent(ctx context.Context, studentID string) ([]models.Activity, error)
	GetActivitiesByStatus(ctx context.Context, status models.Status) ([]models.Activity, error)
	SearchActivities(ctx context.Context, query string) ([]models.Activity, error)
	UpdateActivity(ctx context.Context, id string, patch models.ActivityPatch) (*models.Activity, error)
	ApproveActivity(ctx context.Context, id, approver, comment string) (*models.Activity, error)
	RejectActivity(ctx context.Context, id, actor, comment string) (*models.Activity, error)
}

// activityServiceImpl implements the ActivityService interface
type activityServiceImpl struct {
	activityRepo *repositories.ActivityRepository
	studentRepo  *repositories.StudentRepository
}

// NewActivityService creates a new activity service instance
func NewActivityService(activityRepo *repositories.ActivityRepository, studentRepo *repositories.StudentRepository) ActivityService {
	return &activityServiceImpl{
		activityRepo: activityRepo,
		studentRepo:  studentRepo,
	}
}

// CreateActivity creates a new activity. New activities always enter
// review as pending with clean audit fields.
func (s *activityServiceImpl) CreateActivity(ctx context.Context, activity models.Activity) (*models.Activity, error) {
	if strings.TrimSpace(activity.Title) == "" {
		return nil, apperrors.NewValidationError("title cannot be empty")
	}
	if _, err := s.studentRepo.GetByID(ctx, activity.StudentID); err != nil {
		return nil, err
	}

	activity.ID = models.NewID(models.PrefixActivity)
	activity.Status = models.StatusPending
	activity.ApprovedBy = nil
	activity.RejectedBy = nil
	activity.ApprovalDate = nil
	activity.RejectionDate = nil
	activity.ApprovalComment = nil
	activity.RejectionComment = nil
	activity.CreatedAt = time.Now()
	if activity.Skills == nil {
		activity.Skills = []string{}
	}
	if activity.Evidence == nil {
		activity.Evidence = []string{}
	}

	if err := s.activityRepo.Create(ctx, &activity); err != nil {
		return nil, err
	}

	logger.Info().Str("activityId", activity.ID).Str("studentId", activity.StudentID).Msg("Activity submitted")
	return &activity, nil
}

// GetActivityByID retrieves an activity by ID
func (s *activityServiceImpl) GetActivityByID(ctx context.Context, id string) (*models.Activity, error) {
	return s.activityRepo.GetByID(ctx, id)
}

// GetAllActivities retrieves all activities
func (s *activityServiceImpl) GetAllActivities(ctx context.Context) ([]models.Activity, error) {
	return s.activityRepo.GetAll(ctx)
}

// GetActivitiesByStudent retrieves activities for a student
func (s *activityServiceImpl) GetActivitiesByStudent(ctx context.Context, studentID string) ([]models.Activity, error) {
	return s.activityRepo.GetByStudent(ctx, studentID)
}

// GetActivitiesByStatus retrieves activities in a review status
func (s *activityServiceImpl) GetActivitiesByStatus(ctx context.Context, status models.Status) ([]models.Activity, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("unknown status: " + string(status))
	}
	return s.activityRepo.GetByStatus(ctx, status)
}

// SearchActivities retrieves activities matching the query
func (s *activityServiceImpl) SearchActivities(ctx context.Context, query string) ([]models.Activity, error) {
	return s.activityRepo.Search(ctx, query)
}

// UpdateActivity applies a partial update. A status change away from a
// terminal state is rejected.
func (s *activityServiceImpl) UpdateActivity(ctx context.Context, id string, patch models.ActivityPatch) (*models.Activity, error) {
	current, err := s.activityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Status != nil && *patch.Status != current.Status && current.Status.Terminal() {
		return nil, apperrors.NewConflictError("activity review is already finalized")
	}
	return s.activityRepo.Update(ctx, id, patch)
}

// ApproveActivity transitions a pending activity to approved
func (s *activityServiceImpl) ApproveActivity(ctx context.Context, id, approver, comment string) (*models.Activity, error) {
	current, err := s.activityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status != models.StatusPending {
		return nil, apperrors.NewConflictError("only pending activities can be approved")
	}

	updated, err := s.activityRepo.Update(ctx, id, models.ActivityApproval(approver, comment))
	if err != nil {
		return nil, err
	}
	logger.Info().Str("activityId", id).Str("approver", approver).Msg("Activity approved")
	return updated, nil
}

// RejectActivity transitions a pending activity to rejected
func (s *activityServiceImpl) RejectActivity(ctx context.Context, id, actor, comment string) (*models.Activity, error) {
	current, err := s.activityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status != models.StatusPending {
		return nil, apperrors.NewConflictError("only pending activities can be rejected")
	}

	updated, err := s.activityRepo.Update(ctx, id, models.ActivityRejection(actor, comment))
	if err != nil {
		return nil, err
	}
	logger.Info().Str("activityId", id).Str("actor", actor).Msg("Activity rejected")
	return updated, nil
}
