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

var activityColumns = []string{
	"id", "student_id", "title", "type", "category", "description", "date", "credits",
	"status", "approved_by", "rejected_by", "approval_date", "rejection_date",
	"approval_comment", "rejection_comment", "skills", "evidence", "created_at",
}

// ActivityRepository handles database operations for student activities
type ActivityRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanActivity(row pgx.Row) (*models.Activity, error) {
	var a models.Activity
	err := row.Scan(
		&a.ID, &a.StudentID, &a.Title, &a.Type, &a.Category, &a.Description, &a.Date,
		&a.Credits, &a.Status, &a.ApprovedBy, &a.RejectedBy, &a.ApprovalDate,
		&a.RejectionDate, &a.ApprovalComment, &a.RejectionComment,
		&a.Skills, &a.Evidence, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ActivityRepository) queryMany(ctx context.Context, builder squirrel.SelectBuilder) ([]models.Activity, error) {
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build activity query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing activities: %w", err)
	}
	defer rows.Close()

	activities := []models.Activity{}
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning activity: %w", err)
		}
		activities = append(activities, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return activities, nil
}

func (r *ActivityRepository) selectAll() squirrel.SelectBuilder {
	return r.sb.Select(activityColumns...).From("activities").OrderBy("created_at DESC", "id")
}

// Create inserts a new activity
func (r *ActivityRepository) Create(ctx context.Context, activity *models.Activity) error {
	sql, args, err := r.sb.Insert("activities").
		Columns(activityColumns...).
		Values(
			activity.ID, activity.StudentID, activity.Title, activity.Type, activity.Category,
			activity.Description, activity.Date, activity.Credits, activity.Status,
			activity.ApprovedBy, activity.RejectedBy, activity.ApprovalDate, activity.RejectionDate,
			activity.ApprovalComment, activity.RejectionComment,
			activity.Skills, activity.Evidence, activity.CreatedAt,
		).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building insert activity SQL")
		return fmt.Errorf("failed to build insert activity query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if isDuplicateKeyError(err) {
			return apperrors.ErrResourceAlreadyExists
		}
		if isForeignKeyError(err) {
			return apperrors.NewNotFoundError("student not found")
		}
		return fmt.Errorf("error creating activity: %w", err)
	}

	return nil
}

// GetByID retrieves an activity by ID
func (r *ActivityRepository) GetByID(ctx context.Context, id string) (*models.Activity, error) {
	sql, args, err := r.sb.Select(activityColumns...).
		From("activities").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get activity query: %w", err)
	}

	activity, err := scanActivity(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving activity: %w", err)
	}

	return activity, nil
}

// GetAll retrieves all activities, newest first
func (r *ActivityRepository) GetAll(ctx context.Context) ([]models.Activity, error) {
	return r.queryMany(ctx, r.selectAll())
}

// GetByStudent retrieves all activities submitted by a student
func (r *ActivityRepository) GetByStudent(ctx context.Context, studentID string) ([]models.Activity, error) {
	return r.queryMany(ctx, r.selectAll().Where(squirrel.Eq{"student_id": studentID}))
}

// GetByStatus retrieves all activities in the given review status
func (r *ActivityRepository) GetByStatus(ctx context.Context, status models.Status) ([]models.Activity, error) {
	return r.queryMany(ctx, r.selectAll().Where(squirrel.Eq{"status": status}))
}

// Search retrieves activities whose title, category or description matches the query
func (r *ActivityRepository) Search(ctx context.Context, query string) ([]models.Activity, error) {
	pattern := "%" + query + "%"
	return r.queryMany(ctx, r.selectAll().Where(squirrel.Or{
		squirrel.ILike{"title": pattern},
		squirrel.ILike{"category": pattern},
		squirrel.ILike{"description": pattern},
	}))
}

// Update applies a partial update and returns the stored record
func (r *ActivityRepository) Update(ctx context.Context, id string, patch models.ActivityPatch) (*models.Activity, error) {
	set := map[string]interface{}{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Type != nil {
		set["type"] = *patch.Type
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Date != nil {
		set["date"] = *patch.Date
	}
	if patch.Credits != nil {
		set["credits"] = *patch.Credits
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
	if patch.Skills != nil {
		set["skills"] = *patch.Skills
	}
	if patch.Evidence != nil {
		set["evidence"] = *patch.Evidence
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	sql, args, err := r.sb.Update("activities").
		SetMap(set).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update activity SQL")
		return nil, fmt.Errorf("failed to build update activity query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error updating activity: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, apperrors.ErrResourceNotFound
	}

	return r.GetByID(ctx, id)
}
