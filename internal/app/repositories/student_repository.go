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

var studentColumns = []string{
	"id", "name", "email", "department", "year", "roll_number",
	"gpa", "attendance", "completed_credits", "total_credits", "profile_image",
}

// StudentRepository handles database operations for student profiles
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(
		&s.ID, &s.Name, &s.Email, &s.Department, &s.Year, &s.RollNumber,
		&s.GPA, &s.Attendance, &s.CompletedCredits, &s.TotalCredits, &s.ProfileImage,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new student profile
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Insert("students").
		Columns(studentColumns...).
		Values(
			student.ID, student.Name, student.Email, student.Department, student.Year,
			student.RollNumber, student.GPA, student.Attendance, student.CompletedCredits,
			student.TotalCredits, student.ProfileImage,
		).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building insert student SQL")
		return fmt.Errorf("failed to build insert student query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if isDuplicateKeyError(err) {
			return apperrors.ErrResourceAlreadyExists
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// GetAll retrieves all students ordered by ID
func (r *StudentRepository) GetAll(ctx context.Context) ([]models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	students := []models.Student{}
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student: %w", err)
		}
		students = append(students, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// Update applies a partial update and returns the stored record
func (r *StudentRepository) Update(ctx context.Context, id string, patch models.StudentPatch) (*models.Student, error) {
	set := map[string]interface{}{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.Department != nil {
		set["department"] = *patch.Department
	}
	if patch.Year != nil {
		set["year"] = *patch.Year
	}
	if patch.RollNumber != nil {
		set["roll_number"] = *patch.RollNumber
	}
	if patch.GPA != nil {
		set["gpa"] = *patch.GPA
	}
	if patch.Attendance != nil {
		set["attendance"] = *patch.Attendance
	}
	if patch.CompletedCredits != nil {
		set["completed_credits"] = *patch.CompletedCredits
	}
	if patch.TotalCredits != nil {
		set["total_credits"] = *patch.TotalCredits
	}
	if patch.ProfileImage != nil {
		set["profile_image"] = *patch.ProfileImage
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	sql, args, err := r.sb.Update("students").
		SetMap(set).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update student SQL")
		return nil, fmt.Errorf("failed to build update student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if isDuplicateKeyError(err) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("error updating student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, apperrors.ErrResourceNotFound
	}

	return r.GetByID(ctx, id)
}

// ExistsByEmail checks whether a student with the given email exists
func (r *StudentRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM students WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking student existence: %w", err)
	}
	return exists, nil
}
