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

var facultyColumns = []string{
	"id", "name", "department", "designation", "experience", "specialization",
}

// FacultyRepository handles database operations for faculty profiles
type FacultyRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewFacultyRepository creates a new FacultyRepository
func NewFacultyRepository(db *pgxpool.Pool) *FacultyRepository {
	return &FacultyRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanFaculty(row pgx.Row) (*models.Faculty, error) {
	var f models.Faculty
	err := row.Scan(
		&f.ID, &f.Name, &f.Department, &f.Designation, &f.Experience, &f.Specialization,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Create inserts a new faculty profile
func (r *FacultyRepository) Create(ctx context.Context, faculty *models.Faculty) error {
	sql, args, err := r.sb.Insert("faculty").
		Columns(facultyColumns...).
		Values(
			faculty.ID, faculty.Name, faculty.Department, faculty.Designation,
			faculty.Experience, faculty.Specialization,
		).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building insert faculty SQL")
		return fmt.Errorf("failed to build insert faculty query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if isDuplicateKeyError(err) {
			return apperrors.ErrResourceAlreadyExists
		}
		return fmt.Errorf("error creating faculty: %w", err)
	}

	return nil
}

// GetByID retrieves a faculty member by ID
func (r *FacultyRepository) GetByID(ctx context.Context, id string) (*models.Faculty, error) {
	sql, args, err := r.sb.Select(facultyColumns...).
		From("faculty").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get faculty query: %w", err)
	}

	faculty, err := scanFaculty(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving faculty: %w", err)
	}

	return faculty, nil
}

// GetAll retrieves all faculty ordered by ID
func (r *FacultyRepository) GetAll(ctx context.Context) ([]models.Faculty, error) {
	sql, args, err := r.sb.Select(facultyColumns...).
		From("faculty").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list faculty query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing faculty: %w", err)
	}
	defer rows.Close()

	faculty := []models.Faculty{}
	for rows.Next() {
		f, err := scanFaculty(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning faculty: %w", err)
		}
		faculty = append(faculty, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return faculty, nil
}

// Update applies a partial update and returns the stored record
func (r *FacultyRepository) Update(ctx context.Context, id string, patch models.FacultyPatch) (*models.Faculty, error) {
	set := map[string]interface{}{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Department != nil {
		set["department"] = *patch.Department
	}
	if patch.Designation != nil {
		set["designation"] = *patch.Designation
	}
	if patch.Experience != nil {
		set["experience"] = *patch.Experience
	}
	if patch.Specialization != nil {
		set["specialization"] = *patch.Specialization
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	sql, args, err := r.sb.Update("faculty").
		SetMap(set).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update faculty SQL")
		return nil, fmt.Errorf("failed to build update faculty query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error updating faculty: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, apperrors.ErrResourceNotFound
	}

	return r.GetByID(ctx, id)
}
