package services

import (
	"context"
	"strings"

	"github.com/campustrack/campustrack/internal/app/models"
	"github.com/campustrack/campustrack/internal/app/repositories"
	"github.com/campustrack/campustrack/internal/pkg/apperrors"
)

// FacultyService defines the interface for faculty profile operations
type FacultyService interface {
	CreateFaculty(ctx context.Context, faculty models.Faculty) (*models.Faculty, error)
	GetFacultyByID(ctx context.Context, id string) (*models.Faculty, error)
	GetAllFaculty(ctx context.Context) ([]models.Faculty, error)
	UpdateFaculty(ctx context.Context, id string, patch models.FacultyPatch) (*models.Faculty, error)
}

// facultyServiceImpl implements the FacultyService interface
type facultyServiceImpl struct {
	facultyRepo *repositories.FacultyRepository
}

// NewFacultyService creates a new faculty service instance
func NewFacultyService(facultyRepo *repositories.FacultyRepository) FacultyService {
	return &facultyServiceImpl{facultyRepo: facultyRepo}
}

// CreateFaculty creates a new faculty profile
func (s *facultyServiceImpl) CreateFaculty(ctx context.Context, faculty models.Faculty) (*models.Faculty, error) {
	if strings.TrimSpace(faculty.Name) == "" {
		return nil, apperrors.NewValidationError("name cannot be empty")
	}

	if faculty.ID == "" {
		faculty.ID = models.NewID(models.PrefixFaculty)
	}
	if err := s.facultyRepo.Create(ctx, &faculty); err != nil {
		return nil, err
	}
	return &faculty, nil
}

// GetFacultyByID retrieves a faculty member by ID
func (s *facultyServiceImpl) GetFacultyByID(ctx context.Context, id string) (*models.Faculty, error) {
	return s.facultyRepo.GetByID(ctx, id)
}

// GetAllFaculty retrieves all faculty members
func (s *facultyServiceImpl) GetAllFaculty(ctx context.Context) ([]models.Faculty, error) {
	return s.facultyRepo.GetAll(ctx)
}

// UpdateFaculty applies a partial update to a faculty profile
func (s *facultyServiceImpl) UpdateFaculty(ctx context.Context, id string, patch models.FacultyPatch) (*models.Faculty, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, apperrors.NewValidationError("name cannot be empty")
	}
	return s.facultyRepo.Update(ctx, id, patch)
}
