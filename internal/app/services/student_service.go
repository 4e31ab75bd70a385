package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/campustrack/campustrack/internal/app/models"
	"github.com/campustrack/campustrack/internal/app/repositories"
	"github.com/campustrack/campustrack/internal/pkg/apperrors"
)

// StudentService defines the interface for student profile operations
type StudentService interface {
	CreateStudent(ctx context.Context, student models.Student) (*models.Student, error)
	GetStudentByID(ctx context.Context, id string) (*models.Student, error)
	GetAllStudents(ctx context.Context) ([]models.Student, error)
	UpdateStudent(ctx context.Context, id string, patch models.StudentPatch) (*models.Student, error)
}

// studentServiceImpl implements the StudentService interface
type studentServiceImpl struct {
	studentRepo *repositories.StudentRepository
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo *repositories.StudentRepository) StudentService {
	return &studentServiceImpl{studentRepo: studentRepo}
}

// CreateStudent creates a new student profile
func (s *studentServiceImpl) CreateStudent(ctx context.Context, student models.Student) (*models.Student, error) {
	if strings.TrimSpace(student.Name) == "" {
		return nil, apperrors.NewValidationError("name cannot be empty")
	}
	if strings.TrimSpace(student.Email) == "" {
		return nil, apperrors.ErrInvalidEmail
	}

	exists, err := s.studentRepo.ExistsByEmail(ctx, student.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking student email: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	if student.ID == "" {
		student.ID = models.NewID(models.PrefixStudent)
	}
	if err := s.studentRepo.Create(ctx, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

// GetStudentByID retrieves a student by ID
func (s *studentServiceImpl) GetStudentByID(ctx context.Context, id string) (*models.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// GetAllStudents retrieves all students
func (s *studentServiceImpl) GetAllStudents(ctx context.Context) ([]models.Student, error) {
	return s.studentRepo.GetAll(ctx)
}

// UpdateStudent applies a partial update to a student profile
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, id string, patch models.StudentPatch) (*models.Student, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, apperrors.NewValidationError("name cannot be empty")
	}
	if patch.Email != nil && strings.TrimSpace(*patch.Email) == "" {
		return nil, apperrors.ErrInvalidEmail
	}
	return s.studentRepo.Update(ctx, id, patch)
}
