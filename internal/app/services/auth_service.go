package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/campustrack/campustrack/internal/app/models"
	"github.com/campustrack/campustrack/internal/app/models/dto"
	"github.com/campustrack/campustrack/internal/app/repositories"
	"github.com/campustrack/campustrack/internal/pkg/apperrors"
	"github.com/campustrack/campustrack/internal/pkg/auth"
	"github.com/campustrack/campustrack/internal/pkg/logger"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (*dto.LoginResponse, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	userRepo    *repositories.UserRepository
	studentRepo *repositories.StudentRepository
	facultyRepo *repositories.FacultyRepository
	jwtService  *auth.JWTService
}

// NewAuthService creates a new auth service instance
func NewAuthService(
	userRepo *repositories.UserRepository,
	studentRepo *repositories.StudentRepository,
	facultyRepo *repositories.FacultyRepository,
	jwtService *auth.JWTService,
) AuthService {
	return &authServiceImpl{
		userRepo:    userRepo,
		studentRepo: studentRepo,
		facultyRepo: facultyRepo,
		jwtService:  jwtService,
	}
}

// Register creates a new account. Student and faculty accounts must link
// to an existing profile record.
func (s *authServiceImpl) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, apperrors.ErrInvalidEmail
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	role := models.Role(req.Role)
	switch role {
	case models.RoleStudent:
		if req.StudentID == nil {
			return nil, apperrors.NewValidationError("studentId is required for student accounts")
		}
		if _, err := s.studentRepo.GetByID(ctx, *req.StudentID); err != nil {
			if errors.Is(err, apperrors.ErrResourceNotFound) {
				return nil, apperrors.NewNotFoundError("student profile not found")
			}
			return nil, err
		}
	case models.RoleFaculty:
		if req.FacultyID == nil {
			return nil, apperrors.NewValidationError("facultyId is required for faculty accounts")
		}
		if _, err := s.facultyRepo.GetByID(ctx, *req.FacultyID); err != nil {
			if errors.Is(err, apperrors.ErrResourceNotFound) {
				return nil, apperrors.NewNotFoundError("faculty profile not found")
			}
			return nil, err
		}
	case models.RoleAdmin:
	default:
		return nil, apperrors.NewValidationError("unknown role: " + req.Role)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		ID:           models.NewID(models.PrefixUser),
		Name:         req.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		StudentID:    req.StudentID,
		FacultyID:    req.FacultyID,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info().Str("userId", user.ID).Str("role", string(user.Role)).Msg("User registered")
	return user, nil
}

// Login verifies credentials and returns a token pair
func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	accessToken, refreshToken, expiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("error generating tokens: %w", err)
	}

	logger.Info().Str("userId", user.ID).Msg("User logged in")
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
		User:         user,
	}, nil
}

// GetUserByID loads an account by ID
func (s *authServiceImpl) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}
