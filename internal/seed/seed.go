// Package seed populates a fresh database with the demo campus dataset:
// a handful of students and faculty, reviewed and pending submissions,
// and two events. Seeding is idempotent; existing rows are left alone.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/campustrack/campustrack/internal/app/models"
	"github.com/campustrack/campustrack/internal/app/repositories"
	"github.com/campustrack/campustrack/internal/pkg/apperrors"
	"github.com/campustrack/campustrack/internal/pkg/auth"
)

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

// CreateDefaultData creates the demo dataset if it doesn't exist.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	repos := repositories.NewRepositories(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	students := []models.Student{
		{
			ID: "STU001", Name: "Ananya Sharma", Email: "ananya.sharma@campus.edu",
			Department: "Computer Science", Year: 3, RollNumber: "CS2023001",
			GPA: 8.7, Attendance: 92.5, CompletedCredits: 118, TotalCredits: 160,
		},
		{
			ID: "STU002", Name: "Rahul Verma", Email: "rahul.verma@campus.edu",
			Department: "Electronics", Year: 2, RollNumber: "EC2024015",
			GPA: 7.9, Attendance: 85.0, CompletedCredits: 72, TotalCredits: 160,
		},
		{
			ID: "STU003", Name: "Priya Nair", Email: "priya.nair@campus.edu",
			Department: "Computer Science", Year: 4, RollNumber: "CS2022042",
			GPA: 9.1, Attendance: 96.0, CompletedCredits: 152, TotalCredits: 160,
		},
	}
	for i := range students {
		if err := repos.StudentRepository.Create(ctx, &students[i]); err != nil &&
			!errors.Is(err, apperrors.ErrResourceAlreadyExists) {
			lgr.Error().Err(err).Str("studentId", students[i].ID).Msg("Error seeding student")
			finalErr = errors.Join(finalErr, err)
		}
	}

	faculty := []models.Faculty{
		{
			ID: "FAC001", Name: "Dr. Kumar", Department: "Computer Science",
			Designation: "Professor", Experience: 15,
			Specialization: []string{"Distributed Systems", "Databases"},
		},
		{
			ID: "FAC002", Name: "Dr. Meena Iyer", Department: "Electronics",
			Designation: "Associate Professor", Experience: 9,
			Specialization: []string{"Embedded Systems", "Signal Processing"},
		},
	}
	for i := range faculty {
		if err := repos.FacultyRepository.Create(ctx, &faculty[i]); err != nil &&
			!errors.Is(err, apperrors.ErrResourceAlreadyExists) {
			lgr.Error().Err(err).Str("facultyId", faculty[i].ID).Msg("Error seeding faculty")
			finalErr = errors.Join(finalErr, err)
		}
	}

	// Admin account for first login.
	hash, err := auth.HashPassword("admin12345")
	if err == nil {
		admin := &models.User{
			ID:           "USR_admin",
			Name:         "Administrator",
			Email:        "admin@campus.edu",
			PasswordHash: hash,
			Role:         models.RoleAdmin,
			CreatedAt:    time.Now(),
		}
		if err := repos.UserRepository.Create(ctx, admin); err != nil &&
			!errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			lgr.Error().Err(err).Msg("Error seeding admin user")
			finalErr = errors.Join(finalErr, err)
		}
	} else {
		finalErr = errors.Join(finalErr, err)
	}

	approvedAt := time.Date(2025, 2, 18, 10, 30, 0, 0, time.UTC)
	activities := []models.Activity{
		{
			ID: "ACT001", StudentID: "STU001", Title: "National Hackathon 2025",
			Type: models.ActivityCompetition, Category: "Technical",
			Description: "36-hour national level hackathon, team of four",
			Date:        time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC), Credits: 3,
			Status: models.StatusApproved, ApprovedBy: strPtr("Dr. Kumar"),
			ApprovalDate: timePtr(approvedAt), ApprovalComment: strPtr("Well documented submission"),
			Skills:   []string{"Go", "PostgreSQL", "Teamwork"},
			Evidence: []string{"hackathon-certificate.pdf"},
			CreatedAt: time.Date(2025, 2, 12, 9, 0, 0, 0, time.UTC),
		},
		{
			ID: "ACT002", StudentID: "STU002", Title: "Embedded Systems Workshop",
			Type: models.ActivityWorkshop, Category: "Technical",
			Description: "Two-day workshop on RTOS fundamentals",
			Date:        time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), Credits: 1,
			Status: models.StatusPending,
			Skills: []string{"C", "RTOS"}, Evidence: []string{},
			CreatedAt: time.Date(2025, 3, 6, 14, 20, 0, 0, time.UTC),
		},
	}
	for i := range activities {
		if err := repos.ActivityRepository.Create(ctx, &activities[i]); err != nil &&
			!errors.Is(err, apperrors.ErrResourceAlreadyExists) {
			lgr.Error().Err(err).Str("activityId", activities[i].ID).Msg("Error seeding activity")
			finalErr = errors.Join(finalErr, err)
		}
	}

	events := []models.Event{
		{
			ID: "EVT001", Title: "TechFest 2025",
			Description: "Annual inter-college technical festival with coding contests and robotics",
			Type:        "festival", Category: "Technical",
			Organizer: models.Organizer{
				OrganizerID: "FAC001", Name: "Dr. Kumar", Type: "faculty",
				VerificationStatus: "verified", ContactEmail: "kumar@campus.edu",
			},
			Venue: models.Venue{Name: "Main Auditorium", Address: "Block A, North Campus", Capacity: 500},
			Dates: models.EventDates{
				StartDate:            time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC),
				EndDate:              time.Date(2025, 10, 17, 18, 0, 0, 0, time.UTC),
				RegistrationDeadline: time.Date(2025, 10, 10, 23, 59, 59, 0, time.UTC),
			},
			Fees:            models.EventFees{Student: 100, Professional: 500, Currency: "INR"},
			Tags:            []string{"coding", "robotics", "festival"},
			MaxParticipants: 400, RegistrationCount: 0,
			Status: models.EventOpen, CreatedBy: "FAC001",
			CreatedDate: time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC),
		},
	}
	for i := range events {
		if err := repos.EventRepository.Create(ctx, &events[i]); err != nil &&
			!errors.Is(err, apperrors.ErrResourceAlreadyExists) {
			lgr.Error().Err(err).Str("eventId", events[i].ID).Msg("Error seeding event")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		lgr.Info().Msg("Default data ready")
	}
	return finalErr
}
