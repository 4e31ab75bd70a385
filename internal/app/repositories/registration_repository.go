package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campustrack/campustrack/internal/app/models"
	"github.com/campustrack/campustrack/internal/pkg/apperrors"
	"github.com/campustrack/campustrack/internal/pkg/logger"
)

var registrationColumns = []string{
	"id", "event_id", "student_id", "registration_date", "payment_status", "attendance_status",
}

// RegistrationRepository handles database operations for event registrations
type RegistrationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewRegistrationRepository creates a new RegistrationRepository
func NewRegistrationRepository(db *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanRegistration(row pgx.Row) (*models.Registration, error) {
	var reg models.Registration
	err := row.Scan(
		&reg.ID, &reg.EventID, &reg.StudentID, &reg.RegistrationDate,
		&reg.PaymentStatus, &reg.AttendanceStatus,
	)
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// GetByEvent retrieves all registrations for an event
func (r *RegistrationRepository) GetByEvent(ctx context.Context, eventID string) ([]models.Registration, error) {
	sql, args, err := r.sb.Select(registrationColumns...).
		From("registrations").
		Where(squirrel.Eq{"event_id": eventID}).
		OrderBy("registration_date", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list registrations query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing registrations: %w", err)
	}
	defer rows.Close()

	registrations := []models.Registration{}
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning registration: %w", err)
		}
		registrations = append(registrations, *reg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return registrations, nil
}

// Register records a student registration for an event inside a single
// transaction. The event row is locked so the capacity check and the
// registration count increment cannot race; the event closes when the
// cap is reached.
func (r *RegistrationRepository) Register(ctx context.Context, eventID, studentID string) (*models.Registration, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("error starting registration transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var status models.EventStatus
	var registrationCount, maxParticipants int
	err = tx.QueryRow(ctx, `
		SELECT status, registration_count, max_participants
		FROM events
		WHERE id = $1
		FOR UPDATE
	`, eventID).Scan(&status, &registrationCount, &maxParticipants)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error locking event: %w", err)
	}

	if status != models.EventOpen {
		return nil, apperrors.ErrEventClosed
	}
	if maxParticipants > 0 && registrationCount >= maxParticipants {
		return nil, apperrors.ErrEventFull
	}

	registration := &models.Registration{
		ID:               models.NewID(models.PrefixRegistration),
		EventID:          eventID,
		StudentID:        studentID,
		RegistrationDate: time.Now(),
		PaymentStatus:    models.PaymentPending,
		AttendanceStatus: models.AttendanceRegistered,
	}

	sql, args, err := r.sb.Insert("registrations").
		Columns(registrationColumns...).
		Values(
			registration.ID, registration.EventID, registration.StudentID,
			registration.RegistrationDate, registration.PaymentStatus,
			registration.AttendanceStatus,
		).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building insert registration SQL")
		return nil, fmt.Errorf("failed to build insert registration query: %w", err)
	}

	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		if isDuplicateKeyError(err) {
			return nil, apperrors.ErrAlreadyRegistered
		}
		if isForeignKeyError(err) {
			return nil, apperrors.NewNotFoundError("student not found")
		}
		return nil, fmt.Errorf("error creating registration: %w", err)
	}

	registrationCount++
	newStatus := status
	if maxParticipants > 0 && registrationCount >= maxParticipants {
		newStatus = models.EventClosed
	}
	if _, err := tx.Exec(ctx, `
		UPDATE events SET registration_count = $1, status = $2 WHERE id = $3
	`, registrationCount, newStatus, eventID); err != nil {
		return nil, fmt.Errorf("error updating event registration count: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("error committing registration: %w", err)
	}

	return registration, nil
}
