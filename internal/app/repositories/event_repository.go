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

// Event rows flatten the nested organizer, venue, dates and fees groups
// into prefixed columns.
var eventColumns = []string{
	"id", "title", "description", "type", "category",
	"organizer_id", "organizer_name", "organizer_type", "organizer_verification", "organizer_email",
	"venue_name", "venue_address", "venue_capacity",
	"start_date", "end_date", "registration_deadline",
	"fee_student", "fee_professional", "fee_currency",
	"tags", "max_participants", "registration_count", "status", "created_by", "created_date",
}

// EventRepository handles database operations for campus events
type EventRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanEvent(row pgx.Row) (*models.Event, error) {
	var e models.Event
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.Type, &e.Category,
		&e.Organizer.OrganizerID, &e.Organizer.Name, &e.Organizer.Type,
		&e.Organizer.VerificationStatus, &e.Organizer.ContactEmail,
		&e.Venue.Name, &e.Venue.Address, &e.Venue.Capacity,
		&e.Dates.StartDate, &e.Dates.EndDate, &e.Dates.RegistrationDeadline,
		&e.Fees.Student, &e.Fees.Professional, &e.Fees.Currency,
		&e.Tags, &e.MaxParticipants, &e.RegistrationCount, &e.Status,
		&e.CreatedBy, &e.CreatedDate,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func eventValues(e *models.Event) []interface{} {
	return []interface{}{
		e.ID, e.Title, e.Description, e.Type, e.Category,
		e.Organizer.OrganizerID, e.Organizer.Name, e.Organizer.Type,
		e.Organizer.VerificationStatus, e.Organizer.ContactEmail,
		e.Venue.Name, e.Venue.Address, e.Venue.Capacity,
		e.Dates.StartDate, e.Dates.EndDate, e.Dates.RegistrationDeadline,
		e.Fees.Student, e.Fees.Professional, e.Fees.Currency,
		e.Tags, e.MaxParticipants, e.RegistrationCount, e.Status,
		e.CreatedBy, e.CreatedDate,
	}
}

func (r *EventRepository) queryMany(ctx context.Context, builder squirrel.SelectBuilder) ([]models.Event, error) {
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build event query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning event: %w", err)
		}
		events = append(events, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

func (r *EventRepository) selectAll() squirrel.SelectBuilder {
	return r.sb.Select(eventColumns...).From("events").OrderBy("start_date", "id")
}

// Create inserts a new event
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	sql, args, err := r.sb.Insert("events").
		Columns(eventColumns...).
		Values(eventValues(event)...).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building insert event SQL")
		return fmt.Errorf("failed to build insert event query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if isDuplicateKeyError(err) {
			return apperrors.ErrResourceAlreadyExists
		}
		if isForeignKeyError(err) {
			return apperrors.NewNotFoundError("organizer not found")
		}
		return fmt.Errorf("error creating event: %w", err)
	}

	return nil
}

// GetByID retrieves an event by ID
func (r *EventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	sql, args, err := r.sb.Select(eventColumns...).
		From("events").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get event query: %w", err)
	}

	event, err := scanEvent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving event: %w", err)
	}

	return event, nil
}

// GetAll retrieves all events ordered by start date
func (r *EventRepository) GetAll(ctx context.Context) ([]models.Event, error) {
	return r.queryMany(ctx, r.selectAll())
}

// GetByOrganizer retrieves all events run by the given organizer
func (r *EventRepository) GetByOrganizer(ctx context.Context, organizerID string) ([]models.Event, error) {
	return r.queryMany(ctx, r.selectAll().Where(squirrel.Eq{"organizer_id": organizerID}))
}

// Search retrieves events whose title, description or category matches the query
func (r *EventRepository) Search(ctx context.Context, query string) ([]models.Event, error) {
	pattern := "%" + query + "%"
	return r.queryMany(ctx, r.selectAll().Where(squirrel.Or{
		squirrel.ILike{"title": pattern},
		squirrel.ILike{"description": pattern},
		squirrel.ILike{"category": pattern},
	}))
}

// Update applies a partial update and returns the stored record
func (r *EventRepository) Update(ctx context.Context, id string, patch models.EventPatch) (*models.Event, error) {
	set := map[string]interface{}{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Type != nil {
		set["type"] = *patch.Type
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Organizer != nil {
		set["organizer_id"] = patch.Organizer.OrganizerID
		set["organizer_name"] = patch.Organizer.Name
		set["organizer_type"] = patch.Organizer.Type
		set["organizer_verification"] = patch.Organizer.VerificationStatus
		set["organizer_email"] = patch.Organizer.ContactEmail
	}
	if patch.Venue != nil {
		set["venue_name"] = patch.Venue.Name
		set["venue_address"] = patch.Venue.Address
		set["venue_capacity"] = patch.Venue.Capacity
	}
	if patch.Dates != nil {
		set["start_date"] = patch.Dates.StartDate
		set["end_date"] = patch.Dates.EndDate
		set["registration_deadline"] = patch.Dates.RegistrationDeadline
	}
	if patch.Fees != nil {
		set["fee_student"] = patch.Fees.Student
		set["fee_professional"] = patch.Fees.Professional
		set["fee_currency"] = patch.Fees.Currency
	}
	if patch.Tags != nil {
		set["tags"] = *patch.Tags
	}
	if patch.MaxParticipants != nil {
		set["max_participants"] = *patch.MaxParticipants
	}
	if patch.RegistrationCount != nil {
		set["registration_count"] = *patch.RegistrationCount
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	sql, args, err := r.sb.Update("events").
		SetMap(set).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update event SQL")
		return nil, fmt.Errorf("failed to build update event query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error updating event: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, apperrors.ErrResourceNotFound
	}

	return r.GetByID(ctx, id)
}

// Delete removes an event by ID. Registrations cascade.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	sql, args, err := r.sb.Delete("events").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete event query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting event: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}
