// Package store holds the in-memory entity collections that every UI
// surface reads from. One Store interface, two backing adapters: a
// fixture-backed store for demos and tests (embedded JSON baselines plus
// persisted deltas) and a remote store that delegates to the gateway. The
// adapter is selected at construction time; consumers only see the
// interface.
package store

import (
	"context"
	"strings"

	"github.com/campustrack/campustrack/internal/app/models"
)

// Collection names used for persistence keys and change payloads.
const (
	CollectionEvents        = "events"
	CollectionActivities    = "activities"
	CollectionCertificates  = "certificates"
	CollectionStudents      = "students"
	CollectionFaculty       = "faculty"
	CollectionRegistrations = "registrations"
)

// Store is the authoritative session holder of all collections.
//
// Accessors return deep copies; mutating a returned value never corrupts
// store state. Update and delete methods return
// apperrors.ErrResourceNotFound when the id does not match any record, and
// leave the collection untouched in that case. Approve/reject methods
// additionally return apperrors.ErrStatusConflict when the record is no
// longer pending.
type Store interface {
	// Loaded reports whether the initial data load has completed.
	Loaded() bool

	// Events
	GetAllEvents(ctx context.Context) ([]models.Event, error)
	CreateEvent(ctx context.Context, event models.Event) (*models.Event, error)
	UpdateEvent(ctx context.Context, id string, patch models.EventPatch) (*models.Event, error)
	DeleteEvent(ctx context.Context, id string) (*models.Event, error)
	SearchEvents(ctx context.Context, query string) ([]models.Event, error)
	GetEventsByOrganizer(ctx context.Context, organizerID string) ([]models.Event, error)
	RegisterForEvent(ctx context.Context, eventID, studentID string) (*models.Registration, error)
	GetEventRegistrations(ctx context.Context, eventID string) ([]models.Registration, error)

	// Activities
	GetAllActivities(ctx context.Context) ([]models.Activity, error)
	CreateActivity(ctx context.Context, activity models.Activity) (*models.Activity, error)
	UpdateActivity(ctx context.Context, id string, patch models.ActivityPatch) (*models.Activity, error)
	ApproveActivity(ctx context.Context, id, approver, comment string) (*models.Activity, error)
	RejectActivity(ctx context.Context, id, actor, comment string) (*models.Activity, error)
	GetActivitiesByStatus(ctx context.Context, status models.Status) ([]models.Activity, error)
	GetActivitiesByStudent(ctx context.Context, studentID string) ([]models.Activity, error)
	SearchActivities(ctx context.Context, query string) ([]models.Activity, error)

	// Certificates
	GetAllCertificates(ctx context.Context) ([]models.Certificate, error)
	CreateCertificate(ctx context.Context, certificate models.Certificate) (*models.Certificate, error)
	UpdateCertificate(ctx context.Context, id string, patch models.CertificatePatch) (*models.Certificate, error)
	DeleteCertificate(ctx context.Context, id string) (*models.Certificate, error)
	ApproveCertificate(ctx context.Context, id, approver, comment string) (*models.Certificate, error)
	RejectCertificate(ctx context.Context, id, actor, comment string) (*models.Certificate, error)
	GetCertificatesByStatus(ctx context.Context, status models.Status) ([]models.Certificate, error)
	GetCertificatesByStudent(ctx context.Context, studentID string) ([]models.Certificate, error)

	// Students
	GetAllStudents(ctx context.Context) ([]models.Student, error)
	CreateStudent(ctx context.Context, student models.Student) (*models.Student, error)
	UpdateStudent(ctx context.Context, id string, patch models.StudentPatch) (*models.Student, error)

	// Faculty
	GetAllFaculty(ctx context.Context) ([]models.Faculty, error)
	CreateFaculty(ctx context.Context, member models.Faculty) (*models.Faculty, error)
	UpdateFaculty(ctx context.Context, id string, patch models.FacultyPatch) (*models.Faculty, error)

	// Analytics
	GetStatistics(ctx context.Context) (models.Statistics, error)
}

// containsFold reports whether substr occurs in s, case-insensitively.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// matchAny reports whether any of the fields contains the query,
// case-insensitively.
func matchAny(query string, fields ...string) bool {
	for _, f := range fields {
		if containsFold(f, query) {
			return true
		}
	}
	return false
}
