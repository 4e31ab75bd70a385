// Package binding is the per-component adapter over the entity store and
// the subscription bus. Every UI surface constructs one Binding under its
// own name, attaches a change callback, and reads through the wrapped
// accessors: failures land in the binding's error state and the caller
// gets a safe zero default instead of a propagating error.
package binding

import (
	"context"
	"sync"

	"github.com/campustrack/campustrack/internal/app/models"
	"github.com/campustrack/campustrack/internal/client/bus"
	"github.com/campustrack/campustrack/internal/client/store"
	"github.com/campustrack/campustrack/internal/pkg/logger"
)

// Binding adapts a Store for a single named consumer.
type Binding struct {
	name  string
	store store.Store
	bus   *bus.Bus

	mu      sync.Mutex
	loading bool
	lastErr error
}

// New creates a Binding for the named component.
func New(name string, s store.Store, b *bus.Bus) *Binding {
	return &Binding{
		name:    name,
		store:   s,
		bus:     b,
		loading: true,
	}
}

// Attach subscribes onChange under the component's name. If the store has
// already completed its initial load, the loading flag clears immediately.
func (b *Binding) Attach(onChange bus.Listener) {
	if b.bus != nil && onChange != nil {
		b.bus.Subscribe(b.name, onChange)
	}
	if b.store.Loaded() {
		b.mu.Lock()
		b.loading = false
		b.mu.Unlock()
	}
}

// Detach removes every listener registered under the component's name.
func (b *Binding) Detach() {
	if b.bus != nil {
		b.bus.Unsubscribe(b.name)
	}
}

// Loading reports whether the initial data load is still in flight.
func (b *Binding) Loading() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loading
}

// Err returns the last error captured by a wrapped call, if any.
func (b *Binding) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastErr
}

// ClearErr resets the captured error state.
func (b *Binding) ClearErr() {
	b.mu.Lock()
	b.lastErr = nil
	b.mu.Unlock()
}

// capture records err and reports whether one occurred.
func (b *Binding) capture(op string, err error) bool {
	if err == nil {
		return false
	}
	logger.Warn().Err(err).Str("component", b.name).Str("op", op).Msg("Store call failed")
	b.mu.Lock()
	b.lastErr = err
	b.mu.Unlock()
	return true
}

// listOf wraps a list accessor: errors are captured and an empty slice
// comes back in their place.
func listOf[T any](b *Binding, op string, fn func() ([]T, error)) []T {
	items, err := fn()
	if b.capture(op, err) {
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

// oneOf wraps a single-record accessor or mutator: errors are captured
// and nil comes back in their place.
func oneOf[T any](b *Binding, op string, fn func() (*T, error)) *T {
	record, err := fn()
	if b.capture(op, err) {
		return nil
	}
	return record
}

// --- Events ---

func (b *Binding) Events(ctx context.Context) []models.Event {
	return listOf(b, "getAllEvents", func() ([]models.Event, error) { return b.store.GetAllEvents(ctx) })
}

func (b *Binding) AddEvent(ctx context.Context, event models.Event) *models.Event {
	return oneOf(b, "createEvent", func() (*models.Event, error) { return b.store.CreateEvent(ctx, event) })
}

func (b *Binding) UpdateEvent(ctx context.Context, id string, patch models.EventPatch) *models.Event {
	return oneOf(b, "updateEvent", func() (*models.Event, error) { return b.store.UpdateEvent(ctx, id, patch) })
}

func (b *Binding) DeleteEvent(ctx context.Context, id string) *models.Event {
	return oneOf(b, "deleteEvent", func() (*models.Event, error) { return b.store.DeleteEvent(ctx, id) })
}

func (b *Binding) SearchEvents(ctx context.Context, query string) []models.Event {
	return listOf(b, "searchEvents", func() ([]models.Event, error) { return b.store.SearchEvents(ctx, query) })
}

func (b *Binding) EventsByOrganizer(ctx context.Context, organizerID string) []models.Event {
	return listOf(b, "eventsByOrganizer", func() ([]models.Event, error) {
		return b.store.GetEventsByOrganizer(ctx, organizerID)
	})
}

func (b *Binding) RegisterForEvent(ctx context.Context, eventID, studentID string) *models.Registration {
	return oneOf(b, "registerForEvent", func() (*models.Registration, error) {
		return b.store.RegisterForEvent(ctx, eventID, studentID)
	})
}

func (b *Binding) EventRegistrations(ctx context.Context, eventID string) []models.Registration {
	return listOf(b, "eventRegistrations", func() ([]models.Registration, error) {
		return b.store.GetEventRegistrations(ctx, eventID)
	})
}

// --- Activities ---

func (b *Binding) Activities(ctx context.Context) []models.Activity {
	return listOf(b, "getAllActivities", func() ([]models.Activity, error) { return b.store.GetAllActivities(ctx) })
}

func (b *Binding) AddActivity(ctx context.Context, activity models.Activity) *models.Activity {
	return oneOf(b, "createActivity", func() (*models.Activity, error) { return b.store.CreateActivity(ctx, activity) })
}

func (b *Binding) UpdateActivity(ctx context.Context, id string, patch models.ActivityPatch) *models.Activity {
	return oneOf(b, "updateActivity", func() (*models.Activity, error) { return b.store.UpdateActivity(ctx, id, patch) })
}

func (b *Binding) ApproveActivity(ctx context.Context, id, approver, comment string) *models.Activity {
	return oneOf(b, "approveActivity", func() (*models.Activity, error) {
		return b.store.ApproveActivity(ctx, id, approver, comment)
	})
}

func (b *Binding) RejectActivity(ctx context.Context, id, actor, comment string) *models.Activity {
	return oneOf(b, "rejectActivity", func() (*models.Activity, error) {
		return b.store.RejectActivity(ctx, id, actor, comment)
	})
}

func (b *Binding) ActivitiesByStatus(ctx context.Context, status models.Status) []models.Activity {
	return listOf(b, "activitiesByStatus", func() ([]models.Activity, error) {
		return b.store.GetActivitiesByStatus(ctx, status)
	})
}

func (b *Binding) ActivitiesByStudent(ctx context.Context, studentID string) []models.Activity {
	return listOf(b, "activitiesByStudent", func() ([]models.Activity, error) {
		return b.store.GetActivitiesByStudent(ctx, studentID)
	})
}

func (b *Binding) SearchActivities(ctx context.Context, query string) []models.Activity {
	return listOf(b, "searchActivities", func() ([]models.Activity, error) { return b.store.SearchActivities(ctx, query) })
}

// --- Certificates ---

func (b *Binding) Certificates(ctx context.Context) []models.Certificate {
	return listOf(b, "getAllCertificates", func() ([]models.Certificate, error) { return b.store.GetAllCertificates(ctx) })
}

func (b *Binding) AddCertificate(ctx context.Context, certificate models.Certificate) *models.Certificate {
	return oneOf(b, "createCertificate", func() (*models.Certificate, error) {
		return b.store.CreateCertificate(ctx, certificate)
	})
}

func (b *Binding) UpdateCertificate(ctx context.Context, id string, patch models.CertificatePatch) *models.Certificate {
	return oneOf(b, "updateCertificate", func() (*models.Certificate, error) {
		return b.store.UpdateCertificate(ctx, id, patch)
	})
}

func (b *Binding) DeleteCertificate(ctx context.Context, id string) *models.Certificate {
	return oneOf(b, "deleteCertificate", func() (*models.Certificate, error) { return b.store.DeleteCertificate(ctx, id) })
}

func (b *Binding) ApproveCertificate(ctx context.Context, id, approver, comment string) *models.Certificate {
	return oneOf(b, "approveCertificate", func() (*models.Certificate, error) {
		return b.store.ApproveCertificate(ctx, id, approver, comment)
	})
}

func (b *Binding) RejectCertificate(ctx context.Context, id, actor, comment string) *models.Certificate {
	return oneOf(b, "rejectCertificate", func() (*models.Certificate, error) {
		return b.store.RejectCertificate(ctx, id, actor, comment)
	})
}

func (b *Binding) CertificatesByStatus(ctx context.Context, status models.Status) []models.Certificate {
	return listOf(b, "certificatesByStatus", func() ([]models.Certificate, error) {
		return b.store.GetCertificatesByStatus(ctx, status)
	})
}

func (b *Binding) CertificatesByStudent(ctx context.Context, studentID string) []models.Certificate {
	return listOf(b, "certificatesByStudent", func() ([]models.Certificate, error) {
		return b.store.GetCertificatesByStudent(ctx, studentID)
	})
}

// --- Students and faculty ---

func (b *Binding) Students(ctx context.Context) []models.Student {
	return listOf(b, "getAllStudents", func() ([]models.Student, error) { return b.store.GetAllStudents(ctx) })
}

func (b *Binding) UpdateStudent(ctx context.Context, id string, patch models.StudentPatch) *models.Student {
	return oneOf(b, "updateStudent", func() (*models.Student, error) { return b.store.UpdateStudent(ctx, id, patch) })
}

func (b *Binding) Faculty(ctx context.Context) []models.Faculty {
	return listOf(b, "getAllFaculty", func() ([]models.Faculty, error) { return b.store.GetAllFaculty(ctx) })
}

func (b *Binding) UpdateFaculty(ctx context.Context, id string, patch models.FacultyPatch) *models.Faculty {
	return oneOf(b, "updateFaculty", func() (*models.Faculty, error) { return b.store.UpdateFaculty(ctx, id, patch) })
}

// --- Analytics ---

// Statistics wraps the aggregate read model; a failure captures the error
// and returns the zero statistics.
func (b *Binding) Statistics(ctx context.Context) models.Statistics {
	stats, err := b.store.GetStatistics(ctx)
	if b.capture("getStatistics", err) {
		return models.Statistics{}
	}
	return stats
}
