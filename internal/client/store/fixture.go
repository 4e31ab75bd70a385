package store

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/campustrack/campustrack/internal/app/models"
	"github.com/campustrack/campustrack/internal/client/bus"
	"github.com/campustrack/campustrack/internal/client/kv"
	"github.com/campustrack/campustrack/internal/pkg/apperrors"
	"github.com/campustrack/campustrack/internal/pkg/logger"
)

//go:embed fixtures/*.json
var fixtureFS embed.FS

// FixtureStore is the fixture-backed Store adapter. Construction eagerly
// loads the embedded JSON baselines and layers any previously persisted
// collection on top, so mutations survive a restart. Every mutation
// persists the full updated collection and broadcasts a typed change.
type FixtureStore struct {
	bus *bus.Bus
	kv  *kv.Store

	mu            sync.RWMutex
	events        []models.Event
	activities    []models.Activity
	certificates  []models.Certificate
	students      []models.Student
	faculty       []models.Faculty
	registrations []models.Registration
	loaded        bool
}

// NewFixtureStore builds a store from the embedded fixtures. The bus is
// required; the kv store is optional — without it mutations simply do not
// survive a restart.
func NewFixtureStore(b *bus.Bus, persist *kv.Store) (*FixtureStore, error) {
	s := &FixtureStore{bus: b, kv: persist}

	if err := loadFixture("fixtures/events.json", &s.events); err != nil {
		return nil, err
	}
	if err := loadFixture("fixtures/activities.json", &s.activities); err != nil {
		return nil, err
	}
	if err := loadFixture("fixtures/certificates.json", &s.certificates); err != nil {
		return nil, err
	}
	if err := loadFixture("fixtures/students.json", &s.students); err != nil {
		return nil, err
	}
	if err := loadFixture("fixtures/faculty.json", &s.faculty); err != nil {
		return nil, err
	}

	// Persisted collections replace the baseline wholesale; a corrupt or
	// missing blob leaves the fixture baseline in place.
	s.restore(CollectionEvents, &s.events)
	s.restore(CollectionActivities, &s.activities)
	s.restore(CollectionCertificates, &s.certificates)
	s.restore(CollectionStudents, &s.students)
	s.restore(CollectionFaculty, &s.faculty)
	s.restore(CollectionRegistrations, &s.registrations)

	s.loaded = true
	if b != nil {
		b.Publish(bus.Change{Type: bus.DataLoaded})
	}
	return s, nil
}

func loadFixture(name string, out interface{}) error {
	data, err := fixtureFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("failed to read fixture %s: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse fixture %s: %w", name, err)
	}
	return nil
}

func (s *FixtureStore) restore(collection string, out interface{}) {
	if s.kv == nil {
		return
	}
	s.kv.Get(kv.CollectionKey(collection), out)
}

// persist writes the full updated collection; failures are logged, never
// surfaced — persistence is best-effort session continuity.
func (s *FixtureStore) persist(collection string, value interface{}) {
	if s.kv == nil {
		return
	}
	if err := s.kv.Put(kv.CollectionKey(collection), value); err != nil {
		logger.Warn().Err(err).Str("collection", collection).Msg("Failed to persist collection")
	}
}

func (s *FixtureStore) publish(t bus.ChangeType, payload interface{}) {
	if s.bus != nil {
		s.bus.Publish(bus.Change{Type: t, Payload: payload})
	}
}

// Loaded reports whether the initial data load has completed.
func (s *FixtureStore) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// --- Events ---

// GetAllEvents returns a deep copy of the event collection.
func (s *FixtureStore) GetAllEvents(_ context.Context) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Event, len(s.events))
	for i, e := range s.events {
		out[i] = e.Clone()
	}
	return out, nil
}

// CreateEvent assigns a generated id and creation stamp, opens the event
// and appends it.
func (s *FixtureStore) CreateEvent(_ context.Context, event models.Event) (*models.Event, error) {
	s.mu.Lock()
	event.ID = models.NewID(models.PrefixEvent)
	event.CreatedDate = time.Now()
	if event.Status == "" {
		event.Status = models.EventOpen
	}
	s.events = append(s.events, event.Clone())
	s.persist(CollectionEvents, s.events)
	s.mu.Unlock()

	s.publish(bus.EventAdded, event.Clone())
	return &event, nil
}

// UpdateEvent merges the patch into the matching event.
func (s *FixtureStore) UpdateEvent(_ context.Context, id string, patch models.EventPatch) (*models.Event, error) {
	s.mu.Lock()
	idx := slices.IndexFunc(s.events, func(e models.Event) bool { return e.ID == id })
	if idx < 0 {
		s.mu.Unlock()
		return nil, apperrors.ErrResourceNotFound
	}
	s.events[idx].Apply(patch)
	updated := s.events[idx].Clone()
	s.persist(CollectionEvents, s.events)
	s.mu.Unlock()

	s.publish(bus.EventUpdated, updated.Clone())
	return &updated, nil
}

// DeleteEvent removes the matching event and returns it.
func (s *FixtureStore) DeleteEvent(_ context.Context, id string) (*models.Event, error) {
	s.mu.Lock()
	idx := slices.IndexFunc(s.events, func(e models.Event) bool { return e.ID == id })
	if idx < 0 {
		s.mu.Unlock()
		return nil, apperrors.ErrResourceNotFound
	}
	removed := s.events[idx]
	s.events = slices.Delete(s.events, idx, idx+1)
	s.persist(CollectionEvents, s.events)
	s.mu.Unlock()

	s.publish(bus.EventDeleted, removed.Clone())
	return &removed, nil
}

// SearchEvents matches the query against title, description and tags,
// case-insensitively.
func (s *FixtureStore) SearchEvents(_ context.Context, query string) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Event
	for _, e := range s.events {
		if matchAny(query, e.Title, e.Description) || matchAny(query, e.Tags...) {
			out = append(out, e.Clone())
		}
	}
	return out, nil
}

// GetEventsByOrganizer filters events by organizer id.
func (s *FixtureStore) GetEventsByOrganizer(_ context.Context, organizerID string) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Event
	for _, e := range s.events {
		if e.Organizer.OrganizerID == organizerID {
			out = append(out, e.Clone())
		}
	}
	return out, nil
}

// RegisterForEvent registers a student for an open event with remaining
// capacity; reaching the cap closes the event.
func (s *FixtureStore) RegisterForEvent(_ context.Context, eventID, studentID string) (*models.Registration, error) {
	s.mu.Lock()
	idx := slices.IndexFunc(s.events, func(e models.Event) bool { return e.ID == eventID })
	if idx < 0 {
		s.mu.Unlock()
		return nil, apperrors.ErrResourceNotFound
	}
	event := &s.events[idx]
	if event.Status != models.EventOpen {
		s.mu.Unlock()
		return nil, apperrors.ErrEventClosed
	}
	if event.Full() {
		s.mu.Unlock()
		return nil, apperrors.ErrEventFull
	}
	for _, r := range s.registrations {
		if r.EventID == eventID && r.StudentID == studentID {
			s.mu.Unlock()
			return nil, apperrors.ErrAlreadyRegistered
		}
	}

	reg := models.Registration{
		ID:               models.NewID(models.PrefixRegistration),
		EventID:          eventID,
		StudentID:        studentID,
		RegistrationDate: time.Now(),
		PaymentStatus:    models.PaymentPending,
		AttendanceStatus: models.AttendanceRegistered,
	}
	s.registrations = append(s.registrations, reg)
	event.RegistrationCount++
	if event.Full() {
		event.Status = models.EventClosed
	}
	s.persist(CollectionRegistrations, s.registrations)
	s.persist(CollectionEvents, s.events)
	updatedEvent := event.Clone()
	s.mu.Unlock()

	s.publish(bus.RegistrationAdded, reg.Clone())
	s.publish(bus.EventUpdated, updatedEvent)
	return &reg, nil
}

// GetEventRegistrations lists the registrations for an event.
func (s *FixtureStore) GetEventRegistrations(_ context.Context, eventID string) ([]models.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Registration
	for _, r := range s.registrations {
		if r.EventID == eventID {
			out = append(out, r.Clone())
		}
	}
	return out, nil
}

// --- Activities ---

// GetAllActivities returns a deep copy of the activity collection.
func (s *FixtureStore) GetAllActivities(_ context.Context) ([]models.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Activity, len(s.activities))
	for i, a := range s.activities {
		out[i] = a.Clone()
	}
	return out, nil
}

// CreateActivity assigns a generated id, stamps creation time and sets
// the initial pending status.
func (s *FixtureStore) CreateActivity(_ context.Context, activity models.Activity) (*models.Activity, error) {
	s.mu.Lock()
	activity.ID = models.NewID(models.PrefixActivity)
	activity.CreatedAt = time.Now()
	activity.Status = models.StatusPending
	s.activities = append(s.activities, activity.Clone())
	s.persist(CollectionActivities, s.activities)
	s.mu.Unlock()

	s.publish(bus.ActivityAdded, activity.Clone())
	return &activity, nil
}

// UpdateActivity merges the patch into the matching activity. A status
// change embedded in the patch goes through the transition check.
func (s *FixtureStore) UpdateActivity(_ context.Context, id string, patch models.ActivityPatch) (*models.Activity, error) {
	s.mu.Lock()
	idx := slices.IndexFunc(s.activities, func(a models.Activity) bool { return a.ID == id })
	if idx < 0 {
		s.mu.Unlock()
		return nil, apperrors.ErrResourceNotFound
	}
	current := &s.activities[idx]
	if patch.Status != nil && *patch.Status != current.Status && current.Status.Terminal() {
		s.mu.Unlock()
		return nil, apperrors.ErrStatusConflict
	}
	current.Apply(patch)
	updated := current.Clone()
	s.persist(CollectionActivities, s.activities)
	s.mu.Unlock()

	s.publish(bus.ActivityUpdated, updated.Clone())
	return &updated, nil
}

// ApproveActivity transitions a pending activity to approved.
func (s *FixtureStore) ApproveActivity(ctx context.Context, id, approver, comment string) (*models.Activity, error) {
	return s.UpdateActivity(ctx, id, models.ActivityApproval(approver, comment))
}

// RejectActivity transitions a pending activity to rejected.
func (s *FixtureStore) RejectActivity(ctx context.Context, id, actor, comment string) (*models.Activity, error) {
	return s.UpdateActivity(ctx, id, models.ActivityRejection(actor, comment))
}

// GetActivitiesByStatus filters activities by approval status.
func (s *FixtureStore) GetActivitiesByStatus(_ context.Context, status models.Status) ([]models.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Activity
	for _, a := range s.activities {
		if a.Status == status {
			out = append(out, a.Clone())
		}
	}
	return out, nil
}

// GetActivitiesByStudent filters activities by student id.
func (s *FixtureStore) GetActivitiesByStudent(_ context.Context, studentID string) ([]models.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Activity
	for _, a := range s.activities {
		if a.StudentID == studentID {
			out = append(out, a.Clone())
		}
	}
	return out, nil
}

// SearchActivities matches the query against title, description and type,
// case-insensitively.
func (s *FixtureStore) SearchActivities(_ context.Context, query string) ([]models.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Activity
	for _, a := range s.activities {
		if matchAny(query, a.Title, a.Description, string(a.Type)) {
			out = append(out, a.Clone())
		}
	}
	return out, nil
}

// --- Certificates ---

// GetAllCertificates returns a deep copy of the certificate collection.
func (s *FixtureStore) GetAllCertificates(_ context.Context) ([]models.Certificate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Certificate, len(s.certificates))
	for i, c := range s.certificates {
		out[i] = c.Clone()
	}
	return out, nil
}

// CreateCertificate assigns a generated id, stamps the upload time and
// sets the initial pending status.
func (s *FixtureStore) CreateCertificate(_ context.Context, certificate models.Certificate) (*models.Certificate, error) {
	s.mu.Lock()
	certificate.ID = models.NewID(models.PrefixCertificate)
	certificate.UploadDate = time.Now()
	certificate.Status = models.StatusPending
	s.certificates = append(s.certificates, certificate.Clone())
	s.persist(CollectionCertificates, s.certificates)
	s.mu.Unlock()

	s.publish(bus.CertificateAdded, certificate.Clone())
	return &certificate, nil
}

// UpdateCertificate merges the patch into the matching certificate,
// enforcing the status transition check.
func (s *FixtureStore) UpdateCertificate(_ context.Context, id string, patch models.CertificatePatch) (*models.Certificate, error) {
	s.mu.Lock()
	idx := slices.IndexFunc(s.certificates, func(c models.Certificate) bool { return c.ID == id })
	if idx < 0 {
		s.mu.Unlock()
		return nil, apperrors.ErrResourceNotFound
	}
	current := &s.certificates[idx]
	if patch.Status != nil && *patch.Status != current.Status && current.Status.Terminal() {
		s.mu.Unlock()
		return nil, apperrors.ErrStatusConflict
	}
	current.Apply(patch)
	updated := current.Clone()
	s.persist(CollectionCertificates, s.certificates)
	s.mu.Unlock()

	s.publish(bus.CertificateUpdated, updated.Clone())
	return &updated, nil
}

// DeleteCertificate removes a certificate, allowed only while pending.
func (s *FixtureStore) DeleteCertificate(_ context.Context, id string) (*models.Certificate, error) {
	s.mu.Lock()
	idx := slices.IndexFunc(s.certificates, func(c models.Certificate) bool { return c.ID == id })
	if idx < 0 {
		s.mu.Unlock()
		return nil, apperrors.ErrResourceNotFound
	}
	if s.certificates[idx].Status != models.StatusPending {
		s.mu.Unlock()
		return nil, apperrors.ErrStatusConflict
	}
	removed := s.certificates[idx]
	s.certificates = slices.Delete(s.certificates, idx, idx+1)
	s.persist(CollectionCertificates, s.certificates)
	s.mu.Unlock()

	s.publish(bus.CertificateDeleted, removed.Clone())
	return &removed, nil
}

// ApproveCertificate transitions a pending certificate to approved.
func (s *FixtureStore) ApproveCertificate(ctx context.Context, id, approver, comment string) (*models.Certificate, error) {
	return s.UpdateCertificate(ctx, id, models.CertificateApproval(approver, comment))
}

// RejectCertificate transitions a pending certificate to rejected.
func (s *FixtureStore) RejectCertificate(ctx context.Context, id, actor, comment string) (*models.Certificate, error) {
	return s.UpdateCertificate(ctx, id, models.CertificateRejection(actor, comment))
}

// GetCertificatesByStatus filters certificates by approval status.
func (s *FixtureStore) GetCertificatesByStatus(_ context.Context, status models.Status) ([]models.Certificate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Certificate
	for _, c := range s.certificates {
		if c.Status == status {
			out = append(out, c.Clone())
		}
	}
	return out, nil
}

// GetCertificatesByStudent filters certificates by student id.
func (s *FixtureStore) GetCertificatesByStudent(_ context.Context, studentID string) ([]models.Certificate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Certificate
	for _, c := range s.certificates {
		if c.StudentID == studentID {
			out = append(out, c.Clone())
		}
	}
	return out, nil
}

// --- Students ---

// GetAllStudents returns a deep copy of the student collection.
func (s *FixtureStore) GetAllStudents(_ context.Context) ([]models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Student, len(s.students))
	for i, st := range s.students {
		out[i] = st.Clone()
	}
	return out, nil
}

// CreateStudent assigns a generated id and appends the student.
func (s *FixtureStore) CreateStudent(_ context.Context, student models.Student) (*models.Student, error) {
	s.mu.Lock()
	student.ID = models.NewID(models.PrefixStudent)
	s.students = append(s.students, student.Clone())
	s.persist(CollectionStudents, s.students)
	s.mu.Unlock()

	s.publish(bus.StudentAdded, student.Clone())
	return &student, nil
}

// UpdateStudent merges the patch into the matching student.
func (s *FixtureStore) UpdateStudent(_ context.Context, id string, patch models.StudentPatch) (*models.Student, error) {
	s.mu.Lock()
	idx := slices.IndexFunc(s.students, func(st models.Student) bool { return st.ID == id })
	if idx < 0 {
		s.mu.Unlock()
		return nil, apperrors.ErrResourceNotFound
	}
	s.students[idx].Apply(patch)
	updated := s.students[idx].Clone()
	s.persist(CollectionStudents, s.students)
	s.mu.Unlock()

	s.publish(bus.StudentUpdated, updated.Clone())
	return &updated, nil
}

// --- Faculty ---

// GetAllFaculty returns a deep copy of the faculty collection.
func (s *FixtureStore) GetAllFaculty(_ context.Context) ([]models.Faculty, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Faculty, len(s.faculty))
	for i, f := range s.faculty {
		out[i] = f.Clone()
	}
	return out, nil
}

// CreateFaculty assigns a generated id and appends the faculty member.
func (s *FixtureStore) CreateFaculty(_ context.Context, member models.Faculty) (*models.Faculty, error) {
	s.mu.Lock()
	member.ID = models.NewID(models.PrefixFaculty)
	s.faculty = append(s.faculty, member.Clone())
	s.persist(CollectionFaculty, s.faculty)
	s.mu.Unlock()

	s.publish(bus.FacultyAdded, member.Clone())
	return &member, nil
}

// UpdateFaculty merges the patch into the matching faculty member.
func (s *FixtureStore) UpdateFaculty(_ context.Context, id string, patch models.FacultyPatch) (*models.Faculty, error) {
	s.mu.Lock()
	idx := slices.IndexFunc(s.faculty, func(f models.Faculty) bool { return f.ID == id })
	if idx < 0 {
		s.mu.Unlock()
		return nil, apperrors.ErrResourceNotFound
	}
	s.faculty[idx].Apply(patch)
	updated := s.faculty[idx].Clone()
	s.persist(CollectionFaculty, s.faculty)
	s.mu.Unlock()

	s.publish(bus.FacultyUpdated, updated.Clone())
	return &updated, nil
}

// --- Analytics ---

// GetStatistics derives the aggregate counts from local state.
func (s *FixtureStore) GetStatistics(_ context.Context) (models.Statistics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var stats models.Statistics
	stats.TallyActivities(s.activities)
	stats.TallyCertificates(s.certificates)
	stats.TallyEvents(s.events)
	stats.TotalStudents = len(s.students)
	stats.TotalFaculty = len(s.faculty)
	return stats, nil
}
