package store

import (
	"context"

	"github.com/campustrack/campustrack/internal/app/models"
	"github.com/campustrack/campustrack/internal/client/bus"
	"github.com/campustrack/campustrack/internal/client/gateway"
)

// RemoteStore is the API-backed Store adapter: every call delegates to
// the gateway and the backend stays authoritative. Mutations broadcast
// the same typed changes as the fixture adapter so consumers cannot tell
// the adapters apart.
type RemoteStore struct {
	gw  *gateway.Gateway
	bus *bus.Bus
}

// NewRemoteStore creates a Store backed by the remote gateway.
func NewRemoteStore(gw *gateway.Gateway, b *bus.Bus) *RemoteStore {
	return &RemoteStore{gw: gw, bus: b}
}

func (s *RemoteStore) publish(t bus.ChangeType, payload interface{}) {
	if s.bus != nil {
		s.bus.Publish(bus.Change{Type: t, Payload: payload})
	}
}

// Loaded always reports true; the backend is the source of truth and
// there is no eager load phase.
func (s *RemoteStore) Loaded() bool { return true }

// --- Events ---

func (s *RemoteStore) GetAllEvents(ctx context.Context) ([]models.Event, error) {
	return s.gw.GetAllEvents(ctx)
}

func (s *RemoteStore) CreateEvent(ctx context.Context, event models.Event) (*models.Event, error) {
	created, err := s.gw.CreateEvent(ctx, event)
	if err != nil {
		return nil, err
	}
	s.publish(bus.EventAdded, created.Clone())
	return created, nil
}

func (s *RemoteStore) UpdateEvent(ctx context.Context, id string, patch models.EventPatch) (*models.Event, error) {
	updated, err := s.gw.UpdateEvent(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.publish(bus.EventUpdated, updated.Clone())
	return updated, nil
}

func (s *RemoteStore) DeleteEvent(ctx context.Context, id string) (*models.Event, error) {
	removed, err := s.gw.DeleteEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(bus.EventDeleted, removed.Clone())
	return removed, nil
}

func (s *RemoteStore) SearchEvents(ctx context.Context, query string) ([]models.Event, error) {
	return s.gw.SearchEvents(ctx, query)
}

// GetEventsByOrganizer filters client-side; the backend has no dedicated
// endpoint for this projection.
func (s *RemoteStore) GetEventsByOrganizer(ctx context.Context, organizerID string) ([]models.Event, error) {
	events, err := s.gw.GetAllEvents(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.Event
	for _, e := range events {
		if e.Organizer.OrganizerID == organizerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *RemoteStore) RegisterForEvent(ctx context.Context, eventID, studentID string) (*models.Registration, error) {
	reg, err := s.gw.RegisterForEvent(ctx, eventID, studentID)
	if err != nil {
		return nil, err
	}
	s.publish(bus.RegistrationAdded, reg.Clone())
	return reg, nil
}

func (s *RemoteStore) GetEventRegistrations(ctx context.Context, eventID string) ([]models.Registration, error) {
	return s.gw.GetEventRegistrations(ctx, eventID)
}

// --- Activities ---

func (s *RemoteStore) GetAllActivities(ctx context.Context) ([]models.Activity, error) {
	return s.gw.GetAllActivities(ctx)
}

func (s *RemoteStore) CreateActivity(ctx context.Context, activity models.Activity) (*models.Activity, error) {
	created, err := s.gw.CreateActivity(ctx, activity)
	if err != nil {
		return nil, err
	}
	s.publish(bus.ActivityAdded, created.Clone())
	return created, nil
}

func (s *RemoteStore) UpdateActivity(ctx context.Context, id string, patch models.ActivityPatch) (*models.Activity, error) {
	updated, err := s.gw.UpdateActivity(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.publish(bus.ActivityUpdated, updated.Clone())
	return updated, nil
}

func (s *RemoteStore) ApproveActivity(ctx context.Context, id, approver, comment string) (*models.Activity, error) {
	return s.UpdateActivity(ctx, id, models.ActivityApproval(approver, comment))
}

func (s *RemoteStore) RejectActivity(ctx context.Context, id, actor, comment string) (*models.Activity, error) {
	return s.UpdateActivity(ctx, id, models.ActivityRejection(actor, comment))
}

func (s *RemoteStore) GetActivitiesByStatus(ctx context.Context, status models.Status) ([]models.Activity, error) {
	activities, err := s.gw.GetAllActivities(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.Activity
	for _, a := range activities {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *RemoteStore) GetActivitiesByStudent(ctx context.Context, studentID string) ([]models.Activity, error) {
	return s.gw.GetActivitiesByStudent(ctx, studentID)
}

func (s *RemoteStore) SearchActivities(ctx context.Context, query string) ([]models.Activity, error) {
	activities, err := s.gw.GetAllActivities(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.Activity
	for _, a := range activities {
		if matchAny(query, a.Title, a.Description, string(a.Type)) {
			out = append(out, a)
		}
	}
	return out, nil
}

// --- Certificates ---

func (s *RemoteStore) GetAllCertificates(ctx context.Context) ([]models.Certificate, error) {
	return s.gw.GetAllCertificates(ctx)
}

func (s *RemoteStore) CreateCertificate(ctx context.Context, certificate models.Certificate) (*models.Certificate, error) {
	created, err := s.gw.CreateCertificate(ctx, certificate)
	if err != nil {
		return nil, err
	}
	s.publish(bus.CertificateAdded, created.Clone())
	return created, nil
}

func (s *RemoteStore) UpdateCertificate(ctx context.Context, id string, patch models.CertificatePatch) (*models.Certificate, error) {
	updated, err := s.gw.UpdateCertificate(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.publish(bus.CertificateUpdated, updated.Clone())
	return updated, nil
}

func (s *RemoteStore) DeleteCertificate(ctx context.Context, id string) (*models.Certificate, error) {
	removed, err := s.gw.DeleteCertificate(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(bus.CertificateDeleted, removed.Clone())
	return removed, nil
}

func (s *RemoteStore) ApproveCertificate(ctx context.Context, id, approver, comment string) (*models.Certificate, error) {
	return s.UpdateCertificate(ctx, id, models.CertificateApproval(approver, comment))
}

func (s *RemoteStore) RejectCertificate(ctx context.Context, id, actor, comment string) (*models.Certificate, error) {
	return s.UpdateCertificate(ctx, id, models.CertificateRejection(actor, comment))
}

func (s *RemoteStore) GetCertificatesByStatus(ctx context.Context, status models.Status) ([]models.Certificate, error) {
	certificates, err := s.gw.GetAllCertificates(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.Certificate
	for _, c := range certificates {
		if c.Status == status {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *RemoteStore) GetCertificatesByStudent(ctx context.Context, studentID string) ([]models.Certificate, error) {
	return s.gw.GetCertificatesByStudent(ctx, studentID)
}

// --- Students ---

func (s *RemoteStore) GetAllStudents(ctx context.Context) ([]models.Student, error) {
	return s.gw.GetAllStudents(ctx)
}

func (s *RemoteStore) CreateStudent(ctx context.Context, student models.Student) (*models.Student, error) {
	created, err := s.gw.CreateStudent(ctx, student)
	if err != nil {
		return nil, err
	}
	s.publish(bus.StudentAdded, created.Clone())
	return created, nil
}

func (s *RemoteStore) UpdateStudent(ctx context.Context, id string, patch models.StudentPatch) (*models.Student, error) {
	updated, err := s.gw.UpdateStudent(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.publish(bus.StudentUpdated, updated.Clone())
	return updated, nil
}

// --- Faculty ---

func (s *RemoteStore) GetAllFaculty(ctx context.Context) ([]models.Faculty, error) {
	return s.gw.GetAllFaculty(ctx)
}

func (s *RemoteStore) CreateFaculty(ctx context.Context, member models.Faculty) (*models.Faculty, error) {
	created, err := s.gw.CreateFaculty(ctx, member)
	if err != nil {
		return nil, err
	}
	s.publish(bus.FacultyAdded, created.Clone())
	return created, nil
}

func (s *RemoteStore) UpdateFaculty(ctx context.Context, id string, patch models.FacultyPatch) (*models.Faculty, error) {
	updated, err := s.gw.UpdateFaculty(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.publish(bus.FacultyUpdated, updated.Clone())
	return updated, nil
}

// --- Analytics ---

func (s *RemoteStore) GetStatistics(ctx context.Context) (models.Statistics, error) {
	return s.gw.GetStatistics(ctx)
}
