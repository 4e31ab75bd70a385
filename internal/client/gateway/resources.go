package gateway

import (
	"context"
	"net/http"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/campustrack/campustrack/internal/app/models"
)

// --- Events ---

// GetAllEvents retrieves every event.
func (g *Gateway) GetAllEvents(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	if err := g.request(ctx, http.MethodGet, "/events", nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// GetEventByID retrieves a single event.
func (g *Gateway) GetEventByID(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	if err := g.request(ctx, http.MethodGet, "/events/"+escape(id), nil, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// CreateEvent creates an event and returns the stored record.
func (g *Gateway) CreateEvent(ctx context.Context, event models.Event) (*models.Event, error) {
	var created models.Event
	if err := g.request(ctx, http.MethodPost, "/events", event, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateEvent applies a partial update to an event.
func (g *Gateway) UpdateEvent(ctx context.Context, id string, patch models.EventPatch) (*models.Event, error) {
	var updated models.Event
	if err := g.request(ctx, http.MethodPut, "/events/"+escape(id), patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteEvent removes an event and returns the removed record.
func (g *Gateway) DeleteEvent(ctx context.Context, id string) (*models.Event, error) {
	var removed models.Event
	if err := g.request(ctx, http.MethodDelete, "/events/"+escape(id), nil, &removed); err != nil {
		return nil, err
	}
	return &removed, nil
}

// SearchEvents performs a server-side case-insensitive search across
// title, description and tags.
func (g *Gateway) SearchEvents(ctx context.Context, query string) ([]models.Event, error) {
	var events []models.Event
	path := "/events/search?q=" + url.QueryEscape(query)
	if err := g.request(ctx, http.MethodGet, path, nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// RegisterForEvent registers a student for an event.
func (g *Gateway) RegisterForEvent(ctx context.Context, eventID, studentID string) (*models.Registration, error) {
	var reg models.Registration
	body := map[string]string{"studentId": studentID}
	if err := g.request(ctx, http.MethodPost, "/events/"+escape(eventID)+"/register", body, &reg); err != nil {
		return nil, err
	}
	return &reg, nil
}

// GetEventRegistrations lists registrations for an event.
func (g *Gateway) GetEventRegistrations(ctx context.Context, eventID string) ([]models.Registration, error) {
	var regs []models.Registration
	if err := g.request(ctx, http.MethodGet, "/events/"+escape(eventID)+"/registrations", nil, &regs); err != nil {
		return nil, err
	}
	return regs, nil
}

// --- Activities ---

// GetAllActivities retrieves every activity.
func (g *Gateway) GetAllActivities(ctx context.Context) ([]models.Activity, error) {
	var activities []models.Activity
	if err := g.request(ctx, http.MethodGet, "/activities", nil, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// GetActivityByID retrieves a single activity.
func (g *Gateway) GetActivityByID(ctx context.Context, id string) (*models.Activity, error) {
	var activity models.Activity
	if err := g.request(ctx, http.MethodGet, "/activities/"+escape(id), nil, &activity); err != nil {
		return nil, err
	}
	return &activity, nil
}

// CreateActivity submits a new activity; the stored record comes back with
// its generated ID and pending status.
func (g *Gateway) CreateActivity(ctx context.Context, activity models.Activity) (*models.Activity, error) {
	var created models.Activity
	if err := g.request(ctx, http.MethodPost, "/activities", activity, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateActivity applies a partial update to an activity.
func (g *Gateway) UpdateActivity(ctx context.Context, id string, patch models.ActivityPatch) (*models.Activity, error) {
	var updated models.Activity
	if err := g.request(ctx, http.MethodPut, "/activities/"+escape(id), patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// ApproveActivity transitions a pending activity to approved with an
// audit stamp taken at call time.
func (g *Gateway) ApproveActivity(ctx context.Context, id, approver, comment string) (*models.Activity, error) {
	return g.UpdateActivity(ctx, id, models.ActivityApproval(approver, comment))
}

// RejectActivity transitions a pending activity to rejected with an audit
// stamp taken at call time.
func (g *Gateway) RejectActivity(ctx context.Context, id, actor, comment string) (*models.Activity, error) {
	return g.UpdateActivity(ctx, id, models.ActivityRejection(actor, comment))
}

// GetActivitiesByStudent lists a student's activities.
func (g *Gateway) GetActivitiesByStudent(ctx context.Context, studentID string) ([]models.Activity, error) {
	var activities []models.Activity
	if err := g.request(ctx, http.MethodGet, "/students/"+escape(studentID)+"/activities", nil, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// --- Certificates ---

// GetAllCertificates retrieves every certificate.
func (g *Gateway) GetAllCertificates(ctx context.Context) ([]models.Certificate, error) {
	var certificates []models.Certificate
	if err := g.request(ctx, http.MethodGet, "/certificates", nil, &certificates); err != nil {
		return nil, err
	}
	return certificates, nil
}

// CreateCertificate uploads a new certificate record.
func (g *Gateway) CreateCertificate(ctx context.Context, certificate models.Certificate) (*models.Certificate, error) {
	var created models.Certificate
	if err := g.request(ctx, http.MethodPost, "/certificates", certificate, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateCertificate applies a partial update to a certificate.
func (g *Gateway) UpdateCertificate(ctx context.Context, id string, patch models.CertificatePatch) (*models.Certificate, error) {
	var updated models.Certificate
	if err := g.request(ctx, http.MethodPut, "/certificates/"+escape(id), patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteCertificate removes a certificate; the backend only allows this
// while the certificate is still pending.
func (g *Gateway) DeleteCertificate(ctx context.Context, id string) (*models.Certificate, error) {
	var removed models.Certificate
	if err := g.request(ctx, http.MethodDelete, "/certificates/"+escape(id), nil, &removed); err != nil {
		return nil, err
	}
	return &removed, nil
}

// ApproveCertificate transitions a pending certificate to approved.
func (g *Gateway) ApproveCertificate(ctx context.Context, id, approver, comment string) (*models.Certificate, error) {
	return g.UpdateCertificate(ctx, id, models.CertificateApproval(approver, comment))
}

// RejectCertificate transitions a pending certificate to rejected.
func (g *Gateway) RejectCertificate(ctx context.Context, id, actor, comment string) (*models.Certificate, error) {
	return g.UpdateCertificate(ctx, id, models.CertificateRejection(actor, comment))
}

// GetCertificatesByStudent lists a student's certificates.
func (g *Gateway) GetCertificatesByStudent(ctx context.Context, studentID string) ([]models.Certificate, error) {
	var certificates []models.Certificate
	if err := g.request(ctx, http.MethodGet, "/students/"+escape(studentID)+"/certificates", nil, &certificates); err != nil {
		return nil, err
	}
	return certificates, nil
}

// --- Students ---

// GetAllStudents retrieves every student.
func (g *Gateway) GetAllStudents(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	if err := g.request(ctx, http.MethodGet, "/students", nil, &students); err != nil {
		return nil, err
	}
	return students, nil
}

// GetStudentByID retrieves a single student.
func (g *Gateway) GetStudentByID(ctx context.Context, id string) (*models.Student, error) {
	var student models.Student
	if err := g.request(ctx, http.MethodGet, "/students/"+escape(id), nil, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

// CreateStudent creates a student record.
func (g *Gateway) CreateStudent(ctx context.Context, student models.Student) (*models.Student, error) {
	var created models.Student
	if err := g.request(ctx, http.MethodPost, "/students", student, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateStudent applies a partial update to a student.
func (g *Gateway) UpdateStudent(ctx context.Context, id string, patch models.StudentPatch) (*models.Student, error) {
	var updated models.Student
	if err := g.request(ctx, http.MethodPut, "/students/"+escape(id), patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// --- Faculty ---

// GetAllFaculty retrieves every faculty member.
func (g *Gateway) GetAllFaculty(ctx context.Context) ([]models.Faculty, error) {
	var faculty []models.Faculty
	if err := g.request(ctx, http.MethodGet, "/faculty", nil, &faculty); err != nil {
		return nil, err
	}
	return faculty, nil
}

// CreateFaculty creates a faculty record.
func (g *Gateway) CreateFaculty(ctx context.Context, member models.Faculty) (*models.Faculty, error) {
	var created models.Faculty
	if err := g.request(ctx, http.MethodPost, "/faculty", member, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateFaculty applies a partial update to a faculty record.
func (g *Gateway) UpdateFaculty(ctx context.Context, id string, patch models.FacultyPatch) (*models.Faculty, error) {
	var updated models.Faculty
	if err := g.request(ctx, http.MethodPut, "/faculty/"+escape(id), patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// --- Analytics ---

// GetStatistics fans out to the five list endpoints concurrently and
// derives the aggregate counts locally. The result is recomputed on every
// call, never cached.
func (g *Gateway) GetStatistics(ctx context.Context) (models.Statistics, error) {
	var (
		activities   []models.Activity
		certificates []models.Certificate
		events       []models.Event
		students     []models.Student
		faculty      []models.Faculty
	)

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		activities, err = g.GetAllActivities(ctx)
		return err
	})
	eg.Go(func() (err error) {
		certificates, err = g.GetAllCertificates(ctx)
		return err
	})
	eg.Go(func() (err error) {
		events, err = g.GetAllEvents(ctx)
		return err
	})
	eg.Go(func() (err error) {
		students, err = g.GetAllStudents(ctx)
		return err
	})
	eg.Go(func() (err error) {
		faculty, err = g.GetAllFaculty(ctx)
		return err
	})
	if err := eg.Wait(); err != nil {
		return models.Statistics{}, err
	}

	var stats models.Statistics
	stats.TallyActivities(activities)
	stats.TallyCertificates(certificates)
	stats.TallyEvents(events)
	stats.TotalStudents = len(students)
	stats.TotalFaculty = len(faculty)
	return stats, nil
}
