package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campustrack/campustrack/internal/app/models"
	"github.com/campustrack/campustrack/internal/client/bus"
	"github.com/campustrack/campustrack/internal/client/kv"
	"github.com/campustrack/campustrack/internal/pkg/apperrors"
)

func newTestStore(t *testing.T) *FixtureStore {
	t.Helper()
	s, err := NewFixtureStore(bus.New(), nil)
	require.NoError(t, err)
	return s
}

func TestNewFixtureStoreLoadsBaselines(t *testing.T) {
	b := bus.New()
	var loaded bool
	b.Subscribe("test", func(c bus.Change) {
		if c.Type == bus.DataLoaded {
			loaded = true
		}
	})

	s, err := NewFixtureStore(b, nil)
	require.NoError(t, err)

	assert.True(t, s.Loaded())
	assert.True(t, loaded)

	ctx := context.Background()
	events, _ := s.GetAllEvents(ctx)
	activities, _ := s.GetAllActivities(ctx)
	certificates, _ := s.GetAllCertificates(ctx)
	students, _ := s.GetAllStudents(ctx)
	faculty, _ := s.GetAllFaculty(ctx)

	assert.Len(t, events, 2)
	assert.Len(t, activities, 3)
	assert.Len(t, certificates, 2)
	assert.Len(t, students, 3)
	assert.Len(t, faculty, 2)
}

func TestGetAllEventsReturnsDeepCopies(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	events, err := s.GetAllEvents(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, events)

	events[0].Title = "mutated"
	events[0].Tags[0] = "mutated"

	fresh, err := s.GetAllEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, "TechFest 2025", fresh[0].Title)
	assert.Equal(t, "coding", fresh[0].Tags[0])
}

func TestCreateActivityAlwaysEntersPending(t *testing.T) {
	b := bus.New()
	s, err := NewFixtureStore(b, nil)
	require.NoError(t, err)

	var change bus.Change
	b.Subscribe("test", func(c bus.Change) { change = c })

	created, err := s.CreateActivity(context.Background(), models.Activity{
		StudentID: "STU001",
		Title:     "Open Source Sprint",
		Type:      models.ActivityVolunteering,
		Status:    models.StatusApproved, // must be ignored
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.StatusPending, created.Status)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, bus.ActivityAdded, change.Type)
}

func TestApproveActivitySetsAuditFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	approved, err := s.ApproveActivity(ctx, "ACT002", "Dr. Meena Iyer", "Looks good")
	require.NoError(t, err)

	assert.Equal(t, models.StatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, "Dr. Meena Iyer", *approved.ApprovedBy)
	require.NotNil(t, approved.ApprovalComment)
	assert.Equal(t, "Looks good", *approved.ApprovalComment)
	assert.NotNil(t, approved.ApprovalDate)
	assert.Nil(t, approved.RejectedBy)
}

func TestRejectActivitySetsAuditFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rejected, err := s.RejectActivity(ctx, "ACT003", "Dr. Kumar", "Missing evidence")
	require.NoError(t, err)

	assert.Equal(t, models.StatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectedBy)
	assert.Equal(t, "Dr. Kumar", *rejected.RejectedBy)
	assert.NotNil(t, rejected.RejectionDate)
	assert.Nil(t, rejected.ApprovedBy)
}

func TestTerminalStatusCannotChange(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// ACT001 ships approved in the baseline.
	_, err := s.RejectActivity(ctx, "ACT001", "Dr. Kumar", "changed my mind")
	assert.ErrorIs(t, err, apperrors.ErrStatusConflict)

	_, err = s.ApproveActivity(ctx, "ACT001", "Dr. Kumar", "again")
	assert.ErrorIs(t, err, apperrors.ErrStatusConflict)
}

func TestUpdateOnTerminalRecordWithoutStatusChangeAllowed(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	title := "National Hackathon 2025 (Winner)"
	updated, err := s.UpdateActivity(ctx, "ACT001", models.ActivityPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, models.StatusApproved, updated.Status)
}

func TestUpdateActivityNotFound(t *testing.T) {
	s := newTestStore(t)

	title := "x"
	_, err := s.UpdateActivity(context.Background(), "ACT999", models.ActivityPatch{Title: &title})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestGetActivitiesByStatusPartitions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	pending, err := s.GetActivitiesByStatus(ctx, models.StatusPending)
	require.NoError(t, err)
	approved, err := s.GetActivitiesByStatus(ctx, models.StatusApproved)
	require.NoError(t, err)

	assert.Len(t, pending, 2)
	assert.Len(t, approved, 1)
	assert.Equal(t, "ACT001", approved[0].ID)
}

func TestDeleteCertificateOnlyWhilePending(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// CERT001 is approved in the baseline.
	_, err := s.DeleteCertificate(ctx, "CERT001")
	assert.ErrorIs(t, err, apperrors.ErrStatusConflict)

	removed, err := s.DeleteCertificate(ctx, "CERT002")
	require.NoError(t, err)
	assert.Equal(t, "CERT002", removed.ID)

	remaining, err := s.GetAllCertificates(ctx)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)

	_, err = s.DeleteCertificate(ctx, "CERT002")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestRegisterForEvent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	reg, err := s.RegisterForEvent(ctx, "EVT001", "STU001")
	require.NoError(t, err)
	assert.Equal(t, "EVT001", reg.EventID)
	assert.Equal(t, models.PaymentPending, reg.PaymentStatus)
	assert.Equal(t, models.AttendanceRegistered, reg.AttendanceStatus)

	events, _ := s.GetAllEvents(ctx)
	assert.Equal(t, 188, events[0].RegistrationCount)

	regs, err := s.GetEventRegistrations(ctx, "EVT001")
	require.NoError(t, err)
	assert.Len(t, regs, 1)
}

func TestRegisterForEventDuplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.RegisterForEvent(ctx, "EVT001", "STU002")
	require.NoError(t, err)

	_, err = s.RegisterForEvent(ctx, "EVT001", "STU002")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyRegistered)
}

func TestRegisterForClosedEvent(t *testing.T) {
	s := newTestStore(t)

	// EVT002 ships closed at capacity.
	_, err := s.RegisterForEvent(context.Background(), "EVT002", "STU001")
	assert.ErrorIs(t, err, apperrors.ErrEventClosed)
}

func TestReachingCapacityClosesEvent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateEvent(ctx, models.Event{
		Title:           "Guest Lecture",
		MaxParticipants: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, models.EventOpen, created.Status)

	_, err = s.RegisterForEvent(ctx, created.ID, "STU001")
	require.NoError(t, err)

	_, err = s.RegisterForEvent(ctx, created.ID, "STU002")
	assert.ErrorIs(t, err, apperrors.ErrEventClosed)
}

func TestSearchEventsMatchesTags(t *testing.T) {
	s := newTestStore(t)

	results, err := s.SearchEvents(context.Background(), "ROBOTICS")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "EVT001", results[0].ID)
}

func TestGetEventsByOrganizer(t *testing.T) {
	s := newTestStore(t)

	results, err := s.GetEventsByOrganizer(context.Background(), "FAC001")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "TechFest 2025", results[0].Title)
}

func TestStatisticsTallies(t *testing.T) {
	s := newTestStore(t)

	stats, err := s.GetStatistics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalActivities)
	assert.Equal(t, 2, stats.PendingActivities)
	assert.Equal(t, 1, stats.ApprovedActivities)
	assert.Equal(t, 2, stats.TotalCertificates)
	assert.Equal(t, 1, stats.PendingCertificates)
	assert.Equal(t, 2, stats.TotalEvents)
	assert.Equal(t, 1, stats.OpenEvents)
	assert.Equal(t, 3, stats.TotalStudents)
	assert.Equal(t, 2, stats.TotalFaculty)
}

func TestMutationsSurviveRestartWithKV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.db")

	persist, err := kv.Open(path)
	require.NoError(t, err)

	s, err := NewFixtureStore(bus.New(), persist)
	require.NoError(t, err)

	created, err := s.CreateActivity(context.Background(), models.Activity{
		StudentID: "STU003",
		Title:     "Debate Club Lead",
		Type:      models.ActivityLeadership,
	})
	require.NoError(t, err)
	require.NoError(t, persist.Close())

	persist, err = kv.Open(path)
	require.NoError(t, err)
	defer persist.Close()

	reopened, err := NewFixtureStore(bus.New(), persist)
	require.NoError(t, err)

	activities, err := reopened.GetAllActivities(context.Background())
	require.NoError(t, err)
	require.Len(t, activities, 4)

	found := false
	for _, a := range activities {
		if a.ID == created.ID {
			found = true
			assert.Equal(t, "Debate Club Lead", a.Title)
		}
	}
	assert.True(t, found)
}
