package binding

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campustrack/campustrack/internal/app/models"
	"github.com/campustrack/campustrack/internal/client/bus"
	"github.com/campustrack/campustrack/internal/client/store"
	"github.com/campustrack/campustrack/internal/pkg/apperrors"
)

func newTestBinding(t *testing.T, name string) (*Binding, *bus.Bus) {
	t.Helper()
	b := bus.New()
	s, err := store.NewFixtureStore(b, nil)
	require.NoError(t, err)
	return New(name, s, b), b
}

func TestAttachClearsLoadingWhenStoreIsLoaded(t *testing.T) {
	bd, _ := newTestBinding(t, "dashboard")

	assert.True(t, bd.Loading())
	bd.Attach(func(c bus.Change) {})
	assert.False(t, bd.Loading())
}

func TestAttachedListenerReceivesMutations(t *testing.T) {
	bd, _ := newTestBinding(t, "activityList")

	var received []bus.ChangeType
	bd.Attach(func(c bus.Change) { received = append(received, c.Type) })

	created := bd.AddActivity(context.Background(), models.Activity{
		StudentID: "STU001",
		Title:     "Tree Plantation Drive",
		Type:      models.ActivityVolunteering,
	})
	require.NotNil(t, created)

	assert.Contains(t, received, bus.ActivityAdded)
}

func TestDetachStopsNotifications(t *testing.T) {
	bd, _ := newTestBinding(t, "eventList")

	calls := 0
	bd.Attach(func(c bus.Change) { calls++ })
	bd.Detach()

	bd.AddEvent(context.Background(), models.Event{Title: "Orientation"})
	assert.Zero(t, calls)
}

func TestListAccessorNeverReturnsNil(t *testing.T) {
	bd, _ := newTestBinding(t, "activityList")
	bd.Attach(nil)

	// No rejected activities in the baseline; the result is an empty
	// slice, never nil.
	result := bd.ActivitiesByStatus(context.Background(), models.StatusRejected)
	assert.NotNil(t, result)
	assert.Empty(t, result)
	assert.NoError(t, bd.Err())
}

func TestMutatorCapturesErrorAndReturnsNil(t *testing.T) {
	bd, _ := newTestBinding(t, "reviewQueue")
	bd.Attach(nil)

	// ACT001 ships approved; a second transition conflicts.
	result := bd.ApproveActivity(context.Background(), "ACT001", "Dr. Kumar", "again")
	assert.Nil(t, result)
	assert.ErrorIs(t, bd.Err(), apperrors.ErrStatusConflict)
}

func TestClearErrResetsState(t *testing.T) {
	bd, _ := newTestBinding(t, "detail")
	bd.Attach(nil)

	title := "x"
	result := bd.UpdateActivity(context.Background(), "ACT999", models.ActivityPatch{Title: &title})
	assert.Nil(t, result)
	assert.ErrorIs(t, bd.Err(), apperrors.ErrResourceNotFound)

	bd.ClearErr()
	assert.NoError(t, bd.Err())
}

func TestErrorsDoNotCrossBindings(t *testing.T) {
	b := bus.New()
	s, err := store.NewFixtureStore(b, nil)
	require.NoError(t, err)

	queue := New("reviewQueue", s, b)
	list := New("activityList", s, b)
	queue.Attach(nil)
	list.Attach(nil)

	queue.ApproveActivity(context.Background(), "ACT001", "Dr. Kumar", "again")

	assert.Error(t, queue.Err())
	assert.NoError(t, list.Err())
}

func TestStatisticsReturnsZeroValueOnError(t *testing.T) {
	bd, _ := newTestBinding(t, "dashboard")
	bd.Attach(nil)

	stats := bd.Statistics(context.Background())
	assert.Equal(t, 3, stats.TotalActivities)
	assert.NoError(t, bd.Err())
}

func TestReadsContinueAfterCapturedError(t *testing.T) {
	bd, _ := newTestBinding(t, "dashboard")
	bd.Attach(nil)

	bd.DeleteCertificate(context.Background(), "CERT999")
	require.Error(t, bd.Err())

	events := bd.Events(context.Background())
	assert.Len(t, events, 2)
}
