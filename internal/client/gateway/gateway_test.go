package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campustrack/campustrack/internal/app/models"
	"github.com/campustrack/campustrack/internal/client/bus"
	"github.com/campustrack/campustrack/internal/client/kv"
	"github.com/campustrack/campustrack/internal/pkg/apperrors"
)

func writeEnvelope(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": status < 300,
		"data":    data,
	})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   map[string]string{"code": code, "message": message},
	})
}

func TestGetAllEventsUnwrapsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/events", r.URL.Path)
		writeEnvelope(w, http.StatusOK, []models.Event{
			{ID: "EVT001", Title: "TechFest 2025"},
		})
	}))
	defer srv.Close()

	g := New(srv.URL)
	events, err := g.GetAllEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "TechFest 2025", events[0].Title)
}

func TestErrorResponseBecomesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "RES_001", "event not found")
	}))
	defer srv.Close()

	g := New(srv.URL)
	_, err := g.GetEventByID(context.Background(), "EVT999")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "RES_001", apiErr.Code)
	assert.Equal(t, "event not found", apiErr.Message)
	assert.True(t, apiErr.NotFound())
}

func TestAPIErrorMatchesSentinels(t *testing.T) {
	cases := []struct {
		status   int
		sentinel error
	}{
		{http.StatusNotFound, apperrors.ErrResourceNotFound},
		{http.StatusConflict, apperrors.ErrStatusConflict},
		{http.StatusUnauthorized, apperrors.ErrNotAuthenticated},
		{http.StatusForbidden, apperrors.ErrPermissionDenied},
		{http.StatusBadRequest, apperrors.ErrValidationFailed},
	}

	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, tc.status, "", "")
		}))

		g := New(srv.URL)
		_, err := g.GetAllActivities(context.Background())
		assert.ErrorIs(t, err, tc.sentinel, "status %d", tc.status)
		srv.Close()
	}
}

func TestLoginHoldsTokenAndBroadcasts(t *testing.T) {
	var seenAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			writeEnvelope(w, http.StatusOK, Session{
				AccessToken: "token-abc",
				ExpiresIn:   3600,
				User:        models.User{ID: "USR001", Name: "Ananya Sharma", Role: models.RoleStudent},
			})
		case "/events":
			seenAuth = r.Header.Get("Authorization")
			writeEnvelope(w, http.StatusOK, []models.Event{})
		}
	}))
	defer srv.Close()

	b := bus.New()
	var changes []bus.ChangeType
	b.Subscribe("test", func(c bus.Change) { changes = append(changes, c.Type) })

	g := New(srv.URL, WithBus(b))
	session, err := g.Login(context.Background(), Credentials{Email: "a@campus.edu", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "Ananya Sharma", session.User.Name)
	assert.Equal(t, "token-abc", g.Token())

	_, err = g.GetAllEvents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer token-abc", seenAuth)

	assert.Contains(t, changes, bus.UserLoggedIn)
}

func TestLogoutDropsTokenEvenWhenServerFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			writeEnvelope(w, http.StatusOK, Session{AccessToken: "token-abc"})
		case "/auth/logout":
			writeError(w, http.StatusInternalServerError, "SRV_001", "boom")
		}
	}))
	defer srv.Close()

	b := bus.New()
	var changes []bus.ChangeType
	b.Subscribe("test", func(c bus.Change) { changes = append(changes, c.Type) })

	g := New(srv.URL, WithBus(b))
	_, err := g.Login(context.Background(), Credentials{Email: "a@campus.edu", Password: "pw"})
	require.NoError(t, err)

	err = g.Logout(context.Background())
	assert.Error(t, err)
	assert.Empty(t, g.Token())
	assert.Contains(t, changes, bus.UserLoggedOut)
}

func TestSessionSurvivesRestartWithKV(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, Session{
			AccessToken: "persisted-token",
			User:        models.User{ID: "USR001", Email: "a@campus.edu"},
		})
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "session.db")
	store, err := kv.Open(path)
	require.NoError(t, err)

	g := New(srv.URL, WithKV(store))
	_, err = g.Login(context.Background(), Credentials{Email: "a@campus.edu", Password: "pw"})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = kv.Open(path)
	require.NoError(t, err)
	defer store.Close()

	reopened := New(srv.URL, WithKV(store))
	assert.Equal(t, "persisted-token", reopened.Token())

	user, ok := reopened.CurrentUser()
	assert.True(t, ok)
	assert.Equal(t, "USR001", user.ID)
}

func TestSearchEventsEscapesQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/events/search", r.URL.Path)
		assert.Equal(t, "tech fest", r.URL.Query().Get("q"))
		writeEnvelope(w, http.StatusOK, []models.Event{})
	}))
	defer srv.Close()

	g := New(srv.URL)
	_, err := g.SearchEvents(context.Background(), "tech fest")
	require.NoError(t, err)
}

func TestGetStatisticsFansOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/activities":
			writeEnvelope(w, http.StatusOK, []models.Activity{
				{ID: "ACT001", Status: models.StatusApproved},
				{ID: "ACT002", Status: models.StatusPending},
			})
		case "/certificates":
			writeEnvelope(w, http.StatusOK, []models.Certificate{
				{ID: "CERT001", Status: models.StatusPending},
			})
		case "/events":
			writeEnvelope(w, http.StatusOK, []models.Event{
				{ID: "EVT001", Status: models.EventOpen},
			})
		case "/students":
			writeEnvelope(w, http.StatusOK, []models.Student{{ID: "STU001"}, {ID: "STU002"}})
		case "/faculty":
			writeEnvelope(w, http.StatusOK, []models.Faculty{{ID: "FAC001"}})
		}
	}))
	defer srv.Close()

	g := New(srv.URL)
	stats, err := g.GetStatistics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalActivities)
	assert.Equal(t, 1, stats.ApprovedActivities)
	assert.Equal(t, 1, stats.PendingCertificates)
	assert.Equal(t, 1, stats.OpenEvents)
	assert.Equal(t, 2, stats.TotalStudents)
	assert.Equal(t, 1, stats.TotalFaculty)
}
