package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/campustrack/campustrack/internal/pkg/apperrors"
)

func respondWith(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	HandleAPIError(c, err)
	return w
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", apperrors.ErrResourceNotFound, http.StatusNotFound, "RES_001"},
		{"already exists", apperrors.ErrResourceAlreadyExists, http.StatusConflict, "RES_002"},
		{"email taken", apperrors.ErrEmailAlreadyExists, http.StatusConflict, "RES_002"},
		{"status conflict", apperrors.ErrStatusConflict, http.StatusConflict, "RES_003"},
		{"event closed", apperrors.ErrEventClosed, http.StatusConflict, "RES_003"},
		{"event full", apperrors.ErrEventFull, http.StatusConflict, "RES_003"},
		{"already registered", apperrors.ErrAlreadyRegistered, http.StatusConflict, "RES_003"},
		{"bad credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, "AUTH_001"},
		{"not authenticated", apperrors.ErrNotAuthenticated, http.StatusUnauthorized, "AUTH_002"},
		{"forbidden", apperrors.ErrPermissionDenied, http.StatusForbidden, "AUTH_005"},
		{"validation", apperrors.ErrValidationFailed, http.StatusBadRequest, "VAL_001"},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, "SRV_001"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := respondWith(tc.err)
			assert.Equal(t, tc.status, w.Code)
			assert.Contains(t, w.Body.String(), tc.code)
			assert.Contains(t, w.Body.String(), `"success":false`)
		})
	}
}

func TestHandleAPIErrorWrappedSentinel(t *testing.T) {
	err := apperrors.NewConflictError("activity review is already finalized")
	w := respondWith(err)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "activity review is already finalized")
}
