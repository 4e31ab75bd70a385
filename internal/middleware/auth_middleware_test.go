package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campustrack/campustrack/internal/app/models"
	"github.com/campustrack/campustrack/internal/pkg/auth"
)

func newJWTService(exp time.Duration) *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  exp,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "campustrack.test",
	})
}

func protectedRouter(m *AuthMiddleware, roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("", m.JWTAuth())
	if len(roles) > 0 {
		group.Use(m.RoleRequired(roles...))
	}
	group.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId": c.GetString(ContextUserID),
			"role":   c.GetString(ContextRole),
		})
	})
	return r
}

func tokenFor(t *testing.T, svc *auth.JWTService, role models.Role) string {
	t.Helper()
	access, _, _, err := svc.GenerateTokenPair(&models.User{
		ID:    "USR001",
		Email: "user@campus.edu",
		Role:  role,
	})
	require.NoError(t, err)
	return access
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
	r := protectedRouter(NewAuthMiddleware(newJWTService(time.Hour)))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthRejectsExpiredToken(t *testing.T) {
	svc := newJWTService(-time.Minute)
	r := protectedRouter(NewAuthMiddleware(svc))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, svc, models.RoleStudent))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_003")
}

func TestJWTAuthPopulatesContext(t *testing.T) {
	svc := newJWTService(time.Hour)
	r := protectedRouter(NewAuthMiddleware(svc))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, svc, models.RoleFaculty))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "USR001")
	assert.Contains(t, w.Body.String(), "faculty")
}

func TestRoleRequiredAllowsListedRole(t *testing.T) {
	svc := newJWTService(time.Hour)
	r := protectedRouter(NewAuthMiddleware(svc), "faculty", "admin")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, svc, models.RoleAdmin))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoleRequiredBlocksOtherRoles(t *testing.T) {
	svc := newJWTService(time.Hour)
	r := protectedRouter(NewAuthMiddleware(svc), "faculty", "admin")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, svc, models.RoleStudent))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestTokenBucketLimits(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewTokenBucket(3, 3)

	r := gin.New()
	r.Use(limiter.GinMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code, "request %d", i)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
