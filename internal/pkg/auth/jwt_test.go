package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campustrack/campustrack/internal/app/models"
)

func newTestService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "campustrack.test",
	})
}

func testUser() *models.User {
	return &models.User{
		ID:    "USR001",
		Email: "ananya.sharma@campus.edu",
		Role:  models.RoleStudent,
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestService(time.Hour)

	access, refresh, expiresIn, err := svc.GenerateTokenPair(testUser())
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.Equal(t, 3600, expiresIn)

	claims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, "USR001", claims.UserID)
	assert.Equal(t, "ananya.sharma@campus.edu", claims.Email)
	assert.Equal(t, "student", claims.Role)
	assert.Equal(t, "campustrack.test", claims.Issuer)
}

func TestValidateExpiredToken(t *testing.T) {
	svc := newTestService(-time.Minute)

	access, _, _, err := svc.GenerateTokenPair(testUser())
	require.NoError(t, err)

	_, err = svc.ValidateToken(access)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenWithWrongSecret(t *testing.T) {
	access, _, _, err := newTestService(time.Hour).GenerateTokenPair(testUser())
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{
		SecretKey:      "different-secret",
		AccessTokenExp: time.Hour,
	})
	_, err = other.ValidateToken(access)
	assert.Error(t, err)
}

func TestValidateGarbageToken(t *testing.T) {
	svc := newTestService(time.Hour)
	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	// A bare token is accepted as-is.
	token, err = ExtractBearerToken("abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPassword(hash, "s3cret-pass"))
	assert.False(t, CheckPassword(hash, "wrong-pass"))
}
