package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfigFile(t, `
jwt:
  secret: "test-secret"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "campustrack", cfg.Database.DBName)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.Equal(t, "campustrack.app", cfg.JWT.Issuer)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL())
}

func TestLoadConfigFileOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "9090"
  mode: "production"
database:
  dbname: "campustrack_test"
jwt:
  secret: "test-secret"
redis:
  cache_ttl: "2m"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Mode)
	assert.Equal(t, "campustrack_test", cfg.Database.DBName)
	assert.Equal(t, 2*time.Minute, cfg.CacheTTL())
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "9090"
jwt:
  secret: "test-secret"
`)

	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("DB_HOST", "db.internal")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
}

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "8080"
`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigRejectsBadDurations(t *testing.T) {
	path := writeConfigFile(t, `
jwt:
  secret: "test-secret"
  access_token_expiration: "soon"
`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestGetPostgresConnectionString(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	cfg.Database.Password = "pw"

	assert.Equal(t,
		"postgres://postgres:pw@localhost:5432/campustrack?sslmode=disable",
		cfg.GetPostgresConnectionString())
}
