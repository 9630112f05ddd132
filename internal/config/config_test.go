package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("STUDENTS_SVC_BASE_URL", "http://localhost:3000")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Mode)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins())
	assert.Equal(t, "courses_svc", cfg.Database.DBName)
	assert.Equal(t, 5*time.Second, cfg.StudentsTimeout())
	assert.Equal(t, time.Hour, cfg.ConnMaxLifetime())
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfigRequiresStudentsBaseURL(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "STUDENTS_SVC_BASE_URL")
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("STUDENTS_SVC_BASE_URL", "http://students-svc:8080")
	t.Setenv("STUDENTS_SVC_TIMEOUT", "250ms")
	t.Setenv("PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_MAX_OPEN_CONNS", "50")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 50, cfg.Database.MaxOpenConns)
	assert.Equal(t, "http://students-svc:8080", cfg.Students.BaseURL)
	assert.Equal(t, 250*time.Millisecond, cfg.StudentsTimeout())
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins())
}

func TestLoadConfigFromFileWithEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: "5000"
database:
  dbname: catalog
students:
  base_url: http://file-students:3000
  timeout: 2s
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	t.Setenv("PORT", "6000")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	// Environment wins over the file, the file wins over defaults.
	assert.Equal(t, "6000", cfg.Server.Port)
	assert.Equal(t, "catalog", cfg.Database.DBName)
	assert.Equal(t, "http://file-students:3000", cfg.Students.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.StudentsTimeout())
}

func TestLoadConfigRejectsBadTimeout(t *testing.T) {
	t.Setenv("STUDENTS_SVC_BASE_URL", "http://localhost:3000")
	t.Setenv("STUDENTS_SVC_TIMEOUT", "5000")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
}

func TestPostgresConnectionString(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	cfg.Database.User = "svc"
	cfg.Database.Password = "secret"
	cfg.Database.Host = "db"
	cfg.Database.Port = "5433"
	cfg.Database.DBName = "courses"

	assert.Equal(t,
		"postgres://svc:secret@db:5433/courses?sslmode=disable",
		cfg.GetPostgresConnectionString(),
	)
}
