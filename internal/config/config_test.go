package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FileAndDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  env: production
database:
  driver: mysql
  dsn: "user:pass@tcp(localhost:3306)/hiremind"
jwt:
  secret: file-secret
ai:
  gemini_api_key: key-from-file
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
	assert.Equal(t, 30*time.Minute, cfg.JWT.TTL)
	assert.Equal(t, "local", cfg.Storage.Type)
	assert.Equal(t, "gemini-1.5-flash", cfg.AI.Model)
	assert.True(t, cfg.AI.Enabled())
	assert.False(t, cfg.Stripe.Enabled())
	assert.Equal(t, 6*time.Hour, cfg.Workers.SubscriptionSync)
	assert.Equal(t, []string{"http://localhost:3000", "https://hiremind.rkolabs.dev"}, cfg.Server.AllowedOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
database:
  dsn: "postgres://localhost/hiremind"
jwt:
  secret: file-secret
`)
	t.Setenv("HIREMIND_JWT_SECRET", "env-secret")
	t.Setenv("HIREMIND_SERVER_PORT", "7000")
	t.Setenv("HIREMIND_STRIPE_SECRET_KEY", "sk_test")
	t.Setenv("HIREMIND_STRIPE_WEBHOOK_SECRET", "whsec")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.True(t, cfg.Stripe.Enabled())
}

func TestLoad_ValidationErrors(t *testing.T) {
	path := writeConfig(t, `
database:
  driver: oracle
storage:
  type: s3
stripe:
  secret_key: sk_test
`)

	_, err := Load(path)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "database.dsn is required")
	assert.Contains(t, msg, "database.driver")
	assert.Contains(t, msg, "jwt.secret is required")
	assert.Contains(t, msg, "storage.bucket")
	assert.Contains(t, msg, "stripe.webhook_secret")
}

func TestResumeContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", ResumeContentType("CV.PDF"))
	assert.Equal(t, "application/octet-stream", ResumeContentType("cv.bin"))
	assert.True(t, IsPDF("resume.pdf"))
	assert.False(t, IsPDF("resume.txt"))
}
