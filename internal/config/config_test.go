package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// clearSecretEnv neutralizes ambient overrides so fail-fast tests see
// only the file contents.
func clearSecretEnv(t *testing.T) {
	for _, key := range []string{"AVCOE_SESSION_SECRET", "GEMINI_API_KEY", "AVCOE_ADMIN_USERNAME", "AVCOE_ADMIN_PASSWORD"} {
		if os.Getenv(key) != "" {
			t.Setenv(key, "")
		}
	}
}

func baseConfig(t *testing.T) string {
	dir := t.TempDir()
	return `
server:
  port: 5000
database:
  type: sqlite
  sqlite:
    path: ` + filepath.Join(dir, "test.db") + `
session:
  secret: "unit-test-secret"
paths:
  uploads: ` + filepath.Join(dir, "uploads") + `
gemini:
  api_key: "unit-test-key"
admins:
  - username: admin
    password: secret
`
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, baseConfig(t)))
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Security.Login.MaxFailures)
	assert.Equal(t, "1h", cfg.Security.Login.LockoutDuration)
	assert.Equal(t, "gemini-1.5-flash", cfg.Gemini.Model)
	assert.Equal(t, "avcoe_session", cfg.Session.Cookie)
	assert.Equal(t, "24h", cfg.Session.ExpiresIn)
}

// The server must refuse to start without explicit secrets rather than
// fall back to anything embedded in source.
func TestLoadFailsWithoutSessionSecret(t *testing.T) {
	clearSecretEnv(t)
	content := strings.Replace(baseConfig(t), `secret: "unit-test-secret"`, `secret: ""`, 1)

	_, err := Load(writeConfig(t, content))
	assert.ErrorContains(t, err, "session secret")
}

func TestLoadFailsWithoutAdmins(t *testing.T) {
	clearSecretEnv(t)
	content := baseConfig(t)
	content = content[:strings.Index(content, "admins:")] + "admins: []\n"

	_, err := Load(writeConfig(t, content))
	assert.ErrorContains(t, err, "admin credential")
}

func TestLoadFailsWithoutAPIKey(t *testing.T) {
	clearSecretEnv(t)
	content := strings.Replace(baseConfig(t), `api_key: "unit-test-key"`, `api_key: ""`, 1)

	_, err := Load(writeConfig(t, content))
	assert.ErrorContains(t, err, "API key")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("AVCOE_PORT", "8080")
	t.Setenv("AVCOE_ADMIN_USERNAME", "envadmin")
	t.Setenv("AVCOE_ADMIN_PASSWORD", "envpass")

	cfg, err := Load(writeConfig(t, baseConfig(t)))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	require.Len(t, cfg.Admins, 2)
	assert.Equal(t, "envadmin", cfg.Admins[0].Username)
}
