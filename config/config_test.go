package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	t.Setenv("SEATPROBE_USERNAME", "")
	t.Setenv("SEATPROBE_PASSWORD", "")

	cfg, err := Load(writeConfig(t, "browser:\n  headless: true\n"))
	require.NoError(t, err)

	assert.Equal(t, defaultLoginURL, cfg.Portal.LoginURL)
	assert.Equal(t, defaultBaseURL, cfg.Portal.BaseURL)
	assert.Equal(t, defaultAuthDomain, cfg.Portal.AuthDomain)
	assert.Equal(t, "#i_user", cfg.Portal.UsernameField)
	assert.Equal(t, "#i_pass", cfg.Portal.PasswordField)
	assert.Equal(t, "doLogin()", cfg.Portal.LoginScript)
	assert.Equal(t, time.Second, cfg.Portal.PollInterval)
	assert.Equal(t, 2.0, cfg.Client.RateLimitPerSec)
	assert.Equal(t, 1, cfg.Client.Burst)
	assert.Equal(t, "today", cfg.Query.Day)
	assert.True(t, cfg.Browser.Headless)
}

func TestLoad_FileValuesWin(t *testing.T) {
	contents := `
portal:
  login_url: "https://portal.example.edu/login"
  base_url: "https://portal.example.edu/tunnel/api.php"
  auth_domain: "portal.example.edu"
  poll_interval_seconds: 5
client:
  rate_limit_per_sec: 0.5
  burst: 3
query:
  day: tomorrow
`
	cfg, err := Load(writeConfig(t, contents))
	require.NoError(t, err)

	assert.Equal(t, "https://portal.example.edu/login", cfg.Portal.LoginURL)
	assert.Equal(t, "https://portal.example.edu/tunnel/api.php", cfg.Portal.BaseURL)
	assert.Equal(t, "portal.example.edu", cfg.Portal.AuthDomain)
	assert.Equal(t, 5*time.Second, cfg.Portal.PollInterval)
	assert.Equal(t, 0.5, cfg.Client.RateLimitPerSec)
	assert.Equal(t, 3, cfg.Client.Burst)
	assert.Equal(t, "tomorrow", cfg.Query.Day)
}

func TestLoad_EnvOverridesCredentials(t *testing.T) {
	t.Setenv("SEATPROBE_USERNAME", "env-user")
	t.Setenv("SEATPROBE_PASSWORD", "env-pass")

	contents := "credentials:\n  username: file-user\n  password: file-pass\n"
	cfg, err := Load(writeConfig(t, contents))
	require.NoError(t, err)

	assert.Equal(t, "env-user", cfg.Credentials.Username)
	assert.Equal(t, "env-pass", cfg.Credentials.Password)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
