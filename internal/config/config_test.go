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
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const memoryConfig = `
[storage]
driver = "memory"

[auth]
jwt_secret = "file-secret"

[booking]
location = "Europe/Moscow"
`

func TestLoad_DefaultsAndFile(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load(writeConfig(t, memoryConfig))
	require.NoError(t, err)

	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "file-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL())

	policy, err := cfg.Booking.Policy()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", policy.Zone().String())
	assert.Equal(t, 8, policy.DailySlotCapacity)
	assert.Equal(t, 2*time.Hour, policy.CancellationWindow)
	assert.Equal(t, 10*24*time.Hour, policy.InactivityPeriod)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_PASSWORD", "s3cret")

	cfg, err := Load(writeConfig(t, memoryConfig))
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Contains(t, cfg.Database.DSN(), "password=s3cret")
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("STORAGE_DRIVER=memory\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("STORAGE_DRIVER") })

	cfg, err := Load(writeConfig(t, `
[auth]
jwt_secret = "x"
`))
	require.NoError(t, err)
	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
}

func TestLoad_Invalid(t *testing.T) {
	chdir(t, t.TempDir())

	tests := []struct {
		name string
		body string
		env  map[string]string
	}{
		{name: "unknown driver", body: "[storage]\ndriver = \"mongo\"\n[auth]\njwt_secret = \"x\"\n"},
		{name: "postgres without host", body: "[auth]\njwt_secret = \"x\"\n"},
		{name: "missing secret", body: "[storage]\ndriver = \"memory\"\n"},
		{name: "bad location", body: "[storage]\ndriver = \"memory\"\n[auth]\njwt_secret = \"x\"\n[booking]\nlocation = \"Mars/Olympus\"\n"},
		{name: "bad port env", body: memoryConfig, env: map[string]string{"HTTP_PORT": "abc"}},
		{name: "broken toml", body: "[server\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
