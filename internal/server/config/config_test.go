package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"server"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func TestLoadConfig_Defaults(t *testing.T) {
	resetArgs(t)

	cfg := LoadConfig()

	assert.Equal(t, ":3000", cfg.EndpointAddrHTTP)
	assert.Equal(t, "secretKey", cfg.SecretKey)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Contains(t, cfg.DatabaseDSN, "postgres://")
}

func TestLoadConfig_EnvOverridesDefaults(t *testing.T) {
	resetArgs(t)
	t.Setenv("ADDRESS", ":8080")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("DATABASE_DSN", "postgres://env")

	cfg := LoadConfig()

	assert.Equal(t, ":8080", cfg.EndpointAddrHTTP)
	assert.Equal(t, "env-secret", cfg.SecretKey)
	assert.Equal(t, "postgres://env", cfg.DatabaseDSN)
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	resetArgs(t, "-a", ":9090", "-s", "flag-secret", "-t", "3")
	t.Setenv("ADDRESS", ":8080")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg := LoadConfig()

	assert.Equal(t, ":9090", cfg.EndpointAddrHTTP)
	assert.Equal(t, "flag-secret", cfg.SecretKey)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestLoadConfig_JSONOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")
	body := `{
		"endpoint_addr_http": ":7070",
		"secret_key": "json-secret",
		"shutdown_timeout": "5s"
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	resetArgs(t, "-c", path)

	cfg := LoadConfig()

	assert.Equal(t, ":7070", cfg.EndpointAddrHTTP)
	assert.Equal(t, "json-secret", cfg.SecretKey)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	// fields absent from the file keep their defaults
	assert.Contains(t, cfg.DatabaseDSN, "postgres://")
}
