package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func Test_LoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(Sources{})
	require.NoError(t, err)

	assert.Equal(t, "catalog", cfg.Service)
	assert.Equal(t, 8082, cfg.Server.Port)
	assert.Equal(t, ":8082", cfg.Addr())
	assert.Equal(t, 1<<20, cfg.Server.MaxHeaderBytes)
	assert.Equal(t, 5*time.Second, cfg.Server.Timeout.Read)
	assert.Equal(t, 10*time.Second, cfg.Server.Timeout.Write)
	assert.Equal(t, 60*time.Second, cfg.Server.Timeout.Idle)
	assert.Equal(t, 5*time.Second, cfg.Server.Timeout.ReadHeader)
	assert.Equal(t, 10*time.Second, cfg.Server.Timeout.Shutdown)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Empty(t, cfg.Metrics.Token)
	assert.True(t, cfg.Catalog.Seed)
}

func Test_LoadFrom_Layering(t *testing.T) {
	dir := t.TempDir()

	yamlPath := writeFile(t, dir, "config.yaml", `
server:
  port: 9000
  timeout:
    readHeader: 2s
log:
  level: debug
metrics:
  token: from-yaml
`)
	envPath := writeFile(t, dir, ".env", `
CATALOG_SERVER_PORT=9100
CATALOG_CATALOG_SEED=false
UNRELATED_KEY=ignored
`)
	t.Setenv("CATALOG_SERVER_PORT", "9200")
	t.Setenv("CATALOG_SERVER_TIMEOUT_READHEADER", "3s")

	cfg, err := LoadFrom(Sources{ConfigFile: yamlPath, EnvFile: envPath})
	require.NoError(t, err)

	assert.Equal(t, 9200, cfg.Server.Port, "process env wins over .env and yaml")
	assert.Equal(t, 3*time.Second, cfg.Server.Timeout.ReadHeader)
	assert.False(t, cfg.Catalog.Seed, ".env wins over defaults")
	assert.Equal(t, "debug", cfg.Log.Level, "yaml wins over defaults")
	assert.Equal(t, "from-yaml", cfg.Metrics.Token)
	assert.Equal(t, 5*time.Second, cfg.Server.Timeout.Read)
}

func Test_LoadFrom_MissingFilesAreSkipped(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadFrom(Sources{
		ConfigFile: filepath.Join(dir, "absent.yaml"),
		EnvFile:    filepath.Join(dir, "absent.env"),
	})
	require.NoError(t, err)
	assert.Equal(t, 8082, cfg.Server.Port)
}

func Test_LoadFrom_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		env  map[string]string
	}{
		{name: "port too large", env: map[string]string{"CATALOG_SERVER_PORT": "70000"}},
		{name: "port zero", env: map[string]string{"CATALOG_SERVER_PORT": "0"}},
		{name: "zero timeout", env: map[string]string{"CATALOG_SERVER_TIMEOUT_WRITE": "0s"}},
		{name: "unknown log level", env: map[string]string{"CATALOG_LOG_LEVEL": "verbose"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			_, err := LoadFrom(Sources{})
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func Test_Config_StringMasksToken(t *testing.T) {
	cfg, err := LoadFrom(Sources{})
	require.NoError(t, err)
	assert.Contains(t, cfg.String(), "metrics.token=<not configured>")

	cfg.Metrics.Token = "super-secret"
	s := cfg.String()
	assert.NotContains(t, s, "super-secret")
	assert.Contains(t, s, "metrics.token=****")
}

func Test_keyTransformer(t *testing.T) {
	testCases := map[string]string{
		"CATALOG_SERVER_PORT":               "server.port",
		"CATALOG_SERVER_MAXHEADERBYTES":     "server.maxHeaderBytes",
		"CATALOG_SERVER_TIMEOUT_READHEADER": "server.timeout.readHeader",
		"CATALOG_LOG_LEVEL":                 "log.level",
	}

	for in, want := range testCases {
		assert.Equal(t, want, keyTransformer(in), in)
	}
}
