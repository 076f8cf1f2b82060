package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chTempDir(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) }) //nolint:errcheck
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chTempDir(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.InDelta(t, 53.37, cfg.Bounds.North, 1e-9)
	assert.InDelta(t, 53.32, cfg.Bounds.South, 1e-9)
	assert.InDelta(t, -6.22, cfg.Bounds.East, 1e-9)
	assert.InDelta(t, -6.30, cfg.Bounds.West, 1e-9)
	assert.Equal(t, 20, cfg.Search.Resolution)
	assert.Equal(t, 5, cfg.Search.TopK)
	assert.Equal(t, 4, cfg.Search.Workers)
	assert.Equal(t, "https://api.jcdecaux.com", cfg.JCDecaux.BaseURL)
	assert.Equal(t, "dublin", cfg.JCDecaux.Contract)
	assert.Equal(t, 10, cfg.JCDecaux.TimeoutSecs)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "hubopt.db", cfg.Store.DSN)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	assert.NoError(t, cfg.Validate())
}

func TestLoadFromYAML(t *testing.T) {
	chTempDir(t)

	yaml := `
bounds:
  north: 53.36
  south: 53.33
  east: -6.23
  west: -6.29
search:
  resolution: 40
  top_k: 10
store:
  driver: postgres
  dsn: postgres://localhost/hubopt
log:
  level: debug
  format: console
`
	dir, _ := os.Getwd()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.InDelta(t, 53.36, cfg.Bounds.North, 1e-9)
	assert.Equal(t, 40, cfg.Search.Resolution)
	assert.Equal(t, 10, cfg.Search.TopK)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	// Defaults still apply for unset values
	assert.Equal(t, 4, cfg.Search.Workers)
	assert.Equal(t, "dublin", cfg.JCDecaux.Contract)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	chTempDir(t)

	yaml := `
store:
  driver: sqlite
log:
  level: debug
`
	dir, _ := os.Getwd()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("HUBOPT_STORE_DRIVER", "postgres")
	t.Setenv("HUBOPT_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chTempDir(t)

	t.Setenv("HUBOPT_SEARCH_TOP_K", "25")
	t.Setenv("HUBOPT_JCDECAUX_API_KEY", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Search.TopK)
	assert.Equal(t, "secret", cfg.JCDecaux.APIKey)
}

func validDefaults() *Config {
	return &Config{
		Bounds: BoundsConfig{North: 53.37, South: 53.32, East: -6.22, West: -6.30},
		Search: SearchConfig{Resolution: 20, TopK: 5, Workers: 4},
		Store:  StoreConfig{Driver: "sqlite", DSN: "hubopt.db"},
		Server: ServerConfig{Port: 8080},
		Log:    LogConfig{Level: "info", Format: "json"},
	}
}

func TestValidate_InvertedBounds(t *testing.T) {
	cfg := validDefaults()
	cfg.Bounds.North = 53.30

	err := cfg.Validate()
	require.Error(t, err)
}

func TestValidate_Resolution(t *testing.T) {
	cfg := validDefaults()
	cfg.Search.Resolution = 1

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search.resolution must be >= 2")
}

func TestValidate_TopK(t *testing.T) {
	cfg := validDefaults()
	cfg.Search.TopK = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search.top_k must be >= 1")
}

func TestValidate_Driver(t *testing.T) {
	cfg := validDefaults()
	cfg.Store.Driver = "oracle"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.driver must be sqlite or postgres")
}

func TestValidate_Port(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.Port = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port must be > 0")
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	cfg := validDefaults()
	cfg.Search.TopK = 0
	cfg.Server.Port = -1

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search.top_k")
	assert.Contains(t, err.Error(), "server.port")
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}
