package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(BaseURLEnv, "")

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, "/api/webrobot/api/demo", cfg.API.PathPrefix)
	assert.Equal(t, time.Duration(0), cfg.API.Timeout)
	assert.Equal(t, 10, cfg.Execute.Limit)
	assert.False(t, cfg.Artifacts.Enabled)
	assert.Equal(t, ".demoprobe", cfg.Artifacts.Dir)
	assert.False(t, cfg.Trace.Enabled)
}

func TestLoadBaseURLFromEnv(t *testing.T) {
	t.Setenv(BaseURLEnv, "http://localhost:8020")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8020", cfg.API.BaseURL)
}

func TestLoadPrefixedEnv(t *testing.T) {
	t.Setenv(BaseURLEnv, "")
	t.Setenv("DEMOPROBE_EXECUTE__LIMIT", "25")
	t.Setenv("DEMOPROBE_API__TIMEOUT", "5s")
	t.Setenv("DEMOPROBE_ARTIFACTS__ENABLED", "true")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Execute.Limit)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.True(t, cfg.Artifacts.Enabled)
}

func TestLoadFilePrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demoprobe.yaml")
	err := os.WriteFile(path, []byte(`
api:
  base_url: https://staging.example.com
  path_prefix: /demo
execute:
  limit: 3
trace:
  enabled: true
`), 0o644)
	require.NoError(t, err)

	t.Run("file overrides defaults", func(t *testing.T) {
		t.Setenv(BaseURLEnv, "")
		cfg, err := Load(path, nil)
		require.NoError(t, err)
		assert.Equal(t, "https://staging.example.com", cfg.API.BaseURL)
		assert.Equal(t, "/demo", cfg.API.PathPrefix)
		assert.Equal(t, 3, cfg.Execute.Limit)
		assert.True(t, cfg.Trace.Enabled)
	})

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv(BaseURLEnv, "https://override.example.com")
		cfg, err := Load(path, nil)
		require.NoError(t, err)
		assert.Equal(t, "https://override.example.com", cfg.API.BaseURL)
	})
}

func TestLoadEmptyEnvKeepsFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demoprobe.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  base_url: https://staging.example.com\nexecute:\n  limit: 4\n"), 0o644))
	t.Setenv(BaseURLEnv, "")
	t.Setenv("DEMOPROBE_API__BASE_URL", "")
	t.Setenv("DEMOPROBE_EXECUTE__LIMIT", "")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://staging.example.com", cfg.API.BaseURL)
	assert.Equal(t, 4, cfg.Execute.Limit)
	assert.Equal(t, "/api/webrobot/api/demo", cfg.API.PathPrefix)
}

func TestLoadOverridesWin(t *testing.T) {
	t.Setenv(BaseURLEnv, "https://env.example.com")
	t.Setenv("DEMOPROBE_EXECUTE__LIMIT", "25")

	cfg, err := Load("", map[string]string{
		"api.base_url":  "http://127.0.0.1:9000",
		"execute.limit": "1",
	})
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9000", cfg.API.BaseURL)
	assert.Equal(t, 1, cfg.Execute.Limit)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestValidateRejectsBadBaseURL(t *testing.T) {
	for _, raw := range []string{"not a url", "ftp://example.com", "/relative"} {
		cfg := &Config{API: APIConfig{BaseURL: raw}}
		assert.Error(t, cfg.Validate(), raw)
	}
}
