package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loadIsolated points the XDG directories at a temp dir so Load never
// touches the real user configuration.
func loadIsolated(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	loadIsolated(t)
	Load()

	assert.Equal(t, "http://localhost:8000/api", Get("api_base_url", ""))
	assert.Equal(t, "compact", Get("status_format", ""))
	assert.Equal(t, 50, GetInt("list_limit", 0))
	assert.Equal(t, 30, GetInt("follow_interval", 0))
	assert.True(t, GetBool("cache_enabled", false))
	assert.True(t, GetBool("hooks_enabled", false))
	assert.False(t, GetBool("debug", true))
}

func TestLoad_EnvOverrides(t *testing.T) {
	loadIsolated(t)
	t.Setenv("NOTITRAY_API_BASE_URL", "https://example.com/api")
	t.Setenv("NOTITRAY_LIST_LIMIT", "5")
	t.Setenv("NOTITRAY_CACHE_ENABLED", "off")
	Load()

	assert.Equal(t, "https://example.com/api", Get("api_base_url", ""))
	assert.Equal(t, 5, GetInt("list_limit", 0))
	assert.False(t, GetBool("cache_enabled", true))
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := loadIsolated(t)
	configPath := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
api_base_url = "https://file.example.com/api"
list_limit = 7
quiet = true
`), 0644))
	t.Setenv("NOTITRAY_CONFIG_PATH", configPath)
	Load()

	assert.Equal(t, "https://file.example.com/api", Get("api_base_url", ""))
	assert.Equal(t, 7, GetInt("list_limit", 0))
	assert.True(t, GetBool("quiet", false))
}

func TestLoad_EnvWinsOverFile(t *testing.T) {
	dir := loadIsolated(t)
	configPath := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(configPath, []byte(`api_base_url = "https://file.example.com"`), 0644))
	t.Setenv("NOTITRAY_CONFIG_PATH", configPath)
	t.Setenv("NOTITRAY_API_BASE_URL", "https://env.example.com")
	Load()

	assert.Equal(t, "https://env.example.com", Get("api_base_url", ""))
}

func TestLoad_InvalidValuesFallBackToDefaults(t *testing.T) {
	loadIsolated(t)
	t.Setenv("NOTITRAY_LIST_LIMIT", "-3")
	t.Setenv("NOTITRAY_STATUS_FORMAT", "fancy")
	t.Setenv("NOTITRAY_CACHE_ENABLED", "maybe")
	Load()

	assert.Equal(t, 50, GetInt("list_limit", 0))
	assert.Equal(t, "compact", Get("status_format", ""))
	assert.True(t, GetBool("cache_enabled", false))
}

func TestLoad_CreatesSampleConfig(t *testing.T) {
	dir := loadIsolated(t)
	Load()

	samplePath := filepath.Join(dir, "config", "notitray", "config.toml")
	_, err := os.Stat(samplePath)
	assert.NoError(t, err)
}

func TestCachePath(t *testing.T) {
	dir := loadIsolated(t)
	Load()

	assert.Equal(t, filepath.Join(dir, "state", "notitray", "cache.db"), CachePath())
}

func TestGetters_MissingKeys(t *testing.T) {
	loadIsolated(t)
	Load()

	assert.Equal(t, "fallback", Get("nonexistent", "fallback"))
	assert.Equal(t, 9, GetInt("nonexistent", 9))
	assert.True(t, GetBool("nonexistent", true))
}

func TestBoolValidator(t *testing.T) {
	validator := BoolValidator()

	tests := []struct {
		value string
		want  string
	}{
		{"1", "true"},
		{"yes", "true"},
		{"on", "true"},
		{"0", "false"},
		{"no", "false"},
		{"", "false"},
		{"garbage", "false"},
	}
	for _, tt := range tests {
		got, err := validator("some_flag", tt.value, "false")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "value %q", tt.value)
	}
}

func TestPositiveIntValidator(t *testing.T) {
	validator := PositiveIntValidator()

	got, err := validator("limit", "10", "50")
	require.NoError(t, err)
	assert.Equal(t, "10", got)

	got, err = validator("limit", "0", "50")
	require.NoError(t, err)
	assert.Equal(t, "50", got)

	got, err = validator("limit", "abc", "50")
	require.NoError(t, err)
	assert.Equal(t, "50", got)
}

func TestEnumValidator(t *testing.T) {
	validator := EnumValidator(map[string]bool{"compact": true, "json": true})

	got, err := validator("status_format", "JSON", "compact")
	require.NoError(t, err)
	assert.Equal(t, "json", got, "case-insensitive")

	got, err = validator("status_format", "fancy", "compact")
	require.NoError(t, err)
	assert.Equal(t, "compact", got)
}
