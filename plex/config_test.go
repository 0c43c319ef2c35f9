package plex

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	require.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"empty base URL", func(c *Config) { c.BaseURL = "" }, true},
		{"non-http scheme", func(c *Config) { c.BaseURL = "ftp://host" }, true},
		{"https is fine", func(c *Config) { c.BaseURL = "https://host:32400" }, false},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
}

func TestLoadConfig_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
base_url = "http://10.0.0.97:32400/"
token = "filetoken"
timeout_seconds = 5
`), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "http://10.0.0.97:32400", cfg.BaseURL, "trailing slash trimmed")
	assert.Equal(t, "filetoken", cfg.Token)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`token = "filetoken"`), 0o600))

	t.Setenv("PLEX_TOKEN", "envtoken")
	t.Setenv("PLEX_TIMEOUT", "12s")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "envtoken", cfg.Token)
	assert.Equal(t, 12*time.Second, cfg.Timeout)
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`base_url = [broken`), 0o600))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
