package plex

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	toml "github.com/pelletier/go-toml/v2"
)

// DefaultBaseURL is the conventional address of a local server.
const DefaultBaseURL = "http://localhost:32400"

// defaultConfigPath is where LoadConfig looks when no path is given.
const defaultConfigPath = "~/.config/plex-client/config.toml"

// Config holds configuration for a server connection. Values can come from
// code, a TOML config file, or PLEX_* environment variables (LoadConfig
// applies them in that order, later sources winning).
type Config struct {
	// BaseURL is the server address, e.g. http://10.0.0.97:32400.
	BaseURL string `env:"PLEX_BASEURL"`

	// Token is the X-Plex-Token used for authentication. It is attached to
	// every outgoing request and never logged in cleartext.
	Token string `env:"PLEX_TOKEN"`

	// Timeout bounds every request. No retries are performed.
	Timeout time.Duration `env:"PLEX_TIMEOUT"`

	// InsecureSkipVerify skips TLS certificate verification.
	// WARNING: Only use for testing.
	InsecureSkipVerify bool `env:"PLEX_INSECURE_SKIP_VERIFY"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Timeout: 30 * time.Second,
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base URL is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base URL must be http or https, got %q", u.Scheme)
	}
	if c.Timeout < 0 {
		return errors.New("timeout must not be negative")
	}
	return nil
}

// LoadConfig builds a Config from defaults, an optional TOML file, and
// PLEX_* environment variables, in that order. A missing file is not an
// error; path defaults to ~/.config/plex-client/config.toml.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	resolved, err := resolvePath(path)
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// fall through to env
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		var raw struct {
			BaseURL            string `toml:"base_url"`
			Token              string `toml:"token"`
			TimeoutSeconds     int    `toml:"timeout_seconds"`
			InsecureSkipVerify bool   `toml:"insecure_skip_verify"`
		}
		if err := toml.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
		if v := strings.TrimSpace(raw.BaseURL); v != "" {
			cfg.BaseURL = v
		}
		if v := strings.TrimSpace(raw.Token); v != "" {
			cfg.Token = v
		}
		if raw.TimeoutSeconds > 0 {
			cfg.Timeout = time.Duration(raw.TimeoutSeconds) * time.Second
		}
		cfg.InsecureSkipVerify = raw.InsecureSkipVerify
	}

	// Env overrides win over file values. envdecode reports
	// ErrNoTargetFieldsAreSet when no PLEX_* variable is present, which is
	// fine here.
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return cfg, fmt.Errorf("decode env: %w", err)
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultConfigPath
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}
