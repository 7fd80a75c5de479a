package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultBaseURL is the production API host.
const DefaultBaseURL = "https://api.webrobot.eu"

// BaseURLEnv is the variable the portal build uses for the API host.
const BaseURLEnv = "VITE_API_BASE_URL"

type Config struct {
	API       APIConfig       `koanf:"api"`
	Execute   ExecuteConfig   `koanf:"execute"`
	Artifacts ArtifactsConfig `koanf:"artifacts"`
	Trace     TraceConfig     `koanf:"trace"`
}

type APIConfig struct {
	BaseURL    string        `koanf:"base_url"`
	PathPrefix string        `koanf:"path_prefix"`
	Timeout    time.Duration `koanf:"timeout"` // 0 means no client timeout
}

type ExecuteConfig struct {
	Limit int `koanf:"limit"`
}

type ArtifactsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Dir     string `koanf:"dir"`
}

type TraceConfig struct {
	Enabled bool `koanf:"enabled"`
}

var defaults = map[string]any{
	"api.base_url":    DefaultBaseURL,
	"api.path_prefix": "/api/webrobot/api/demo",
	"api.timeout":     "0s",
	"execute.limit":   10,
	"artifacts.dir":   ".demoprobe",
}

// Load reads configuration. Later sources win: defaults, the optional YAML
// file at path, DEMOPROBE_* variables (with __ separating sections),
// VITE_API_BASE_URL, then overrides keyed by dotted path.
func Load(path string, overrides map[string]string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	// Empty variables are skipped so they never mask the file or defaults.
	if err := k.Load(env.ProviderWithValue("DEMOPROBE_", ".", func(key, value string) (string, any) {
		if value == "" {
			return "", nil
		}
		return strings.Replace(strings.ToLower(strings.TrimPrefix(key, "DEMOPROBE_")), "__", ".", -1), value
	}), nil); err != nil {
		return nil, err
	}

	if err := k.Load(env.ProviderWithValue(BaseURLEnv, ".", func(key, value string) (string, any) {
		if key != BaseURLEnv || value == "" {
			return "", nil
		}
		return "api.base_url", value
	}), nil); err != nil {
		return nil, err
	}

	for key, val := range overrides {
		if err := k.Set(key, val); err != nil {
			return nil, fmt.Errorf("setting %s: %w", key, err)
		}
	}

	for key, val := range defaults {
		if !k.Exists(key) {
			k.Set(key, val)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail later in confusing ways.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("invalid API base URL %q: must be an absolute http(s) URL", c.API.BaseURL)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative")
	}
	if c.Execute.Limit < 0 {
		return fmt.Errorf("execute.limit must not be negative")
	}
	return nil
}
