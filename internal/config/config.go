package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// Config holds the client-side settings. The backend is the source of truth
// for everything else; this is only what the client needs to reach it.
type Config struct {
	AppName string `yaml:"app_name"`
	APIURL  string `yaml:"api_url"`
}

const (
	defaultAppName = "InstaAuto"
	defaultAPIURL  = "http://localhost:8000"

	envAppName = "CM_APP_NAME"
	envAPIURL  = "CM_API_URL"
)

// Name returns the display name, preferring the CM_APP_NAME env var.
func (c *Config) Name() string {
	if v := os.Getenv(envAppName); v != "" {
		return v
	}
	if c.AppName != "" {
		return c.AppName
	}
	return defaultAppName
}

// BaseURL returns the API base URL, preferring the CM_API_URL env var.
func (c *Config) BaseURL() string {
	if v := os.Getenv(envAPIURL); v != "" {
		return v
	}
	if c.APIURL != "" {
		return c.APIURL
	}
	return defaultAPIURL
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "cm-front", "config.yaml")
}

func CachePath() string {
	return filepath.Join(xdg.CacheHome, "cm-front", "posts.db")
}

func SessionPath() string {
	return filepath.Join(xdg.StateHome, "cm-front", "session.json")
}

func LogPath() string {
	return filepath.Join(xdg.StateHome, "cm-front", "cm.log")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Write defaults to config path on first run
			if err := writeDefaults(path); err != nil {
				// Non-fatal: just use embedded defaults
				return defaults, nil
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	if cfg.APIURL == "" {
		return nil
	}
	u, err := url.Parse(cfg.APIURL)
	if err != nil {
		return fmt.Errorf("invalid api_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api_url scheme must be http or https, got %q", u.Scheme)
	}
	return nil
}
