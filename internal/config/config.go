// Package config loads the optional tabq configuration file.
//
// The file maps bare table names to source locations, so a query can
// say FROM covid instead of spelling out a URL, and carries the HTTP
// fetch timeout. Everything in it is optional; a missing file yields
// the defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where Load looks when no explicit path is given.
const DefaultPath = "tabq.yaml"

// Config is the full configuration file.
type Config struct {
	// Sources maps a table name, as written in FROM, to a
	// scheme-prefixed location.
	Sources map[string]string `yaml:"sources"`

	// HTTP configures network fetches.
	HTTP HTTPConfig `yaml:"http"`
}

// HTTPConfig configures the shared HTTP client.
type HTTPConfig struct {
	// TimeoutSeconds bounds one fetch. Zero means no timeout.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{Sources: map[string]string{}}
}

// Load reads and parses the file at path. When explicit is false a
// missing file is not an error and the defaults are returned; when
// the user named the path themselves, a missing file is reported.
func Load(path string, explicit bool) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Sources == nil {
		cfg.Sources = map[string]string{}
	}
	if cfg.HTTP.TimeoutSeconds < 0 {
		return nil, fmt.Errorf("parse config %s: timeout_seconds must not be negative", path)
	}
	return cfg, nil
}

// Timeout returns the configured HTTP timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

// Resolve maps a table name through the source aliases. Unknown names
// pass through unchanged and are validated against the supported
// schemes by the fetcher.
func (c *Config) Resolve(name string) string {
	if target, ok := c.Sources[name]; ok {
		return target
	}
	return name
}
