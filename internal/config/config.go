// Package config loads the settings of the vkcall command.
package config

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/casualjim/vkwave/client"
	"github.com/fogfish/opts"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Token      string        `yaml:"token"`
	APIVersion string        `yaml:"apiVersion"`
	BaseURL    string        `yaml:"baseURL"`
	Timeout    time.Duration `yaml:"timeout"`
	NATS       NATSConfig    `yaml:"nats"`
	Trace      bool          `yaml:"trace"`
}

// NATSConfig enables publishing request records. An empty Subject disables it.
type NATSConfig struct {
	Subject     string `yaml:"subject"`
	IncludeData *bool  `yaml:"includeData"`
}

func Default() Config {
	return Config{
		APIVersion: client.DefaultAPIVersion,
		BaseURL:    client.DefaultBaseURL,
		Timeout:    30 * time.Second,
	}
}

// Load reads path on top of the defaults and applies the VK_* environment
// overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: %w", err)
		}
		var parsed Config
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return cfg, fmt.Errorf("config: %s: %w", path, err)
		}
		Merge(&cfg, parsed)
	}
	if err := ApplyEnvOverrides(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func Merge(dst *Config, src Config) {
	if src.Token != "" {
		dst.Token = src.Token
	}
	if src.APIVersion != "" {
		dst.APIVersion = src.APIVersion
	}
	if src.BaseURL != "" {
		dst.BaseURL = src.BaseURL
	}
	if src.Timeout != 0 {
		dst.Timeout = src.Timeout
	}
	if src.NATS.Subject != "" {
		dst.NATS.Subject = src.NATS.Subject
	}
	if src.NATS.IncludeData != nil {
		dst.NATS.IncludeData = src.NATS.IncludeData
	}
	if src.Trace {
		dst.Trace = true
	}
}

func ApplyEnvOverrides(cfg *Config) error {
	if v := env("VK_TOKEN"); v != "" {
		cfg.Token = v
	}
	if v := env("VK_API_VERSION"); v != "" {
		cfg.APIVersion = v
	}
	if v := env("VK_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := env("VK_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: VK_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}
	if v := env("VK_NATS_SUBJECT"); v != "" {
		cfg.NATS.Subject = v
	}
	if v := env("VK_NATS_INCLUDE_DATA"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: VK_NATS_INCLUDE_DATA: %w", err)
		}
		cfg.NATS.IncludeData = &b
	}
	return nil
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

// IncludeData reports whether published records carry the response body.
func (c Config) IncludeData() bool {
	return c.NATS.IncludeData != nil && *c.NATS.IncludeData
}

// ClientOptions are the HTTPClient options described by c.
func (c Config) ClientOptions() []opts.Option[client.HTTPClient] {
	return []opts.Option[client.HTTPClient]{
		client.WithToken(c.Token),
		client.WithAPIVersion(c.APIVersion),
		client.WithBaseURL(c.BaseURL),
		client.WithHTTPClient(&http.Client{Timeout: c.Timeout}),
	}
}
