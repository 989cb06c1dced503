// Package config reads and holds the application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultBaseURL points at the production helpdesk API.
const DefaultBaseURL = "https://apichamadosunip2025-b5fdcgfuccg2gtdt.brazilsouth-01.azurewebsites.net"

// Duration decodes from YAML either as an integer nanosecond count or
// as a time.ParseDuration string such as "20s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var n int64
	if err := value.Decode(&n); err == nil {
		*d = Duration(n)
		return nil
	}
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("duração inválida %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config is the application configuration, loaded from an optional
// YAML file and overridable through environment variables.
type Config struct {
	API struct {
		BaseURL string `yaml:"base_url"`
		// Per-call-weight network timeouts: Light for single-record
		// fetches and small mutations, Timeout for list fetches,
		// Upload for ticket creation with inline attachments, Health
		// for the unauthenticated reachability probe.
		LightTimeout  Duration `yaml:"light_timeout"`
		Timeout       Duration `yaml:"timeout"`
		UploadTimeout Duration `yaml:"upload_timeout"`
		HealthTimeout Duration `yaml:"health_timeout"`
	} `yaml:"api"`

	Logging struct {
		File    string   `yaml:"file"`
		MaxSize int64    `yaml:"max_size"`
		MaxAge  Duration `yaml:"max_age"`
	} `yaml:"logging"`

	Prefs struct {
		File string `yaml:"file"`
	} `yaml:"prefs"`

	UI struct {
		TicketsPerPage  int `yaml:"tickets_per_page"`
		ArticlesPerPage int `yaml:"articles_per_page"`
		// RecentDays and RecentLimit bound the dashboard's recent
		// tickets panel.
		RecentDays  int `yaml:"recent_days"`
		RecentLimit int `yaml:"recent_limit"`
	} `yaml:"ui"`
}

// NewConfig returns a configuration with safe defaults.
func NewConfig() *Config {
	cfg := &Config{}

	cfg.API.BaseURL = DefaultBaseURL
	cfg.API.LightTimeout = Duration(10 * time.Second)
	cfg.API.Timeout = Duration(20 * time.Second)
	cfg.API.UploadTimeout = Duration(60 * time.Second)
	cfg.API.HealthTimeout = Duration(5 * time.Second)

	cfg.Logging.File = "logs/helpdesk.log"
	cfg.Logging.MaxSize = 10 * 1024 * 1024
	cfg.Logging.MaxAge = Duration(30 * 24 * time.Hour)

	cfg.Prefs.File = "data/prefs.json"

	cfg.UI.TicketsPerPage = 5
	cfg.UI.ArticlesPerPage = 6
	cfg.UI.RecentDays = 5
	cfg.UI.RecentLimit = 10

	return cfg
}

// Load builds the configuration: defaults, then the YAML file at path
// when it exists, then environment overrides. A missing file is not an
// error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := NewConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// run on defaults
		case err != nil:
			return nil, fmt.Errorf("erro ao ler configuração %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("erro ao interpretar configuração %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides file values with environment variables when set.
func (c *Config) applyEnv() {
	if v := os.Getenv("HELPDESK_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("HELPDESK_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
	if v := os.Getenv("HELPDESK_PREFS_FILE"); v != "" {
		c.Prefs.File = v
	}
	if v := os.Getenv("HELPDESK_HTTP_TIMEOUT_SEC"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			c.API.Timeout = Duration(time.Duration(secs) * time.Second)
		}
	}
	if v := os.Getenv("HELPDESK_UPLOAD_TIMEOUT_SEC"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			c.API.UploadTimeout = Duration(time.Duration(secs) * time.Second)
		}
	}
}

// Validate checks the required fields.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("endereço da API não informado")
	}
	if c.UI.TicketsPerPage < 1 || c.UI.ArticlesPerPage < 1 {
		return fmt.Errorf("tamanho de página inválido")
	}
	return nil
}
