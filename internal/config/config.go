// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Filename string `yaml:"filename"`
}

// PricingConfig seeds the settings row the first time pricing is read.
type PricingConfig struct {
	SlotDurationMinutes int    `yaml:"slot_duration_minutes"`
	OpenTime            string `yaml:"open_time"`
	CloseTime           string `yaml:"close_time"`
	PricePerHour        int64  `yaml:"price_per_hour"`
}

type RetentionConfig struct {
	Enabled   bool   `yaml:"enabled"`
	KeepYears int    `yaml:"keep_years"`
	Schedule  string `yaml:"schedule"`
}

type HTTPConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	// Per-client limits for write endpoints. Zero disables throttling.
	RateLimitRPS   float64 `yaml:"rate_limit_rps"`
	RateLimitBurst int     `yaml:"rate_limit_burst"`
}

type Config struct {
	App struct {
		Name                   string `yaml:"name"`
		Environment            string `yaml:"environment"`
		Port                   int    `yaml:"port"`
		BaseURL                string `yaml:"base_url"`
		Timezone               string `yaml:"timezone"`
		ShutdownTimeoutSeconds int    `yaml:"shutdown_timeout_seconds"`
	} `yaml:"app"`

	Database DatabaseConfig `yaml:"database"`

	Pricing PricingConfig `yaml:"pricing"`

	Contact struct {
		DefaultRegion string `yaml:"default_region"`
	} `yaml:"contact"`

	Retention RetentionConfig `yaml:"retention"`

	HTTP HTTPConfig `yaml:"http"`
}

const (
	defaultShutdownTimeout   = 30 * time.Second
	defaultRetentionSchedule = "0 3 1 * *"
)

// Load loads both .env and yaml configuration
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	if filename := os.Getenv("DATABASE_FILENAME"); filename != "" {
		cfg.Database.Filename = filename
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Parse decodes YAML and applies defaults. It does not validate.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.App.Environment == "" {
		c.App.Environment = "development"
	}
	if c.App.ShutdownTimeoutSeconds == 0 {
		c.App.ShutdownTimeoutSeconds = int(defaultShutdownTimeout / time.Second)
	}
	if c.Pricing.SlotDurationMinutes == 0 {
		c.Pricing.SlotDurationMinutes = 60
	}
	if c.Pricing.OpenTime == "" {
		c.Pricing.OpenTime = "05:00"
	}
	if c.Pricing.CloseTime == "" {
		c.Pricing.CloseTime = "12:00"
	}
	if c.Pricing.PricePerHour == 0 {
		c.Pricing.PricePerHour = 400
	}
	if c.Retention.Schedule == "" {
		c.Retention.Schedule = defaultRetentionSchedule
	}
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port == 0 {
		return fmt.Errorf("app port is required")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.Database.Driver == "" {
		return fmt.Errorf("database driver is required")
	}

	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Filename == "" {
			return fmt.Errorf("database filename is required for sqlite")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if c.Pricing.SlotDurationMinutes < 0 {
		return fmt.Errorf("pricing slot_duration_minutes must be positive")
	}
	if c.Pricing.PricePerHour < 0 {
		return fmt.Errorf("pricing price_per_hour must be 0 or greater")
	}

	if c.Retention.Enabled {
		if c.Retention.KeepYears < 1 {
			return fmt.Errorf("retention keep_years must be at least 1")
		}
		if _, err := cron.ParseStandard(c.Retention.Schedule); err != nil {
			return fmt.Errorf("invalid retention schedule %q: %w", c.Retention.Schedule, err)
		}
	}

	if c.HTTP.RateLimitRPS < 0 || c.HTTP.RateLimitBurst < 0 {
		return fmt.Errorf("http rate limit values must not be negative")
	}
	return nil
}

// Location resolves the facility time zone. Empty means the server's local zone.
func (c *Config) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.App.Timezone)
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid app timezone %q: %w", name, err)
	}
	return loc, nil
}

func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.App.ShutdownTimeoutSeconds) * time.Second
}
