package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const validYAML = `
app:
  name: courtmaster
  port: 8080
  timezone: Asia/Bangkok
database:
  driver: sqlite
  filename: data/courtmaster.db
contact:
  default_region: TH
retention:
  enabled: true
  keep_years: 3
http:
  allowed_origins: ["http://localhost:3000"]
  rate_limit_rps: 5
  rate_limit_burst: 10
`

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(validYAML))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	if cfg.App.Environment != "development" {
		t.Errorf("environment = %q, want development", cfg.App.Environment)
	}
	if cfg.ShutdownTimeout() != 30*time.Second {
		t.Errorf("shutdown timeout = %s, want 30s", cfg.ShutdownTimeout())
	}
	if cfg.Pricing.SlotDurationMinutes != 60 || cfg.Pricing.OpenTime != "05:00" ||
		cfg.Pricing.CloseTime != "12:00" || cfg.Pricing.PricePerHour != 400 {
		t.Errorf("pricing defaults = %+v", cfg.Pricing)
	}
	if cfg.Retention.Schedule != defaultRetentionSchedule {
		t.Errorf("retention schedule = %q", cfg.Retention.Schedule)
	}
	loc, err := cfg.Location()
	if err != nil || loc.String() != "Asia/Bangkok" {
		t.Errorf("location = %v, %v", loc, err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing name", func(c *Config) { c.App.Name = "" }, "app name"},
		{"missing port", func(c *Config) { c.App.Port = 0 }, "app port"},
		{"bad timezone", func(c *Config) { c.App.Timezone = "Mars/Olympus" }, "timezone"},
		{"unsupported driver", func(c *Config) { c.Database.Driver = "postgres" }, "unsupported database driver"},
		{"missing filename", func(c *Config) { c.Database.Filename = "" }, "filename"},
		{"bad cron", func(c *Config) { c.Retention.Schedule = "every day" }, "retention schedule"},
		{"bad keep years", func(c *Config) { c.Retention.KeepYears = 0 }, "keep_years"},
		{"disabled retention ignores schedule", func(c *Config) {
			c.Retention.Enabled = false
			c.Retention.Schedule = "nonsense"
		}, ""},
		{"negative rate", func(c *Config) { c.HTTP.RateLimitRPS = -1 }, "rate limit"},
		{"negative price", func(c *Config) { c.Pricing.PricePerHour = -5 }, "price_per_hour"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(validYAML))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			tt.mutate(cfg)
			err = cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadReadsEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.yaml")
	if err := os.WriteFile(path, []byte(validYAML), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("DATABASE_FILENAME", filepath.Join(dir, "override.db"))

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.Filename != filepath.Join(dir, "override.db") {
		t.Fatalf("filename = %q, want override", cfg.Database.Filename)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
