package config

import (
	"fmt"
	"os"

	"OptionAnalyzer/internal/model"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		ListenAddr string `yaml:"listen_addr"`
	} `yaml:"server"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		SnapshotCron string `yaml:"snapshot_cron"`
	} `yaml:"schedule"`
	// Defaults pre-fill the input form and drive scheduled snapshots.
	Defaults model.Scenario `yaml:"defaults"`
}

// DefaultScenario mirrors the initial values of the input form.
func DefaultScenario() model.Scenario {
	return model.Scenario{
		Spot:          100,
		Strike:        100,
		MaturityDays:  365,
		Volatility:    0.2,
		Rate:          0.05,
		PurchasePrice: 10,
		MinSpot:       80,
		MaxSpot:       120,
		MinVol:        0.04,
		MaxVol:        0.30,
		GridSize:      10,
	}
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{Defaults: DefaultScenario()}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Server.ListenAddr = v
	}
	if v, ok := os.LookupEnv("SQLITE_PATH"); ok {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("SNAPSHOT_CRON"); v != "" {
		cfg.Schedule.SnapshotCron = v
	}
	if v := os.Getenv("GRID_SIZE"); v != "" {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
			cfg.Defaults.GridSize = n
		}
	}

	// Defaults
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = ":8080"
	}
	if _, ok := os.LookupEnv("SQLITE_PATH"); !ok && cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/options.db"
	}
	if cfg.Defaults.GridSize == 0 {
		cfg.Defaults.GridSize = 10
	}

	return cfg, nil
}

// Validate checks that the defaults form a valid scenario and the cron spec parses.
func (c *Config) Validate() error {
	if c.Server.ListenAddr == "" {
		return fmt.Errorf("server.listen_addr is required")
	}
	if err := c.Defaults.Validate(); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}
	if c.Schedule.SnapshotCron != "" {
		parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
		if _, err := parser.Parse(c.Schedule.SnapshotCron); err != nil {
			return fmt.Errorf("schedule.snapshot_cron: %w", err)
		}
	}
	return nil
}
