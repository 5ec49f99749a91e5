package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"OptionAnalyzer/internal/model"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.ListenAddr != ":8080" {
		t.Errorf("listen addr %q", cfg.Server.ListenAddr)
	}
	if cfg.Database.SQLitePath != "data/options.db" {
		t.Errorf("sqlite path %q", cfg.Database.SQLitePath)
	}
	if cfg.Defaults != DefaultScenario() {
		t.Errorf("defaults %+v", cfg.Defaults)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("validate: %v", err)
	}
}

func TestLoad_PartialDefaultsKeepOthers(t *testing.T) {
	path := writeConfig(t, `
server:
  listen_addr: "127.0.0.1:9000"
defaults:
  spot: 150
  max_spot: 200
schedule:
  snapshot_cron: "0 0 18 * * 1-5"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.ListenAddr != "127.0.0.1:9000" {
		t.Errorf("listen addr %q", cfg.Server.ListenAddr)
	}
	if cfg.Defaults.Spot != 150 || cfg.Defaults.MaxSpot != 200 {
		t.Errorf("overridden defaults %+v", cfg.Defaults)
	}
	if cfg.Defaults.Strike != 100 || cfg.Defaults.MaturityDays != 365 {
		t.Errorf("untouched defaults lost: %+v", cfg.Defaults)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("validate: %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":7000")
	t.Setenv("SQLITE_PATH", "")
	t.Setenv("GRID_SIZE", "20")
	t.Setenv("SNAPSHOT_CRON", "@hourly")

	cfg, err := Load(writeConfig(t, "database:\n  sqlite_path: other.db\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.ListenAddr != ":7000" {
		t.Errorf("listen addr %q", cfg.Server.ListenAddr)
	}
	if cfg.Database.SQLitePath != "" {
		t.Errorf("empty SQLITE_PATH should disable persistence, got %q", cfg.Database.SQLitePath)
	}
	if cfg.Defaults.GridSize != 20 {
		t.Errorf("grid size %d", cfg.Defaults.GridSize)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("validate: %v", err)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "server: [unclosed")); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{Defaults: DefaultScenario()}
	cfg.Server.ListenAddr = ":8080"

	cfg.Schedule.SnapshotCron = "not a cron"
	if err := cfg.Validate(); err == nil {
		t.Error("expected cron parse error")
	}
	cfg.Schedule.SnapshotCron = ""

	cfg.Defaults.MinSpot, cfg.Defaults.MaxSpot = 150, 100
	if err := cfg.Validate(); !errors.Is(err, model.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
