package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Storage.Driver != DriverJSONL {
		t.Errorf("expected jsonl driver, got %s", cfg.Storage.Driver)
	}
	want := filepath.Join("Projects", "Waste_Tracker", "data", "waste_log.jsonl")
	if cfg.Storage.LogPath() != want {
		t.Errorf("expected log path %s, got %s", want, cfg.Storage.LogPath())
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
storage:
  base_dir: /srv/kitchen
  export_file: reports/out.xlsx
rabbitmq:
  enabled: true
  exchange: line_waste
logging:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Storage.ExportPath() != filepath.Join("/srv/kitchen", "reports", "out.xlsx") {
		t.Errorf("unexpected export path %s", cfg.Storage.ExportPath())
	}
	if cfg.Storage.LogFile != filepath.Join("data", "waste_log.jsonl") {
		t.Errorf("unset keys must keep defaults, got %s", cfg.Storage.LogFile)
	}
	if !cfg.RabbitMQ.Enabled || cfg.RabbitMQ.Exchange != "line_waste" {
		t.Errorf("unexpected rabbitmq config %+v", cfg.RabbitMQ)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug level, got %s", cfg.Logging.Level)
	}
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
[storage]
driver = "postgres"

[database]
host = "db.internal"
port = 6432
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Storage.Driver != DriverPostgres {
		t.Errorf("expected postgres driver, got %s", cfg.Storage.Driver)
	}
	if got := cfg.Database.DSN(); got != "host=db.internal port=6432 user=postgres password= dbname=waste_tracker sslmode=disable" {
		t.Errorf("unexpected dsn %q", got)
	}
}

func TestLoad_RejectsUnknownKeysAndDrivers(t *testing.T) {
	if _, err := Load(writeFile(t, "config.yaml", "storage:\n  drivr: jsonl\n")); err == nil {
		t.Error("expected error for unknown yaml key")
	}
	if _, err := Load(writeFile(t, "config.yaml", "storage:\n  driver: sqlite\n")); err == nil {
		t.Error("expected error for unknown driver")
	}
	if _, err := Load(writeFile(t, "config.json", "{}")); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("WASTE_TRACKER_BASE_DIR", "/tmp/override")
	t.Setenv("WASTE_TRACKER_DB_PORT", "15432")
	t.Setenv("WASTE_TRACKER_RABBITMQ_ENABLED", "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Storage.BaseDir != "/tmp/override" {
		t.Errorf("expected base dir override, got %s", cfg.Storage.BaseDir)
	}
	if cfg.Database.Port != 15432 {
		t.Errorf("expected port override, got %d", cfg.Database.Port)
	}
	if !cfg.RabbitMQ.Enabled {
		t.Error("expected rabbitmq enabled")
	}

	t.Setenv("WASTE_TRACKER_DB_PORT", "not-a-port")
	if _, err := Load(""); err == nil {
		t.Error("expected error for invalid port")
	}
}

func TestStorageConfig_AbsolutePathsIgnoreBaseDir(t *testing.T) {
	s := StorageConfig{BaseDir: "base", LogFile: "/var/log/waste.jsonl"}
	if s.LogPath() != "/var/log/waste.jsonl" {
		t.Errorf("unexpected log path %s", s.LogPath())
	}
}
