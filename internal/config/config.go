package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	DriverJSONL    = "jsonl"
	DriverPostgres = "postgres"
)

type Config struct {
	Storage  StorageConfig  `yaml:"storage" toml:"storage"`
	Database DatabaseConfig `yaml:"database" toml:"database"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq" toml:"rabbitmq"`
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
}

type StorageConfig struct {
	Driver      string `yaml:"driver" toml:"driver"`
	BaseDir     string `yaml:"base_dir" toml:"base_dir"`
	LogFile     string `yaml:"log_file" toml:"log_file"`
	ExportFile  string `yaml:"export_file" toml:"export_file"`
	SyncOnWrite bool   `yaml:"sync_on_write" toml:"sync_on_write"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host" toml:"host"`
	Port     int    `yaml:"port" toml:"port"`
	User     string `yaml:"user" toml:"user"`
	Password string `yaml:"password" toml:"password"`
	Database string `yaml:"database" toml:"database"`
}

type RabbitMQConfig struct {
	Enabled  bool   `yaml:"enabled" toml:"enabled"`
	Host     string `yaml:"host" toml:"host"`
	Port     int    `yaml:"port" toml:"port"`
	User     string `yaml:"user" toml:"user"`
	Password string `yaml:"password" toml:"password"`
	Exchange string `yaml:"exchange" toml:"exchange"`
}

type LoggingConfig struct {
	Level string `yaml:"level" toml:"level"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Storage: StorageConfig{
			Driver:      DriverJSONL,
			BaseDir:     filepath.Join("Projects", "Waste_Tracker"),
			LogFile:     filepath.Join("data", "waste_log.jsonl"),
			ExportFile:  filepath.Join("reports", "waste_log_export.csv"),
			SyncOnWrite: true,
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Database: "waste_tracker",
		},
		RabbitMQ: RabbitMQConfig{
			Host:     "localhost",
			Port:     5672,
			User:     "guest",
			Password: "guest",
			Exchange: "waste_events",
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// Load reads a YAML or TOML file over the defaults, then applies
// WASTE_TRACKER_* environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := decode(path, data, &cfg); err != nil {
				return nil, err
			}
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(cfg); err != nil {
			return fmt.Errorf("failed to parse toml: %w", err)
		}
	case ".yaml", ".yml", "":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to parse yaml: %w", err)
		}
	default:
		return fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Storage.Driver, "WASTE_TRACKER_STORAGE_DRIVER")
	setString(&cfg.Storage.BaseDir, "WASTE_TRACKER_BASE_DIR")
	setString(&cfg.Storage.LogFile, "WASTE_TRACKER_LOG_FILE")
	setString(&cfg.Storage.ExportFile, "WASTE_TRACKER_EXPORT_FILE")
	setString(&cfg.Database.Host, "WASTE_TRACKER_DB_HOST")
	setString(&cfg.Database.User, "WASTE_TRACKER_DB_USER")
	setString(&cfg.Database.Password, "WASTE_TRACKER_DB_PASSWORD")
	setString(&cfg.Database.Database, "WASTE_TRACKER_DB_NAME")
	setString(&cfg.RabbitMQ.Host, "WASTE_TRACKER_RABBITMQ_HOST")
	setString(&cfg.Logging.Level, "WASTE_TRACKER_LOG_LEVEL")

	if v := os.Getenv("WASTE_TRACKER_DB_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid WASTE_TRACKER_DB_PORT: %w", err)
		}
		cfg.Database.Port = port
	}
	if v := os.Getenv("WASTE_TRACKER_RABBITMQ_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid WASTE_TRACKER_RABBITMQ_ENABLED: %w", err)
		}
		cfg.RabbitMQ.Enabled = enabled
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverJSONL, DriverPostgres:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if strings.TrimSpace(c.Storage.LogFile) == "" {
		return fmt.Errorf("storage.log_file is required")
	}
	if strings.TrimSpace(c.Storage.ExportFile) == "" {
		return fmt.Errorf("storage.export_file is required")
	}
	return nil
}

// LogPath is the absolute or base-relative path of the entry log.
func (s StorageConfig) LogPath() string {
	return s.resolve(s.LogFile)
}

// ExportPath is the absolute or base-relative path of the export file.
func (s StorageConfig) ExportPath() string {
	return s.resolve(s.ExportFile)
}

func (s StorageConfig) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(s.BaseDir, p)
}

// DSN builds the pgx connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.Database)
}

// URL builds the AMQP connection URL.
func (r RabbitMQConfig) URL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/", r.User, r.Password, r.Host, r.Port)
}
