package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"MetaReader/internal/logging"
	"MetaReader/internal/model"
)

// Config holds all application configuration.
type Config struct {
	DataDir      string `yaml:"data_dir"`
	IndexVariant string `yaml:"index_variant"`
	Workers      int    `yaml:"workers"`
	Database     struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		ImportCron string `yaml:"import_cron"`
	} `yaml:"schedule"`
	Session struct {
		StateFile string `yaml:"state_file"`
	} `yaml:"session"`
	Log logging.Config `yaml:"log"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

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
	if v := os.Getenv("METAREADER_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("METAREADER_INDEX_VARIANT"); v != "" {
		cfg.IndexVariant = v
	}
	if v := os.Getenv("METAREADER_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("METAREADER_WORKERS: %w", err)
		}
		cfg.Workers = n
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CRON_IMPORT"); v != "" {
		cfg.Schedule.ImportCron = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}

	// Defaults
	if cfg.IndexVariant == "" {
		cfg.IndexVariant = "auto"
	}
	if cfg.Workers == 0 {
		cfg.Workers = 4
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/metareader.db"
	}
	if cfg.Schedule.ImportCron == "" {
		cfg.Schedule.ImportCron = "0 0 * * * *"
	}
	if cfg.Session.StateFile == "" {
		cfg.Session.StateFile = "data/session.json"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stderr"
	}

	return cfg, nil
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if !strings.EqualFold(c.IndexVariant, "auto") {
		if _, err := model.ParseVariant(c.IndexVariant); err != nil {
			return fmt.Errorf("index_variant: %w", err)
		}
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive")
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}
