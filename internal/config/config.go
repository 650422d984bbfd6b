package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"SaaSTracker/internal/timeline"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Cadence names for the tracker table.
const (
	CadenceDaily         = "daily"
	CadenceEveryOtherDay = "every_other_day"
)

const defaultRetries = 2

// Config holds all application configuration.
type Config struct {
	Server struct {
		Port      int    `yaml:"port"`
		StaticDir string `yaml:"static_dir"`
	} `yaml:"server"`
	Data struct {
		Dir       string `yaml:"dir"`
		SourceURL string `yaml:"source_url"`
		APIKey    string `yaml:"api_key"`
	} `yaml:"data"`
	Fetch struct {
		Timeout           time.Duration `yaml:"timeout"`
		Retries           int           `yaml:"retries"`
		Concurrency       int           `yaml:"concurrency"`
		RequestsPerSecond float64       `yaml:"requests_per_second"`
	} `yaml:"fetch"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Tracker struct {
		AnchorDate string `yaml:"anchor_date"`
		Cadence    string `yaml:"cadence"`
	} `yaml:"tracker"`
	Export struct {
		Path string `yaml:"path"`
	} `yaml:"export"`
	View struct {
		StateFile string `yaml:"state_file"`
	} `yaml:"view"`
	Log struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"log"`
}

// Load reads config from a YAML file, then applies .env and environment
// variable overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	// Zero is a valid retry count, so the default is applied before decoding
	// and only survives when the key is absent.
	cfg.Fetch.Retries = defaultRetries

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// .env is optional
	_ = godotenv.Load()

	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("STATIC_DIR"); v != "" {
		cfg.Server.StaticDir = v
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.Data.Dir = v
	}
	if v := os.Getenv("DATA_SOURCE_URL"); v != "" {
		cfg.Data.SourceURL = v
	}
	if v := os.Getenv("DATA_API_KEY"); v != "" {
		cfg.Data.APIKey = v
	}
	if v := os.Getenv("FETCH_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Fetch.Timeout = d
		}
	}
	if v := os.Getenv("FETCH_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Fetch.Retries = n
		}
	}
	if v := os.Getenv("REFRESH_CRON"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("ANCHOR_DATE"); v != "" {
		cfg.Tracker.AnchorDate = v
	}
	if v := os.Getenv("EXPORT_PATH"); v != "" {
		cfg.Export.Path = v
	}
	if v := os.Getenv("VIEW_STATE_FILE"); v != "" {
		cfg.View.StateFile = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_PRETTY"); v != "" {
		cfg.Log.Pretty = v == "true" || v == "1"
	}

	// Defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Server.StaticDir == "" {
		cfg.Server.StaticDir = "dist"
	}
	if cfg.Data.Dir == "" {
		cfg.Data.Dir = "data"
	}
	if cfg.Fetch.Timeout == 0 {
		cfg.Fetch.Timeout = 10 * time.Second
	}
	if cfg.Fetch.Concurrency == 0 {
		cfg.Fetch.Concurrency = 8
	}
	if cfg.Fetch.RequestsPerSecond == 0 {
		cfg.Fetch.RequestsPerSecond = 20
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 */15 * * * *"
	}
	if cfg.Tracker.AnchorDate == "" {
		cfg.Tracker.AnchorDate = timeline.DefaultAnchor
	}
	if cfg.Tracker.Cadence == "" {
		cfg.Tracker.Cadence = CadenceEveryOtherDay
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	if c.Data.Dir == "" && c.Data.SourceURL == "" {
		return fmt.Errorf("data.dir or data.source_url is required")
	}
	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("fetch.timeout must be positive")
	}
	if c.Fetch.Retries < 0 {
		return fmt.Errorf("fetch.retries must not be negative")
	}
	if c.Fetch.Concurrency <= 0 {
		return fmt.Errorf("fetch.concurrency must be positive")
	}
	if c.Fetch.RequestsPerSecond <= 0 {
		return fmt.Errorf("fetch.requests_per_second must be positive")
	}
	if _, err := timeline.ParseDate(c.Tracker.AnchorDate); err != nil {
		return fmt.Errorf("tracker.anchor_date: %w", err)
	}
	switch c.Tracker.Cadence {
	case CadenceDaily, CadenceEveryOtherDay:
	default:
		return fmt.Errorf("tracker.cadence must be %q or %q", CadenceDaily, CadenceEveryOtherDay)
	}
	return nil
}

// TrackerOptions returns the consolidation options for the tracker table.
func (c *Config) TrackerOptions() timeline.Options {
	if c.Tracker.Cadence == CadenceDaily {
		return timeline.Daily(c.Tracker.AnchorDate)
	}
	return timeline.EveryOtherDay(c.Tracker.AnchorDate)
}
