// Package config loads the tracker's settings from the environment and an
// optional config file.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"expensetracker/internal/log"
)

// ConfigFileEnv names the environment variable pointing at an optional
// config file (YAML, TOML or JSON by extension).
const ConfigFileEnv = "TRACKER_CONFIG"

// Backends accepted by DATA_BACKEND.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

var validBackends = []string{BackendFile, BackendMemory, BackendSQLite}

type Config struct {
	// HTTP Server
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// Storage
	DataBackend  string `mapstructure:"data_backend"`
	SQLiteDBPath string `mapstructure:"sqlite_db_path"`
	DataDir      string `mapstructure:"data_dir"`
	ExportDir    string `mapstructure:"export_dir"`

	// AMQP (optional)
	AMQPURL      string `mapstructure:"amqp_url"`
	AMQPExchange string `mapstructure:"amqp_exchange"`
	AMQPQueue    string `mapstructure:"amqp_queue"`

	// Reports
	ReportCacheSize      int           `mapstructure:"report_cache_size"`
	ReportCacheTTL       time.Duration `mapstructure:"report_cache_ttl"`
	CacheCleanupInterval time.Duration `mapstructure:"cache_cleanup_interval"`

	LogLevel string `mapstructure:"log_level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8081")
	v.SetDefault("shutdown_timeout", 10*time.Second)

	v.SetDefault("data_backend", BackendFile)
	v.SetDefault("sqlite_db_path", "./data/tracker.db")
	v.SetDefault("data_dir", "./data")
	v.SetDefault("export_dir", ".")

	v.SetDefault("amqp_url", "")
	v.SetDefault("amqp_exchange", "tracker")
	v.SetDefault("amqp_queue", "transaction_changes")

	v.SetDefault("report_cache_size", 64)
	v.SetDefault("report_cache_ttl", 5*time.Minute)
	v.SetDefault("cache_cleanup_interval", time.Minute)

	v.SetDefault("log_level", "info")
}

// Load reads defaults, then the file named by TRACKER_CONFIG if set, then
// environment variables. Environment variables use the upper-cased key,
// e.g. DATA_BACKEND.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path := os.Getenv(ConfigFileEnv); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if !slices.Contains(validBackends, c.DataBackend) {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	switch c.DataBackend {
	case BackendSQLite:
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else if err := ensureDir(filepath.Dir(c.SQLiteDBPath)); err != nil {
			errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", filepath.Dir(c.SQLiteDBPath), err))
		}
	case BackendFile:
		if c.DataDir == "" {
			errors = append(errors, "data directory cannot be empty when using file backend")
		}
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.ReportCacheSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid report cache size %d: must be at least 1", c.ReportCacheSize))
	} else if c.ReportCacheSize > 10000 {
		errors = append(errors, fmt.Sprintf("invalid report cache size %d: must be at most 10000", c.ReportCacheSize))
	}
	if c.ReportCacheTTL < 0 {
		errors = append(errors, fmt.Sprintf("invalid report cache TTL %v: must not be negative", c.ReportCacheTTL))
	}
	if c.CacheCleanupInterval < time.Second {
		errors = append(errors, fmt.Sprintf("invalid cache cleanup interval %v: must be at least 1 second", c.CacheCleanupInterval))
	}
	if c.ShutdownTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid shutdown timeout %v: must be at least 1 second", c.ShutdownTimeout))
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func ensureDir(dir string) error {
	if dir == "." || dir == "" {
		return nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}
