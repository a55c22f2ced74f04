// Package config provides configuration management for the timing-report tool.
package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/timing-report/pkg/model"
)

// Config holds all configuration for the application.
type Config struct {
	Report   ReportConfig   `mapstructure:"report"`
	Database DatabaseConfig `mapstructure:"database"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Log      LogConfig      `mapstructure:"log"`
}

// ReportConfig holds comparison report defaults.
type ReportConfig struct {
	// DefaultRegion is the region inspected when none is requested.
	// When absent from the baseline, the first parsed record is used.
	DefaultRegion string  `mapstructure:"default_region"`
	TopN          int     `mapstructure:"top_n"`
	Threshold     float64 `mapstructure:"threshold_pct"`
	Mode          string  `mapstructure:"mode"`
	OutputDir     string  `mapstructure:"output_dir"`
}

// DatabaseConfig holds run-history database configuration.
type DatabaseConfig struct {
	Type     string `mapstructure:"type"` // sqlite, mysql or postgres
	Path     string `mapstructure:"path"` // sqlite database file
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Database string `mapstructure:"database"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	MaxConns int    `mapstructure:"max_conns"`
}

// StorageConfig holds report artifact storage configuration.
type StorageConfig struct {
	Type      string `mapstructure:"type"` // cos or local
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	SecretID  string `mapstructure:"secret_id"`
	SecretKey string `mapstructure:"secret_key"`
	Domain    string `mapstructure:"domain"`
	Scheme    string `mapstructure:"scheme"`
	LocalPath string `mapstructure:"local_path"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
}

// Load reads configuration from the specified file path.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/timing-report")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// No config file; defaults apply.
		} else if os.IsNotExist(err) {
			// Explicit path that does not exist; defaults apply.
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadFromReader loads configuration from raw bytes (useful for testing).
func LoadFromReader(configType string, content []byte) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType(configType)
	if err := v.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Report defaults mirror the conventional ESMF workflow.
	v.SetDefault("report.default_region", "dyn_run")
	v.SetDefault("report.top_n", 12)
	v.SetDefault("report.threshold_pct", 5.0)
	v.SetDefault("report.mode", "percent")
	v.SetDefault("report.output_dir", "./output")

	// Database defaults
	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.path", "./timing-report.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.max_conns", 10)

	// Storage defaults
	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.local_path", "./storage")

	// Log defaults
	v.SetDefault("log.level", "info")
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.Database.Type {
	case "sqlite", "mysql", "postgres", "postgresql":
	default:
		return fmt.Errorf("unsupported database type: %s", c.Database.Type)
	}

	if c.Report.TopN < 1 {
		return fmt.Errorf("report top_n must be at least 1")
	}
	if c.Report.Threshold < 0 {
		return fmt.Errorf("report threshold_pct must not be negative")
	}
	if _, err := model.ParseCompareMode(c.Report.Mode); err != nil {
		return err
	}

	// Storage config validation is delegated to the storage package.
	return nil
}
