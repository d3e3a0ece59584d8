// Package config loads madar settings from ~/.madar/config.yaml, MADAR_*
// environment variables and built-in defaults, in that order of precedence
// (environment wins).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/example/madar/internal/apperr"
	"github.com/example/madar/internal/core/report"
	"github.com/example/madar/internal/core/session"
)

// EnvPrefix is the prefix of environment overrides, e.g. MADAR_DATABASE_PATH.
const EnvPrefix = "MADAR"

// Config is the resolved application configuration.
type Config struct {
	Database   DatabaseConfig   `mapstructure:"database"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Session    SessionConfig    `mapstructure:"session"`
	Log        LogConfig        `mapstructure:"log"`
	Report     ReportConfig     `mapstructure:"report"`
	Pagination PaginationConfig `mapstructure:"pagination"`

	// File is the config file that was read, empty if none.
	File string `mapstructure:"-"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type StorageConfig struct {
	Root string `mapstructure:"root"`
}

type SessionConfig struct {
	File           string `mapstructure:"file"`
	TimeoutMinutes int    `mapstructure:"timeout_minutes"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

type ReportConfig struct {
	DefaultPeriod string `mapstructure:"default_period"`
}

type PaginationConfig struct {
	PlantPageSize     int `mapstructure:"plant_page_size"`
	EquipmentPageSize int `mapstructure:"equipment_page_size"`
}

// HomeDir returns ~/.madar.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".madar"), nil
}

func newViper() (*viper.Viper, error) {
	dir, err := HomeDir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetDefault("database.path", filepath.Join(dir, "madar.db"))
	v.SetDefault("storage.root", filepath.Join(dir, "storage"))
	v.SetDefault("session.file", filepath.Join(dir, "session.yaml"))
	v.SetDefault("session.timeout_minutes", session.DefaultTimeoutMinutes)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(dir, "logs", "madar.log"))
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("report.default_period", string(report.Monthly))
	v.SetDefault("pagination.plant_page_size", 9)
	v.SetDefault("pagination.equipment_page_size", 8)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v, nil
}

// Load resolves the configuration. An explicit configFile (or MADAR_CONFIG)
// must exist; the default ~/.madar/config.yaml is optional.
func Load(configFile string) (*Config, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}

	if configFile == "" {
		configFile = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		dir, _ := HomeDir()
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the application cannot run with.
func (c *Config) Validate() error {
	if _, err := report.ParsePeriod(c.Report.DefaultPeriod); err != nil {
		return apperr.Invalid("report.default_period: %s", apperr.Message(err))
	}
	if c.Session.TimeoutMinutes <= 0 {
		return apperr.Invalid("session.timeout_minutes must be positive, got %d", c.Session.TimeoutMinutes)
	}
	if c.Pagination.PlantPageSize <= 0 || c.Pagination.EquipmentPageSize <= 0 {
		return apperr.Invalid("pagination page sizes must be positive")
	}
	if c.Database.Path == "" {
		return apperr.Invalid("database.path is required")
	}
	return nil
}

// WriteDefault writes the default configuration to path, refusing to
// overwrite an existing file.
func WriteDefault(path string) error {
	v, err := newViper()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := v.SafeWriteConfigAs(path); err != nil {
		var exists viper.ConfigFileAlreadyExistsError
		if errors.As(err, &exists) {
			return apperr.Conflict("config file %s already exists", path)
		}
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
