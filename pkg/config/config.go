package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

// DatabaseConfig selects and tunes the backing database
type DatabaseConfig struct {
	Driver       string `yaml:"driver" toml:"driver" env:"DATABASE_DRIVER"`
	URL          string `yaml:"url" toml:"url" env:"DATABASE_URL"`
	MaxOpenConns int    `yaml:"max_open_conns" toml:"max_open_conns"`
}

// SecurityConfig contains credential hashing settings
type SecurityConfig struct {
	BcryptCost int `yaml:"bcrypt_cost" toml:"bcrypt_cost" env:"ADVENTOUR_BCRYPT_COST"`
}

// LoggerConfig contains logging configuration
type LoggerConfig struct {
	Level    string `yaml:"level" toml:"level" env:"ADVENTOUR_LOG_LEVEL"`
	Format   string `yaml:"format" toml:"format" env:"ADVENTOUR_LOG_FORMAT"`
	SaveToDB bool   `yaml:"save_to_db" toml:"save_to_db" env:"ADVENTOUR_LOG_SAVE_DB"`
}

// MaintenanceConfig controls the scheduled cleanup jobs
type MaintenanceConfig struct {
	LogRetention  time.Duration `yaml:"log_retention" toml:"log_retention" env:"ADVENTOUR_LOG_RETENTION"`
	PruneSchedule string        `yaml:"prune_schedule" toml:"prune_schedule" env:"ADVENTOUR_PRUNE_SCHEDULE"`
}

// SeedConfig points at an optional fixture file loaded at startup
type SeedConfig struct {
	File string `yaml:"file" toml:"file" env:"ADVENTOUR_SEED_FILE"`
}

// HealthConfig controls the health check HTTP endpoint. An empty address
// disables it.
type HealthConfig struct {
	Addr string `yaml:"addr" toml:"addr" env:"ADVENTOUR_HEALTH_ADDR"`
}

// AppConfig represents the complete configuration structure for YAML/TOML files
type AppConfig struct {
	Database    DatabaseConfig    `yaml:"database" toml:"database"`
	Security    SecurityConfig    `yaml:"security" toml:"security"`
	Logger      LoggerConfig      `yaml:"logger" toml:"logger"`
	Maintenance MaintenanceConfig `yaml:"maintenance" toml:"maintenance"`
	Seed        SeedConfig        `yaml:"seed" toml:"seed"`
	Health      HealthConfig      `yaml:"health" toml:"health"`
}

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// ConfigManager holds the merged configuration
type ConfigManager struct {
	config *AppConfig
	source string
}

// NewConfigManager loads configuration from the config directory in the
// working directory
func NewConfigManager() (*ConfigManager, error) {
	return Load("config")
}

// Load builds the configuration in layers:
// 1. Default values
// 2. YAML file (<dir>/adventour.yaml), or TOML file (<dir>/adventour.toml)
// 3. Environment variables (.env file included)
func Load(dir string) (*ConfigManager, error) {
	manager := &ConfigManager{config: Defaults(), source: "defaults"}

	loaded, err := manager.loadYAMLConfig(filepath.Join(dir, "adventour.yaml"))
	if err != nil {
		return nil, err
	}
	if !loaded {
		if _, err := manager.loadTOMLConfig(filepath.Join(dir, "adventour.toml")); err != nil {
			return nil, err
		}
	}

	if err := manager.loadEnvConfig(); err != nil {
		return nil, err
	}

	if err := manager.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return manager, nil
}

// Defaults returns the configuration used when nothing else is set
func Defaults() *AppConfig {
	return &AppConfig{
		Database: DatabaseConfig{
			Driver:       DriverSQLite,
			URL:          "adventour.db",
			MaxOpenConns: 10,
		},
		Security: SecurityConfig{
			BcryptCost: 12,
		},
		Logger: LoggerConfig{
			Level:    "info",
			Format:   "json",
			SaveToDB: false,
		},
		Maintenance: MaintenanceConfig{
			LogRetention:  30 * 24 * time.Hour,
			PruneSchedule: "@daily",
		},
		Health: HealthConfig{
			Addr: ":8080",
		},
	}
}

// loadYAMLConfig reads path over the current values. A missing file is not
// an error.
func (cm *ConfigManager) loadYAMLConfig(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read YAML config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cm.config); err != nil {
		return false, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	cm.source = path
	return true, nil
}

// loadTOMLConfig reads path over the current values. A missing file is not
// an error.
func (cm *ConfigManager) loadTOMLConfig(path string) (bool, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return false, nil
	}

	if _, err := toml.DecodeFile(path, cm.config); err != nil {
		return false, fmt.Errorf("failed to parse TOML config: %w", err)
	}

	cm.source = path
	return true, nil
}

// loadEnvConfig applies environment overrides. Variables that are unset
// keep the file or default value.
func (cm *ConfigManager) loadEnvConfig() error {
	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	c := cm.config
	c.Database.Driver = getEnvString("DATABASE_DRIVER", c.Database.Driver)
	c.Database.URL = getEnvString("DATABASE_URL", c.Database.URL)
	c.Security.BcryptCost = getEnvInt("ADVENTOUR_BCRYPT_COST", c.Security.BcryptCost)
	c.Logger.Level = getEnvString("ADVENTOUR_LOG_LEVEL", c.Logger.Level)
	c.Logger.Format = getEnvString("ADVENTOUR_LOG_FORMAT", c.Logger.Format)
	c.Logger.SaveToDB = getEnvBool("ADVENTOUR_LOG_SAVE_DB", c.Logger.SaveToDB)
	c.Maintenance.LogRetention = getEnvDuration("ADVENTOUR_LOG_RETENTION", c.Maintenance.LogRetention)
	c.Maintenance.PruneSchedule = getEnvString("ADVENTOUR_PRUNE_SCHEDULE", c.Maintenance.PruneSchedule)
	c.Seed.File = getEnvString("ADVENTOUR_SEED_FILE", c.Seed.File)
	if addr, ok := os.LookupEnv("ADVENTOUR_HEALTH_ADDR"); ok {
		c.Health.Addr = addr
	}
	return nil
}

// Config returns the merged configuration
func (cm *ConfigManager) Config() *AppConfig {
	return cm.config
}

// Source names the file the configuration was read from, or "defaults"
func (cm *ConfigManager) Source() string {
	return cm.source
}

// GetDatabaseConfig returns the database configuration
func (cm *ConfigManager) GetDatabaseConfig() *DatabaseConfig {
	return &cm.config.Database
}

// GetSecurityConfig returns the security configuration
func (cm *ConfigManager) GetSecurityConfig() *SecurityConfig {
	return &cm.config.Security
}

// GetLoggerConfig returns the logger configuration
func (cm *ConfigManager) GetLoggerConfig() *LoggerConfig {
	return &cm.config.Logger
}

// GetMaintenanceConfig returns the maintenance configuration
func (cm *ConfigManager) GetMaintenanceConfig() *MaintenanceConfig {
	return &cm.config.Maintenance
}

// GetSeedConfig returns the seed configuration
func (cm *ConfigManager) GetSeedConfig() *SeedConfig {
	return &cm.config.Seed
}

// GetHealthConfig returns the health endpoint configuration
func (cm *ConfigManager) GetHealthConfig() *HealthConfig {
	return &cm.config.Health
}

// Validate validates the configuration values
func (cm *ConfigManager) Validate() error {
	c := cm.config

	// Validate database config
	if c.Database.Driver != DriverPostgres && c.Database.Driver != DriverSQLite {
		return fmt.Errorf("invalid database driver: %s (must be postgres or sqlite)", c.Database.Driver)
	}
	if strings.TrimSpace(c.Database.URL) == "" {
		return fmt.Errorf("database url cannot be empty")
	}
	if c.Database.MaxOpenConns < 0 {
		return fmt.Errorf("database max_open_conns must be non-negative, got %d", c.Database.MaxOpenConns)
	}

	// Validate security config
	if c.Security.BcryptCost < bcrypt.MinCost || c.Security.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("security bcrypt_cost must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, c.Security.BcryptCost)
	}

	// Validate logger config
	if !isValidLogLevel(c.Logger.Level) {
		return fmt.Errorf("invalid logger level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}
	if !isValidLogFormat(c.Logger.Format) {
		return fmt.Errorf("invalid logger format: %s (must be json or console)", c.Logger.Format)
	}

	// Validate maintenance config
	if c.Maintenance.LogRetention <= 0 {
		return fmt.Errorf("maintenance log_retention must be positive, got %v", c.Maintenance.LogRetention)
	}
	if _, err := cron.ParseStandard(c.Maintenance.PruneSchedule); err != nil {
		return fmt.Errorf("invalid maintenance prune_schedule %q: %w", c.Maintenance.PruneSchedule, err)
	}

	return nil
}

// Helper functions for environment variable parsing
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validation helper functions
func isValidLogLevel(level string) bool {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

func isValidLogFormat(format string) bool {
	switch strings.ToLower(format) {
	case "json", "console":
		return true
	}
	return false
}
