// Package config provides configuration management and dependency injection
// for the statement OCR toolkit. It handles loading configuration from files
// and environment variables, and sets up the DI container.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"statement-ocr/domain/entities"
)

// Config represents the application configuration.
type Config struct {
	LogLevel string `mapstructure:"log_level"`

	// ModelsDir is the local cache the engine model archives are mirrored
	// into.
	ModelsDir       string        `mapstructure:"models_dir"`
	DownloadTimeout time.Duration `mapstructure:"download_timeout"`

	Engine EngineConfig `mapstructure:"engine"`

	// OutputDir receives the result JSON files of a parse run.
	OutputDir string `mapstructure:"output_dir"`

	Database DatabaseConfig `mapstructure:"database"`
}

// EngineConfig mirrors the fixed profile the production pipeline initializes
// the primary OCR engine with.
type EngineConfig struct {
	Language            string `mapstructure:"language"`
	AngleClassification bool   `mapstructure:"angle_classification"`
	UseGPU              bool   `mapstructure:"use_gpu"`
}

// DatabaseConfig represents database configuration. Persistence is optional:
// an empty host disables it.
type DatabaseConfig struct {
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	DBName   string `mapstructure:"dbName"`
	SSLMode  string `mapstructure:"sslMode"`

	// Connection pool settings.
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// LoadConfig loads configuration from file and environment.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults.
	v.SetDefault("log_level", "info")
	v.SetDefault("models_dir", defaultModelsDir())
	v.SetDefault("download_timeout", "10m")
	v.SetDefault("output_dir", "resultados")
	v.SetDefault("engine.language", "es")
	v.SetDefault("engine.angle_classification", true)
	v.SetDefault("engine.use_gpu", false)
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", "1h")

	// Set config file.
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/statement-ocr")
	}

	// Enable environment variables.
	v.SetEnvPrefix("STMT")
	v.AutomaticEnv()

	// Read config file.
	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration.
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.ModelsDir == "" {
		return fmt.Errorf("models_dir is required")
	}

	if c.DownloadTimeout <= 0 {
		return fmt.Errorf("download_timeout must be positive")
	}

	if c.Engine.Language == "" {
		return fmt.Errorf("engine.language is required")
	}

	return nil
}

// EngineProfile returns the configured engine profile.
func (c *Config) EngineProfile() entities.EngineProfile {
	return entities.EngineProfile{
		Language:            c.Engine.Language,
		AngleClassification: c.Engine.AngleClassification,
		UseGPU:              c.Engine.UseGPU,
	}
}

// GetDatabaseDSN returns the database connection string.
func (c *DatabaseConfig) GetDatabaseDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// defaultModelsDir mirrors the cache location the engine itself would use.
func defaultModelsDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".paddleocr", "models")
	}
	return filepath.Join(home, ".paddleocr", "models")
}
