package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix prefixes every environment override, e.g. BEANS_LOG_LEVEL
const EnvPrefix = "BEANS"

// Config represents the beans configuration
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Binding BindingConfig `mapstructure:"binding"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Store   StoreConfig   `mapstructure:"store"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Format      string `mapstructure:"format"`
	Development bool   `mapstructure:"development"`
}

// BindingConfig represents binder configuration
type BindingConfig struct {
	StrictNullable bool `mapstructure:"strict_nullable"`
	IgnoreUnknown  bool `mapstructure:"ignore_unknown"`
}

// MetricsConfig represents metrics configuration
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

// StoreConfig represents Redis store configuration
type StoreConfig struct {
	RedisAddr string `mapstructure:"redis_addr"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// Load loads the configuration from beans.yml or beans.yaml in the
// current directory
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile loads the configuration from path. An empty path searches the
// current directory and tolerates a missing file.
func LoadFile(path string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.development", false)
	v.SetDefault("binding.strict_nullable", true)
	v.SetDefault("binding.ignore_unknown", false)
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.namespace", "beans")
	v.SetDefault("store.redis_addr", "")
	v.SetDefault("store.key_prefix", "beans:")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("beans")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	// Enable environment variable support
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// FindConfigFile walks up from the working directory looking for
// beans.yml or beans.yaml
func FindConfigFile() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		for _, name := range []string{"beans.yml", "beans.yaml"} {
			if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
				return filepath.Join(dir, name), nil
			}
		}

		// Move up one directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return "", fmt.Errorf("no beans.yml found")
		}
		dir = parent
	}
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if _, err := zapcore.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch cfg.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be 'console' or 'json', got: %s", cfg.Log.Format)
	}
	if cfg.Metrics.Enabled && cfg.Metrics.Namespace == "" {
		return fmt.Errorf("metrics.namespace is required when metrics are enabled")
	}
	if strings.ContainsAny(cfg.Store.KeyPrefix, " \t\n") {
		return fmt.Errorf("store.key_prefix must not contain whitespace, got: %q", cfg.Store.KeyPrefix)
	}
	return nil
}
