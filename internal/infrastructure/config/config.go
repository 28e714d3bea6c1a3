package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "chroma/internal/shared/config"
)

type Config struct {
	Server      sharedConfig.ServerConfig      `mapstructure:"server"`
	Database    sharedConfig.DatabaseConfig    `mapstructure:"database"`
	Logger      sharedConfig.LoggerConfig      `mapstructure:"logger"`
	Auth        sharedConfig.AuthConfig        `mapstructure:"auth"`
	Quota       sharedConfig.QuotaConfig       `mapstructure:"quota"`
	Restoration sharedConfig.RestorationConfig `mapstructure:"restoration"`
	Redis       sharedConfig.RedisConfig       `mapstructure:"redis"`
	RateLimit   sharedConfig.RateLimitConfig   `mapstructure:"rate_limit"`
	Debug       sharedConfig.DebugConfig       `mapstructure:"debug"`
	Retention   sharedConfig.RetentionConfig   `mapstructure:"retention"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables
func Load(env string) (*Config, error) {
	// Load single config file
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../configs")
	viper.AddConfigPath("../../configs")

	// Set environment variable prefix and replacer
	viper.SetEnvPrefix("CHROMA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Set default values
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// A missing file is fine: defaults plus CHROMA_* env vars carry a
		// dev setup. Anything else (unreadable, malformed) is fatal.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Allow env parameter to override server mode if provided
	if env != "" && env != "default" {
		viper.Set("server.mode", env)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")

	// Database defaults
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 3306)
	viper.SetDefault("database.username", "root")
	viper.SetDefault("database.password", "password")
	viper.SetDefault("database.database", "chroma_dev")
	viper.SetDefault("database.path", "chroma_dev.db")
	viper.SetDefault("database.max_idle_conns", 10)
	viper.SetDefault("database.max_open_conns", 100)
	viper.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output_path", "stdout")
	viper.SetDefault("logger.max_size_mb", 100)
	viper.SetDefault("logger.max_backups", 3)
	viper.SetDefault("logger.max_age_days", 28)
	viper.SetDefault("logger.compress", true)

	// Auth defaults
	viper.SetDefault("auth.jwt.secret", "change-me-in-production")
	viper.SetDefault("auth.jwt.token_exp_hours", 24)

	// Quota defaults
	viper.SetDefault("quota.daily_limit", 20)

	// Restoration defaults
	viper.SetDefault("restoration.primary.name", "deoldify")
	viper.SetDefault("restoration.primary.endpoint", "")
	viper.SetDefault("restoration.primary.api_key", "")
	viper.SetDefault("restoration.primary.timeout_seconds", 60)
	viper.SetDefault("restoration.cloudinary.cloud_name", "")
	viper.SetDefault("restoration.cloudinary.api_key", "")
	viper.SetDefault("restoration.cloudinary.api_secret", "")
	viper.SetDefault("restoration.cloudinary.folder", "chroma")
	viper.SetDefault("restoration.timeout_seconds", 60)
	viper.SetDefault("restoration.max_upload_bytes", 10*1024*1024)

	// Redis defaults. An empty host means no Redis: the rate limiter and
	// the stats cache stay disabled.
	viper.SetDefault("redis.host", "")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// Rate limit defaults
	viper.SetDefault("rate_limit.enabled", false)
	viper.SetDefault("rate_limit.requests_per_minute", 60)

	// Debug endpoint defaults (disabled unless explicitly enabled)
	viper.SetDefault("debug.enabled", false)
	viper.SetDefault("debug.admin_key_hash", "")

	// Retention defaults
	viper.SetDefault("retention.session_days", 7)
	viper.SetDefault("retention.usage_days", 90)
	viper.SetDefault("retention.sweep_interval_minutes", 60)
}
