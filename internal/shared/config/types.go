package config

import "fmt"

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	Path            string `mapstructure:"path"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

// GetDSN builds the driver-specific connection string. All timestamps are
// stored in UTC, so the MySQL DSN pins loc=UTC rather than the server local zone.
func (d *DatabaseConfig) GetDSN() string {
	if d.Driver == "sqlite" {
		if d.Path != "" {
			return d.Path
		}
		return fmt.Sprintf("%s.db", d.Database)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

type JWTConfig struct {
	Secret        string `mapstructure:"secret"`
	TokenExpHours int    `mapstructure:"token_exp_hours"`
}

type AuthConfig struct {
	JWT JWTConfig `mapstructure:"jwt"`
}

type QuotaConfig struct {
	DailyLimit int `mapstructure:"daily_limit"`
}

type HTTPProviderConfig struct {
	Name           string `mapstructure:"name"`
	Endpoint       string `mapstructure:"endpoint"`
	APIKey         string `mapstructure:"api_key"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type CloudinaryConfig struct {
	CloudName string `mapstructure:"cloud_name"`
	APIKey    string `mapstructure:"api_key"`
	APISecret string `mapstructure:"api_secret"`
	Folder    string `mapstructure:"folder"`
}

type RestorationConfig struct {
	Primary    HTTPProviderConfig `mapstructure:"primary"`
	Cloudinary CloudinaryConfig   `mapstructure:"cloudinary"`
	// TimeoutSeconds bounds one colorization end to end, across every
	// provider in the fallback chain.
	TimeoutSeconds int   `mapstructure:"timeout_seconds"`
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute"`
}

type DebugConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	AdminKeyHash string `mapstructure:"admin_key_hash"`
}

type RetentionConfig struct {
	SessionDays          int `mapstructure:"session_days"`
	UsageDays            int `mapstructure:"usage_days"`
	SweepIntervalMinutes int `mapstructure:"sweep_interval_minutes"`
}
