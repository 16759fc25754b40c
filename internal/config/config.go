// Package config 从环境变量加载服务配置（envconfig）。
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// --- HTTP ---
	Port    string `envconfig:"PORT" default:"8080"`
	GinMode string `envconfig:"GIN_MODE" default:"release"`
	AppName string `envconfig:"APP_NAME" default:"peerly"`

	// --- Database ---
	DatabaseURL   string `envconfig:"DATABASE_URL" default:"host=localhost user=postgres password=postgres dbname=peerly port=5432 sslmode=disable"`
	DBAutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"false"`
	DBLogSQL      bool   `envconfig:"DB_LOG_SQL" default:"false"`

	// --- Auth ---
	JWTSecret      string `envconfig:"JWT_SECRET" required:"true"`
	JWTIssuer      string `envconfig:"JWT_ISSUER" default:"peerly"`
	JWTExpiryHours int    `envconfig:"JWT_EXPIRY_HOURS" default:"24"`

	// --- Logging / metrics ---
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
	MetricsEnabled bool   `envconfig:"METRICS_ENABLED" default:"true"`

	// --- Core value cache ---
	CoreValueCacheSize int           `envconfig:"CORE_VALUE_CACHE_SIZE" default:"500"`
	CoreValueCacheTTL  time.Duration `envconfig:"CORE_VALUE_CACHE_TTL" default:"5m"`
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if c.JWTExpiryHours <= 0 {
		return fmt.Errorf("JWT_EXPIRY_HOURS must be > 0")
	}
	if c.CoreValueCacheSize <= 0 {
		return fmt.Errorf("CORE_VALUE_CACHE_SIZE must be > 0")
	}
	return nil
}

// JWTExpiry 签发 token 的有效期
func (c *Config) JWTExpiry() time.Duration {
	return time.Duration(c.JWTExpiryHours) * time.Hour
}

// Load 读取环境变量并填充 Config
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
