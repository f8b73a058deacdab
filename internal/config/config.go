package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

const (
	StorageFile     = "file"
	StoragePostgres = "postgres"

	devJWTSecret = "gamehub-dev-secret-change-me"
)

// Config holds the application configuration.
type Config struct {
	Port           string        `mapstructure:"PORT"`
	DataDir        string        `mapstructure:"DATA_DIR"`
	UploadDir      string        `mapstructure:"UPLOAD_DIR"`
	JWTSecret      string        `mapstructure:"JWT_SECRET"`
	TokenTTL       time.Duration `mapstructure:"TOKEN_TTL"`
	StorageDriver  string        `mapstructure:"STORAGE_DRIVER"`
	DatabaseURL    string        `mapstructure:"DATABASE_URL"`
	RedisURL       string        `mapstructure:"REDIS_URL"`
	CORSOrigins    []string      `mapstructure:"CORS_ORIGINS"`
	MaxUploadBytes int64         `mapstructure:"MAX_UPLOAD_BYTES"`
	AuthRateLimit  float64       `mapstructure:"AUTH_RATE_LIMIT"`
	AuthRateBurst  int           `mapstructure:"AUTH_RATE_BURST"`

	SeedAdminUsername string `mapstructure:"SEED_ADMIN_USERNAME"`
	SeedAdminPassword string `mapstructure:"SEED_ADMIN_PASSWORD"`
}

var AppConfig *Config

// LoadConfig loads the configuration from a .env file and environment variables.
func LoadConfig() {
	cfg, err := Load(viper.GetViper(), ".")
	if err != nil {
		log.Fatalf("Unable to load configuration, %v", err)
	}
	AppConfig = cfg
}

// Load reads configuration through v, looking for a .env file in dir.
func Load(v *viper.Viper, dir string) (*Config, error) {
	v.AddConfigPath(dir)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	setDefaults(v)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		log.Println("Warning: .env file not found, loading from environment variables")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.JWTSecret == "" {
		log.Println("Warning: JWT_SECRET is not set, using the development secret")
		cfg.JWTSecret = devJWTSecret
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Every key needs a default, otherwise AutomaticEnv never sees it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("DATA_DIR", "./data")
	v.SetDefault("UPLOAD_DIR", "./uploads")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("TOKEN_TTL", 24*time.Hour)
	v.SetDefault("STORAGE_DRIVER", StorageFile)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("CORS_ORIGINS", []string{"*"})
	v.SetDefault("MAX_UPLOAD_BYTES", 5<<20)
	v.SetDefault("AUTH_RATE_LIMIT", 1.0)
	v.SetDefault("AUTH_RATE_BURST", 5)
	v.SetDefault("SEED_ADMIN_USERNAME", "")
	v.SetDefault("SEED_ADMIN_PASSWORD", "")
}

func (c *Config) validate() error {
	switch c.StorageDriver {
	case StorageFile:
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("STORAGE_DRIVER=%s requires DATABASE_URL", StoragePostgres)
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.MaxUploadBytes)
	}
	return nil
}
