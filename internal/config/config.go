// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// Config holds all configuration for the application.
type Config struct {
	// Server Configuration
	GinMode       string        `mapstructure:"GIN_MODE"`
	ServerHost    string        `mapstructure:"SERVER_HOST"`
	ServerPort    string        `mapstructure:"SERVER_PORT"`
	ServerTimeout time.Duration `mapstructure:"SERVER_TIMEOUT_SECONDS"`

	// Store Configuration
	DatabasePath     string        `mapstructure:"DATABASE_PATH"`
	StoreLockTimeout time.Duration `mapstructure:"STORE_LOCK_TIMEOUT_SECONDS"`

	// Auth Configuration
	JWTSecretKey       string        `mapstructure:"JWT_SECRET_KEY"`
	JWTTokenExpiryDays int           `mapstructure:"JWT_TOKEN_EXPIRY_DAYS"`
	JWTTokenExpiry     time.Duration `mapstructure:"-"`
	BcryptCost         int           `mapstructure:"BCRYPT_COST"`

	// Logging Configuration
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// CORS Configuration
	CORSAllowedOrigins []string `mapstructure:"-"`
}

// Load attempts to load configuration from a .env file (if present) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	v := viper.New()

	// Set default values
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "3001")
	v.SetDefault("SERVER_TIMEOUT_SECONDS", 30)

	v.SetDefault("DATABASE_PATH", "data/database.json")
	v.SetDefault("STORE_LOCK_TIMEOUT_SECONDS", 5)

	v.SetDefault("JWT_SECRET_KEY", "your-secret-key-change-in-production")
	v.SetDefault("JWT_TOKEN_EXPIRY_DAYS", 7)
	v.SetDefault("BCRYPT_COST", bcrypt.DefaultCost)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling configuration: %w", err)
	}

	// Convert duration fields
	cfg.ServerTimeout = time.Duration(v.GetInt("SERVER_TIMEOUT_SECONDS")) * time.Second
	cfg.StoreLockTimeout = time.Duration(v.GetInt("STORE_LOCK_TIMEOUT_SECONDS")) * time.Second
	cfg.JWTTokenExpiry = time.Duration(cfg.JWTTokenExpiryDays) * 24 * time.Hour

	origins := v.GetString("CORS_ALLOWED_ORIGINS")
	for _, o := range strings.Split(origins, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, trimmed)
		}
	}

	// Basic validation for critical configs
	if strings.TrimSpace(cfg.JWTSecretKey) == "" {
		return nil, fmt.Errorf("FATAL: JWT_SECRET_KEY must not be empty")
	}
	if cfg.JWTTokenExpiryDays <= 0 {
		return nil, fmt.Errorf("FATAL: JWT_TOKEN_EXPIRY_DAYS must be positive, got %d", cfg.JWTTokenExpiryDays)
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("FATAL: BCRYPT_COST must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, cfg.BcryptCost)
	}

	return &cfg, nil
}
