package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Config is populated from environment variables (optionally loaded from .env).
type Config struct {
	App    AppConfig
	Redis  RedisConfig
	JWT    JWTConfig
	Auth   AuthConfig
	CORS   CORSConfig
	Upload UploadConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
	TTL      time.Duration // 0 disables caching
}

type JWTConfig struct {
	Secret            string
	AccessTokenExpiry time.Duration
}

// AuthConfig describes the optional development identity. When DevToken is
// set, a request bearing exactly that token is authenticated as DevUserID.
type AuthConfig struct {
	DevToken    string
	DevUserID   string
	DevUserName string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type UploadConfig struct {
	MaxFileSize int64 // bytes per image
	MaxMemory   int64 // multipart memory budget
}

func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Restaurant Review API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      getEnvDuration("CACHE_TTL", time.Minute),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", defaultJWTSecret),
			AccessTokenExpiry: getEnvDuration("JWT_ACCESS_EXPIRY", 100*24*time.Hour),
		},
		Auth: AuthConfig{
			DevToken:    getEnv("AUTH_DEV_TOKEN", ""),
			DevUserID:   getEnv("AUTH_DEV_USER_ID", ""),
			DevUserName: getEnv("AUTH_DEV_USER_NAME", "testUser"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		Upload: UploadConfig{
			MaxFileSize: int64(getEnvInt("UPLOAD_MAX_FILE_SIZE", 5<<20)),
			MaxMemory:   int64(getEnvInt("UPLOAD_MAX_MEMORY", 32<<20)),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate enforces the rules that keep a misconfigured server from starting.
func (c *Config) Validate() error {
	if c.Auth.DevToken != "" {
		if c.IsProduction() {
			return fmt.Errorf("AUTH_DEV_TOKEN must not be set in production")
		}
		if _, err := uuid.Parse(c.Auth.DevUserID); err != nil {
			return fmt.Errorf("AUTH_DEV_USER_ID must be a valid UUID when AUTH_DEV_TOKEN is set")
		}
	}

	if c.IsProduction() && c.JWT.Secret == defaultJWTSecret {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if c.Redis.TTL < 0 {
		return fmt.Errorf("CACHE_TTL must not be negative")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// CacheEnabled reports whether listing results should be cached.
func (c *Config) CacheEnabled() bool {
	return c.Redis.TTL > 0
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
