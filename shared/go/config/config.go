package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Security SecurityConfig
	TMDB     TMDBConfig
	CORS     CORSConfig
	Logging  LoggingConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL string // Full PostgreSQL URL
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port int
	Host string
}

// SecurityConfig holds security-related settings
type SecurityConfig struct {
	TokenSecret string
}

// TMDBConfig holds settings for the external metadata API
type TMDBConfig struct {
	APIKey         string
	BaseURL        string
	RequestTimeout time.Duration
	MaxRetries     int
	RetryBaseDelay time.Duration
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.Database.URL = os.Getenv("DATABASE_URL")

	if err := cfg.loadServer(); err != nil {
		return nil, fmt.Errorf("load server config: %w", err)
	}

	cfg.Security.TokenSecret = os.Getenv("TOKEN_SECRET")

	cfg.loadTMDB()
	cfg.loadCORS()
	cfg.loadLogging()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadServer() error {
	portStr := getEnvOrDefault("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}
	c.Server.Port = port
	c.Server.Host = getEnvOrDefault("HOST", "0.0.0.0")
	return nil
}

func (c *Config) loadTMDB() {
	c.TMDB.APIKey = os.Getenv("TMDB_API_KEY")
	c.TMDB.BaseURL = getEnvOrDefault("TMDB_BASE_URL", "https://api.themoviedb.org/3")
	c.TMDB.RequestTimeout = 10 * time.Second
	c.TMDB.MaxRetries = 3
	c.TMDB.RetryBaseDelay = 500 * time.Millisecond
}

func (c *Config) loadCORS() {
	originsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	if originsEnv != "" {
		origins := strings.Split(originsEnv, ",")
		for i, origin := range origins {
			origins[i] = strings.TrimSpace(origin)
		}
		c.CORS.AllowedOrigins = origins
	} else {
		// Default for local development
		c.CORS.AllowedOrigins = []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}
	}
}

func (c *Config) loadLogging() {
	c.Logging.Level = getEnvOrDefault("LOG_LEVEL", "info")
	c.Logging.Format = getEnvOrDefault("LOG_FORMAT", "json")
}

// Validate checks that all required configuration is present and valid
func (c *Config) Validate() error {
	var errs []string

	if c.Database.URL == "" {
		errs = append(errs, "DATABASE_URL is required")
	}

	if c.Security.TokenSecret == "" {
		errs = append(errs, "TOKEN_SECRET is required")
	} else if len(c.Security.TokenSecret) < 16 {
		errs = append(errs, "TOKEN_SECRET must be at least 16 characters")
	}

	if c.TMDB.APIKey == "" {
		errs = append(errs, "TMDB_API_KEY is required")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, "PORT must be between 1 and 65535")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		errs = append(errs, "LOG_LEVEL must be one of: debug, info, warn, error")
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		errs = append(errs, "LOG_FORMAT must be one of: json, text")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
