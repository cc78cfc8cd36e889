// Package config loads and validates application configuration from
// environment variables. Loading collects every problem it finds and reports
// them together, so a misconfigured deployment fails startup with one
// complete message instead of dying on the first missing variable.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// PoolConfig holds settings for the PostgreSQL connection pool.
type PoolConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	MaxSize  int
}

// AuthConfig holds authentication-related configuration.
// JWTSecret has no default: startup fails if it is absent.
type AuthConfig struct {
	JWTSecret     string
	TokenLifetime time.Duration
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string
	Port string
}

// AppConfig is the top-level configuration for the application.
type AppConfig struct {
	DB     *PoolConfig
	Auth   *AuthConfig
	Server *ServerConfig
}

// Addr returns the listen address in host:port form.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func getRequiredEnv(key string, errs *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		*errs = append(*errs, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getOptionalEnvInt(key string, defaultValue int, errs *[]string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected integer, got %q: %v", key, valueStr, err))
		return defaultValue
	}
	return valueInt
}

// clampPoolSize keeps the connection pool within sane bounds. Out-of-range
// values are corrected, not fatal.
func clampPoolSize(size int, varName string) int {
	if size < 1 {
		log.Printf("warning: %s (%d) below minimum 1, clamping to 1", varName, size)
		return 1
	}
	if size > 100 {
		log.Printf("warning: %s (%d) above maximum 100, clamping to 100", varName, size)
		return 100
	}
	return size
}

// LoadConfig reads and validates all configuration from the environment.
// All errors encountered are aggregated into a single returned error.
func LoadConfig() (*AppConfig, error) {
	var errs []string

	dbUser := getRequiredEnv("DB_USER", &errs)
	dbPassword := getRequiredEnv("DB_PASSWORD", &errs)
	dbName := getRequiredEnv("DB_NAME", &errs)
	dbHost := getOptionalEnv("DB_HOST", "localhost")
	dbPort := getOptionalEnvInt("DB_PORT", 5432, &errs)
	poolSize := clampPoolSize(getOptionalEnvInt("DB_MAX_CONNECTIONS", 10, &errs), "DB_MAX_CONNECTIONS")

	// The signing secret is deployment-supplied and never defaulted.
	jwtSecret := getRequiredEnv("JWT_SECRET", &errs)
	expirationDays := getOptionalEnvInt("JWT_EXPIRATION_DAYS", 1, &errs)
	if expirationDays < 1 {
		errs = append(errs, fmt.Sprintf("invalid value for JWT_EXPIRATION_DAYS: must be at least 1, got %d", expirationDays))
	}

	serverHost := getOptionalEnv("SERVER_HOST", "127.0.0.1")
	serverPort := getOptionalEnv("SERVER_PORT", "3000")

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errs, "\n- "))
	}

	return &AppConfig{
		DB: &PoolConfig{
			Host:     dbHost,
			Port:     dbPort,
			User:     dbUser,
			Password: dbPassword,
			DBName:   dbName,
			MaxSize:  poolSize,
		},
		Auth: &AuthConfig{
			JWTSecret:     jwtSecret,
			TokenLifetime: time.Duration(expirationDays) * 24 * time.Hour,
		},
		Server: &ServerConfig{
			Host: serverHost,
			Port: serverPort,
		},
	}, nil
}
