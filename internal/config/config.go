package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	WebDB     DatabaseConfig
	CarDB     DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
}

type ServerConfig struct {
	Port string
	Mode string // gin mode: debug, release, test
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// PostgresDSN renders the application-store connection string.
func (c DatabaseConfig) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.Host, c.User, c.Password, c.DBName, c.Port, c.SSLMode,
	)
}

// MySQLDSN renders the telemetry-store connection string. parseTime is
// required so DATETIME columns scan into time.Time.
func (c DatabaseConfig) MySQLDSN() string {
	return fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		c.User, c.Password, c.Host, c.Port, c.DBName,
	)
}

type JWTConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type CORSConfig struct {
	Origins []string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using system environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8000"),
			Mode: getEnv("GIN_MODE", "debug"),
		},
		WebDB: DatabaseConfig{
			Host:     getEnv("WEB_DB_HOST", "localhost"),
			Port:     getEnv("WEB_DB_PORT", "5432"),
			User:     getEnv("WEB_DB_USER", "postgres"),
			Password: getEnv("WEB_DB_PASSWORD", ""),
			DBName:   getEnv("WEB_DB_NAME", "busan_web"),
			SSLMode:  getEnv("WEB_DB_SSL_MODE", "disable"),
		},
		CarDB: DatabaseConfig{
			Host:     getEnv("CAR_DB_HOST", "localhost"),
			Port:     getEnv("CAR_DB_PORT", "3306"),
			User:     getEnv("CAR_DB_USER", "busan_car_ro"),
			Password: getEnv("CAR_DB_PASSWORD", ""),
			DBName:   getEnv("CAR_DB_NAME", "busan_car"),
		},
		JWT: JWTConfig{
			Secret:     getEnv("JWT_SECRET", ""),
			AccessTTL:  time.Duration(getEnvInt("JWT_ACCESS_MINUTES", 30)) * time.Minute,
			RefreshTTL: time.Duration(getEnvInt("JWT_REFRESH_HOURS", 7*24)) * time.Hour,
		},
		CORS: CORSConfig{
			Origins: splitEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000"),
		},
	}

	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = "change-me-in-production"
		slog.Warn("Using default JWT secret - change in production!")
	}
	if cfg.WebDB.Password == "" {
		slog.Warn("WEB_DB_PASSWORD is not set")
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func splitEnv(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
