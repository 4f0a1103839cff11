package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Supported store backends.
const (
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

// Supported database/sql drivers.
const (
	DriverPQ  = "postgres"
	DriverPGX = "pgx"
)

type Config struct {
	Store    StoreConfig
	Database DatabaseConfig
	Redis    RedisConfig
	App      AppConfig
}

type StoreConfig struct {
	Backend string
}

type DatabaseConfig struct {
	Driver         string
	DSN            string
	Host           string
	Port           int
	User           string
	Password       string
	Name           string
	SSLMode        string
	MaxConns       int
	ConnectTimeout time.Duration
}

type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	LogFormat   string
	LogFile     string
	Version     string
}

// Load reads configuration from the environment. With no envFiles, ./.env is
// loaded when present. Explicitly named envFiles must exist.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	} else if err := godotenv.Load(); err != nil {
		// Load .env file if it exists (ignore error in production)
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Store: StoreConfig{
			Backend: getEnv("STORE_BACKEND", BackendPostgres),
		},
		Database: DatabaseConfig{
			Driver:         getEnv("DB_DRIVER", DriverPQ),
			DSN:            getEnv("DB_DSN", ""),
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnvAsInt("DB_PORT", 5432),
			User:           getEnv("DB_USER", "postgres"),
			Password:       getEnv("DB_PASSWORD", ""),
			Name:           getEnv("DB_NAME", "projects"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			MaxConns:       getEnvAsInt("DB_MAX_CONNS", 5),
			ConnectTimeout: getEnvAsDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		},
		Redis: RedisConfig{
			Addr:      getEnv("REDIS_ADDR", "localhost:6379"),
			Password:  getEnv("REDIS_PASSWORD", ""),
			DB:        getEnvAsInt("REDIS_DB", 0),
			KeyPrefix: getEnv("REDIS_KEY_PREFIX", "projects:"),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "warn"),
			LogFormat:   getEnv("LOG_FORMAT", "console"),
			LogFile:     getEnv("LOG_FILE", ""),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendPostgres:
		if c.Database.Driver != DriverPQ && c.Database.Driver != DriverPGX {
			return fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverPQ, DriverPGX, c.Database.Driver)
		}
		if c.Database.DSN == "" && c.Database.Host == "" {
			return fmt.Errorf("DB_HOST or DB_DSN is required")
		}
	case BackendRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q (use %s, %s or %s)",
			c.Store.Backend, BackendPostgres, BackendRedis, BackendMemory)
	}

	if c.App.LogFormat != "console" && c.App.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be console or json, got %q", c.App.LogFormat)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}
