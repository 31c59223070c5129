package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// DefaultExchangeAPIKey is a shared development key with a low monthly
// quota. Set EXCHANGE_API_KEY for anything beyond local development.
const DefaultExchangeAPIKey = "2b14e3a79cf0d5a8e6f41c02"

type Config struct {
	Port          string
	GinMode       string
	StorageDriver string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	AutoMigrate bool
	SeedData    bool

	ExchangeBaseURL        string
	ExchangeAPIKey         string
	ExchangeMaxRetries     int
	ExchangeRetryBaseDelay time.Duration
	ExchangeHTTPTimeout    time.Duration
	ExchangeTotalTimeout   time.Duration
	ExchangePreferFallback bool
}

func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		StorageDriver: getEnv("STORAGE_DRIVER", "postgres"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "budgets"),
		DBPassword: getEnv("DB_PASSWORD", "budgets_secret"),
		DBName:     getEnv("DB_NAME", "budgets"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		SQLitePath: getEnv("SQLITE_PATH", "data/budgets.db"),

		AutoMigrate: getEnv("AUTO_MIGRATE", "false") == "true",
		SeedData:    getEnv("SEED_DATA", "false") == "true",

		ExchangeBaseURL:        getEnv("EXCHANGE_API_BASE_URL", "https://v6.exchangerate-api.com/v6"),
		ExchangeAPIKey:         getEnv("EXCHANGE_API_KEY", DefaultExchangeAPIKey),
		ExchangeMaxRetries:     getIntEnv("EXCHANGE_MAX_RETRIES", 3),
		ExchangeRetryBaseDelay: getDurationEnv("EXCHANGE_RETRY_BASE_DELAY", 500*time.Millisecond),
		ExchangeHTTPTimeout:    getDurationEnv("EXCHANGE_HTTP_TIMEOUT", 10*time.Second),
		ExchangeTotalTimeout:   getDurationEnv("EXCHANGE_TOTAL_TIMEOUT", 30*time.Second),
		ExchangePreferFallback: getEnv("EXCHANGE_PREFER_FALLBACK", "false") == "true",
	}
}

func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
