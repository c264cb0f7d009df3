package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: every environment variable is read here and nowhere else
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// Ticker dictionary
	Dictionary DictionaryConfig

	// Scan engine defaults
	Scan ScanConfig

	// NASDAQ symbol directory sync
	Nasdaq NasdaqConfig

	// Scan history persistence
	History HistoryConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool

	// TTL for cached scan results
	ScanCacheTTL time.Duration
}

// DictionaryConfig holds ticker dictionary configuration
type DictionaryConfig struct {
	Path string // JSON dictionary file
}

// ScanConfig holds default engine parameters; per-request overrides are
// accepted by the API and CLI.
type ScanConfig struct {
	MaxWindowWords      int
	MaxPortfolios       int
	Deadline            time.Duration
	ResolverVisitBudget int
	MaxTextLen          int
}

// NasdaqConfig holds NASDAQ symbol directory settings
type NasdaqConfig struct {
	BaseURL        string
	RequestsPerSec float64
}

// HistoryConfig holds scan history retention settings
type HistoryConfig struct {
	Retention time.Duration
}

// Load reads configuration from environment variables
// ⭐ SSOT: this is the only function that calls os.Getenv()
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8091"),
		Env:  getEnv("ENV", "development"),

		// Database
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		// Redis
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			Enabled:      getEnvAsBool("REDIS_ENABLED", false),
			ScanCacheTTL: getEnvAsDuration("REDIS_SCAN_CACHE_TTL", "10m"),
		},

		// Dictionary
		Dictionary: DictionaryConfig{
			Path: getEnv("DICTIONARY_PATH", "data/tickers.json"),
		},

		// Scan engine
		Scan: ScanConfig{
			MaxWindowWords:      getEnvAsInt("SCAN_MAX_WINDOW_WORDS", 4),
			MaxPortfolios:       getEnvAsInt("SCAN_MAX_PORTFOLIOS", 10),
			Deadline:            getEnvAsDuration("SCAN_DEADLINE", "60s"),
			ResolverVisitBudget: getEnvAsInt("SCAN_RESOLVER_VISIT_BUDGET", 200000),
			MaxTextLen:          getEnvAsInt("SCAN_MAX_TEXT_LEN", 1048576),
		},

		// NASDAQ sync
		Nasdaq: NasdaqConfig{
			BaseURL:        getEnv("NASDAQ_BASE_URL", "https://www.nasdaqtrader.com/dynamic/SymDir"),
			RequestsPerSec: getEnvAsFloat("NASDAQ_REQUESTS_PER_SEC", 1.0),
		},

		// History
		History: HistoryConfig{
			Retention: getEnvAsDuration("HISTORY_RETENTION", "720h"),
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if configuration values are sane
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Scan.MaxWindowWords < 1 {
		return fmt.Errorf("SCAN_MAX_WINDOW_WORDS must be >= 1")
	}

	if c.Scan.MaxPortfolios < 1 {
		return fmt.Errorf("SCAN_MAX_PORTFOLIOS must be >= 1")
	}

	if c.Scan.Deadline <= 0 {
		return fmt.Errorf("SCAN_DEADLINE must be positive")
	}

	if c.Scan.MaxTextLen < 1 {
		return fmt.Errorf("SCAN_MAX_TEXT_LEN must be >= 1")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env", // Current directory
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
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
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
