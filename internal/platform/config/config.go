package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL          string // Empty selects the in-memory store
	Port                 string
	IsProduction         bool
	EnableDBCheck        bool
	RunMigrations        bool
	LogLevel             string
	RateLookupTimeout    time.Duration
	RateLookupMaxRetries uint64
	RateLimit            string // ulule/limiter format, e.g. "100-M"
	DefaultStandard      string // Used when a company's country has no built-in profile
}

// UsesDatabase reports whether a PostgreSQL store is configured.
func (c *Config) UsesDatabase() bool {
	return c.DatabaseURL != ""
}

// LoadConfig loads configuration from environment variables and .env file if present.
// Environment variables override .env values, which override the defaults.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("RATE_LOOKUP_TIMEOUT", "2s")
	v.SetDefault("RATE_LOOKUP_MAX_RETRIES", 3)
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("DEFAULT_STANDARD", "")
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:     v.GetString("PGSQL_URL"),
		Port:            v.GetString("PORT"),
		IsProduction:    v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:   v.GetBool("ENABLE_DB_CHECK"),
		RunMigrations:   v.GetBool("RUN_MIGRATIONS"),
		LogLevel:        strings.ToLower(v.GetString("LOG_LEVEL")),
		RateLimit:       v.GetString("RATE_LIMIT"),
		DefaultStandard: strings.ToUpper(v.GetString("DEFAULT_STANDARD")),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set. Using the in-memory store.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	timeoutStr := v.GetString("RATE_LOOKUP_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil || timeout <= 0 {
		return nil, fmt.Errorf("invalid RATE_LOOKUP_TIMEOUT %q: must be a positive duration", timeoutStr)
	}
	cfg.RateLookupTimeout = timeout

	retries := v.GetInt("RATE_LOOKUP_MAX_RETRIES")
	if retries < 0 {
		return nil, fmt.Errorf("invalid RATE_LOOKUP_MAX_RETRIES %d: must not be negative", retries)
	}
	cfg.RateLookupMaxRetries = uint64(retries)

	if cfg.RateLimit == "" {
		cfg.RateLimit = "100-M"
	}

	return cfg, nil
}
