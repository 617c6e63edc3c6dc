package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values
type Config struct {
	// Server configuration
	Port        int    `json:"port"`
	Environment string `json:"environment"`

	// Scheduling service
	APIBaseURL       string        `json:"api_base_url"`
	SlotFetchTimeout time.Duration `json:"slot_fetch_timeout"`
	SubmitTimeout    time.Duration `json:"submit_timeout"`
	LookupTimeout    time.Duration `json:"lookup_timeout"`
	Timezone         string        `json:"timezone"`

	// MongoDB configuration
	MongoURI          string `json:"mongo_uri"`
	MongoDatabase     string `json:"mongo_database"`
	BookingCollection string `json:"mongo_booking_collection"`

	// Redis configuration
	RedisURI       string        `json:"redis_uri"`
	RedisPassword  string        `json:"redis_password"`
	RedisDB        int           `json:"redis_db"`
	LookupCacheTTL time.Duration `json:"lookup_cache_ttl"`

	// Workflow sessions
	SessionTTL time.Duration `json:"session_ttl"`

	// Admin access, delegated to the identity provider
	AdminJWTSecret string `json:"-"`
	AdminRole      string `json:"admin_role"`

	// Rate limiting on submit and lookup
	RateLimitRPS   float64 `json:"rate_limit_rps"`
	RateLimitBurst int     `json:"rate_limit_burst"`

	// Tracing
	ServiceVersion     string  `json:"service_version"`
	TracingEnabled     bool    `json:"tracing_enabled"`
	TracingEndpoint    string  `json:"tracing_endpoint"`
	TracingSampleRatio float64 `json:"tracing_sample_ratio"`
}

var (
	AppConfig *Config
)

// LoadConfig loads configuration from environment variables
func LoadConfig() error {
	cfg, err := loadFromEnv()
	if err != nil {
		return err
	}
	AppConfig = cfg
	return nil
}

func loadFromEnv() (*Config, error) {
	port, err := strconv.Atoi(getEnvOrDefault("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	apiBaseURL := strings.TrimRight(os.Getenv("API_BASE_URL"), "/")
	if apiBaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL environment variable is required")
	}

	slotFetchTimeout, err := time.ParseDuration(getEnvOrDefault("SLOT_FETCH_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SLOT_FETCH_TIMEOUT: %w", err)
	}

	submitTimeout, err := time.ParseDuration(getEnvOrDefault("SUBMIT_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SUBMIT_TIMEOUT: %w", err)
	}

	lookupTimeout, err := time.ParseDuration(getEnvOrDefault("LOOKUP_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOOKUP_TIMEOUT: %w", err)
	}

	timezone := getEnvOrDefault("TIMEZONE", "America/Bahia")
	if _, err := time.LoadLocation(timezone); err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	redisDB, err := strconv.Atoi(getEnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	lookupCacheTTL, err := time.ParseDuration(getEnvOrDefault("LOOKUP_CACHE_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOOKUP_CACHE_TTL: %w", err)
	}

	sessionTTL, err := time.ParseDuration(getEnvOrDefault("SESSION_TTL", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}

	rps, err := strconv.ParseFloat(getEnvOrDefault("RATE_LIMIT_RPS", "2"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}

	burst, err := strconv.Atoi(getEnvOrDefault("RATE_LIMIT_BURST", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}

	tracingEnabled, err := strconv.ParseBool(getEnvOrDefault("TRACING_ENABLED", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid TRACING_ENABLED: %w", err)
	}

	sampleRatio, err := strconv.ParseFloat(getEnvOrDefault("TRACING_SAMPLE_RATIO", "1"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid TRACING_SAMPLE_RATIO: %w", err)
	}
	if sampleRatio < 0 || sampleRatio > 1 {
		return nil, fmt.Errorf("invalid TRACING_SAMPLE_RATIO: %v is outside [0, 1]", sampleRatio)
	}

	return &Config{
		Port:        port,
		Environment: getEnvOrDefault("ENVIRONMENT", "development"),

		APIBaseURL:       apiBaseURL,
		SlotFetchTimeout: slotFetchTimeout,
		SubmitTimeout:    submitTimeout,
		LookupTimeout:    lookupTimeout,
		Timezone:         timezone,

		MongoURI:          getEnvOrDefault("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase:     getEnvOrDefault("MONGODB_DATABASE", "sindauto"),
		BookingCollection: getEnvOrDefault("MONGODB_BOOKING_COLLECTION", "bookings"),

		RedisURI:       getEnvOrDefault("REDIS_URI", "localhost:6379"),
		RedisPassword:  getEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:        redisDB,
		LookupCacheTTL: lookupCacheTTL,

		SessionTTL: sessionTTL,

		AdminJWTSecret: getEnvOrDefault("ADMIN_JWT_SECRET", ""),
		AdminRole:      getEnvOrDefault("ADMIN_ROLE", "sindauto:admin"),

		RateLimitRPS:   rps,
		RateLimitBurst: burst,

		ServiceVersion:     getEnvOrDefault("SERVICE_VERSION", "dev"),
		TracingEnabled:     tracingEnabled,
		TracingEndpoint:    getEnvOrDefault("TRACING_ENDPOINT", "localhost:4317"),
		TracingSampleRatio: sampleRatio,
	}, nil
}

// Location returns the calendar timezone used for date checks
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
