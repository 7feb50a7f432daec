package config

import (
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server settings
	Port int
	Host string
	Env  string // "development" or "production"

	// Database
	DatabasePath string

	// Search backend (the /search endpoint the chat bridge and the MCP
	// server query; by default the server's own address)
	SearchBaseURL string
	SearchTimeout time.Duration

	// Anthropic
	AnthropicAPIKey    string
	AnthropicBaseURL   string
	AnthropicModel     string
	AnthropicMaxTokens int
	AnthropicTimeout   time.Duration

	// Daily report email
	SMTPHost       string
	SMTPPort       int
	EmailUser      string
	EmailPass      string
	ReportSchedule string
}

var (
	cfg  *Config
	once sync.Once
)

// Get returns the global configuration (singleton)
func Get() *Config {
	once.Do(func() {
		cfg = load()
	})
	return cfg
}

// load reads configuration from the environment, with .env as a
// fallback for values not already exported
func load() *Config {
	_ = godotenv.Load()

	return &Config{
		// Server
		Port: getEnvInt("PORT", 3001),
		Host: getEnv("HOST", "0.0.0.0"),
		Env:  getEnv("ENV", "development"),

		// Data
		DatabasePath: getEnv("DATABASE_PATH", "./data/classifieds.sqlite"),

		// Search backend
		SearchBaseURL: getEnv("SEARCH_BASE_URL", "http://localhost:3001"),
		SearchTimeout: getEnvSeconds("SEARCH_TIMEOUT", 10),

		// Anthropic
		AnthropicAPIKey:    getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicBaseURL:   getEnv("ANTHROPIC_BASE_URL", ""),
		AnthropicModel:     getEnv("ANTHROPIC_MODEL", "claude-3-5-sonnet-20241022"),
		AnthropicMaxTokens: getEnvInt("ANTHROPIC_MAX_TOKENS", 1024),
		AnthropicTimeout:   getEnvSeconds("ANTHROPIC_TIMEOUT", 120),

		// Daily report
		SMTPHost:       getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:       getEnvInt("SMTP_PORT", 587),
		EmailUser:      getEnv("EMAIL_USER", ""),
		EmailPass:      getEnv("EMAIL_PASS", ""),
		ReportSchedule: getEnv("REPORT_SCHEDULE", "0 8 * * *"),
	}
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env != "production"
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvSeconds(key string, defaultValue int) time.Duration {
	return time.Duration(getEnvInt(key, defaultValue)) * time.Second
}
