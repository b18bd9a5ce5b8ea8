// Package config loads application configuration from environment variables.
package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Server
	Port string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// News feed
	NewsAPIBaseURL string
	NewsAPIKey     string

	// Alerting
	ScanInterval  time.Duration
	AlertKeywords []string

	// Share tokens
	ShareTokenTTL time.Duration

	// Notification channels
	BroadcastWebhookURL string
	MailGatewayURL      string
	MailGatewayKey      string
	MailFromAddress     string
	SMSGatewayURL       string
	SMSGatewayKey       string
}

var appConfig *Config

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "stocksentry"),
		DBPassword: getEnv("DB_PASSWORD", "stocksentry"),
		DBName:     getEnv("DB_NAME", "stocksentry"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// News feed
		NewsAPIBaseURL: getEnv("NEWSAPI_BASE_URL", "https://newsapi.org/v2/everything"),
		NewsAPIKey:     getEnv("NEWSAPI_KEY", ""),

		// Notification channels
		BroadcastWebhookURL: getEnv("BROADCAST_WEBHOOK_URL", ""),
		MailGatewayURL:      getEnv("MAIL_GATEWAY_URL", ""),
		MailGatewayKey:      getEnv("MAIL_GATEWAY_KEY", ""),
		MailFromAddress:     getEnv("MAIL_FROM_ADDRESS", "alerts@stocksentry.app"),
		SMSGatewayURL:       getEnv("SMS_GATEWAY_URL", ""),
		SMSGatewayKey:       getEnv("SMS_GATEWAY_KEY", ""),
	}

	config.ScanInterval = getEnvDuration("SCAN_INTERVAL", 600*time.Second)
	config.ShareTokenTTL = getEnvDuration("SHARE_TOKEN_TTL", 600*time.Second)
	config.AlertKeywords = getEnvList("ALERT_KEYWORDS", []string{"earnings", "acquisition", "merger"})

	appConfig = config
	return config, nil
}

// Get returns the application configuration.
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration parses a duration environment variable, falling back to the
// default on absence or parse failure.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Warning: invalid %s value %q, falling back to %v\n", key, raw, defaultValue)
		return defaultValue
	}
	return d
}

// getEnvList parses a comma-separated environment variable into a trimmed,
// lowercased list.
func getEnvList(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
