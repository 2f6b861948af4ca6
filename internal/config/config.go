package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Environment string

	DatabaseURL string

	RedisURL string

	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	CORSOrigins string

	// Anonymous submission throttle (sliding window per client IP).
	ThrottleEnabled bool
	ThrottleWindow  time.Duration
	ThrottleMax     int

	// CAPTCHA bypass token, honored only outside production.
	CaptchaBypassToken string
	CaptchaExpiry      time.Duration

	ResendAPIKey    string
	FromEmail       string
	ModerationEmail string
	Domain          string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),

		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTAccessExpiry:  getDurationEnv("JWT_ACCESS_EXPIRY", 15*time.Minute),
		JWTRefreshExpiry: getDurationEnv("JWT_REFRESH_EXPIRY", 7*24*time.Hour),

		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:5173"),

		ThrottleEnabled: getBoolEnv("THROTTLE_ENABLED", true),
		ThrottleWindow:  getDurationEnv("THROTTLE_WINDOW", 10*time.Minute),
		ThrottleMax:     getIntEnv("THROTTLE_MAX", 5),

		CaptchaBypassToken: getEnv("CAPTCHA_BYPASS_TOKEN", ""),
		CaptchaExpiry:      getDurationEnv("CAPTCHA_EXPIRY", 10*time.Minute),

		ResendAPIKey:    getEnv("RESEND_API_KEY", ""),
		FromEmail:       getEnv("FROM_EMAIL", "noreply@example.com"),
		ModerationEmail: getEnv("MODERATION_EMAIL", ""),
		Domain:          getEnv("DOMAIN", "localhost:5173"),
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
