package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Server configuration
	Port        string
	Environment string

	// Rendering
	QRServiceURL   string
	QRFetchTimeout time.Duration
	LogoPath       string
	LogoURL        string
	BrandName      string
	Locale         string

	// Redis configuration; an empty RedisURL disables the artifact cache
	RedisURL      string
	RedisPassword string
	RedisDB       int
	ArtifactTTL   time.Duration

	// Monitoring
	EnableMetrics bool
}

func Load() *Config {
	return &Config{
		// Server
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		// Rendering
		QRServiceURL:   getEnv("QR_SERVICE_URL", ""),
		QRFetchTimeout: getEnvAsDuration("QR_FETCH_TIMEOUT", "8s"),
		LogoPath:       getEnv("LOGO_PATH", ""),
		LogoURL:        getEnv("LOGO_URL", ""),
		BrandName:      getEnv("BRAND_NAME", "Ticketing"),
		Locale:         getEnv("LOCALE", "en"),

		// Redis
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		ArtifactTTL:   getEnvAsDuration("ARTIFACT_TTL", "24h"),

		// Monitoring
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),
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

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
