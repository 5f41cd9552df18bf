package config

import (
	"os"
	"time"
)

type Config struct {
	MongoURI  string
	MongoDB   string
	RedisAddr string
	HTTPPort  string

	JWTSecret     string
	AdminUsername string
	AdminPassword string

	// External feedback-form service
	FormServiceURL   string
	FormServiceToken string

	// Draft autosave quiet period and schema cache lifetime
	AutosaveQuiet  time.Duration
	SchemaCacheTTL time.Duration
}

func Load() *Config {
	return &Config{
		MongoURI:  getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:   getEnv("MONGO_DB", "thesisdesk"),
		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		HTTPPort:  getEnv("HTTP_PORT", "8080"),

		JWTSecret:     getEnv("JWT_SECRET", "change-me-in-production"),
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "password123"),

		FormServiceURL:   getEnv("FORM_SERVICE_URL", "http://localhost:9090"),
		FormServiceToken: getEnv("FORM_SERVICE_TOKEN", ""),

		AutosaveQuiet:  getDuration("AUTOSAVE_QUIET", 2*time.Second),
		SchemaCacheTTL: getDuration("SCHEMA_CACHE_TTL", 10*time.Minute),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
