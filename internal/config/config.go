package config

import "os"

type Config struct {
	Port        string
	Environment string
	DatabaseURL string
	JWTSecret   string
	// AdminToken is the bootstrap credential that authorizes registering a
	// user with the admin flag set. Empty disables admin registration.
	AdminToken  string
	CORSOrigins string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		AdminToken:  getEnv("ADMIN_ACCESS_TOKEN", ""),
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
