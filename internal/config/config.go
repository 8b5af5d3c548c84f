package config

import (
	"os"
	"strings"
)

// Config holds the application configuration
type Config struct {
	Environment   string
	ServerAddress string
	DatabasePath  string
	MediaDir      string
	APIBaseURL    string
	Auth          AuthConfig
	CORS          CORSConfig
	SeedDemoData  bool
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// AuthConfig holds web session cookie configuration
type AuthConfig struct {
	CookieName   string
	SecureCookie bool
	CookieMaxAge int
}

// Load loads configuration from environment variables with defaults
func Load() (*Config, error) {
	// Parse CORS allowed origins from comma-separated string
	corsOrigins := getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:5002")
	allowedOrigins := parseCommaSeparatedList(corsOrigins)

	return &Config{
		Environment:   getEnv("ENVIRONMENT", "development"),
		ServerAddress: getEnv("SERVER_ADDRESS", ":5002"),
		DatabasePath:  getEnv("DATABASE_PATH", "./data/mediahub.db"),
		MediaDir:      getEnv("MEDIA_DIR", "./uploads/videos"),
		APIBaseURL:    getEnv("API_BASE_URL", "http://localhost:5002"),
		Auth: AuthConfig{
			CookieName:   getEnv("AUTH_COOKIE_NAME", "user_token"),
			SecureCookie: getEnv("AUTH_SECURE_COOKIE", "false") == "true",
			CookieMaxAge: 86400 * 7, // 7 days
		},
		CORS: CORSConfig{
			AllowedOrigins: allowedOrigins,
		},
		SeedDemoData: getEnv("SEED_DEMO_DATA", "false") == "true",
	}, nil
}

// parseCommaSeparatedList splits a comma-separated string into a slice
func parseCommaSeparatedList(s string) []string {
	if s == "" {
		return []string{}
	}

	items := strings.Split(s, ",")
	result := make([]string, 0, len(items))

	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}

	return result
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
