package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ccmg/qbank-admin/internal/model"
)

// Config holds all application configuration.
type Config struct {
	// Client side.
	APIBaseURL  string
	CourseIDs   map[model.Category]string
	SessionFile string
	LogLevel    string
	LogFormat   string

	// Fixture server.
	ServerPort    string
	GinMode       string
	AdminUsername string
	AdminPassword string
	JWTSecret     string
	JWTExpiry     time.Duration
	// AllowedOrigins controls HTTP CORS. Empty slice means all origins
	// are permitted (dev default).
	AllowedOrigins []string
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // .env is optional

	return &Config{
		APIBaseURL: getEnv("API_BASE_URL", "http://localhost:4000"),
		CourseIDs: map[model.Category]string{
			model.CategoryFoundational: getEnv("COURSE_ID_CO_SO", ""),
			model.CategorySpecialized:  getEnv("COURSE_ID_CHUYEN_MON", ""),
		},
		SessionFile: getEnv("SESSION_FILE", defaultSessionFile()),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "pretty"),

		ServerPort:     getEnv("SERVER_PORT", "4000"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		AdminUsername:  getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:  getEnv("ADMIN_PASSWORD", "admin123"),
		JWTSecret:      getEnv("JWT_SECRET", "change-this-to-a-secure-random-string"),
		JWTExpiry:      time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 24)) * time.Hour,
		AllowedOrigins: parseOrigins(getEnv("ALLOWED_ORIGINS", "")),
	}
}

// CourseID resolves the configured course id for a category. The mapping is
// required for every multiple-choice endpoint, so a missing entry is
// reported before any request is issued.
func (c *Config) CourseID(category model.Category) (string, bool) {
	id := strings.TrimSpace(c.CourseIDs[category])
	return id, id != ""
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".qbank-admin-session.json"
	}
	return filepath.Join(home, ".qbank-admin", "session.json")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// parseOrigins splits a comma-separated origins string into a trimmed slice.
// Returns nil (allow-all) if the input is empty.
func parseOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
