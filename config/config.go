package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DayModeDate     = "date"
	DayModeExplicit = "explicit"
)

var (
	PORT        string
	DB_URL      string
	JWT_SECRET  string
	CORS_ORIGIN string
	LOG_LEVEL   string

	GOOGLE_CLIENT_ID         string
	GOOGLE_CLIENT_SECRET     string
	GOOGLE_REDIRECT_URL      string
	GOOGLE_FRONTEND_REDIRECT string
	GOOGLE_PHOTOS_ENABLED    bool

	// Empty list means any signed-in account is an admin.
	ADMIN_EMAILS         []string
	ADMIN_PASSWORD_HASH  string
	ADMIN_PASSWORD_EMAIL string

	CLOUDINARY_CLOUD_NAME    string
	CLOUDINARY_UPLOAD_PRESET string
	CLOUDINARY_FOLDER        string

	FALLBACK_DOCUMENT string
	DAY_MODE          string
	REDIS_URL         string
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = getEnv("DB_URL", "")
	JWT_SECRET = mustEnv("JWT_SECRET")
	CORS_ORIGIN = getEnv("CORS_ORIGIN", "*")
	LOG_LEVEL = getEnv("LOG_LEVEL", "info")

	GOOGLE_CLIENT_ID = getEnv("GOOGLE_CLIENT_ID", "")
	GOOGLE_CLIENT_SECRET = getEnv("GOOGLE_CLIENT_SECRET", "")
	GOOGLE_REDIRECT_URL = getEnv("GOOGLE_REDIRECT_URL", "")
	GOOGLE_FRONTEND_REDIRECT = getEnv("GOOGLE_FRONTEND_REDIRECT", "")
	GOOGLE_PHOTOS_ENABLED = parseBool(getEnv("GOOGLE_PHOTOS_ENABLED", "false"))

	ADMIN_EMAILS = splitList(getEnv("ADMIN_EMAILS", ""))
	ADMIN_PASSWORD_HASH = getEnv("ADMIN_PASSWORD_HASH", "")
	ADMIN_PASSWORD_EMAIL = getEnv("ADMIN_PASSWORD_EMAIL", "admin@localhost")

	CLOUDINARY_CLOUD_NAME = getEnv("CLOUDINARY_CLOUD_NAME", "")
	CLOUDINARY_UPLOAD_PRESET = getEnv("CLOUDINARY_UPLOAD_PRESET", "")
	CLOUDINARY_FOLDER = getEnv("CLOUDINARY_FOLDER", "art-progression")

	FALLBACK_DOCUMENT = getEnv("FALLBACK_DOCUMENT", "data/artworks.json")
	DAY_MODE = normalizeDayMode(getEnv("DAY_MODE", DayModeDate))
	REDIS_URL = getEnv("REDIS_URL", "")
}

// IsPlaceholder reports whether a credential was left at an unset or template value.
func IsPlaceholder(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return true
	}
	upper := strings.ToUpper(v)
	return strings.HasPrefix(upper, "YOUR_") ||
		strings.HasPrefix(upper, "YOUR-") ||
		upper == "CHANGEME" ||
		upper == "TODO"
}

func GoogleConfigured() bool {
	return !IsPlaceholder(GOOGLE_CLIENT_ID) &&
		!IsPlaceholder(GOOGLE_CLIENT_SECRET) &&
		!IsPlaceholder(GOOGLE_REDIRECT_URL)
}

func MediaConfigured() bool {
	return !IsPlaceholder(CLOUDINARY_CLOUD_NAME) && !IsPlaceholder(CLOUDINARY_UPLOAD_PRESET)
}

func PhotosConfigured() bool {
	return GOOGLE_PHOTOS_ENABLED && GoogleConfigured()
}

func PasswordLoginConfigured() bool {
	return !IsPlaceholder(ADMIN_PASSWORD_HASH)
}

func normalizeDayMode(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case DayModeExplicit, "legacy":
		return DayModeExplicit
	case DayModeDate, "":
		return DayModeDate
	default:
		log.Printf("Unknown DAY_MODE %q, using %q", v, DayModeDate)
		return DayModeDate
	}
}

func splitList(v string) []string {
	out := []string{}
	for _, part := range strings.Split(v, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
