package config

import (
	"os"

	"github.com/joho/godotenv"
)

func init() {
	// Load .env file if it exists (ignores error if not found)
	godotenv.Load()
}

type Config struct {
	Port      string
	StaticDir string
	PrettyLog bool

	// Service-account credentials: inline JSON blob or a path to one.
	ServiceAccountJSON string
	ServiceAccountFile string

	// OAuth credentials (used when no service account is configured)
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string
	GoogleRefreshToken string
}

func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "3000"),
		StaticDir:          getEnv("STATIC_DIR", "./public"),
		PrettyLog:          getEnv("LOG_PRETTY", "") == "true",
		ServiceAccountJSON: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),
		ServiceAccountFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", ""),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURI:  getEnv("GOOGLE_REDIRECT_URI", "http://localhost:3000/api/drive/oauth2callback"),
		GoogleRefreshToken: getEnv("GOOGLE_REFRESH_TOKEN", ""),
	}
}

// HasServiceAccount reports whether service-account credentials were
// provided in either form.
func (c *Config) HasServiceAccount() bool {
	return c.ServiceAccountJSON != "" || c.ServiceAccountFile != ""
}

// HasOAuthClient reports whether an OAuth client is configured.
func (c *Config) HasOAuthClient() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
