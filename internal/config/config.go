package config

import (
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// Config holds the core runtime configuration for the service.
// Values are primarily sourced from environment variables, with
// sensible defaults where appropriate. See .env.example.
type Config struct {
	// AdminEmail and AdminPasswordHash are the single set of admin
	// credentials accepted by POST /api/auth. The plaintext password
	// from the environment is hashed once at load time and never kept.
	AdminEmail        string
	AdminPasswordHash string

	DatabaseURL string

	// SessionSecret signs the admin session cookie.
	SessionSecret string

	ListenAddr string

	// UploadDir is where POST /api/upload writes files; it is also
	// served under /uploads/.
	UploadDir string

	// MaxUploadBytes caps the decoded size of an uploaded file.
	MaxUploadBytes int64

	Env string
}

// Load reads configuration from environment variables and applies defaults.
func Load() *Config {
	cfg := &Config{
		AdminEmail:     getenv("APP_ADMIN_EMAIL", ""),
		DatabaseURL:    os.Getenv("APP_DATABASE_URL"),
		SessionSecret:  getenv("APP_SESSION_SECRET", "changeme"),
		ListenAddr:     getenv("APP_LISTEN_ADDR", ":8080"),
		UploadDir:      getenv("APP_UPLOAD_DIR", "public/uploads"),
		MaxUploadBytes: 10 << 20,
		Env:            getenv("APP_ENV", "development"),
	}

	if password := os.Getenv("APP_ADMIN_PASSWORD"); password != "" {
		if hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost); err == nil {
			cfg.AdminPasswordHash = string(hash)
		}
	}

	if v := os.Getenv("APP_MAX_UPLOAD_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.MaxUploadBytes = n
		}
	}

	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
