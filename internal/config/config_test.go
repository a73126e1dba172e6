package config

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"APP_ADMIN_EMAIL", "APP_ADMIN_PASSWORD", "APP_DATABASE_URL",
		"APP_SESSION_SECRET", "APP_LISTEN_ADDR", "APP_UPLOAD_DIR",
		"APP_MAX_UPLOAD_BYTES", "APP_ENV",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	require.Equal(t, ":8080", cfg.ListenAddr)
	require.Equal(t, "public/uploads", cfg.UploadDir)
	require.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
	require.Equal(t, "development", cfg.Env)
	require.Empty(t, cfg.AdminPasswordHash)
}

func TestLoadHashesAdminPassword(t *testing.T) {
	t.Setenv("APP_ADMIN_PASSWORD", "hunter2")

	cfg := Load()

	require.NotEqual(t, "hunter2", cfg.AdminPasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(cfg.AdminPasswordHash), []byte("hunter2")))
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_LISTEN_ADDR", ":9999")
	t.Setenv("APP_MAX_UPLOAD_BYTES", "2048")
	t.Setenv("APP_ENV", "production")

	cfg := Load()

	require.Equal(t, ":9999", cfg.ListenAddr)
	require.Equal(t, int64(2048), cfg.MaxUploadBytes)
	require.Equal(t, "production", cfg.Env)
}

func TestLoadIgnoresBadUploadLimit(t *testing.T) {
	t.Setenv("APP_MAX_UPLOAD_BYTES", "not-a-number")

	cfg := Load()

	require.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
}
