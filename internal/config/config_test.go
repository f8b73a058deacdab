package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(viper.New(), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StorageFile, cfg.StorageDriver)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, int64(5<<20), cfg.MaxUploadBytes)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("CORS_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("DATA_DIR", "/var/lib/gamehub")

	cfg, err := Load(viper.New(), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, "/var/lib/gamehub", cfg.DataDir)
}

func TestLoadFromDotEnv(t *testing.T) {
	dir := t.TempDir()
	content := "PORT=9090\nSEED_ADMIN_USERNAME=root\nSEED_ADMIN_PASSWORD=hunter22\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))

	cfg, err := Load(viper.New(), dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "root", cfg.SeedAdminUsername)
	assert.Equal(t, "hunter22", cfg.SeedAdminPassword)
}

func TestLoadRejectsBadStorage(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "mongo")
	_, err := Load(viper.New(), t.TempDir())
	assert.Error(t, err)
}

func TestLoadPostgresNeedsURL(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", StoragePostgres)
	_, err := Load(viper.New(), t.TempDir())
	assert.Error(t, err)

	t.Setenv("DATABASE_URL", "postgres://localhost/gamehub")
	cfg, err := Load(viper.New(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, StoragePostgres, cfg.StorageDriver)
}
