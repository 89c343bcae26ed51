package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("DB_DATABASE", "notary.db")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 13, cfg.HashCost)
	assert.Equal(t, 5, cfg.DBConnectionLimit)
	assert.True(t, cfg.IsSQLite())
	assert.Empty(t, cfg.RedisAddr)
}

func TestLoadRequiresSecret(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.EqualError(t, err, "JWT_SECRET is required")
}

func TestLoadRequiresUserForServerDatabases(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_TYPE", "postgres")
	t.Setenv("DB_USER", "")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("DB_USER", "notary")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.DBType)
}

func TestLoadReadsEnvFile(t *testing.T) {
	setRequired(t)
	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("PORT=4100\nTOKEN_TTL=3600\n"), 0o600))
	t.Setenv("ENV_FILE", envFile)
	// godotenv does not override variables already set, so clear them for this test
	os.Unsetenv("PORT")
	os.Unsetenv("TOKEN_TTL")
	t.Cleanup(func() {
		os.Unsetenv("PORT")
		os.Unsetenv("TOKEN_TTL")
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "4100", cfg.Port)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
}
