package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("LIBRARY_AUTH_JWTSECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "data/library.db", cfg.Database.Path)
	assert.True(t, cfg.Database.Seed)
	assert.Equal(t, 60, cfg.Auth.TokenTTLMinutes)
	assert.Equal(t, "library-api", cfg.Auth.Issuer)
	assert.Empty(t, cfg.Storage.Bucket)
	assert.Equal(t, "us-east-1", cfg.Storage.Region)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LIBRARY_AUTH_JWTSECRET", "test-secret")
	t.Setenv("LIBRARY_SERVER_ADDR", "127.0.0.1:9000")
	t.Setenv("LIBRARY_DATABASE_DRIVER", "memory")
	t.Setenv("LIBRARY_DATABASE_SEED", "false")
	t.Setenv("LIBRARY_AUTH_TOKENTTLMINUTES", "15")
	t.Setenv("LIBRARY_STORAGE_BUCKET", "covers")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, "memory", cfg.Database.Driver)
	assert.False(t, cfg.Database.Seed)
	assert.Equal(t, 15, cfg.Auth.TokenTTLMinutes)
	assert.Equal(t, "covers", cfg.Storage.Bucket)
}

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("LIBRARY_AUTH_JWTSECRET", "")

	_, err := Load()
	assert.ErrorContains(t, err, "jwt secret")
}

func TestValidate(t *testing.T) {
	var cfg Config
	cfg.Database.Driver = "postgres"
	cfg.Auth.JWTSecret = "x"
	cfg.Auth.TokenTTLMinutes = 5
	cfg.Auth.AdminEmail = "root@example.com"

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, `unknown database driver "postgres"`)
	assert.ErrorContains(t, err, "set together")
}
