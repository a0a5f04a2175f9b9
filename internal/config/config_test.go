package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
database:
  driver: memory
auth:
  jwt_secret: s3cret
  token_ttl: 2h
log:
  format: json
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr())
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Seed.Enabled)
	assert.False(t, cfg.Seed.Production)
}

func TestLoadEnvOverrides(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("TASK_MANAGER_DATABASE_DRIVER", "postgres")
	t.Setenv("TASK_MANAGER_DATABASE_URL", "postgres://localhost/tm")
	t.Setenv("TASK_MANAGER_AUTH_JWT_SECRET", "env-secret")
	t.Setenv("TASK_MANAGER_SEED_PRODUCTION", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/tm", cfg.Database.URL)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.True(t, cfg.Seed.Production)
}

func TestValidate(t *testing.T) {
	base := Config{
		Database: Database{Driver: DriverMemory},
		Auth:     Auth{JWTSecret: "x", TokenTTL: time.Hour},
	}
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"postgres without url", func(c *Config) { c.Database.Driver = DriverPostgres }},
		{"unknown driver", func(c *Config) { c.Database.Driver = "sqlite" }},
		{"no secret", func(c *Config) { c.Auth.JWTSecret = "" }},
		{"zero ttl", func(c *Config) { c.Auth.TokenTTL = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
