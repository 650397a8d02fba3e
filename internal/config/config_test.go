package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.IsDev())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "retailsales.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9090"
app_env: production
db:
  host: db.internal
  name: sales
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, "sales", cfg.DB.Name)
	// unset keys keep their defaults
	assert.Equal(t, "5432", cfg.DB.Port)
}

func TestDSN(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DB.Password = "pw"
	assert.Equal(t,
		"host=localhost user=postgres password=pw dbname=retail_sales port=5432 sslmode=disable",
		cfg.DSN())

	cfg.DatabaseURL = "postgres://u:p@h:5432/d"
	assert.Equal(t, "postgres://u:p@h:5432/d", cfg.DSN())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "env-host")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "env-host", cfg.DB.Host)
	assert.False(t, cfg.IsDev())
}
