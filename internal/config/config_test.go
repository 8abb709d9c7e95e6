package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
env: dev
http_server:
  address: "localhost:9090"
  read_timeout: 5s
auth:
  access_secret: "a-secret"
  refresh_secret: "r-secret"
`)

	cfg := MustLoadConfig(path)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "localhost:9090", cfg.HTTPServer.Address)
	assert.Equal(t, 5*time.Second, cfg.HTTPServer.ReadTimeout)

	// Defaults
	assert.Equal(t, 60*time.Second, cfg.HTTPServer.IdleTimeout)
	assert.Equal(t, 10*time.Minute, cfg.Auth.AccessTTL)
	assert.Equal(t, 5, cfg.Auth.LoginLimit)
	assert.Equal(t, 15*time.Minute, cfg.Auth.LoginWindow)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "shop", cfg.Mongo.Database)
}

func TestMustLoadConfig_MissingFile(t *testing.T) {
	assert.Panics(t, func() {
		MustLoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	})
}

func TestMustLoadConfig_MissingRequired(t *testing.T) {
	path := writeConfig(t, `
env: local
http_server:
  address: "localhost:9090"
`)

	assert.Panics(t, func() {
		MustLoadConfig(path)
	})
}
