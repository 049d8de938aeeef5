package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestConfig writes a TOML config file to a temp directory and returns
// its path.
func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeTestConfig(t, `
[server]
host = "0.0.0.0"
port = 9090
allowed_origin = "https://admin.example.com"

[database]
path = "/var/lib/postdesk/posts.db"

[admin]
mode = "jwt"
jwt_secret = "shh"
jwt_issuer = "example"

[log]
level = "debug"
format = "json"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:9090", cfg.Addr())
	assert.Equal(t, "https://admin.example.com", cfg.Server.AllowedOrigin)
	assert.Equal(t, "/var/lib/postdesk/posts.db", cfg.Database.Path)
	assert.Equal(t, ModeJWT, cfg.Admin.Mode)
	assert.Equal(t, "shh", cfg.Admin.JWTSecret)
	assert.Equal(t, "example", cfg.Admin.JWTIssuer)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_MissingFile_CreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg, err := Load(path)
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.NoError(t, err, "default config file should be created")

	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Empty(t, cfg.Server.AllowedOrigin)
	assert.Equal(t, "./data/posts.db", cfg.Database.Path)
	assert.Equal(t, ModeToken, cfg.Admin.Mode)
	assert.Equal(t, "postdesk", cfg.Admin.JWTIssuer)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_DefaultsApplied(t *testing.T) {
	path := writeTestConfig(t, `
[admin]
token_hash = "$2a$10$abcdefghijklmnopqrstuv"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, ModeToken, cfg.Admin.Mode)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("POSTDESK_ADMIN_TOKEN_HASH", "from-env-hash")
	t.Setenv("POSTDESK_JWT_SECRET", "from-env-secret")
	t.Setenv("LOG_LEVEL", "warn")

	path := writeTestConfig(t, `
[admin]
token_hash = "from-file"
jwt_secret = "from-file"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env-hash", cfg.Admin.TokenHash)
	assert.Equal(t, "from-env-secret", cfg.Admin.JWTSecret)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "explicit zero port", content: "[server]\nport = 0\n"},
		{name: "port out of range", content: "[server]\nport = 70000\n"},
		{name: "empty database path", content: "[database]\npath = \"\"\n"},
		{name: "unknown admin mode", content: "[admin]\nmode = \"oauth\"\n"},
		{name: "jwt without secret", content: "[admin]\nmode = \"jwt\"\n"},
		{name: "unknown log format", content: "[log]\nformat = \"xml\"\n"},
		{name: "malformed toml", content: "[server\nport = 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeTestConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}
