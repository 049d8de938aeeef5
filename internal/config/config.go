package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Admin    AdminConfig    `toml:"admin"`
	Log      LogConfig      `toml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`

	// AllowedOrigin enables CORS for one browser origin. Empty disables CORS.
	AllowedOrigin string `toml:"allowed_origin"`
}

// DatabaseConfig holds SQLite settings.
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// AdminConfig selects and configures the admin gate.
type AdminConfig struct {
	Mode      string `toml:"mode"` // "token" | "jwt"
	TokenHash string `toml:"token_hash"`
	JWTSecret string `toml:"jwt_secret"`
	JWTIssuer string `toml:"jwt_issuer"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" | "console"
}

const (
	ModeToken = "token"
	ModeJWT   = "jwt"
)

const defaultConfigContent = `[server]
host = "localhost"
port = 8080
allowed_origin = ""               # e.g. "https://admin.example.com"

[database]
path = "./data/posts.db"

[admin]
mode = "token"                    # "token" or "jwt"
token_hash = ""                   # bcrypt hash (or set POSTDESK_ADMIN_TOKEN_HASH)
jwt_secret = ""                   # HS256 secret (or set POSTDESK_JWT_SECRET)
jwt_issuer = "postdesk"

[log]
level = "info"
format = "console"                # "console" or "json"
`

// Load reads and parses the TOML config at path. A missing file is replaced
// by the default config. Environment variables override file values.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := createDefault(path); err != nil {
			return nil, fmt.Errorf("creating default config: %w", err)
		}
		zap.S().Infow("created default config file", "path", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// "port = 0" written explicitly is an error, not a request for the default.
	if err := validateExplicit(&cfg, md); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Addr returns the host:port the server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func createDefault(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigContent), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}

func validateExplicit(cfg *Config, md toml.MetaData) error {
	if md.IsDefined("server", "port") {
		if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
			return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", cfg.Server.Port)
		}
	}
	if md.IsDefined("database", "path") && cfg.Database.Path == "" {
		return errors.New("invalid database.path: must not be empty")
	}
	return nil
}

// applyDefaults sets default values for any zero-valued fields.
func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "./data/posts.db"
	}
	if cfg.Admin.Mode == "" {
		cfg.Admin.Mode = ModeToken
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
}

// applyEnvOverrides lets secrets stay out of the config file.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("POSTDESK_ADMIN_TOKEN_HASH"); v != "" {
		cfg.Admin.TokenHash = v
	}
	if v := os.Getenv("POSTDESK_JWT_SECRET"); v != "" {
		cfg.Admin.JWTSecret = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", cfg.Server.Port)
	}

	switch cfg.Admin.Mode {
	case ModeToken:
		if cfg.Admin.TokenHash == "" {
			zap.S().Warn("admin.token_hash is empty: every admin request will be refused")
		}
	case ModeJWT:
		if cfg.Admin.JWTSecret == "" {
			return errors.New("admin.jwt_secret is required when admin.mode is \"jwt\"")
		}
	default:
		return fmt.Errorf("invalid admin.mode %q: must be \"token\" or \"jwt\"", cfg.Admin.Mode)
	}

	switch cfg.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log.format %q: must be \"console\" or \"json\"", cfg.Log.Format)
	}

	return nil
}
