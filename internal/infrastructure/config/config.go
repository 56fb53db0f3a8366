package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"

	"github.com/GriffinCanCode/deskshell/internal/shared/paths"
)

// DefaultIdentifier names the application-data directory when none is configured.
const DefaultIdentifier = "com.deskshell.app"

// ErrUnsupportedFormat is returned for config files that are neither TOML nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported config file format")

// Config holds all application configuration.
type Config struct {
	App       AppConfig       `toml:"app" yaml:"app"`
	Server    ServerConfig    `toml:"server" yaml:"server"`
	Logging   LogConfig       `toml:"logging" yaml:"logging"`
	RateLimit RateLimitConfig `toml:"rate_limit" yaml:"rate_limit"`
	Security  SecurityConfig  `toml:"security" yaml:"security"`
}

// AppConfig identifies the application and its data directory.
type AppConfig struct {
	Identifier string `envconfig:"APP_IDENTIFIER" toml:"identifier" yaml:"identifier"`
	DataDir    string `envconfig:"APP_DATA_DIR" toml:"data_dir" yaml:"data_dir"` // overrides the platform location
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" toml:"port" yaml:"port"`
	Host string `envconfig:"HOST" toml:"host" yaml:"host"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" toml:"level" yaml:"level"`
	Development bool   `envconfig:"LOG_DEV" toml:"development" yaml:"development"`
	Output      string `envconfig:"LOG_OUTPUT" toml:"output" yaml:"output"` // stderr, stdout or a file path
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" toml:"requests_per_second" yaml:"requests_per_second"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" toml:"burst" yaml:"burst"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" toml:"enabled" yaml:"enabled"`
}

// SecurityConfig holds browser-facing security settings.
type SecurityConfig struct {
	AllowOrigins   []string `envconfig:"CORS_ALLOW_ORIGINS" toml:"allow_origins" yaml:"allow_origins"`
	HeadersEnabled bool     `envconfig:"SECURITY_HEADERS_ENABLED" toml:"headers_enabled" yaml:"headers_enabled"`
}

// Address returns the host:port the server listens on.
func (s ServerConfig) Address() string {
	return s.Host + ":" + s.Port
}

// Locator returns the directory locator described by the app section.
func (a AppConfig) Locator() paths.Locator {
	return paths.New(a.Identifier, a.DataDir)
}

// Load loads configuration from environment variables over the defaults.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile layers defaults, the optional file at path, then the environment.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := decodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Identifier: DefaultIdentifier,
		},
		Server: ServerConfig{
			Port: "8000",
			Host: "127.0.0.1",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
			Output:      "stderr",
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		Security: SecurityConfig{
			AllowOrigins:   []string{"tauri://localhost", "http://localhost", "http://localhost:*", "http://127.0.0.1", "http://127.0.0.1:*"},
			HeadersEnabled: true,
		},
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if err := paths.ValidateIdentifier(c.App.Identifier); err != nil {
		return fmt.Errorf("invalid app identifier: %w", err)
	}

	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port < 0 || port > 65535 {
		return fmt.Errorf("invalid port %q", c.Server.Port)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("invalid rate limit: rps=%d burst=%d", c.RateLimit.RequestsPerSecond, c.RateLimit.Burst)
	}
	return nil
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}
