package model

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ModeDevelopment enables debug logging. Any other mode logs JSON at info
// level.
const ModeDevelopment = "development"

// Config is read from config.toml.
type Config struct {
	Mode          string
	Port          int
	DefaultRegion string // used for phone numbers written without a +prefix
	BodyLimit     string
	Servers       map[string]Server
}

// Server describes one database connection, selected by Mode.
type Server struct {
	Database   string // "sqlite3" or "postgresql"
	DBName     string
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     int
	DBLogger   string // "info", "silent" or empty for the mode default
}

var errNoServer = errors.New("no database server configured for mode")

// LoadConfig reads and validates the TOML configuration at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

// ParseConfig decodes TOML data, fills in defaults and validates the result.
func ParseConfig(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("cannot parse configuration: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Mode == "" {
		cfg.Mode = ModeDevelopment
	}
	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if cfg.DefaultRegion == "" {
		cfg.DefaultRegion = "RU"
	}
	cfg.DefaultRegion = strings.ToUpper(cfg.DefaultRegion)
	if cfg.BodyLimit == "" {
		cfg.BodyLimit = "1M"
	}
	for name, svr := range cfg.Servers {
		if svr.Database == "postgresql" && svr.DBPort == 0 {
			svr.DBPort = 5432
		}
		cfg.Servers[name] = svr
	}
}

func (cfg *Config) validate() error {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port %d", cfg.Port)
	}
	svr, ok := cfg.Servers[cfg.Mode]
	if !ok {
		return fmt.Errorf("%w %q", errNoServer, cfg.Mode)
	}
	switch svr.Database {
	case "sqlite3", "postgresql":
	default:
		return fmt.Errorf("unsupported database %q for mode %q", svr.Database, cfg.Mode)
	}
	if svr.DBName == "" {
		return fmt.Errorf("database name missing for mode %q", cfg.Mode)
	}
	return nil
}

// Server returns the database server for the configured mode.
func (cfg *Config) Server() Server {
	return cfg.Servers[cfg.Mode]
}
