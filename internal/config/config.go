package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/projection"
)

// Config holds process-level settings for the CLI and HTTP server.
type Config struct {
	// Storage
	DatabasePath string `yaml:"database_path"`

	// Defaults applied to calculator forms that leave them blank
	Units projection.UnitSystem `yaml:"units"`

	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Addr            string   `yaml:"addr"`
	CORSOrigins     []string `yaml:"cors_origins"`
	ReadTimeout     string   `yaml:"read_timeout"`
	ShutdownTimeout string   `yaml:"shutdown_timeout"`
}

type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

func DefaultConfig() *Config {
	return &Config{
		Units: projection.Metric,
		Server: ServerConfig{
			Addr:            ":8080",
			CORSOrigins:     []string{"*"},
			ReadTimeout:     "10s",
			ShutdownTimeout: "5s",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads path when it exists, then .env, then NUTRI_* environment
// variables. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("NUTRI_DB"); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv("NUTRI_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("PORT"); v != "" && os.Getenv("NUTRI_ADDR") == "" {
		c.Server.Addr = ":" + v
	}
	if v := os.Getenv("NUTRI_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("NUTRI_UNITS"); v != "" {
		c.Units = projection.UnitSystem(strings.ToLower(v))
	}
	if v := os.Getenv("NUTRI_CORS_ORIGINS"); v != "" {
		origins := make([]string, 0)
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.Server.CORSOrigins = origins
	}
}

func (c *Config) Validate() error {
	units, err := projection.ParseUnitSystem(string(c.Units))
	if err != nil {
		return fmt.Errorf("config units: %w", err)
	}
	c.Units = units
	if _, err := c.Server.ReadTimeoutDuration(); err != nil {
		return err
	}
	if _, err := c.Server.ShutdownTimeoutDuration(); err != nil {
		return err
	}
	return nil
}

func (s ServerConfig) ReadTimeoutDuration() (time.Duration, error) {
	return parseDuration("read_timeout", s.ReadTimeout, 10*time.Second)
}

func (s ServerConfig) ShutdownTimeoutDuration() (time.Duration, error) {
	return parseDuration("shutdown_timeout", s.ShutdownTimeout, 5*time.Second)
}

func parseDuration(name, raw string, fallback time.Duration) (time.Duration, error) {
	if strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config %s: %w", name, err)
	}
	return d, nil
}
