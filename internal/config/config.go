package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config defines the ingestor configuration.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"INGEST_HTTP_PORT"`
	} `yaml:"http"`
	Database struct {
		Server   string `yaml:"server" env:"DB_SERVER"`
		Name     string `yaml:"name" env:"DB_NAME"`
		User     string `yaml:"user" env:"DB_USER"`
		Password string `yaml:"password" env:"DB_PASSWORD"`
		SSLMode  string `yaml:"sslmode" env:"DB_SSLMODE"`
	} `yaml:"database"`
	Liveboard struct {
		BaseURL        string `yaml:"base_url" env:"LIVEBOARD_URL"`
		TimeoutSeconds int    `yaml:"timeout_seconds" env:"LIVEBOARD_TIMEOUT_SECONDS"`
	} `yaml:"liveboard"`
	Stations []string `yaml:"stations" env:"STATIONS"`
	Schedule struct {
		IntervalMinutes int `yaml:"interval_minutes" env:"SCHEDULE_INTERVAL_MINUTES"`
		Workers         int `yaml:"workers" env:"SCHEDULE_WORKERS"`
	} `yaml:"schedule"`
	Redis struct {
		Addr     string `yaml:"addr" env:"REDIS_ADDR"`
		Password string `yaml:"password" env:"REDIS_PASSWORD"`
	} `yaml:"redis"`
}

// Load configuration from optional YAML file plus environment overrides.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "8080"
	cfg.Database.SSLMode = "require"
	cfg.Liveboard.BaseURL = "https://api.irail.be/liveboard/"
	cfg.Liveboard.TimeoutSeconds = 20
	cfg.Stations = []string{"Brugge", "Brussels-Central", "Gent-Sint-Pieters", "Antwerpen-Centraal"}
	cfg.Schedule.IntervalMinutes = 5
	cfg.Schedule.Workers = 2

	if err := loadInto(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Database.Server) == "" {
		return nil, errors.New("config: database server required")
	}
	if strings.TrimSpace(cfg.Database.Name) == "" {
		return nil, errors.New("config: database name required")
	}
	if len(cfg.Stations) == 0 {
		return nil, errors.New("config: at least one station required")
	}
	if cfg.Schedule.IntervalMinutes < 1 {
		return nil, errors.New("config: schedule interval must be positive")
	}
	if cfg.Liveboard.TimeoutSeconds < 1 {
		return nil, errors.New("config: liveboard timeout must be positive")
	}
	if cfg.Schedule.Workers < 1 {
		cfg.Schedule.Workers = 1
	}
	return cfg, nil
}

// DSN assembles the PostgreSQL connection URL from the discrete credentials.
func (c *Config) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		Host:   c.Database.Server,
		Path:   "/" + c.Database.Name,
	}
	if c.Database.User != "" {
		u.User = url.UserPassword(c.Database.User, c.Database.Password)
	}
	if c.Database.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": []string{c.Database.SSLMode}}.Encode()
	}
	return u.String()
}

// DefaultStation is used by the on-demand trigger when no station is given.
func (c *Config) DefaultStation() string {
	return c.Stations[0]
}

// UpstreamTimeout returns the liveboard request timeout.
func (c *Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.Liveboard.TimeoutSeconds) * time.Second
}

// ScheduleInterval returns the delay between ingestion cycles.
func (c *Config) ScheduleInterval() time.Duration {
	return time.Duration(c.Schedule.IntervalMinutes) * time.Minute
}

// HTTPAddress returns :port style.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}
