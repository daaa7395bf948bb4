package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Storage   StorageConfig   `yaml:"storage"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
	Program   ProgramConfig   `yaml:"program"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type StorageConfig struct {
	Driver    string         `yaml:"driver"`
	SQLiteDir string         `yaml:"sqlite_dir"`
	Postgres  DatabaseConfig `yaml:"postgres"`
	Redis     RedisConfig    `yaml:"redis"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type RedisConfig struct {
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key_prefix"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

type ProgramConfig struct {
	// Timezone is the IANA zone whose calendar decides "today".
	Timezone string `yaml:"timezone"`
}

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// Location resolves the configured timezone. Empty means the host's zone.
func (p ProgramConfig) Location() (*time.Location, error) {
	if p.Timezone == "" || p.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(p.Timezone)
}

// SlogLevel maps the configured level name to a slog.Level.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server:    ServerConfig{Host: "127.0.0.1", Port: 8080},
		Log:       LogConfig{Level: "info", Format: "text"},
		Storage:   StorageConfig{Driver: "sqlite", SQLiteDir: "~/.tacticalfit", Redis: RedisConfig{KeyPrefix: "tacticalfit:"}},
		Tailscale: TailscaleConfig{Hostname: "tacticalfit", StateDir: "tsnet"},
		Program:   ProgramConfig{Timezone: "Local"},
	}
}

// Load reads config from a YAML file, then applies environment variable overrides.
// Values missing from the file keep their defaults. Env vars use the prefix
// TACTICALFIT_:
//
//	TACTICALFIT_SERVER_HOST, TACTICALFIT_SERVER_PORT, TACTICALFIT_LOG_LEVEL,
//	TACTICALFIT_STORAGE_DRIVER, TACTICALFIT_SQLITE_DIR,
//	TACTICALFIT_DB_HOST, TACTICALFIT_DB_PORT, TACTICALFIT_DB_NAME,
//	TACTICALFIT_DB_USER, TACTICALFIT_DB_PASSWORD, TACTICALFIT_DB_SSLMODE,
//	TACTICALFIT_REDIS_ADDR, TACTICALFIT_REDIS_PASSWORD, TACTICALFIT_TIMEZONE
//
// An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TACTICALFIT_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("TACTICALFIT_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("TACTICALFIT_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("TACTICALFIT_STORAGE_DRIVER"); v != "" {
		cfg.Storage.Driver = v
	}
	if v := os.Getenv("TACTICALFIT_SQLITE_DIR"); v != "" {
		cfg.Storage.SQLiteDir = v
	}
	if v := os.Getenv("TACTICALFIT_DB_HOST"); v != "" {
		cfg.Storage.Postgres.Host = v
	}
	if v := os.Getenv("TACTICALFIT_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Storage.Postgres.Port = port
		}
	}
	if v := os.Getenv("TACTICALFIT_DB_NAME"); v != "" {
		cfg.Storage.Postgres.Name = v
	}
	if v := os.Getenv("TACTICALFIT_DB_USER"); v != "" {
		cfg.Storage.Postgres.User = v
	}
	if v := os.Getenv("TACTICALFIT_DB_PASSWORD"); v != "" {
		cfg.Storage.Postgres.Password = v
	}
	if v := os.Getenv("TACTICALFIT_DB_SSLMODE"); v != "" {
		cfg.Storage.Postgres.SSLMode = v
	}
	if v := os.Getenv("TACTICALFIT_REDIS_ADDR"); v != "" {
		cfg.Storage.Redis.Addr = v
	}
	if v := os.Getenv("TACTICALFIT_REDIS_PASSWORD"); v != "" {
		cfg.Storage.Redis.Password = v
	}
	if v := os.Getenv("TACTICALFIT_TIMEZONE"); v != "" {
		cfg.Program.Timezone = v
	}
}

func (c *Config) expandPaths() error {
	dir := c.Storage.SQLiteDir
	if dir != "~" && !strings.HasPrefix(dir, "~/") {
		return nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolving home directory: %w", err)
	}
	c.Storage.SQLiteDir = filepath.Join(home, strings.TrimPrefix(dir, "~"))
	return nil
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format %q must be text or json", c.Log.Format)
	}
	switch c.Storage.Driver {
	case "sqlite":
		if c.Storage.SQLiteDir == "" {
			return fmt.Errorf("storage.sqlite_dir is required")
		}
	case "postgres":
		pg := c.Storage.Postgres
		if pg.Host == "" {
			return fmt.Errorf("storage.postgres.host is required")
		}
		if pg.Port == 0 {
			return fmt.Errorf("storage.postgres.port is required")
		}
		if pg.Name == "" {
			return fmt.Errorf("storage.postgres.name is required")
		}
		if pg.User == "" {
			return fmt.Errorf("storage.postgres.user is required")
		}
	case "redis":
		if c.Storage.Redis.Addr == "" {
			return fmt.Errorf("storage.redis.addr is required")
		}
	case "memory":
	default:
		return fmt.Errorf("storage.driver %q is not one of sqlite, postgres, redis, memory", c.Storage.Driver)
	}
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
	}
	if _, err := c.Program.Location(); err != nil {
		return fmt.Errorf("program.timezone: %w", err)
	}
	return nil
}
