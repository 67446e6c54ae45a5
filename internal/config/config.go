package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/druarnfield/mcp11/internal/logging"
	toml "github.com/pelletier/go-toml/v2"
)

type Config struct {
	Install InstallConfig `toml:"install"`
	Paths   PathsConfig   `toml:"paths"`
}

type InstallConfig struct {
	Timeout         Duration `toml:"timeout" env:"MCP11_TIMEOUT"`
	RetryAttempts   int      `toml:"retry_attempts" env:"MCP11_RETRY_ATTEMPTS"`
	LogLevel        string   `toml:"log_level" env:"MCP11_LOG_LEVEL"`
	PackageManager  string   `toml:"package_manager" env:"MCP11_PACKAGE_MANAGER"`
	IncludeOptional bool     `toml:"include_optional" env:"MCP11_INCLUDE_OPTIONAL"`
	MinRuntime      string   `toml:"min_runtime" env:"MCP11_MIN_RUNTIME"`
}

// PathsConfig overrides file locations. Empty values use the defaults
// under ConfigDir.
type PathsConfig struct {
	Config   string `toml:"config" env:"MCP11_CONFIG_PATH"`
	Backups  string `toml:"backups" env:"MCP11_BACKUP_PATH"`
	Registry string `toml:"registry" env:"MCP11_REGISTRY_PATH"`
	Log      string `toml:"log" env:"MCP11_LOG_PATH"`
}

// Duration is a time.Duration written as a string such as "5m" or "90s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func Defaults() *Config {
	return &Config{
		Install: InstallConfig{
			Timeout:        Duration{5 * time.Minute},
			RetryAttempts:  3,
			LogLevel:       string(logging.LevelMinimal),
			PackageManager: "npm",
			MinRuntime:     "18.0.0",
		},
	}
}

func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides settings from MCP11_* environment variables. Unset
// variables leave the current value alone.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parsing environment: %w", err)
	}
	return nil
}

// Validate rejects settings the installer cannot run with.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Install.LogLevel); err != nil {
		return err
	}
	if c.Install.Timeout.Duration <= 0 {
		return fmt.Errorf("install.timeout must be positive, got %s", c.Install.Timeout)
	}
	if c.Install.RetryAttempts < 0 {
		return fmt.Errorf("install.retry_attempts must not be negative, got %d", c.Install.RetryAttempts)
	}
	if c.Install.PackageManager == "" {
		return fmt.Errorf("install.package_manager must be set")
	}
	return nil
}

func (c *Config) ServerConfigPath() string {
	if c.Paths.Config != "" {
		return c.Paths.Config
	}
	return ServerConfigPath()
}

func (c *Config) BackupDir() string {
	if c.Paths.Backups != "" {
		return c.Paths.Backups
	}
	return BackupDir()
}

func (c *Config) LogFilePath() string {
	if c.Paths.Log != "" {
		return c.Paths.Log
	}
	return LogFilePath()
}
