package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/druarnfield/mcp11/internal/config"
	"github.com/druarnfield/mcp11/internal/events"
	"github.com/druarnfield/mcp11/internal/exec"
	"github.com/druarnfield/mcp11/internal/logging"
	"github.com/druarnfield/mcp11/internal/orchestrator"
	"github.com/druarnfield/mcp11/internal/platform"
	"github.com/druarnfield/mcp11/internal/registry"
	"github.com/druarnfield/mcp11/internal/tui/components"
)

var styles = components.DefaultStyles()

// loadConfig reads the settings file, falling back to defaults when it
// does not exist, then applies environment overrides and the global flags.
func loadConfig(out io.Writer) (*config.Config, error) {
	path := flagConfig
	if path == "" {
		path = config.ConfigFilePath()
	}

	cfg, err := config.LoadFromFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist) && flagConfig == "":
		cfg = config.Defaults()
	case err != nil:
		return nil, fmt.Errorf("loading config: %w", err)
	default:
		fmt.Fprintf(out, "%s %s\n", styles.Label.Render("Config:"), path)
	}

	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}

	switch {
	case flagVerbose:
		cfg.Install.LogLevel = string(logging.LevelVerbose)
	case flagQuiet:
		cfg.Install.LogLevel = string(logging.LevelSilent)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func loadRegistry(cfg *config.Config) (*registry.Registry, error) {
	if cfg.Paths.Registry == "" {
		return registry.Default(), nil
	}
	reg, err := registry.LoadFromFile(cfg.Paths.Registry)
	if err != nil {
		return nil, fmt.Errorf("loading registry: %w", err)
	}
	return reg, nil
}

func setupLogger(cfg *config.Config) *slog.Logger {
	level, _ := logging.ParseLevel(cfg.Install.LogLevel)
	logger, err := logging.Setup(cfg.LogFilePath(), level)
	if err != nil {
		return slog.New(logging.NopHandler{})
	}
	return logger
}

type app struct {
	cfg      *config.Config
	registry *registry.Registry
	logger   *slog.Logger
	bus      *events.Bus
	runner   exec.Runner
}

func newApp(out io.Writer) (*app, error) {
	cfg, err := loadConfig(out)
	if err != nil {
		return nil, err
	}
	reg, err := loadRegistry(cfg)
	if err != nil {
		return nil, err
	}
	logger := setupLogger(cfg)
	return &app{
		cfg:      cfg,
		registry: reg,
		logger:   logger,
		bus:      events.NewBus(logger),
		runner:   &exec.DefaultRunner{},
	}, nil
}

// newOrchestrator wires an Orchestrator for the given entries. Nil entries
// means every required registry entry.
func (a *app) newOrchestrator(entries []registry.Entry, out io.Writer) *orchestrator.Orchestrator {
	level, _ := logging.ParseLevel(a.cfg.Install.LogLevel)
	pm := a.cfg.Install.PackageManager

	return orchestrator.New(
		orchestrator.Dependencies{
			Registry: a.registry,
			Exec:     a.runner,
			System:   platform.NewChecker(a.runner, pm, a.cfg.Install.MinRuntime),
			Logger:   a.logger,
			Bus:      a.bus,
			Out:      out,
		},
		orchestrator.Settings{
			Entries:        entries,
			ConfigPath:     a.cfg.ServerConfigPath(),
			BackupPath:     a.cfg.BackupDir(),
			LogLevel:       level,
			Timeout:        a.cfg.Install.Timeout.Duration,
			RetryAttempts:  a.cfg.Install.RetryAttempts,
			PackageManager: pm,
		},
	)
}
