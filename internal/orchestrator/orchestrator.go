// Package orchestrator runs the MCP server installation workflow: system
// validation, rollback snapshot, sequential installs, presence validation
// and configuration persistence, reporting progress and lifecycle events
// along the way.
//
// An Orchestrator is single-use per configuration path at a time: callers
// must not run two orchestrators against the same configuration file
// concurrently.
package orchestrator

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/druarnfield/mcp11/internal/events"
	"github.com/druarnfield/mcp11/internal/exec"
	"github.com/druarnfield/mcp11/internal/logging"
	"github.com/druarnfield/mcp11/internal/platform"
	"github.com/druarnfield/mcp11/internal/registry"
	"github.com/druarnfield/mcp11/internal/rollback"
	"github.com/druarnfield/mcp11/internal/serverconfig"
	"github.com/google/uuid"
)

const (
	DefaultTimeout       = 5 * time.Minute
	DefaultRetryAttempts = 3
)

// Settings are the parameters of an installation run.
type Settings struct {
	// Entries are installed in order. Nil means every required registry entry.
	Entries []registry.Entry

	ConfigPath string
	BackupPath string
	LogLevel   logging.Level

	// Timeout bounds every package manager command.
	Timeout time.Duration

	// RetryAttempts is accepted but not applied: a failed install is
	// reported once and never retried.
	RetryAttempts int

	// PackageManager is the executable used for install, list and uninstall.
	PackageManager string
}

// Dependencies are the collaborators injected into an Orchestrator.
type Dependencies struct {
	Registry *registry.Registry

	// Exec runs package manager commands. Nil means the real system.
	Exec exec.Runner

	// System checks prerequisites. Nil means a platform.Checker on Exec.
	System platform.SystemChecker

	Logger *slog.Logger

	// Bus receives lifecycle events. A new bus is created when nil.
	Bus *events.Bus

	// Out receives the user-facing per-server lines. Nil discards them.
	Out io.Writer
}

// Result aggregates the outcome of one Install call.
type Result struct {
	RunID            string         `json:"runId"`
	Success          bool           `json:"success"`
	InstalledServers []string       `json:"installedServers"`
	FailedServers    []string       `json:"failedServers"`
	Errors           []InstallError `json:"errors"`
	Duration         time.Duration  `json:"duration"`
}

// StartPayload is the data of a start event.
type StartPayload struct {
	RunID   string
	Servers int
}

// ProgressPayload is the data of a progress event.
type ProgressPayload struct {
	RunID    string
	Stage    string
	Fraction float64
	Message  string
}

// FailurePayload is the data of the error event emitted when a run aborts.
type FailurePayload struct {
	RunID string
	Error InstallError
}

// RollbackPayload is the data of a rollback event.
type RollbackPayload struct {
	Message  string
	Packages []string
}

// Orchestrator executes installation runs and rolls them back.
type Orchestrator struct {
	registry *registry.Registry
	exec     exec.Runner
	system   platform.SystemChecker
	logger   *slog.Logger
	bus      *events.Bus
	out      io.Writer
	settings Settings
	store    *rollback.Store
	now      func() time.Time
}

// New creates an Orchestrator. Zero-valued settings fall back to the
// required registry entries, a 5 minute timeout, npm and minimal output.
// Nil collaborators fall back to the real system.
func New(deps Dependencies, settings Settings) *Orchestrator {
	if settings.Entries == nil && deps.Registry != nil {
		settings.Entries = deps.Registry.Required()
	}
	if settings.Timeout <= 0 {
		settings.Timeout = DefaultTimeout
	}
	if settings.PackageManager == "" {
		settings.PackageManager = platform.DefaultPackageManager
	}
	if settings.LogLevel == "" {
		settings.LogLevel = logging.LevelMinimal
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.New(logging.NopHandler{})
	}
	bus := deps.Bus
	if bus == nil {
		bus = events.NewBus(logger)
	}
	out := deps.Out
	if out == nil {
		out = io.Discard
	}
	runner := deps.Exec
	if runner == nil {
		runner = &exec.DefaultRunner{}
	}
	system := deps.System
	if system == nil {
		system = platform.NewChecker(runner, settings.PackageManager, "")
	}
	reg := deps.Registry
	if reg == nil {
		reg = registry.New(settings.Entries...)
	}

	return &Orchestrator{
		registry: reg,
		exec:     runner,
		system:   system,
		logger:   logger,
		bus:      bus,
		out:      out,
		settings: settings,
		store:    rollback.NewStore(settings.ConfigPath, settings.BackupPath),
		now:      time.Now,
	}
}

// On registers an event observer. Observer panics are logged and never
// reach the installation flow.
func (o *Orchestrator) On(h events.Handler) {
	o.bus.Subscribe(h)
}

// SetOutput replaces the writer for user-facing lines, for callers that
// silence output while a full-screen view owns the terminal.
func (o *Orchestrator) SetOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	o.out = w
}

// Settings returns the effective run settings.
func (o *Orchestrator) Settings() Settings {
	return o.settings
}

// Plan returns the entries an Install call would process, in order.
func (o *Orchestrator) Plan() []registry.Entry {
	out := make([]registry.Entry, len(o.settings.Entries))
	copy(out, o.settings.Entries)
	return out
}

// RollbackPoints returns the points recorded so far, oldest first.
func (o *Orchestrator) RollbackPoints() []rollback.Point {
	return o.store.Points()
}

// Install runs the five phases in order and always returns a populated
// Result. Per-entry install and validation failures are accumulated and
// processing continues; validation, snapshot and persist failures end the
// run with a single "system" INSTALLATION_FAILED error. Success is true
// only when no error of any kind was recorded.
func (o *Orchestrator) Install(ctx context.Context, progress ProgressFunc) *Result {
	start := o.now()
	result := &Result{
		RunID:            uuid.NewString(),
		InstalledServers: []string{},
		FailedServers:    []string{},
		Errors:           []InstallError{},
	}
	run := &runState{result: result, progress: progress}

	logger := o.logger.With(slog.String("run_id", result.RunID))
	logger.Info("installation started",
		slog.Int("servers", len(o.settings.Entries)),
		slog.Duration("timeout", o.settings.Timeout),
		slog.Int("retry_attempts", o.settings.RetryAttempts),
	)
	o.bus.Emit(events.TypeStart, StartPayload{RunID: result.RunID, Servers: len(o.settings.Entries)})

	if err := o.runPhases(ctx, run, logger); err != nil {
		installErr := systemError(err)
		result.Errors = append(result.Errors, installErr)
		result.Success = false
		result.Duration = o.now().Sub(start)
		logger.Error("installation aborted", slog.String("error", err.Error()))
		o.bus.Emit(events.TypeError, FailurePayload{RunID: result.RunID, Error: installErr})
		return result
	}

	result.Success = len(result.Errors) == 0
	result.Duration = o.now().Sub(start)

	logger.Info("installation finished",
		slog.Bool("success", result.Success),
		slog.Int("installed", len(result.InstalledServers)),
		slog.Int("failed", len(result.FailedServers)),
		slog.Int("errors", len(result.Errors)),
		slog.Duration("elapsed", result.Duration),
	)
	if result.Success {
		o.bus.Emit(events.TypeSuccess, *result)
	} else {
		o.bus.Emit(events.TypeError, *result)
	}
	return result
}

type runState struct {
	result   *Result
	progress ProgressFunc
}

func (o *Orchestrator) runPhases(ctx context.Context, run *runState, logger *slog.Logger) error {
	if err := o.validateSystem(ctx, run, logger); err != nil {
		return err
	}
	if err := o.createRollbackPoint("pre-installation", logger); err != nil {
		return err
	}
	o.installServers(ctx, run, logger)
	o.validateInstallations(ctx, run, logger)
	if err := o.updateConfiguration(run, logger); err != nil {
		return err
	}
	o.report(run, StageComplete, fracDone, "")
	return nil
}

// validateSystem is phase 1.
func (o *Orchestrator) validateSystem(ctx context.Context, run *runState, logger *slog.Logger) error {
	o.report(run, PhaseValidateSystem.String(), fracSystemStart, "Validating system requirements...")

	if err := o.registry.Validate(); err != nil {
		return fmt.Errorf("registry validation failed: %w", err)
	}
	if err := registry.ValidateEntries(o.settings.Entries); err != nil {
		return fmt.Errorf("registry validation failed: %w", err)
	}

	if c := o.system.CheckRuntime(ctx); !c.OK {
		return fmt.Errorf("runtime validation failed: %s", c.Message)
	}
	if c := o.system.CheckPackageManager(ctx); !c.OK {
		return fmt.Errorf("%s validation failed: %s", o.settings.PackageManager, c.Message)
	}

	info := o.system.Info(ctx)
	logger.Info("platform",
		slog.String("os", info.OS),
		slog.String("arch", info.Arch),
		slog.String("runtime", info.RuntimeVersion),
		slog.String("package_manager", info.PackageManagerVersion),
	)
	if o.settings.LogLevel == logging.LevelVerbose {
		fmt.Fprintf(o.out, "Platform: %s %s\n", info.OS, info.Arch)
		fmt.Fprintf(o.out, "Runtime: %s\n", info.RuntimeVersion)
		fmt.Fprintf(o.out, "%s: %s\n", o.settings.PackageManager, info.PackageManagerVersion)
	}

	o.report(run, PhaseValidateSystem.String(), fracSystemDone, "System validation complete")
	return nil
}

// createRollbackPoint is phase 2.
func (o *Orchestrator) createRollbackPoint(action string, logger *slog.Logger) error {
	p, err := o.store.CreatePoint(action)
	if err != nil {
		return fmt.Errorf("creating rollback point: %w", err)
	}
	logger.Info("rollback point created",
		slog.String("action", action),
		slog.String("config_backup", p.ConfigBackup),
	)
	return nil
}

// installServers is phase 3. Entries are installed strictly one at a time.
func (o *Orchestrator) installServers(ctx context.Context, run *runState, logger *slog.Logger) {
	entries := o.settings.Entries
	mode := exec.ModeCapture
	if o.settings.LogLevel == logging.LevelVerbose {
		mode = exec.ModeInherit
	}
	opts := exec.Options{Mode: mode, Timeout: o.settings.Timeout}

	for i, entry := range entries {
		o.report(run, PhaseInstall.String(), installFraction(i, len(entries)), fmt.Sprintf("Installing %s...", entry.Name))

		started := o.now()
		_, err := o.exec.Run(ctx, opts, o.settings.PackageManager, "install", "-g", entry.Spec())
		elapsed := o.now().Sub(started)

		if err != nil {
			installErr := InstallError{
				Server:      entry.Package,
				Message:     describeInstallFailure(o.settings.PackageManager, entry.Package, err),
				Code:        CodeInstallFailed,
				Recoverable: true,
			}
			run.result.Errors = append(run.result.Errors, installErr)
			run.result.FailedServers = append(run.result.FailedServers, entry.Package)
			logger.Error("install failed",
				slog.String("package", entry.Package),
				slog.Duration("elapsed", elapsed),
				slog.String("error", err.Error()),
			)
			o.say("✗ %s installation failed: %s\n", entry.Name, installErr.Message)
			continue
		}

		run.result.InstalledServers = append(run.result.InstalledServers, entry.Package)
		o.store.RecordInstall(entry.Package)
		logger.Info("install completed",
			slog.String("package", entry.Package),
			slog.String("version", entry.Version),
			slog.Duration("elapsed", elapsed),
		)
		o.say("✓ %s installed successfully\n", entry.Name)
	}
}

// validateInstallations is phase 4. A package that fails validation stays
// in InstalledServers.
func (o *Orchestrator) validateInstallations(ctx context.Context, run *runState, logger *slog.Logger) {
	o.report(run, PhaseValidateInstalls.String(), fracValidateStart, "Validating installations...")

	opts := exec.Options{Mode: exec.ModeCapture, Timeout: o.settings.Timeout}
	for _, pkg := range run.result.InstalledServers {
		_, err := o.exec.Run(ctx, opts, o.settings.PackageManager, "list", "-g", pkg)
		if err == nil {
			logger.Debug("package validated", slog.String("package", pkg))
			continue
		}

		installErr := InstallError{Server: pkg, Recoverable: true}
		if isExitError(err) {
			installErr.Code = CodeValidationFailed
			installErr.Message = "Package not found in global installations"
		} else {
			installErr.Code = CodeValidationError
			installErr.Message = fmt.Sprintf("Failed to check package installation: %v", err)
		}
		run.result.Errors = append(run.result.Errors, installErr)
		logger.Warn("validation failed",
			slog.String("package", pkg),
			slog.String("code", string(installErr.Code)),
			slog.String("error", err.Error()),
		)
	}
}

// updateConfiguration is phase 5. The configuration file is replaced, not
// merged.
func (o *Orchestrator) updateConfiguration(run *runState, logger *slog.Logger) error {
	o.report(run, PhasePersist.String(), fracPersistStart, "Updating configuration...")

	now := o.now()
	f := serverconfig.New(now)
	for _, pkg := range run.result.InstalledServers {
		entry, ok := o.entryFor(pkg)
		if !ok {
			continue
		}
		f.Add(entry.Name, entry.Package, entry.Version, now)
	}

	if err := serverconfig.Save(o.settings.ConfigPath, f); err != nil {
		return fmt.Errorf("writing configuration: %w", err)
	}
	logger.Info("configuration written",
		slog.String("path", o.settings.ConfigPath),
		slog.Int("servers", len(f.Servers)),
	)
	return nil
}

func (o *Orchestrator) entryFor(pkg string) (registry.Entry, bool) {
	for _, e := range o.settings.Entries {
		if e.Package == pkg {
			return e, true
		}
	}
	return o.registry.ByPackage(pkg)
}

func (o *Orchestrator) report(run *runState, stage string, fraction float64, message string) {
	if run.progress != nil {
		run.progress(stage, fraction, message)
	}
	o.bus.Emit(events.TypeProgress, ProgressPayload{
		RunID:    run.result.RunID,
		Stage:    stage,
		Fraction: fraction,
		Message:  message,
	})
	if o.settings.LogLevel == logging.LevelVerbose {
		label := message
		if label == "" {
			label = stage
		}
		fmt.Fprintf(o.out, "[%d%%] %s\n", int(math.Round(fraction*100)), label)
	}
}

// say writes a user-facing line unless output is silenced.
func (o *Orchestrator) say(format string, args ...any) {
	if o.settings.LogLevel == logging.LevelSilent {
		return
	}
	fmt.Fprintf(o.out, format, args...)
}
