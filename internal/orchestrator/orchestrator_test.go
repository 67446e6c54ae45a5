package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/druarnfield/mcp11/internal/events"
	"github.com/druarnfield/mcp11/internal/exec"
	"github.com/druarnfield/mcp11/internal/logging"
	"github.com/druarnfield/mcp11/internal/platform"
	"github.com/druarnfield/mcp11/internal/platform/mock"
	"github.com/druarnfield/mcp11/internal/registry"
	"github.com/druarnfield/mcp11/internal/rollback"
	"github.com/druarnfield/mcp11/internal/serverconfig"
)

// --- helpers ---

func nopLogger() *slog.Logger {
	return slog.New(logging.NopHandler{})
}

var (
	entryA = registry.Entry{Name: "A", Package: "pkg-a", Version: "1.0.0"}
	entryB = registry.Entry{Name: "B", Package: "pkg-b", Version: "2.0.0"}
	entryC = registry.Entry{Name: "C", Package: "pkg-c", Version: "3.0.0"}
)

type fixture struct {
	orch       *Orchestrator
	runner     *exec.MockRunner
	system     *mock.SystemChecker
	configPath string
	backupPath string
	out        *bytes.Buffer
}

func newFixture(t *testing.T, entries ...registry.Entry) *fixture {
	t.Helper()
	dir := t.TempDir()
	f := &fixture{
		runner:     &exec.MockRunner{Results: map[string]exec.Result{}},
		system:     mock.NewSystemChecker(),
		configPath: filepath.Join(dir, "mcp-config.json"),
		backupPath: filepath.Join(dir, "backups"),
		out:        &bytes.Buffer{},
	}
	f.orch = New(Dependencies{
		Registry: registry.New(entries...),
		Exec:     f.runner,
		System:   f.system,
		Logger:   nopLogger(),
		Out:      f.out,
	}, Settings{
		ConfigPath: f.configPath,
		BackupPath: f.backupPath,
		Timeout:    time.Second,
	})
	return f
}

// succeed scripts install and list success for every entry.
func (f *fixture) succeed(entries ...registry.Entry) {
	for _, e := range entries {
		f.runner.Results["npm install -g "+e.Spec()] = exec.Result{}
		f.runner.Results["npm list -g "+e.Package] = exec.Result{}
		f.runner.Results["npm uninstall -g "+e.Package] = exec.Result{}
	}
}

func (f *fixture) failInstall(e registry.Entry) {
	f.runner.Results["npm install -g "+e.Spec()] = exec.Result{Stderr: "E404 not found", ExitCode: 1}
}

func (f *fixture) loadConfig(t *testing.T) *serverconfig.File {
	t.Helper()
	cfg, err := serverconfig.Load(f.configPath)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	return cfg
}

// --- end-to-end scenarios ---

func TestInstall_SingleEntrySuccess(t *testing.T) {
	f := newFixture(t, entryA)
	f.succeed(entryA)

	result := f.orch.Install(context.Background(), nil)

	if !result.Success {
		t.Fatalf("Success = false, errors = %v", result.Errors)
	}
	if len(result.InstalledServers) != 1 || result.InstalledServers[0] != "pkg-a" {
		t.Errorf("InstalledServers = %v", result.InstalledServers)
	}
	if len(result.FailedServers) != 0 || len(result.Errors) != 0 {
		t.Errorf("FailedServers = %v, Errors = %v", result.FailedServers, result.Errors)
	}
	if result.RunID == "" {
		t.Error("RunID not set")
	}

	cfg := f.loadConfig(t)
	srv, ok := cfg.Servers["A"]
	if !ok {
		t.Fatalf("config servers = %v", cfg.Servers)
	}
	if srv.Package != "pkg-a" || srv.Version != "1.0.0" || !srv.Enabled {
		t.Errorf("server = %+v", srv)
	}
	if srv.InstalledAt.IsZero() {
		t.Error("installedAt not set")
	}
	if cfg.Version != serverconfig.FormatVersion {
		t.Errorf("config version = %q", cfg.Version)
	}
}

func TestInstall_PartialFailure(t *testing.T) {
	f := newFixture(t, entryA, entryB)
	f.succeed(entryA, entryB)
	f.failInstall(entryB)

	result := f.orch.Install(context.Background(), nil)

	if result.Success {
		t.Error("Success = true, want false")
	}
	if len(result.InstalledServers) != 1 || result.InstalledServers[0] != "pkg-a" {
		t.Errorf("InstalledServers = %v, want [pkg-a]", result.InstalledServers)
	}
	if len(result.FailedServers) != 1 || result.FailedServers[0] != "pkg-b" {
		t.Errorf("FailedServers = %v, want [pkg-b]", result.FailedServers)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("Errors = %v, want 1", result.Errors)
	}
	e := result.Errors[0]
	if e.Server != "pkg-b" || e.Code != CodeInstallFailed || !e.Recoverable {
		t.Errorf("error = %+v", e)
	}
	if !strings.Contains(e.Message, "code 1") || !strings.Contains(e.Message, "E404") {
		t.Errorf("message = %q", e.Message)
	}

	cfg := f.loadConfig(t)
	if _, ok := cfg.Servers["B"]; ok {
		t.Error("failed server persisted")
	}
	if _, ok := cfg.Servers["A"]; !ok {
		t.Error("installed server not persisted")
	}
}

func TestInstall_ValidationFailureKeepsInstalled(t *testing.T) {
	f := newFixture(t, entryA, entryB)
	f.succeed(entryA, entryB)
	f.runner.Results["npm list -g pkg-b"] = exec.Result{ExitCode: 1}

	result := f.orch.Install(context.Background(), nil)

	if result.Success {
		t.Error("Success = true despite validation failure")
	}
	if len(result.InstalledServers) != 2 {
		t.Errorf("InstalledServers = %v, want both", result.InstalledServers)
	}
	if len(result.FailedServers) != 0 {
		t.Errorf("FailedServers = %v, want none", result.FailedServers)
	}
	if len(result.Errors) != 1 || result.Errors[0].Code != CodeValidationFailed || result.Errors[0].Server != "pkg-b" {
		t.Errorf("Errors = %v", result.Errors)
	}
}

func TestInstall_ValidationError(t *testing.T) {
	f := newFixture(t, entryA)
	f.succeed(entryA)
	delete(f.runner.Results, "npm list -g pkg-a")
	f.runner.Errors = map[string]error{"npm list -g pkg-a": errors.New("permission denied")}

	result := f.orch.Install(context.Background(), nil)

	if len(result.Errors) != 1 || result.Errors[0].Code != CodeValidationError {
		t.Fatalf("Errors = %v, want one VALIDATION_ERROR", result.Errors)
	}
	if !strings.Contains(result.Errors[0].Message, "permission denied") {
		t.Errorf("message = %q", result.Errors[0].Message)
	}
}

func TestInstall_SpawnFailure(t *testing.T) {
	f := newFixture(t, entryA)
	f.runner.Errors = map[string]error{"npm install -g pkg-a@1.0.0": errors.New("executable file not found")}

	result := f.orch.Install(context.Background(), nil)

	if len(result.Errors) != 1 || result.Errors[0].Code != CodeInstallFailed {
		t.Fatalf("Errors = %v", result.Errors)
	}
	if !strings.Contains(result.Errors[0].Message, "spawn failed") {
		t.Errorf("message = %q", result.Errors[0].Message)
	}
}

func TestInstall_AllTimeouts(t *testing.T) {
	entries := []registry.Entry{entryA, entryB, entryC}
	f := newFixture(t, entries...)
	f.runner.Delay = time.Hour

	timeout := 30 * time.Millisecond
	f.orch.settings.Timeout = timeout

	start := time.Now()
	result := f.orch.Install(context.Background(), nil)
	elapsed := time.Since(start)

	if elapsed > timeout*time.Duration(len(entries))+2*time.Second {
		t.Errorf("run took %s", elapsed)
	}
	if len(result.FailedServers) != 3 {
		t.Errorf("FailedServers = %v, want all three", result.FailedServers)
	}
	if len(result.InstalledServers) != 0 {
		t.Errorf("InstalledServers = %v", result.InstalledServers)
	}
	for _, e := range result.Errors {
		if e.Code != CodeInstallFailed {
			t.Errorf("code = %s, want INSTALL_FAILED", e.Code)
		}
		if !strings.Contains(strings.ToLower(e.Message), "timeout") {
			t.Errorf("message = %q, want timeout", e.Message)
		}
	}
	if result.Success {
		t.Error("Success = true")
	}
}

func TestInstall_CancelledContext(t *testing.T) {
	f := newFixture(t, entryA, entryB)
	f.runner.Delay = time.Hour
	f.orch.settings.Timeout = time.Minute

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	result := f.orch.Install(ctx, nil)

	if len(result.FailedServers) != 2 {
		t.Fatalf("FailedServers = %v, want both", result.FailedServers)
	}
	if got := result.Errors[0].Message; got != "Installation cancelled for pkg-a" {
		t.Errorf("message = %q", got)
	}
	if result.Success {
		t.Error("Success = true after cancellation")
	}
}

func TestInstall_SequentialOrder(t *testing.T) {
	f := newFixture(t, entryA, entryB, entryC)
	f.succeed(entryA, entryB, entryC)

	f.orch.Install(context.Background(), nil)

	want := []string{
		"npm install -g pkg-a@1.0.0",
		"npm install -g pkg-b@2.0.0",
		"npm install -g pkg-c@3.0.0",
		"npm list -g pkg-a",
		"npm list -g pkg-b",
		"npm list -g pkg-c",
	}
	if len(f.runner.Calls) != len(want) {
		t.Fatalf("calls = %v", f.runner.Calls)
	}
	for i := range want {
		if f.runner.Calls[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, f.runner.Calls[i], want[i])
		}
	}
}

func TestInstall_SuccessIffNoErrors(t *testing.T) {
	entries := []registry.Entry{entryA, entryB, entryC}
	// Every combination of install and validation failures.
	for mask := 0; mask < 1<<(2*len(entries)); mask++ {
		f := newFixture(t, entries...)
		f.succeed(entries...)
		for i, e := range entries {
			if mask&(1<<i) != 0 {
				f.failInstall(e)
			}
			if mask&(1<<(i+len(entries))) != 0 {
				f.runner.Results["npm list -g "+e.Package] = exec.Result{ExitCode: 1}
			}
		}

		result := f.orch.Install(context.Background(), nil)

		if result.Success != (len(result.Errors) == 0) {
			t.Errorf("mask %b: Success = %v with %d errors", mask, result.Success, len(result.Errors))
		}
		if len(result.InstalledServers)+len(result.FailedServers) != len(entries) {
			t.Errorf("mask %b: installed %v failed %v", mask, result.InstalledServers, result.FailedServers)
		}
	}
}

// --- pre-flight and persist failures ---

func TestInstall_RuntimeCheckFails(t *testing.T) {
	f := newFixture(t, entryA)
	f.succeed(entryA)
	f.system.Runtime = platform.Check{Message: "node version v16.0.0 is below minimum required version 18.0.0"}

	result := f.orch.Install(context.Background(), nil)

	if result.Success {
		t.Error("Success = true")
	}
	if len(result.Errors) != 1 {
		t.Fatalf("Errors = %v", result.Errors)
	}
	e := result.Errors[0]
	if e.Server != SystemServer || e.Code != CodeInstallationFailed {
		t.Errorf("error = %+v", e)
	}
	if !strings.Contains(e.Message, "below minimum") {
		t.Errorf("message = %q", e.Message)
	}
	if len(f.runner.Calls) != 0 {
		t.Errorf("commands ran after pre-flight failure: %v", f.runner.Calls)
	}
	if len(f.orch.RollbackPoints()) != 0 {
		t.Error("rollback point created after pre-flight failure")
	}
	if result.Duration < 0 {
		t.Errorf("Duration = %s", result.Duration)
	}
}

func TestInstall_PackageManagerMissing(t *testing.T) {
	f := newFixture(t, entryA)
	f.system.PackageManager = platform.Check{Message: "npm is not available"}

	result := f.orch.Install(context.Background(), nil)

	if len(result.Errors) != 1 || result.Errors[0].Server != SystemServer {
		t.Fatalf("Errors = %v", result.Errors)
	}
	if !strings.Contains(result.Errors[0].Message, "npm validation failed") {
		t.Errorf("message = %q", result.Errors[0].Message)
	}
}

func TestInstall_InvalidRegistry(t *testing.T) {
	bad := registry.Entry{Name: "Bad", Package: "pkg-bad", Version: "1.0 beta"}
	f := newFixture(t, entryA, bad)

	result := f.orch.Install(context.Background(), nil)

	if len(result.Errors) != 1 || result.Errors[0].Code != CodeInstallationFailed {
		t.Fatalf("Errors = %v", result.Errors)
	}
	if !strings.Contains(result.Errors[0].Message, "invalid version format") {
		t.Errorf("message = %q", result.Errors[0].Message)
	}
}

// blockingRunner replaces the configuration file with a directory once an
// install succeeds, so the persist phase cannot write it.
type blockingRunner struct {
	*exec.MockRunner
	configPath string
}

func (b *blockingRunner) Run(ctx context.Context, opts exec.Options, name string, args ...string) (exec.Result, error) {
	res, err := b.MockRunner.Run(ctx, opts, name, args...)
	if err == nil && len(args) > 0 && args[0] == "install" {
		os.Remove(b.configPath)
		os.MkdirAll(b.configPath, 0755)
	}
	return res, err
}

func TestInstall_PersistFailure(t *testing.T) {
	f := newFixture(t, entryA)
	f.succeed(entryA)
	f.orch.exec = &blockingRunner{MockRunner: f.runner, configPath: f.configPath}

	result := f.orch.Install(context.Background(), nil)

	if result.Success {
		t.Error("Success = true despite persist failure")
	}
	if len(result.InstalledServers) != 1 {
		t.Errorf("InstalledServers = %v", result.InstalledServers)
	}
	last := result.Errors[len(result.Errors)-1]
	if last.Server != SystemServer || last.Code != CodeInstallationFailed {
		t.Errorf("last error = %+v", last)
	}
	if !strings.Contains(last.Message, "writing configuration") {
		t.Errorf("message = %q", last.Message)
	}
}

// --- progress and events ---

func TestInstall_Progress(t *testing.T) {
	f := newFixture(t, entryA, entryB)
	f.succeed(entryA, entryB)

	type report struct {
		stage    string
		fraction float64
		message  string
	}
	var reports []report
	f.orch.Install(context.Background(), func(stage string, fraction float64, message string) {
		reports = append(reports, report{stage, fraction, message})
	})

	if len(reports) == 0 {
		t.Fatal("no progress reported")
	}
	if reports[0].fraction != 0.1 {
		t.Errorf("first fraction = %v, want 0.1", reports[0].fraction)
	}
	last := reports[len(reports)-1]
	if last.fraction != 1.0 || last.stage != StageComplete {
		t.Errorf("last report = %+v", last)
	}
	for i := 1; i < len(reports); i++ {
		if reports[i].fraction < reports[i-1].fraction {
			t.Errorf("progress went backwards: %+v then %+v", reports[i-1], reports[i])
		}
	}

	var installFractions []float64
	for _, r := range reports {
		if r.stage == PhaseInstall.String() {
			installFractions = append(installFractions, r.fraction)
		}
	}
	if len(installFractions) != 2 || installFractions[0] != 0.2 || installFractions[1] != 0.5 {
		t.Errorf("install fractions = %v, want [0.2 0.5]", installFractions)
	}
}

func TestInstall_Events(t *testing.T) {
	f := newFixture(t, entryA)
	f.succeed(entryA)

	var types []events.Type
	f.orch.On(func(events.Event) { panic("bad observer") })
	f.orch.On(func(ev events.Event) { types = append(types, ev.Type) })

	result := f.orch.Install(context.Background(), nil)

	if !result.Success {
		t.Fatalf("observer panic broke the run: %v", result.Errors)
	}
	if len(types) < 3 {
		t.Fatalf("events = %v", types)
	}
	if types[0] != events.TypeStart {
		t.Errorf("first event = %s", types[0])
	}
	if types[len(types)-1] != events.TypeSuccess {
		t.Errorf("last event = %s", types[len(types)-1])
	}
	for _, typ := range types[1 : len(types)-1] {
		if typ != events.TypeProgress {
			t.Errorf("unexpected mid-run event %s", typ)
		}
	}
}

func TestInstall_AbortEmitsError(t *testing.T) {
	f := newFixture(t, entryA)
	f.system.Runtime = platform.Check{Message: "too old"}

	var failure *FailurePayload
	f.orch.On(func(ev events.Event) {
		if p, ok := ev.Data.(FailurePayload); ok && ev.Type == events.TypeError {
			failure = &p
		}
	})

	f.orch.Install(context.Background(), nil)

	if failure == nil {
		t.Fatal("no error event")
	}
	if failure.Error.Server != SystemServer {
		t.Errorf("payload = %+v", failure)
	}
}

// --- output levels ---

func TestInstall_VerboseInheritsOutput(t *testing.T) {
	f := newFixture(t, entryA)
	f.succeed(entryA)
	f.orch.settings.LogLevel = logging.LevelVerbose

	f.orch.Install(context.Background(), nil)

	if f.runner.Modes[0] != exec.ModeInherit {
		t.Errorf("install mode = %v, want inherit", f.runner.Modes[0])
	}
	if f.runner.Modes[1] != exec.ModeCapture {
		t.Errorf("list mode = %v, want capture", f.runner.Modes[1])
	}
	out := f.out.String()
	if !strings.Contains(out, "Platform: linux amd64") || !strings.Contains(out, "[100%]") {
		t.Errorf("verbose output = %q", out)
	}
}

func TestInstall_MinimalOutput(t *testing.T) {
	f := newFixture(t, entryA, entryB)
	f.succeed(entryA, entryB)
	f.failInstall(entryB)

	f.orch.Install(context.Background(), nil)

	out := f.out.String()
	if !strings.Contains(out, "✓ A installed successfully") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, "✗ B installation failed") {
		t.Errorf("output = %q", out)
	}
	if strings.Contains(out, "[20%]") {
		t.Error("minimal output should not include progress percentages")
	}
	if f.runner.Modes[0] != exec.ModeCapture {
		t.Error("minimal install should capture output")
	}
}

func TestInstall_SilentOutput(t *testing.T) {
	f := newFixture(t, entryA)
	f.succeed(entryA)
	f.orch.settings.LogLevel = logging.LevelSilent

	f.orch.Install(context.Background(), nil)

	if f.out.Len() != 0 {
		t.Errorf("silent run wrote %q", f.out.String())
	}
}

// --- rollback ---

func TestRollback_NoPoints(t *testing.T) {
	f := newFixture(t, entryA)

	err := f.orch.Rollback(context.Background())
	if !errors.Is(err, rollback.ErrNoRollbackPoints) {
		t.Errorf("Rollback = %v, want ErrNoRollbackPoints", err)
	}
	if !strings.Contains(err.Error(), "no rollback points available") {
		t.Errorf("message = %q", err.Error())
	}
}

func TestRollback_RestoresAndUninstallsInReverse(t *testing.T) {
	f := newFixture(t, entryA, entryB, entryC)
	f.succeed(entryA, entryB, entryC)
	f.failInstall(entryB)
	if err := os.WriteFile(f.configPath, []byte(`{"servers":{},"version":"1.0.0","lastUpdated":1}`), 0644); err != nil {
		t.Fatal(err)
	}

	f.orch.Install(context.Background(), nil)

	points := f.orch.RollbackPoints()
	if len(points) != 1 {
		t.Fatalf("points = %d", len(points))
	}
	if got := points[0].InstalledPackages; len(got) != 2 || got[0] != "pkg-a" || got[1] != "pkg-c" {
		t.Errorf("point packages = %v, want [pkg-a pkg-c]", got)
	}

	// First uninstall fails; the second must still run.
	f.runner.Results["npm uninstall -g pkg-c"] = exec.Result{ExitCode: 1}
	var rolledBack bool
	f.orch.On(func(ev events.Event) {
		if ev.Type == events.TypeRollback {
			rolledBack = true
		}
	})
	f.runner.Calls = nil

	if err := f.orch.Rollback(context.Background()); err != nil {
		t.Fatalf("Rollback: %v", err)
	}

	if !rolledBack {
		t.Error("rollback event not emitted")
	}
	if len(f.runner.Calls) != 2 || f.runner.Calls[0] != "npm uninstall -g pkg-c" || f.runner.Calls[1] != "npm uninstall -g pkg-a" {
		t.Errorf("calls = %v", f.runner.Calls)
	}
	cfg := f.loadConfig(t)
	if len(cfg.Servers) != 0 || cfg.LastUpdated != 1 {
		t.Errorf("config not restored: %+v", cfg)
	}
	if !strings.Contains(f.out.String(), "Warning: Failed to uninstall pkg-c during rollback") {
		t.Errorf("output = %q", f.out.String())
	}
}

func TestRollback_WarnsWhenSilent(t *testing.T) {
	f := newFixture(t, entryA)
	f.succeed(entryA)
	f.orch.settings.LogLevel = logging.LevelSilent

	f.orch.Install(context.Background(), nil)
	f.runner.Results["npm uninstall -g pkg-a"] = exec.Result{ExitCode: 1}

	if err := f.orch.Rollback(context.Background()); err != nil {
		t.Fatalf("Rollback: %v", err)
	}
	if !strings.Contains(f.out.String(), "Warning: Failed to uninstall pkg-a during rollback") {
		t.Errorf("silent output should still carry the warning, got %q", f.out.String())
	}
}

func TestRollback_DetachedFromCancelledRun(t *testing.T) {
	f := newFixture(t, entryA, entryB)
	f.succeed(entryA, entryB)
	f.runner.Delays = map[string]time.Duration{"npm install -g " + entryB.Spec(): time.Hour}
	f.orch.settings.Timeout = time.Minute

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)
	result := f.orch.Install(ctx, nil)
	if result.Success {
		t.Fatal("Success = true after cancellation")
	}

	// A cancelled context stops every uninstall before it starts.
	if err := f.orch.Rollback(ctx); err != nil {
		t.Fatalf("Rollback: %v", err)
	}
	if !strings.Contains(f.out.String(), "Failed to uninstall pkg-a") {
		t.Errorf("expected uninstall failure under cancelled context, got %q", f.out.String())
	}

	f.out.Reset()
	f.runner.Calls = nil
	if err := f.orch.Rollback(context.WithoutCancel(ctx)); err != nil {
		t.Fatalf("Rollback: %v", err)
	}
	if strings.Contains(f.out.String(), "Failed to uninstall") {
		t.Errorf("detached rollback failed: %q", f.out.String())
	}
	if got := f.runner.CallCount("npm uninstall -g pkg-a"); got != 1 {
		t.Errorf("uninstall pkg-a ran %d times, want 1", got)
	}
}

func TestNew_DefaultsCollaborators(t *testing.T) {
	orch := New(Dependencies{}, Settings{Entries: []registry.Entry{entryA}})
	if orch.exec == nil {
		t.Error("exec runner not defaulted")
	}
	if _, ok := orch.system.(*platform.Checker); !ok {
		t.Errorf("system = %T, want *platform.Checker", orch.system)
	}
}

// --- plan and status ---

func TestPlan_DefaultsToRequired(t *testing.T) {
	orch := New(Dependencies{
		Registry: registry.Default(),
		Exec:     &exec.MockRunner{},
		System:   mock.NewSystemChecker(),
	}, Settings{})

	plan := orch.Plan()
	if len(plan) != 7 {
		t.Errorf("plan = %d entries, want 7 required", len(plan))
	}
	for _, e := range plan {
		if e.Optional {
			t.Errorf("optional entry %s in default plan", e.Package)
		}
	}
	s := orch.Settings()
	if s.Timeout != DefaultTimeout || s.PackageManager != "npm" || s.LogLevel != logging.LevelMinimal {
		t.Errorf("settings = %+v", s)
	}
}

func TestStatus(t *testing.T) {
	f := newFixture(t, entryA, entryB)
	f.runner.Results["npm list -g pkg-a"] = exec.Result{}
	f.runner.Results["npm list -g pkg-b"] = exec.Result{ExitCode: 1}

	statuses, err := f.orch.Status(context.Background())
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(statuses) != 2 {
		t.Fatalf("statuses = %v", statuses)
	}
	if !statuses[0].Installed || statuses[1].Installed {
		t.Errorf("statuses = %+v", statuses)
	}
}
