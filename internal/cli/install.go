package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/druarnfield/mcp11/internal/metrics"
	"github.com/druarnfield/mcp11/internal/orchestrator"
	"github.com/druarnfield/mcp11/internal/registry"
	"github.com/druarnfield/mcp11/internal/rollback"
	"github.com/druarnfield/mcp11/internal/tui/progress"
	"github.com/spf13/cobra"
)

type installFlags struct {
	dryRun            bool
	optional          bool
	tui               bool
	rollbackOnFailure bool
	metricsFile       string
}

func newInstallCmd() *cobra.Command {
	var f installFlags
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install the MCP servers",
		Long:  "Validate the system, install every required MCP server globally, check each one and write mcp-config.json.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd.Context(), cmd.OutOrStdout(), f)
		},
	}

	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Show what would be installed without doing it")
	cmd.Flags().BoolVar(&f.optional, "optional", false, "Also install optional servers")
	cmd.Flags().BoolVar(&f.tui, "tui", false, "Show a full-screen progress view")
	cmd.Flags().BoolVar(&f.rollbackOnFailure, "rollback-on-failure", false, "Undo this run when any error is recorded")
	cmd.Flags().StringVar(&f.metricsFile, "metrics-file", "", "Write Prometheus metrics of the run to this file")

	return cmd
}

func runInstall(ctx context.Context, out io.Writer, f installFlags) error {
	a, err := newApp(out)
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	return a.install(ctx, out, f)
}

func (a *app) install(ctx context.Context, out io.Writer, f installFlags) error {
	entries := a.registry.Required()
	if f.optional || a.cfg.Install.IncludeOptional {
		entries = a.registry.All()
	}

	if f.dryRun {
		printPlan(out, entries)
		return nil
	}

	var collector *metrics.Collector
	if f.metricsFile != "" {
		collector = metrics.NewCollector()
		a.bus.Subscribe(collector.Observe)
	}

	o := a.newOrchestrator(entries, out)

	var (
		result    *orchestrator.Result
		cancelled bool
	)
	if f.tui {
		o.SetOutput(io.Discard)
		var err error
		result, cancelled, err = runTUI(ctx, o, len(entries))
		o.SetOutput(out)
		if err != nil {
			return err
		}
		if cancelled {
			printResult(out, result)
		}
	} else {
		fmt.Fprintf(out, "Installing %d MCP servers...\n\n", len(entries))
		result = o.Install(ctx, nil)
		printResult(out, result)
	}
	cancelled = cancelled || ctx.Err() != nil

	if !result.Success && f.rollbackOnFailure {
		fmt.Fprintln(out, styles.Warning.Render("Rolling back..."))
		// Rollback must still reach the package manager after ctrl+c.
		if err := o.Rollback(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, rollback.ErrNoRollbackPoints) {
			a.logger.Error("rollback failed", "error", err)
			fmt.Fprintln(out, styles.Error.Render(fmt.Sprintf("Rollback failed: %v", err)))
		}
	}

	if collector != nil {
		if err := collector.WriteTextfile(f.metricsFile); err != nil {
			a.logger.Error("failed to write metrics", "path", f.metricsFile, "error", err)
		}
	}

	printEnvHints(out, entriesFor(entries, result.InstalledServers))

	switch {
	case cancelled:
		return errors.New("installation cancelled")
	case !result.Success:
		return fmt.Errorf("installation finished with %d error(s)", len(result.Errors))
	}
	return nil
}

// runTUI shows the progress view until the user leaves it. After ctrl+c it
// waits for the run to wind down and returns the partial result, so no
// configuration write is cut short by the process exiting.
func runTUI(ctx context.Context, o *orchestrator.Orchestrator, servers int) (*orchestrator.Result, bool, error) {
	final, err := tea.NewProgram(progress.New(ctx, o, servers), tea.WithAltScreen()).Run()
	if err != nil {
		return nil, false, fmt.Errorf("running progress view: %w", err)
	}
	m := final.(progress.Model)
	return m.Wait(), m.Cancelled(), nil
}

func printPlan(w io.Writer, entries []registry.Entry) {
	fmt.Fprintln(w, styles.Title.Render("=== DRY RUN ==="))
	fmt.Fprintln(w)
	for i, e := range entries {
		line := fmt.Sprintf("  [%d/%d]  %s (%s)", i+1, len(entries), e.Name, e.Spec())
		if e.Optional {
			line += styles.Muted.Render(" optional")
		}
		fmt.Fprintln(w, line)
		if len(e.RequiredEnvVars) > 0 {
			fmt.Fprintln(w, styles.Muted.Render("           needs "+strings.Join(e.RequiredEnvVars, ", ")))
		}
	}
	fmt.Fprintf(w, "\nTotal: %d servers\n", len(entries))
}

func printResult(w io.Writer, r *orchestrator.Result) {
	fmt.Fprintln(w)
	if r.Success {
		fmt.Fprintln(w, styles.Success.Render("Installation complete"))
	} else {
		fmt.Fprintln(w, styles.Error.Render("Installation finished with errors"))
		for _, e := range r.Errors {
			fmt.Fprintf(w, "  %s [%s] %s: %s\n", styles.StatusFailed, e.Code, e.Server, e.Message)
		}
	}
	fmt.Fprintf(w, "\nTotal: %d installed, %d failed (%s)\n",
		len(r.InstalledServers), len(r.FailedServers), r.Duration.Round(100*time.Millisecond))
}

// printEnvHints lists the environment variables installed servers need
// before they can be used.
func printEnvHints(w io.Writer, entries []registry.Entry) {
	var lines []string
	for _, e := range entries {
		for _, v := range e.RequiredEnvVars {
			if os.Getenv(v) == "" {
				lines = append(lines, fmt.Sprintf("  %s needs %s", e.Name, v))
			}
		}
	}
	if len(lines) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, styles.Warning.Render("Set these environment variables before use:"))
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
}

func entriesFor(entries []registry.Entry, packages []string) []registry.Entry {
	installed := make(map[string]bool, len(packages))
	for _, p := range packages {
		installed[p] = true
	}
	var out []registry.Entry
	for _, e := range entries {
		if installed[e.Package] {
			out = append(out, e)
		}
	}
	return out
}
