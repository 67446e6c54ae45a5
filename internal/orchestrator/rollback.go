package orchestrator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/druarnfield/mcp11/internal/events"
	"github.com/druarnfield/mcp11/internal/exec"
)

// Rollback restores the configuration file from the most recent rollback
// point and uninstalls the packages installed since that point, newest
// first. A package that fails to uninstall is logged, warned about at every
// output level, and skipped. It
// returns rollback.ErrNoRollbackPoints when Install has never run.
func (o *Orchestrator) Rollback(ctx context.Context) error {
	p, err := o.store.Latest()
	if err != nil {
		return err
	}

	packages := p.UninstallOrder()
	o.bus.Emit(events.TypeRollback, RollbackPayload{
		Message:  "Starting rollback operation",
		Packages: packages,
	})
	o.logger.Info("rollback started",
		slog.String("action", p.Action),
		slog.Int("packages", len(packages)),
	)

	restored, err := o.store.Restore(p)
	if err != nil {
		return err
	}
	if restored {
		o.logger.Info("configuration restored", slog.String("from", p.ConfigBackup))
	}

	opts := exec.Options{Mode: exec.ModeCapture, Timeout: o.settings.Timeout}
	for _, pkg := range packages {
		if _, err := o.exec.Run(ctx, opts, o.settings.PackageManager, "uninstall", "-g", pkg); err != nil {
			o.logger.Warn("uninstall failed during rollback",
				slog.String("package", pkg),
				slog.String("error", err.Error()),
			)
			fmt.Fprintf(o.out, "Warning: Failed to uninstall %s during rollback\n", pkg)
			continue
		}
		o.logger.Info("package uninstalled", slog.String("package", pkg))
	}

	return nil
}
