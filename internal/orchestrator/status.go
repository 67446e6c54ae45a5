package orchestrator

import (
	"context"
	"fmt"

	"github.com/druarnfield/mcp11/internal/exec"
)

// ServerStatus reports whether one registry entry is currently installed.
type ServerStatus struct {
	Name      string
	Package   string
	Optional  bool
	Installed bool
}

// Status checks every registry entry against the package manager, one
// entry at a time.
func (o *Orchestrator) Status(ctx context.Context) ([]ServerStatus, error) {
	if ctx.Err() != nil {
		return nil, fmt.Errorf("checking status: %w", ctx.Err())
	}

	opts := exec.Options{Mode: exec.ModeCapture, Timeout: o.settings.Timeout}
	entries := o.registry.All()
	statuses := make([]ServerStatus, 0, len(entries))
	for _, e := range entries {
		_, err := o.exec.Run(ctx, opts, o.settings.PackageManager, "list", "-g", e.Package)
		statuses = append(statuses, ServerStatus{
			Name:      e.Name,
			Package:   e.Package,
			Optional:  e.Optional,
			Installed: err == nil,
		})
	}
	return statuses, nil
}
