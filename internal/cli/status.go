package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/druarnfield/mcp11/internal/serverconfig"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which MCP servers are installed",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

func runStatus(ctx context.Context, out io.Writer) error {
	a, err := newApp(out)
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	statuses, err := a.newOrchestrator(nil, io.Discard).Status(ctx)
	if err != nil {
		return err
	}

	cfgFile, err := serverconfig.Load(a.cfg.ServerConfigPath())
	if err != nil {
		return fmt.Errorf("reading %s: %w", a.cfg.ServerConfigPath(), err)
	}
	configured := make(map[string]bool, len(cfgFile.Servers))
	for _, s := range cfgFile.Servers {
		configured[s.Package] = s.Enabled
	}

	installed := 0
	for _, s := range statuses {
		icon := styles.StatusFailed
		if s.Installed {
			icon = styles.StatusDone
			installed++
		}
		line := fmt.Sprintf("  %s %s (%s)", icon, s.Name, s.Package)
		switch {
		case s.Installed && configured[s.Package]:
			line = styles.Success.Render(line)
		case s.Installed:
			line = styles.Warning.Render(line + " not in config")
		default:
			line = styles.Muted.Render(line)
		}
		if s.Optional {
			line += styles.Muted.Render(" optional")
		}
		fmt.Fprintln(out, line)
	}

	fmt.Fprintf(out, "\n%d of %d servers installed\n", installed, len(statuses))
	return nil
}
