package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newRegistryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Inspect the MCP server catalog",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List catalog entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegistryList(cmd.OutOrStdout())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Check the catalog for duplicates, missing fields and bad versions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegistryValidate(cmd.OutOrStdout())
		},
	})
	return cmd
}

func runRegistryList(out io.Writer) error {
	a, err := newApp(out)
	if err != nil {
		return err
	}
	for _, e := range a.registry.All() {
		line := fmt.Sprintf("  %s %s", styles.Subtitle.Render(e.Name), e.Spec())
		if e.Optional {
			line += styles.Muted.Render(" optional")
		}
		fmt.Fprintln(out, line)
		if e.Description != "" {
			fmt.Fprintln(out, styles.Muted.Render("    "+e.Description))
		}
	}
	return nil
}

func runRegistryValidate(out io.Writer) error {
	a, err := newApp(out)
	if err != nil {
		return err
	}
	if err := a.registry.Validate(); err != nil {
		return fmt.Errorf("registry invalid: %w", err)
	}
	fmt.Fprintln(out, styles.Success.Render(fmt.Sprintf("%s %d entries valid", styles.StatusDone, a.registry.Len())))
	return nil
}
