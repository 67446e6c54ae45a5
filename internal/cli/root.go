package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	flagConfig  string
	flagQuiet   bool
	flagVerbose bool
)

func newRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "mcp11",
		Short:         "MCP server installer",
		Long:          "mcp11 installs the Agent11 MCP servers globally with npm, validates them and records them in mcp-config.json.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to mcp11.toml (default: next to the binary, then the config dir)")
	cmd.PersistentFlags().BoolVar(&flagQuiet, "quiet", false, "Suppress per-server output")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Show package manager output and detailed progress")

	cmd.AddCommand(newVersionCmd(version))
	cmd.AddCommand(newInstallCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newRegistryCmd())

	return cmd
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print mcp11 version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "mcp11", version)
		},
	}
}

func Execute(version string) error {
	cmd := newRootCmd(version)
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), styles.Error.Render("Error: "+err.Error()))
	}
	return err
}
