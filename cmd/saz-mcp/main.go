// Command saz-mcp serves .saz capture archives over MCP and inspects them
// from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "saz-mcp",
		Short: "Session records from .saz capture archives, over MCP or the command line",
		Long: `Without a subcommand, saz-mcp runs an MCP server on stdio that lists, reads,
searches, queries and exports sessions of the captures under SAZ_CAPTURE_DIR.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.captureDir, "capture-dir", "", "Directory capture names are resolved against (overrides SAZ_CAPTURE_DIR)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides LOG_LEVEL)")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "Log file path (overrides LOG_FILE)")

	cmd.AddCommand(dumpCmd())
	cmd.AddCommand(exportCmd())
	cmd.AddCommand(sniffCmd())

	return cmd
}
