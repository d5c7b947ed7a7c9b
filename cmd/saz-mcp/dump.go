package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/usestring/saz-mcp/internal/config"
	"github.com/usestring/saz-mcp/pkg/saz"
)

func dumpCmd() *cobra.Command {
	var asJSON bool
	var withText bool

	cmd := &cobra.Command{
		Use:   "dump PATH",
		Short: "Parse a capture and print its session records",
		Long: `Parses the capture at PATH and prints one line per session: index, status,
body length and URL. With --json the full records are printed as a JSON array.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, cleanup, err := loadCLIConfig()
			if err != nil {
				return err
			}
			defer cleanup()

			return runDump(cmd.OutOrStdout(), args[0], cfg, dumpOptions{json: asJSON, text: withText})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print records as JSON")
	cmd.Flags().BoolVar(&withText, "text", false, "Include raw request/response text in JSON output")

	return cmd
}

type dumpOptions struct {
	json bool
	text bool
}

func runDump(w io.Writer, path string, cfg *config.Config, opts dumpOptions) error {
	sessions, err := newParser(cfg).ParseFile(path)
	if err != nil {
		return err
	}

	if opts.json {
		if !opts.text {
			for i := range sessions {
				sessions[i].Request = ""
				sessions[i].Response = ""
			}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if sessions == nil {
			sessions = []saz.Session{}
		}
		return enc.Encode(sessions)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tSTATUS\tBODY\tURL")
	for _, s := range sessions {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%s\n", s.Index, s.Status, s.BodyLength, s.URL)
	}
	return tw.Flush()
}
