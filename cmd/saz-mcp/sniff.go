package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/usestring/saz-mcp/pkg/saz"
)

func sniffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sniff PATH...",
		Short: "Classify files by their archive signature",
		Long:  `Prints valid, empty, spanned or invalid for each file, based on its first four bytes.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSniff(cmd.OutOrStdout(), args)
		},
	}
}

// runSniff reports every path and returns the first read error.
func runSniff(w io.Writer, paths []string) error {
	var firstErr error
	for _, p := range paths {
		f, err := saz.SniffFile(p)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", p, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		fmt.Fprintf(w, "%s\t%s\n", p, f)
	}
	return firstErr
}
