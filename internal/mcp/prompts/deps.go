// Package prompts contains MCP prompt implementations for capture analysis.
package prompts

// Config holds configuration needed by prompts.
type Config struct {
	CaptureDir     string
	ExportDBPath   string
	MaxToolBytes   int
	DefaultListMax int
}
