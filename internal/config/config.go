// Package config provides configuration loading from environment variables
// and an optional TOML file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Tool output limit defaults
const (
	DefaultSearchLimitValue = 20
	MaxSearchLimitValue     = 100
	DefaultListLimitValue   = 50
)

// Processing safety cap defaults
const (
	MaxSearchResultsValue = 10000
	MaxQuerySessionsValue = 5000
)

// Config holds all configuration for the capture server and CLI.
//
// Precedence: environment variables override the TOML file named by
// SAZ_CONFIG, which overrides the built-in defaults.
type Config struct {
	CaptureDir           string `toml:"capture_dir"`             // SAZ_CAPTURE_DIR, default "."
	AllowExternalPaths   bool   `toml:"allow_external_paths"`    // SAZ_ALLOW_EXTERNAL_PATHS, default false
	ParseWorkers         int    `toml:"parse_workers"`           // SAZ_PARSE_WORKERS, default 4
	CaptureCacheMaxItems int    `toml:"capture_cache_max_items"` // CAPTURE_CACHE_MAX_ITEMS, default 16
	ToolMaxBytesDefault  int    `toml:"tool_max_bytes_default"`  // TOOL_MAX_BYTES_DEFAULT, default 65536
	ExportDBPath         string `toml:"export_db_path"`          // EXPORT_DB_PATH, default "saz-sessions.db"

	// Tool output limits
	DefaultSearchLimit int `toml:"default_search_limit"` // DEFAULT_SEARCH_LIMIT
	DefaultListLimit   int `toml:"default_list_limit"`   // DEFAULT_LIST_LIMIT

	// Processing safety caps
	MaxSearchResults int `toml:"max_search_results"` // MAX_SEARCH_RESULTS, default 10000
	MaxQuerySessions int `toml:"max_query_sessions"` // MAX_QUERY_SESSIONS, default 5000

	// Logging configuration
	LogLevel      string `toml:"log_level"`        // LOG_LEVEL, default "info"
	LogFormat     string `toml:"log_format"`       // LOG_FORMAT, default "text"
	LogFile       string `toml:"log_file"`         // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    `toml:"log_max_size_mb"`  // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    `toml:"log_max_backups"`  // LOG_MAX_BACKUPS, default 5
	LogMaxAgeDays int    `toml:"log_max_age_days"` // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   `toml:"log_compress"`     // LOG_COMPRESS, default true
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		CaptureDir:           ".",
		ParseWorkers:         4,
		CaptureCacheMaxItems: 16,
		ToolMaxBytesDefault:  65536,
		ExportDBPath:         "saz-sessions.db",

		DefaultSearchLimit: DefaultSearchLimitValue,
		DefaultListLimit:   DefaultListLimitValue,

		MaxSearchResults: MaxSearchResultsValue,
		MaxQuerySessions: MaxQuerySessionsValue,

		LogLevel:      "info",
		LogFormat:     "text",
		LogFile:       "",
		LogMaxSizeMB:  10,
		LogMaxBackups: 5,
		LogMaxAgeDays: 28,
		LogCompress:   true,
	}
}

// Load builds the configuration from defaults, the optional TOML file named
// by SAZ_CONFIG, and environment variables, in that order.
func Load() (*Config, error) {
	cfg := Defaults()

	if path := os.Getenv("SAZ_CONFIG"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	cfg.mergeEnv()
	return cfg, nil
}

// mergeFile decodes a TOML file over cfg. Keys absent from the file keep
// their current values.
func (c *Config) mergeFile(path string) error {
	if _, err := toml.DecodeFile(path, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv() {
	c.CaptureDir = getEnvString("SAZ_CAPTURE_DIR", c.CaptureDir)
	c.AllowExternalPaths = getEnvBool("SAZ_ALLOW_EXTERNAL_PATHS", c.AllowExternalPaths)
	c.ParseWorkers = getEnvInt("SAZ_PARSE_WORKERS", c.ParseWorkers)
	c.CaptureCacheMaxItems = getEnvInt("CAPTURE_CACHE_MAX_ITEMS", c.CaptureCacheMaxItems)
	c.ToolMaxBytesDefault = getEnvInt("TOOL_MAX_BYTES_DEFAULT", c.ToolMaxBytesDefault)
	c.ExportDBPath = getEnvString("EXPORT_DB_PATH", c.ExportDBPath)

	c.DefaultSearchLimit = getEnvInt("DEFAULT_SEARCH_LIMIT", c.DefaultSearchLimit)
	c.DefaultListLimit = getEnvInt("DEFAULT_LIST_LIMIT", c.DefaultListLimit)

	c.MaxSearchResults = getEnvInt("MAX_SEARCH_RESULTS", c.MaxSearchResults)
	c.MaxQuerySessions = getEnvInt("MAX_QUERY_SESSIONS", c.MaxQuerySessions)

	c.LogLevel = getEnvString("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnvString("LOG_FORMAT", c.LogFormat)
	c.LogFile = getEnvString("LOG_FILE", c.LogFile)
	c.LogMaxSizeMB = getEnvInt("LOG_MAX_SIZE_MB", c.LogMaxSizeMB)
	c.LogMaxBackups = getEnvInt("LOG_MAX_BACKUPS", c.LogMaxBackups)
	c.LogMaxAgeDays = getEnvInt("LOG_MAX_AGE_DAYS", c.LogMaxAgeDays)
	c.LogCompress = getEnvBool("LOG_COMPRESS", c.LogCompress)
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(v) {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
