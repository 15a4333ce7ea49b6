package contract

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/huangsam/reportboard/core"
	"github.com/huangsam/reportboard/schema"
)

// Default values for configuration.
const (
	DefaultPrecision   = 1
	DefaultPageSize    = core.DefaultPageSize
	MaxPageSize        = 500
	DefaultListen      = ":3001"
	DefaultCORSOrigins = "*"
	DefaultSeedRecords = 500
	DefaultSeedDays    = 30
)

// DefaultRequired is the comma separated form of core.DefaultRequiredKeys.
var DefaultRequired = strings.Join(core.DefaultRequiredKeys, ",")

// Config holds the runtime configuration for a report.
// This struct is the "final, validated" config.
type Config struct {
	InputFile string // CSV or XLSX source; empty means the record store

	Start    schema.Day
	End      schema.Day
	Category string
	Page     int
	PageSize int

	ImportMode schema.ImportMode
	Required   []string

	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	Backend   schema.DatabaseBackend
	DBConnect string // Please use env var as this is plaintext

	Listen      string
	CORSOrigins []string
}

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	InputPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Precision  int    `mapstructure:"precision"`
	Width      int    `mapstructure:"width"`
	Color      string `mapstructure:"color"`
	Backend    string `mapstructure:"backend"`
	DBConnect  string `mapstructure:"db-connect"`

	// --- Fields from view flags (report, export, chart) ---
	Start      string `mapstructure:"start"`
	End        string `mapstructure:"end"`
	Category   string `mapstructure:"category"`
	Page       int    `mapstructure:"page"`
	PageSize   int    `mapstructure:"page-size"`
	ImportMode string `mapstructure:"import-mode"`
	Required   string `mapstructure:"required"`

	// --- Fields from serveCmd.Flags() ---
	Listen      string `mapstructure:"listen"`
	CORSOrigins string `mapstructure:"cors-origins"`
}

// Request returns the view selection held by the config.
func (c *Config) Request() core.ReportRequest {
	return core.ReportRequest{
		Start:    c.Start,
		End:      c.End,
		Category: c.Category,
		Page:     c.Page,
		PageSize: c.PageSize,
	}
}

// Clone returns a copy of the config that shares no slices with c.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Required = slices.Clone(c.Required)
	clone.CORSOrigins = slices.Clone(c.CORSOrigins)
	return &clone
}

// NormalizeOptions returns the import options held by the config.
func (c *Config) NormalizeOptions() core.NormalizeOptions {
	return core.NormalizeOptions{Mode: c.ImportMode, Required: c.Required}
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	return processAndValidateAt(cfg, input, time.Now())
}

func processAndValidateAt(cfg *Config, input *ConfigRawInput, now time.Time) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}
	if err := processTimeRange(cfg, input, now); err != nil {
		return err
	}
	if err := processImportOptions(cfg, input); err != nil {
		return err
	}
	return processServeOptions(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return errors.New("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return errors.New("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return errors.New("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return errors.New("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates the presentation and paging fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.InputFile = strings.TrimSpace(input.InputPathStr)
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, xlsx, parquet", input.Output)
	}

	// --- 2. Paging Validation ---
	if input.Page < 1 {
		return fmt.Errorf("page must be at least 1 (received %d)", input.Page)
	}
	cfg.Page = input.Page

	if input.PageSize < 1 || input.PageSize > MaxPageSize {
		return fmt.Errorf("page-size must be greater than 0 and cannot exceed %d (received %d)", MaxPageSize, input.PageSize)
	}
	cfg.PageSize = input.PageSize

	// --- 3. Category ---
	cfg.Category = strings.TrimSpace(input.Category)
	if core.IsAllCategories(cfg.Category) {
		cfg.Category = schema.AllCategories
	}

	return nil
}

// validateBackendConfig validates the record store backend and its connection string.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.Backend = schema.DatabaseBackend(strings.ToLower(input.Backend))
	if _, ok := schema.ValidDatabaseBackends[cfg.Backend]; !ok {
		return fmt.Errorf("invalid backend '%s'. must be sqlite, mysql, postgresql, none", input.Backend)
	}
	cfg.DBConnect = input.DBConnect
	return ValidateDatabaseConnectionString(cfg.Backend, cfg.DBConnect)
}

// processTimeRange parses the optional report window. Both bounds or neither.
func processTimeRange(cfg *Config, input *ConfigRawInput, now time.Time) error {
	cfg.Start, cfg.End = schema.Day{}, schema.Day{}
	start, end := strings.TrimSpace(input.Start), strings.TrimSpace(input.End)
	if start == "" && end == "" {
		return nil
	}
	if start == "" || end == "" {
		return errors.New("--start and --end must be given together")
	}

	var err error
	if cfg.Start, err = ParseDayInput(start, now); err != nil {
		return fmt.Errorf("invalid start: %w", err)
	}
	if cfg.End, err = ParseDayInput(end, now); err != nil {
		return fmt.Errorf("invalid end: %w", err)
	}
	if cfg.Start.After(cfg.End) {
		return fmt.Errorf("start (%s) cannot be after end (%s)", cfg.Start, cfg.End)
	}
	return nil
}

// processImportOptions handles the tolerance policy and required keys.
func processImportOptions(cfg *Config, input *ConfigRawInput) error {
	cfg.ImportMode = schema.ImportMode(strings.ToLower(strings.TrimSpace(input.ImportMode)))
	if cfg.ImportMode == "" {
		cfg.ImportMode = schema.LenientImport
	}
	if _, ok := schema.ValidImportModes[cfg.ImportMode]; !ok {
		return fmt.Errorf("invalid import mode '%s'. must be lenient, strict", input.ImportMode)
	}
	cfg.Required = ParseRequiredKeys(input.Required)
	return nil
}

// processServeOptions handles the HTTP listener settings.
func processServeOptions(cfg *Config, input *ConfigRawInput) error {
	cfg.Listen = strings.TrimSpace(input.Listen)
	if cfg.Listen == "" {
		cfg.Listen = DefaultListen
	}
	cfg.CORSOrigins = splitList(input.CORSOrigins)
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{DefaultCORSOrigins}
	}
	return nil
}

// ProcessProfilingConfig enables profiling when a file prefix is given.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// ParseRequiredKeys turns a comma separated list of field names into record keys.
// Names are keyed the same way headers are, so "Response Time" and response_time agree.
func ParseRequiredKeys(s string) []string {
	var keys []string
	for _, part := range splitList(s) {
		key := core.KeyFor(part)
		if key != "" && !slices.Contains(keys, key) {
			keys = append(keys, key)
		}
	}
	return keys
}

func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
