package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/reportboard/schema"
)

// Trend arrow constants.
const (
	UpArrow   = "▲"
	DownArrow = "▼"
)

// Color variables for console output.
var (
	ImprovingColor = color.New(color.FgGreen, color.Bold) // ImprovingColor marks a change for the better.
	WorseningColor = color.New(color.FgRed, color.Bold)   // WorseningColor marks a change for the worse.
	FlatColor      = color.New(color.Faint)               // FlatColor marks no change.
)

// GetPlainDelta formats a signed delta with its arrow, e.g. "+12.5% ▲".
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainDelta(delta float64, suffix string, precision int) string {
	switch {
	case delta > 0:
		return fmt.Sprintf("+%.*f%s %s", precision, delta, suffix, UpArrow)
	case delta < 0:
		return fmt.Sprintf("%.*f%s %s", precision, delta, suffix, DownArrow)
	default:
		return fmt.Sprintf("%.*f%s", precision, delta, suffix)
	}
}

// GetColorDelta returns the delta colored by whether the change is good news.
// Inverse metrics (latency, failures) are good news when they go down.
func GetColorDelta(delta float64, suffix string, precision int, inverse bool) string {
	text := GetPlainDelta(delta, suffix, precision)

	switch schema.TrendOf(delta, inverse) {
	case schema.TrendImproving:
		return ImprovingColor.Sprint(text)
	case schema.TrendWorsening:
		return WorseningColor.Sprint(text)
	default:
		return FlatColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path means os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetDBFilePath returns the path to the SQLite DB file for the record store.
func GetDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".reportboard.db"
	}
	return filepath.Join(homeDir, ".reportboard.db")
}

// TruncateText truncates a cell to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 to leave room for the "..." and at least one character.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
