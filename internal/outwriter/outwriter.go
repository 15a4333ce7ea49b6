// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"

	"github.com/huangsam/reportboard/internal/contract"
	"github.com/huangsam/reportboard/schema"
)

// OutWriter provides a unified interface for all CLI output operations.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteReport prints a report to cfg.OutputFile (stdout when empty).
func (ow *OutWriter) WriteReport(report schema.Report, issues int, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteReportResults(w, report, issues, cfg)
	}, "Wrote report")
}

// WriteSchema prints discovered field descriptors to cfg.OutputFile (stdout when empty).
func (ow *OutWriter) WriteSchema(summary schema.ImportSummary, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteSchemaResults(w, summary, cfg)
	}, "Wrote schema")
}

// checkTabular rejects file-only formats, which the export command handles.
func checkTabular(mode schema.OutputMode) error {
	switch mode {
	case schema.XLSXOut, schema.ParquetOut:
		return fmt.Errorf("output format %s is only available through the export command", mode)
	default:
		return nil
	}
}
