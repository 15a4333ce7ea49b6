package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/huangsam/reportboard/internal/contract"
	"github.com/huangsam/reportboard/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteReportResults outputs a report, dispatching on the configured output format.
// issues is the number of rows defaulted during a lenient import.
func WriteReportResults(w io.Writer, report schema.Report, issues int, cfg *contract.Config) error {
	if err := checkTabular(cfg.Output); err != nil {
		return err
	}

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, report); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCSVResultsForReport(w, report); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeReportTable(w, report, issues, cfg)
	}
	return nil
}

// writeReportTable writes the metrics table followed by the page of records.
func writeReportTable(w io.Writer, report schema.Report, issues int, cfg *contract.Config) error {
	bold := fmt.Sprint
	if cfg.UseColors {
		bold = color.New(color.Bold).SprintFunc()
	}

	// --- 1. Scope ---
	scope := "all records"
	if report.Window != nil {
		scope = report.Window.String()
		if report.PreviousWindow != nil {
			scope += fmt.Sprintf(" (compared with %s)", report.PreviousWindow)
		}
	}
	if _, err := fmt.Fprintf(w, "%s %s, category %s\n", bold("Report:"), scope, report.Category); err != nil {
		return err
	}

	// --- 2. Metrics ---
	if err := writeMetricsTable(w, report, cfg); err != nil {
		return err
	}

	// --- 3. Records ---
	if err := writeRecordsTable(w, report, cfg); err != nil {
		return err
	}

	// --- 4. Footer ---
	if _, err := fmt.Fprintln(w, pageSummary(report)); err != nil {
		return err
	}
	if issues > 0 {
		if _, err := fmt.Fprintf(w, "%d import issue(s) were defaulted; run with --import-mode strict to reject them\n", issues); err != nil {
			return err
		}
	}
	return nil
}

// writeMetricsTable renders one row per metric: current, previous and change.
func writeMetricsTable(w io.Writer, report schema.Report, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", "Current", "Previous", "Change"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, def := range schema.MetricDefinitions {
		previous, change := "-", "-"
		if report.Previous != nil {
			previous = formatMetric(def, report.Previous.Value(def.Key), fmtFloat)
		}
		if report.Comparison != nil {
			delta := report.Comparison.Delta(def.Key)
			suffix := deltaSuffix(def.Key)
			if cfg.UseColors {
				change = contract.GetColorDelta(delta, suffix, cfg.Precision, def.Inverse)
			} else {
				change = contract.GetPlainDelta(delta, suffix, cfg.Precision)
			}
		}
		data = append(data, []string{
			def.Title,
			formatMetric(def, report.Metrics.Value(def.Key), fmtFloat),
			previous,
			change,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeRecordsTable renders the page of records with one column per field.
func writeRecordsTable(w io.Writer, report schema.Report, cfg *contract.Config) error {
	if len(report.Records) == 0 {
		_, err := fmt.Fprintln(w, "No records match the current filter.")
		return err
	}

	maxWidth := GetMaxCellWidth(cfg, len(report.Fields))
	table := tablewriter.NewWriter(w)
	table.Header(append([]string{"#"}, schema.Headers(report.Fields)...))

	offset := (report.Page - 1) * report.PageSize
	data := make([][]string, 0, len(report.Records))
	for i, rec := range report.Records {
		row := []string{strconv.Itoa(offset + i + 1)}
		for _, f := range report.Fields {
			row = append(row, contract.TruncateText(rec.Get(f.Key).Display(), maxWidth))
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeCSVResultsForReport writes the page of records with field keys as the header.
func writeCSVResultsForReport(w io.Writer, report schema.Report) error {
	return writeCSVWithHeader(w, schema.Keys(report.Fields), func(cw *csv.Writer) error {
		for _, rec := range report.Records {
			row := make([]string, 0, len(report.Fields))
			for _, f := range report.Fields {
				row = append(row, rec.Get(f.Key).Display())
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// formatMetric renders a snapshot figure with its unit.
func formatMetric(def schema.MetricDefinition, v float64, fmtFloat func(float64) string) string {
	switch def.Key {
	case schema.MetricTotalRequests, schema.MetricFailedRequests:
		return strconv.Itoa(int(v))
	default:
		return fmtFloat(v) + def.Suffix
	}
}

// deltaSuffix is "pp" for the success rate, which changes in points, and "%" otherwise.
func deltaSuffix(key schema.MetricKey) string {
	if key == schema.MetricSuccessRate {
		return "pp"
	}
	return "%"
}

// pageSummary describes which slice of the matched records is shown.
func pageSummary(report schema.Report) string {
	if report.TotalMatched == 0 || len(report.Records) == 0 {
		return fmt.Sprintf("Page %d: 0 of %d matched records", report.Page, report.TotalMatched)
	}
	first := (report.Page-1)*report.PageSize + 1
	last := first + len(report.Records) - 1
	return fmt.Sprintf("Page %d: records %d-%d of %d", report.Page, first, last, report.TotalMatched)
}
