package export

import (
	"fmt"
	"io"

	"github.com/huangsam/reportboard/schema"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the exported workbook.
const (
	LogsSheet    = "API Logs"
	SummarySheet = "Summary"
)

// WriteXLSX writes a workbook with the records on LogsSheet and the metrics on SummarySheet.
func WriteXLSX(w io.Writer, ds Dataset) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), LogsSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := writeLogsSheet(f, ds); err != nil {
		return err
	}
	if err := writeSummarySheet(f, ds.Metrics); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeLogsSheet(f *excelize.File, ds Dataset) error {
	headers := schema.Headers(ds.Fields)
	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(LogsSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := boldRow(f, LogsSheet, 1); err != nil {
		return err
	}

	for i, rec := range ds.Records {
		row := make([]any, len(ds.Fields))
		for j, field := range ds.Fields {
			row[j] = cellValue(rec.Get(field.Key))
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(LogsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, m schema.MetricsSnapshot) error {
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("failed to add summary sheet: %w", err)
	}
	rows := [][]any{{"Metric", "Value"}}
	for _, def := range schema.MetricDefinitions {
		title := def.Title
		if def.Suffix != "" {
			title += " (" + def.Suffix + ")"
		}
		rows = append(rows, []any{title, m.Value(def.Key)})
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}
	return boldRow(f, SummarySheet, 1)
}

func boldRow(f *excelize.File, sheet string, row int) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	return f.SetRowStyle(sheet, row, row, style)
}
