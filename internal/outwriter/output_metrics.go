package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/huangsam/reportboard/internal/contract"
	"github.com/huangsam/reportboard/schema"
	"github.com/olekukonko/tablewriter"
)

// metricNotes explains how each metric is derived.
var metricNotes = map[schema.MetricKey]string{
	schema.MetricTotalRequests:   "records matching the filter; change is relative",
	schema.MetricSuccessRate:     "share with status success, ok or 200; change is in points",
	schema.MetricAvgResponseTime: "mean of the latency field, non-numeric values count as 0",
	schema.MetricFailedRequests:  "total minus successful; change is relative",
}

// WriteMetricDefinitions describes the report metrics and which direction is good.
func WriteMetricDefinitions(w io.Writer, cfg *contract.Config) error {
	if err := checkTabular(cfg.Output); err != nil {
		return err
	}

	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, schema.MetricDefinitions)
	case schema.CSVOut:
		return writeCSVWithHeader(w, []string{"key", "title", "suffix", "inverse", "note"}, func(cw *csv.Writer) error {
			for _, def := range schema.MetricDefinitions {
				row := []string{string(def.Key), def.Title, def.Suffix, strconv.FormatBool(def.Inverse), metricNotes[def.Key]}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	default:
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Metric", "Unit", "Higher Is", "Definition"})
		data := make([][]string, 0, len(schema.MetricDefinitions))
		for _, def := range schema.MetricDefinitions {
			better := "better"
			if def.Inverse {
				better = "worse"
			}
			unit := def.Suffix
			if unit == "" {
				unit = "count"
			}
			data = append(data, []string{def.Title, unit, better, metricNotes[def.Key]})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		return table.Render()
	}
}
