package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/huangsam/reportboard/internal/contract"
	"github.com/huangsam/reportboard/schema"
	"github.com/olekukonko/tablewriter"
)

// WriteSchemaResults outputs the discovered fields and their roles.
func WriteSchemaResults(w io.Writer, summary schema.ImportSummary, cfg *contract.Config) error {
	if err := checkTabular(cfg.Output); err != nil {
		return err
	}

	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, summary)
	case schema.CSVOut:
		return writeCSVWithHeader(w, []string{"header", "key", "kind", "role"}, func(cw *csv.Writer) error {
			for _, f := range summary.Fields {
				if err := cw.Write([]string{f.Header, f.Key, string(f.Kind), roleOf(f.Key, summary.Roles)}); err != nil {
					return err
				}
			}
			return nil
		})
	default:
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Header", "Key", "Kind", "Role"})
		data := make([][]string, 0, len(summary.Fields))
		for _, f := range summary.Fields {
			data = append(data, []string{f.Header, f.Key, string(f.Kind), roleOf(f.Key, summary.Roles)})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "%d records from %s, %d issue(s)\n", summary.Records, summary.Source, len(summary.Issues))
		return err
	}
}

// roleOf names the role a field plays in filtering and aggregation, if any.
func roleOf(key string, roles schema.FieldRoles) string {
	switch key {
	case "":
		return ""
	case roles.Date:
		return "date"
	case roles.Category:
		return "category"
	case roles.Status:
		return "status"
	case roles.Latency:
		return "latency"
	default:
		return ""
	}
}
