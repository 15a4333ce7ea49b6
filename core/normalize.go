package core

import (
	"errors"
	"strings"

	"github.com/huangsam/reportboard/core/coerce"
	"github.com/huangsam/reportboard/schema"
)

// DefaultRequiredKeys are the keys that must be present in strict mode when the caller names none.
var DefaultRequiredKeys = []string{"date", "status"}

// NormalizeOptions controls how tolerant normalization is.
type NormalizeOptions struct {
	Mode     schema.ImportMode
	Required []string // Record keys that must hold a value in strict mode
}

// Normalize converts raw rows, keyed by source header, into records holding a value
// for every field key. In lenient mode problems are defaulted and reported as issues.
// In strict mode a missing required value or an unparseable date fails the whole
// set with an *ImportError listing every offending row.
func Normalize(fields []schema.FieldDescriptor, rows []map[string]any, opts NormalizeOptions) ([]schema.Record, []schema.RowIssue, error) {
	strict := opts.Mode == schema.StrictImport
	required := make(map[string]struct{}, len(opts.Required))
	var requiredOrder []string
	for _, key := range opts.Required {
		key = strings.TrimSpace(key)
		if _, dup := required[key]; key == "" || dup {
			continue
		}
		required[key] = struct{}{}
		requiredOrder = append(requiredOrder, key)
	}

	var issues, fatal []schema.RowIssue

	// A required key with no column fails every row; report it once at row 0.
	if strict {
		for _, key := range requiredOrder {
			if !hasKey(fields, key) {
				fatal = append(fatal, schema.RowIssue{Row: 0, Field: key, Reason: "required column not found"})
			}
		}
	}

	records := make([]schema.Record, 0, len(rows))
	for i, row := range rows {
		rowNum := i + 1
		values := make(map[string]schema.Value, len(fields))

		for _, f := range fields {
			raw := row[f.Header]
			_, isRequired := required[f.Key]

			if isRequired && coerce.IsBlank(raw) {
				issue := schema.RowIssue{Row: rowNum, Field: f.Key, Reason: "missing required value"}
				if strict {
					fatal = append(fatal, issue)
				} else {
					issues = append(issues, issue)
				}
			}

			v, err := coerce.Value(f.Kind, raw)
			values[f.Key] = v
			if err == nil {
				continue
			}
			switch {
			case errors.Is(err, coerce.ErrMissingDate):
				// Missing dates only matter when required, which was handled above.
				continue
			case errors.Is(err, coerce.ErrUnparseableDate) && strict:
				fatal = append(fatal, schema.RowIssue{Row: rowNum, Field: f.Key, Reason: err.Error()})
			default:
				issues = append(issues, schema.RowIssue{Row: rowNum, Field: f.Key, Reason: err.Error()})
			}
		}

		records = append(records, schema.Record{RowID: i, Values: values})
	}

	if len(fatal) > 0 {
		return nil, nil, &ImportError{Issues: fatal}
	}
	return records, issues, nil
}
