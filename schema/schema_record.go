package schema

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// InvalidDateText is shown in place of a date that could not be parsed.
const InvalidDateText = "Invalid Date"

// Value is a single normalized cell. Which fields are meaningful depends on Kind:
// dates use Day and Invalid, numerics use Number, everything else uses Text.
// Text always holds the source text so that exports can round-trip it.
type Value struct {
	Kind    FieldKind
	Text    string
	Number  float64
	Day     Day
	Invalid bool // Date could not be parsed or was missing
}

// Display returns the value as shown in tables and exports.
func (v Value) Display() string {
	switch v.Kind {
	case DateKind:
		if v.Invalid {
			if v.Text == "" {
				return ""
			}
			return InvalidDateText
		}
		return v.Day.String()
	case NumericKind:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	default:
		return v.Text
	}
}

// JSONValue returns the value as it is encoded in JSON responses.
func (v Value) JSONValue() any {
	if v.Kind == NumericKind {
		return v.Number
	}
	return v.Display()
}

// Record is one normalized row. RowID is the insertion-order index used for
// display identity only.
type Record struct {
	RowID  int
	Values map[string]Value
}

// Get returns the value stored under key, or the zero Value if absent.
func (r Record) Get(key string) Value {
	return r.Values[key]
}

// RecordIDKey is the JSON member carrying a record's row ID. No field may use it.
const RecordIDKey = "key"

// MarshalJSON flattens the record into {"key": rowID, <field>: <value>, ...}.
func (r Record) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(r.Values)+1)
	for k, v := range r.Values {
		flat[k] = v.JSONValue()
	}
	flat[RecordIDKey] = r.RowID
	return json.Marshal(flat)
}

// RowIssue describes a coercion or presence problem found while normalizing a row.
type RowIssue struct {
	Row    int    `json:"row"`    // 1-based data row number
	Field  string `json:"field"`  // Record key of the offending field
	Reason string `json:"reason"` // Human readable description
}

// Error implements the error interface so issues can be joined into one failure.
func (i RowIssue) Error() string {
	return fmt.Sprintf("row %d: field %q: %s", i.Row, i.Field, i.Reason)
}
