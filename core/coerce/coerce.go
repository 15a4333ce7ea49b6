// Package coerce converts heterogeneous cell values from spreadsheets and
// query results into typed record values. Every function returns a definite
// value; failures are reported alongside, never instead of, the default.
package coerce

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/reportboard/schema"
	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"
)

// Coercion failures. Callers decide whether they are fatal.
var (
	ErrUnparseableDate = errors.New("unparseable date")
	ErrMissingDate     = errors.New("missing date")
	ErrNotNumeric      = errors.New("not a number")
)

// Excel serial day numbers accepted as dates (1900-01-01 through 9999-12-31).
const (
	minExcelSerial = 1
	maxExcelSerial = 2958465
)

// dayLayouts are tried in order before falling back to cast's layout list.
var dayLayouts = []string{
	schema.DayLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-06", // excelize default for m-d-yy cells
	"1/2/06",
	"20060102",
	"Jan 2, 2006",
	"January 2, 2006",
	"02-Jan-06",
	"2006-01-02 15:04:05.999999999 -0700 MST", // time.Time.String from drivers
}

// IsBlank reports whether a cell counts as missing: absent, nil or whitespace only.
func IsBlank(raw any) bool {
	if raw == nil {
		return true
	}
	switch v := raw.(type) {
	case string:
		return strings.TrimSpace(v) == ""
	case []byte:
		return strings.TrimSpace(string(v)) == ""
	}
	return false
}

// Text renders any cell as a string, defaulting to "" for nil or unknown types.
func Text(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case time.Time:
		return v.Format(time.RFC3339)
	case []byte:
		return string(v)
	}
	s, err := cast.ToStringE(raw)
	if err != nil {
		return ""
	}
	return s
}

// Numeric converts a cell into a float. Strings are stripped of everything but
// digits, the decimal point and a leading sign first, so "200ms" becomes 200.
// Blank and non-numeric cells yield 0 and false.
func Numeric(raw any) (float64, bool) {
	switch v := raw.(type) {
	case nil:
		return 0, false
	case string:
		return parseNumericText(v)
	case []byte:
		return parseNumericText(string(v))
	case bool:
		return 0, false
	}
	f, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, false
	}
	return f, true
}

// parseNumericText keeps digits, '.' and a leading '-' and parses the remainder.
func parseNumericText(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	var b strings.Builder
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		case r == '-' && i == 0:
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" || cleaned == "-" {
		return 0, false
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Date converts a cell into a calendar day. It understands time values, Excel
// serial numbers, and strings in the common day layouts.
func Date(raw any) (schema.Day, bool) {
	switch v := raw.(type) {
	case nil:
		return schema.Day{}, false
	case time.Time:
		if v.IsZero() {
			return schema.Day{}, false
		}
		return schema.DayOf(v), true
	case []byte:
		return dateFromText(string(v))
	case string:
		return dateFromText(v)
	case bool:
		return schema.Day{}, false
	}
	serial, err := cast.ToFloat64E(raw)
	if err != nil {
		return schema.Day{}, false
	}
	return dateFromSerial(serial)
}

func dateFromText(s string) (schema.Day, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return schema.Day{}, false
	}
	for _, layout := range dayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return schema.DayOf(t), true
		}
	}
	if t, err := cast.ToTimeE(s); err == nil {
		return schema.DayOf(t), true
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		return dateFromSerial(serial)
	}
	return schema.Day{}, false
}

func dateFromSerial(serial float64) (schema.Day, bool) {
	if serial < minExcelSerial || serial > maxExcelSerial {
		return schema.Day{}, false
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return schema.Day{}, false
	}
	return schema.DayOf(t), true
}

// Value coerces raw into a Value of the given kind. The returned Value is always
// usable; the error, if any, describes what was defaulted.
func Value(kind schema.FieldKind, raw any) (schema.Value, error) {
	text := Text(raw)
	switch kind {
	case schema.DateKind:
		if IsBlank(raw) {
			return schema.Value{Kind: kind, Invalid: true}, ErrMissingDate
		}
		day, ok := Date(raw)
		if !ok {
			return schema.Value{Kind: kind, Text: text, Invalid: true}, ErrUnparseableDate
		}
		return schema.Value{Kind: kind, Text: text, Day: day}, nil
	case schema.NumericKind:
		n, ok := Numeric(raw)
		if !ok && !IsBlank(raw) {
			return schema.Value{Kind: kind, Text: text}, ErrNotNumeric
		}
		return schema.Value{Kind: kind, Text: text, Number: n}, nil
	default:
		return schema.Value{Kind: kind, Text: text}, nil
	}
}
