package core

import (
	"strings"

	"github.com/huangsam/reportboard/schema"
)

// FilterResult holds the records matching a date window and category, plus the
// records of the immediately preceding window of identical length.
type FilterResult struct {
	Window         schema.Window
	PreviousWindow schema.Window
	Matched        []schema.Record
	PreviousPeriod []schema.Record
}

// PreviousWindow returns the window of identical length ending the day before w starts.
func PreviousWindow(w schema.Window) schema.Window {
	length := w.Days()
	return schema.Window{
		Start: w.Start.AddDays(-length),
		End:   w.Start.AddDays(-1),
	}
}

// ValidateRange checks the user supplied bounds. A zero day counts as missing.
func ValidateRange(start, end schema.Day) (schema.Window, error) {
	if start.IsZero() || end.IsZero() {
		return schema.Window{}, ErrMissingDateRange
	}
	if start.After(end) {
		return schema.Window{}, ErrInvertedRange
	}
	return schema.Window{Start: start, End: end}, nil
}

// IsAllCategories reports whether category disables category filtering.
func IsAllCategories(category string) bool {
	category = strings.TrimSpace(category)
	return category == "" || strings.EqualFold(category, schema.AllCategories)
}

// FilterRecords selects the records within [start, end] by calendar day and, unless
// category is empty or "all", whose category equals it case-insensitively. It also
// collects the previous period with the same category restriction, in the same pass.
// Records with an invalid date never match either window.
func FilterRecords(records []schema.Record, roles schema.FieldRoles, start, end schema.Day, category string) (FilterResult, error) {
	window, err := ValidateRange(start, end)
	if err != nil {
		return FilterResult{}, err
	}
	if len(records) == 0 {
		return FilterResult{}, ErrNoRecords
	}
	if roles.Date == "" {
		return FilterResult{}, ErrNoDateField
	}

	result := FilterResult{Window: window, PreviousWindow: PreviousWindow(window)}
	match := categoryMatcher(roles, category)
	for _, rec := range records {
		if !match(rec) {
			continue
		}
		switch classifyDay(rec, roles.Date, result.Window, result.PreviousWindow) {
		case inCurrent:
			result.Matched = append(result.Matched, rec)
		case inPrevious:
			result.PreviousPeriod = append(result.PreviousPeriod, rec)
		}
	}
	return result, nil
}

type windowPlacement int

const (
	outside windowPlacement = iota
	inCurrent
	inPrevious
)

func classifyDay(rec schema.Record, dateKey string, current, previous schema.Window) windowPlacement {
	v := rec.Get(dateKey)
	if v.Kind != schema.DateKind || v.Invalid || v.Day.IsZero() {
		return outside
	}
	switch {
	case current.Contains(v.Day):
		return inCurrent
	case previous.Contains(v.Day):
		return inPrevious
	default:
		return outside
	}
}

// splitByWindow partitions records by date only. Sessions cache the result so that
// a category change does not rescan the full set.
func splitByWindow(records []schema.Record, dateKey string, current, previous schema.Window) (cur, prev []schema.Record) {
	for _, rec := range records {
		switch classifyDay(rec, dateKey, current, previous) {
		case inCurrent:
			cur = append(cur, rec)
		case inPrevious:
			prev = append(prev, rec)
		}
	}
	return cur, prev
}

// FilterCategory keeps the records whose category equals category, case-insensitively.
// It returns records unchanged when category is empty or "all".
func FilterCategory(records []schema.Record, roles schema.FieldRoles, category string) []schema.Record {
	if IsAllCategories(category) {
		return records
	}
	match := categoryMatcher(roles, category)
	var out []schema.Record
	for _, rec := range records {
		if match(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// categoryMatcher builds the category predicate. Without a category field nothing
// matches a concrete category.
func categoryMatcher(roles schema.FieldRoles, category string) func(schema.Record) bool {
	if IsAllCategories(category) {
		return func(schema.Record) bool { return true }
	}
	want := strings.TrimSpace(category)
	return func(rec schema.Record) bool {
		if roles.Category == "" {
			return false
		}
		return strings.EqualFold(strings.TrimSpace(rec.Get(roles.Category).Text), want)
	}
}
