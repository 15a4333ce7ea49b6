package core

import (
	"slices"
	"strings"

	"github.com/huangsam/reportboard/schema"
)

// DefaultPageSize is the number of records per page when none is given.
const DefaultPageSize = 10

// CategoryOptions lists the distinct category values for a filter dropdown,
// led by the "all" sentinel. Values are lowercased and sorted; each label is
// the first spelling seen.
func CategoryOptions(records []schema.Record, roles schema.FieldRoles) []schema.CategoryOption {
	options := []schema.CategoryOption{{Value: schema.AllCategories, Label: schema.AllCategoriesLabel}}
	if roles.Category == "" {
		return options
	}

	labels := make(map[string]string)
	for _, rec := range records {
		text := strings.TrimSpace(rec.Get(roles.Category).Text)
		if text == "" {
			continue
		}
		value := strings.ToLower(text)
		if _, seen := labels[value]; !seen {
			labels[value] = text
		}
	}

	values := make([]string, 0, len(labels))
	for v := range labels {
		values = append(values, v)
	}
	slices.Sort(values)
	for _, v := range values {
		options = append(options, schema.CategoryOption{Value: v, Label: labels[v]})
	}
	return options
}

// Paginate returns the 1-based page of records. Pages past the end are empty.
func Paginate(records []schema.Record, page, size int) []schema.Record {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	// Compare page counts before multiplying so huge pages cannot overflow.
	pages := (len(records) + size - 1) / size
	if page-1 >= pages {
		return []schema.Record{}
	}
	start := (page - 1) * size
	end := min(start+size, len(records))
	return records[start:end]
}

// DailyCounts buckets records by calendar day, ascending. When window is given,
// every day of it is present, including days with no records.
func DailyCounts(records []schema.Record, roles schema.FieldRoles, window *schema.Window) []schema.DailyCount {
	counts := make(map[schema.Day]int)
	for _, rec := range records {
		v := rec.Get(roles.Date)
		if roles.Date == "" || v.Invalid || v.Day.IsZero() {
			continue
		}
		counts[v.Day]++
	}

	if window != nil {
		out := make([]schema.DailyCount, 0, window.Days())
		for d := window.Start; !d.After(window.End); d = d.AddDays(1) {
			out = append(out, schema.DailyCount{Day: d, Count: counts[d]})
		}
		return out
	}

	out := make([]schema.DailyCount, 0, len(counts))
	for d, c := range counts {
		out = append(out, schema.DailyCount{Day: d, Count: c})
	}
	slices.SortFunc(out, func(a, b schema.DailyCount) int {
		return a.Day.Time().Compare(b.Day.Time())
	})
	return out
}
