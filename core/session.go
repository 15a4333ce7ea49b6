package core

import (
	"github.com/google/uuid"
	"github.com/huangsam/reportboard/schema"
)

// Session is the working state behind one view: the imported records, their
// schema, and the active filter. It is immutable; every change returns a new
// Session so that replacing or resetting the state is a single pointer swap.
type Session struct {
	id         string
	source     schema.SourceKind
	label      string
	fields     []schema.FieldDescriptor
	roles      schema.FieldRoles
	records    []schema.Record
	issues     []schema.RowIssue
	categories []schema.CategoryOption

	// Active filter. window is nil for the unfiltered overview.
	window   *schema.Window
	category string

	// Date-only split for window, reused when only the category changes.
	dated *datedSplit

	matched  []schema.Record
	previous []schema.Record
}

type datedSplit struct {
	window   schema.Window
	current  []schema.Record
	previous []schema.Record
}

// Import discovers the schema of headers, normalizes rows and returns a new
// session showing the unfiltered overview. On error no session is produced, so
// a caller holding an older session keeps it intact.
func Import(source schema.SourceKind, label string, headers []string, rows []map[string]any, opts NormalizeOptions) (*Session, error) {
	if len(headers) == 0 {
		return nil, ErrEmptyHeaders
	}
	fields := DiscoverFields(headers)
	records, issues, err := Normalize(fields, rows, opts)
	if err != nil {
		return nil, err
	}
	roles := ResolveRoles(fields)

	s := &Session{
		id:         uuid.NewString(),
		source:     source,
		label:      label,
		fields:     fields,
		roles:      roles,
		records:    records,
		issues:     issues,
		categories: CategoryOptions(records, roles),
		category:   schema.AllCategories,
		matched:    records,
	}
	return s, nil
}

// ID returns the unique identifier of the import that produced the session.
func (s *Session) ID() string { return s.id }

// Source returns where the records came from.
func (s *Session) Source() schema.SourceKind { return s.source }

// Label returns the file name or backend the records were loaded from.
func (s *Session) Label() string { return s.label }

// Fields returns the discovered field descriptors in column order.
func (s *Session) Fields() []schema.FieldDescriptor { return s.fields }

// Roles returns the fields used for filtering and aggregation.
func (s *Session) Roles() schema.FieldRoles { return s.roles }

// Records returns the full normalized record set.
func (s *Session) Records() []schema.Record { return s.records }

// Issues returns the problems defaulted during a lenient import.
func (s *Session) Issues() []schema.RowIssue { return s.issues }

// Categories returns the category filter options.
func (s *Session) Categories() []schema.CategoryOption { return s.categories }

// Window returns the active date window, or nil for the overview.
func (s *Session) Window() *schema.Window { return s.window }

// Category returns the active category filter.
func (s *Session) Category() string { return s.category }

// Matched returns the records selected by the active filter.
func (s *Session) Matched() []schema.Record { return s.matched }

// PreviousPeriod returns the records of the window preceding the active one.
func (s *Session) PreviousPeriod() []schema.Record { return s.previous }

// Summary describes the import for API responses.
func (s *Session) Summary() schema.ImportSummary {
	return schema.ImportSummary{
		SessionID: s.id,
		Source:    s.label,
		Fields:    s.fields,
		Roles:     s.roles,
		Records:   len(s.records),
		Issues:    s.issues,
	}
}

// WithFilter returns a session filtered to [start, end] and category. The
// receiver is left untouched. If the window is unchanged, only the category
// is re-applied to the cached date split.
func (s *Session) WithFilter(start, end schema.Day, category string) (*Session, error) {
	window, err := ValidateRange(start, end)
	if err != nil {
		return nil, err
	}
	if len(s.records) == 0 {
		return nil, ErrNoRecords
	}
	if s.roles.Date == "" {
		return nil, ErrNoDateField
	}

	next := *s
	if s.dated == nil || !sameWindow(s.dated.window, window) {
		cur, prev := splitByWindow(s.records, s.roles.Date, window, PreviousWindow(window))
		next.dated = &datedSplit{window: window, current: cur, previous: prev}
	}
	next.window = &window
	next.category = normalizeCategory(category)
	next.matched = FilterCategory(next.dated.current, s.roles, category)
	next.previous = FilterCategory(next.dated.previous, s.roles, category)
	return &next, nil
}

// Overview returns the unfiltered view over all records, restricted only by
// category. It has no previous period.
func (s *Session) Overview(category string) *Session {
	next := *s
	next.window = nil
	next.category = normalizeCategory(category)
	next.matched = FilterCategory(s.records, s.roles, category)
	next.previous = nil
	return &next
}

// Metrics returns the snapshot of the matched records, the previous-period
// snapshot and the comparison. The last two are nil when there is nothing to
// compare against.
func (s *Session) Metrics() (schema.MetricsSnapshot, *schema.MetricsSnapshot, *schema.Comparison) {
	return PeriodOverPeriod(s.matched, s.previous, s.roles)
}

// Report renders the active view with the requested page of matched records.
func (s *Session) Report(page, pageSize int) schema.Report {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	current, previous, comparison := s.Metrics()

	report := schema.Report{
		SessionID:    s.id,
		Source:       s.source,
		Fields:       s.fields,
		Roles:        s.roles,
		Categories:   s.categories,
		Category:     s.category,
		Metrics:      current,
		Previous:     previous,
		Comparison:   comparison,
		TotalMatched: len(s.matched),
		Page:         page,
		PageSize:     pageSize,
		Records:      Paginate(s.matched, page, pageSize),
	}
	if s.window != nil {
		w := *s.window
		prev := PreviousWindow(w)
		report.Window = &w
		report.PreviousWindow = &prev
	}
	return report
}

// DailyCounts buckets the matched records per day across the active window.
func (s *Session) DailyCounts() []schema.DailyCount {
	return DailyCounts(s.matched, s.roles, s.window)
}

func normalizeCategory(category string) string {
	if IsAllCategories(category) {
		return schema.AllCategories
	}
	return category
}

func sameWindow(a, b schema.Window) bool {
	return a.Start.Equal(b.Start) && a.End.Equal(b.End)
}
