package schema

// AllCategories is the category sentinel that disables category filtering.
const AllCategories = "all"

// AllCategoriesLabel is the display label of the AllCategories sentinel.
const AllCategoriesLabel = "All Categories"

// CategoryOption is one entry of the category filter dropdown.
type CategoryOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Report is everything the presentation layer needs to render one view.
type Report struct {
	SessionID      string            `json:"session"`
	Source         SourceKind        `json:"source"`
	Fields         []FieldDescriptor `json:"fields"`
	Roles          FieldRoles        `json:"roles"`
	Categories     []CategoryOption  `json:"categories"`
	Category       string            `json:"category"`
	Window         *Window           `json:"window"`          // Nil for the unfiltered overview
	PreviousWindow *Window           `json:"previous_window"` // Nil for the unfiltered overview
	Metrics        MetricsSnapshot   `json:"metrics"`
	Previous       *MetricsSnapshot  `json:"previous_metrics"`
	Comparison     *Comparison       `json:"comparison"` // Nil when there is nothing to compare against
	TotalMatched   int               `json:"total_matched"`
	Page           int               `json:"page"`
	PageSize       int               `json:"page_size"`
	Records        []Record          `json:"records"` // The requested page of matched records
}

// ImportSummary reports the outcome of a successful import.
type ImportSummary struct {
	SessionID string            `json:"session"`
	Source    string            `json:"source"` // File name or store backend
	Fields    []FieldDescriptor `json:"fields"`
	Roles     FieldRoles        `json:"roles"`
	Records   int               `json:"records"`
	Issues    []RowIssue        `json:"issues"`
}

// DailyCount is the number of matched records on one calendar day.
type DailyCount struct {
	Day   Day `json:"day"`
	Count int `json:"count"`
}
