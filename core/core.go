// Package core has the report engine: schema discovery, record normalization,
// date and category filtering, metrics aggregation and period comparison.
// Nothing in here does I/O; callers hand it fully materialized rows.
package core

import "github.com/huangsam/reportboard/schema"

// ReportRequest is the user supplied view selection.
// Leaving both dates zero asks for the unfiltered overview.
type ReportRequest struct {
	Start    schema.Day
	End      schema.Day
	Category string
	Page     int
	PageSize int
}

// HasRange reports whether either bound was given.
func (r ReportRequest) HasRange() bool {
	return !r.Start.IsZero() || !r.End.IsZero()
}

// Apply returns s narrowed to the request. A half-open range is a validation error.
func Apply(s *Session, req ReportRequest) (*Session, error) {
	if !req.HasRange() {
		return s.Overview(req.Category), nil
	}
	return s.WithFilter(req.Start, req.End, req.Category)
}

// BuildReport applies req to s and renders the resulting view.
func BuildReport(s *Session, req ReportRequest) (schema.Report, error) {
	view, err := Apply(s, req)
	if err != nil {
		return schema.Report{}, err
	}
	return view.Report(req.Page, req.PageSize), nil
}
