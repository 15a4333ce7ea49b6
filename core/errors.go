package core

import (
	"errors"
	"fmt"

	"github.com/huangsam/reportboard/schema"
)

// Filter validation failures. These are distinct from a valid filter with zero matches.
var (
	ErrMissingDateRange = errors.New("both start and end dates are required")
	ErrInvertedRange    = errors.New("start date cannot be after end date")
	ErrNoRecords        = errors.New("no records loaded")
	ErrNoDateField      = errors.New("records have no date field to filter on")
)

// Import failures.
var (
	ErrEmptyHeaders   = errors.New("header row is empty")
	ErrImportRejected = errors.New("import rejected")
)

// ImportError aggregates every row problem that made a strict import fail.
type ImportError struct {
	Issues []schema.RowIssue
}

// Error implements the error interface.
func (e *ImportError) Error() string {
	switch len(e.Issues) {
	case 0:
		return ErrImportRejected.Error()
	case 1:
		return fmt.Sprintf("%s: %s", ErrImportRejected, e.Issues[0].Error())
	default:
		return fmt.Sprintf("%s: %s (and %d more)", ErrImportRejected, e.Issues[0].Error(), len(e.Issues)-1)
	}
}

// Unwrap exposes ErrImportRejected and every issue to errors.Is and errors.As.
func (e *ImportError) Unwrap() []error {
	errs := make([]error, 0, len(e.Issues)+1)
	errs = append(errs, ErrImportRejected)
	for _, issue := range e.Issues {
		errs = append(errs, issue)
	}
	return errs
}
