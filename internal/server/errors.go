package server

import (
	"errors"
	"net/http"

	"github.com/huangsam/reportboard/core"
	"github.com/huangsam/reportboard/internal/chart"
	"github.com/huangsam/reportboard/internal/export"
	"github.com/huangsam/reportboard/internal/sheet"
)

// Request failures that are not covered by the core sentinels.
var (
	ErrNoImport      = errors.New("no file has been imported")
	ErrUnknownSource = errors.New("source must be import or store")
	ErrBadParameter  = errors.New("invalid parameter")
	ErrMissingFile   = errors.New("multipart field \"file\" is required")
)

// statusFor maps an error to the HTTP status reported to the client.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrNoImport), errors.Is(err, chart.ErrNoData):
		return http.StatusNotFound
	case errors.Is(err, ErrUnknownSource),
		errors.Is(err, ErrBadParameter),
		errors.Is(err, ErrMissingFile),
		errors.Is(err, export.ErrUnsupportedFormat),
		errors.Is(err, chart.ErrRangeTooLong),
		errors.Is(err, core.ErrMissingDateRange),
		errors.Is(err, core.ErrInvertedRange),
		errors.Is(err, core.ErrNoRecords),
		errors.Is(err, core.ErrNoDateField):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrImportRejected),
		errors.Is(err, core.ErrEmptyHeaders),
		errors.Is(err, sheet.ErrUnsupportedFormat),
		errors.Is(err, sheet.ErrEmptySheet),
		errors.Is(err, sheet.ErrMalformedFile):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
