package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/huangsam/reportboard/core"
	"github.com/huangsam/reportboard/internal/contract"
	"github.com/huangsam/reportboard/schema"
)

// viewParams is the view selection parsed from a query string.
type viewParams struct {
	source string
	req    core.ReportRequest
}

// parseView reads start, end, category, page, page_size and source.
func (s *Server) parseView(r *http.Request) (viewParams, error) {
	q := r.URL.Query()
	now := s.opts.Now()

	var p viewParams
	p.source = strings.ToLower(strings.TrimSpace(q.Get("source")))
	p.req.Category = q.Get("category")

	var err error
	if v := q.Get("start"); v != "" {
		if p.req.Start, err = contract.ParseDayInput(v, now); err != nil {
			return p, fmt.Errorf("%w: start: %v", ErrBadParameter, err)
		}
	}
	if v := q.Get("end"); v != "" {
		if p.req.End, err = contract.ParseDayInput(v, now); err != nil {
			return p, fmt.Errorf("%w: end: %v", ErrBadParameter, err)
		}
	}
	if p.req.Page, err = intParam(q.Get("page"), 1, 1, 0); err != nil {
		return p, fmt.Errorf("%w: page: %v", ErrBadParameter, err)
	}
	if p.req.PageSize, err = intParam(q.Get("page_size"), contract.DefaultPageSize, 1, contract.MaxPageSize); err != nil {
		return p, fmt.Errorf("%w: page_size: %v", ErrBadParameter, err)
	}
	return p, nil
}

// intParam parses v, returning def when blank. hi of 0 means unbounded.
func intParam(v string, def, lo, hi int) (int, error) {
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer", v)
	}
	if n < lo || (hi > 0 && n > hi) {
		if hi > 0 {
			return 0, fmt.Errorf("%d is outside [%d, %d]", n, lo, hi)
		}
		return 0, fmt.Errorf("%d is below %d", n, lo)
	}
	return n, nil
}

// parseImportOptions reads mode and required, falling back to the server defaults.
func (s *Server) parseImportOptions(r *http.Request) (core.NormalizeOptions, error) {
	q := r.URL.Query()
	opts := core.NormalizeOptions{Mode: s.opts.ImportMode, Required: s.opts.Required}

	if v := strings.ToLower(strings.TrimSpace(q.Get("mode"))); v != "" {
		mode := schema.ImportMode(v)
		if _, ok := schema.ValidImportModes[mode]; !ok {
			return opts, fmt.Errorf("%w: mode must be lenient or strict", ErrBadParameter)
		}
		opts.Mode = mode
	}
	if v := q.Get("required"); v != "" {
		opts.Required = contract.ParseRequiredKeys(v)
	}
	return opts, nil
}
