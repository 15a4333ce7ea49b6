// Package chart renders the daily request volume of a filtered record set as
// a PNG line chart using github.com/wcharczuk/go-chart/v2.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/huangsam/reportboard/schema"
	"github.com/wcharczuk/go-chart/v2"
)

// Default canvas size in pixels.
const (
	DefaultWidth  = 1024
	DefaultHeight = 400
)

// MaxDays is the longest date window that can be charted, one point per day.
const MaxDays = 366

// Chart failures.
var (
	ErrNoData       = errors.New("no dated records to chart")
	ErrRangeTooLong = fmt.Errorf("date range exceeds %d days", MaxDays)
)

// CheckWindow rejects windows too long to chart. A nil window charts only the
// days present in the data and always passes.
func CheckWindow(w *schema.Window) error {
	if w == nil {
		return nil
	}
	if days := w.Days(); days > MaxDays {
		return fmt.Errorf("%w: %s spans %d days", ErrRangeTooLong, w, days)
	}
	return nil
}

// Options controls the rendered chart.
type Options struct {
	Title  string
	Width  int
	Height int
}

// DailyVolume renders counts as a PNG to w. A single day is padded to a
// one-day span so the x range is never zero.
func DailyVolume(w io.Writer, counts []schema.DailyCount, opts Options) error {
	if len(counts) == 0 {
		return ErrNoData
	}
	if len(counts) > MaxDays {
		return fmt.Errorf("%w: got %d points", ErrRangeTooLong, len(counts))
	}
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	if opts.Title == "" {
		opts.Title = "Daily Requests"
	}

	times := make([]time.Time, len(counts))
	ys := make([]float64, len(counts))
	peak := 1.0
	for i, c := range counts {
		times[i] = c.Day.Time()
		ys[i] = float64(c.Count)
		if ys[i] > peak {
			peak = ys[i]
		}
	}
	if len(times) == 1 {
		times = append(times, times[0].Add(24*time.Hour))
		ys = append(ys, ys[0])
	}

	ch := chart.Chart{
		Title:      opts.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 48}},
		XAxis:      chart.XAxis{ValueFormatter: chart.TimeDateValueFormatter},
		YAxis: chart.YAxis{
			Name:           "Requests",
			Range:          &chart.ContinuousRange{Min: 0, Max: peak * 1.1},
			ValueFormatter: func(v any) string { return fmt.Sprintf("%.0f", v) },
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Requests",
				XValues: times,
				YValues: ys,
				Style: chart.Style{
					StrokeWidth: 2,
					StrokeColor: chart.ColorBlue,
					DotWidth:    3,
					DotColor:    chart.ColorBlue,
				},
			},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}
