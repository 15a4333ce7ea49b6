package schema

import (
	"fmt"
	"time"
)

// DayLayout is the canonical calendar day representation.
const DayLayout = "2006-01-02"

// Day is a timezone-naive calendar day. It is stored as midnight UTC so that
// comparisons and arithmetic never cross a DST boundary.
type Day struct {
	t time.Time
}

// NewDay returns the calendar day for the given year, month and day of month.
func NewDay(year int, month time.Month, day int) Day {
	return Day{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DayOf returns the calendar day of t as read on t's own clock.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return NewDay(y, m, d)
}

// ParseDay parses a YYYY-MM-DD string.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return Day{}, fmt.Errorf("invalid day %q: %w", s, err)
	}
	return Day{t: t}, nil
}

// Time returns the day as midnight UTC.
func (d Day) Time() time.Time { return d.t }

// IsZero reports whether d is the zero day.
func (d Day) IsZero() bool { return d.t.IsZero() }

// AddDays returns d shifted by n calendar days.
func (d Day) AddDays(n int) Day { return Day{t: d.t.AddDate(0, 0, n)} }

// Before reports whether d is earlier than o.
func (d Day) Before(o Day) bool { return d.t.Before(o.t) }

// After reports whether d is later than o.
func (d Day) After(o Day) bool { return d.t.After(o.t) }

// Equal reports whether d and o are the same calendar day.
func (d Day) Equal(o Day) bool { return d.t.Equal(o.t) }

// DaysUntil returns the number of calendar days from d to o (negative if o is earlier).
func (d Day) DaysUntil(o Day) int {
	// Unix seconds keep multi-century spans exact; time.Duration saturates near 292 years.
	return int((o.t.Unix() - d.t.Unix()) / 86400)
}

// String returns the day as YYYY-MM-DD, or an empty string for the zero day.
func (d Day) String() string {
	if d.t.IsZero() {
		return ""
	}
	return d.t.Format(DayLayout)
}

// MarshalText implements encoding.TextMarshaler.
func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Day) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Day{}
		return nil
	}
	parsed, err := ParseDay(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Window is an inclusive range of calendar days.
type Window struct {
	Start Day `json:"start"`
	End   Day `json:"end"`
}

// Days returns the window length in days, counting both ends.
func (w Window) Days() int {
	return w.Start.DaysUntil(w.End) + 1
}

// Contains reports whether d falls within the window.
func (w Window) Contains(d Day) bool {
	return !d.Before(w.Start) && !d.After(w.End)
}

// String renders the window as "start..end".
func (w Window) String() string {
	return w.Start.String() + ".." + w.End.String()
}
