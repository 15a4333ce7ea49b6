package contract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/reportboard/schema"
)

// relativeTimeRe captures "N [units] ago", e.g. "2 weeks ago" or "30 days ago".
var relativeTimeRe = regexp.MustCompile(`^(\d+)\s+(year|month|week|day)s?\s+ago$`)

// ParseRelativeTime converts strings like "3 months ago" into a time before now.
func ParseRelativeTime(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	matches := relativeTimeRe.FindStringSubmatch(s)
	if len(matches) == 0 {
		return time.Time{}, fmt.Errorf("invalid relative time format: %s", s)
	}

	value, err := strconv.Atoi(matches[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid relative time value: %w", err)
	}

	switch matches[2] {
	case "year":
		return now.AddDate(-value, 0, 0), nil
	case "month":
		return now.AddDate(0, -value, 0), nil
	case "week":
		return now.AddDate(0, 0, -7*value), nil
	default: // day
		return now.AddDate(0, 0, -value), nil
	}
}

// ParseDayInput reads a user supplied range bound. It accepts YYYY-MM-DD,
// RFC3339, today, yesterday or a relative "N units ago" anchored at now.
func ParseDayInput(s string, now time.Time) (schema.Day, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "today":
		return schema.DayOf(now), nil
	case "yesterday":
		return schema.DayOf(now).AddDays(-1), nil
	}
	if d, err := schema.ParseDay(s); err == nil {
		return d, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return schema.DayOf(t), nil
	}
	t, err := ParseRelativeTime(s, now)
	if err != nil {
		return schema.Day{}, fmt.Errorf("invalid date %q. Expected YYYY-MM-DD, RFC3339, today or 'N [units] ago'", s)
	}
	return schema.DayOf(t), nil
}
