package domain

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the layout used for every timestamp leaving the domain.
// UTC values are written with an explicit "+00:00" offset.
const TimestampLayout = "2006-01-02T15:04:05.999999-07:00"

// DateLayout is the layout used for calendar dates.
const DateLayout = "2006-01-02"

// Accepted input layouts, tried in order. Fractional seconds are accepted by
// time.Parse after the seconds field even though no layout spells them out.
var timestampLayouts = []string{
	"2006-01-02T15:04:05-07:00",
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04-07:00",
	"2006-01-02T15:04",
	DateLayout,
}

// ParseTimestamp parses an ISO-8601 timestamp. A trailing "Z" is read as
// "+00:00"; values without an offset, including plain dates, are taken as UTC.
// Precision is truncated to microseconds, the precision of TimestampLayout.
func ParseTimestamp(s string) (time.Time, error) {
	value := strings.TrimSpace(s)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalidTimestamp)
	}
	if strings.HasSuffix(value, "Z") || strings.HasSuffix(value, "z") {
		value = value[:len(value)-1] + "+00:00"
	}
	if len(value) > 10 && value[10] == ' ' {
		value = value[:10] + "T" + value[11:]
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Truncate(time.Microsecond), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
}

// FormatTimestamp renders t with TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// ParseOptionalTimestamp parses s, returning the zero time for an empty string.
func ParseOptionalTimestamp(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, nil
	}
	return ParseTimestamp(s)
}

// DateOf returns the calendar date of t, read in t's own offset, as midnight UTC.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDate renders the calendar date of t.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DaysBetween returns the number of whole days from start to end.
// It never returns a negative value.
func DaysBetween(start, end time.Time) int {
	d := end.Sub(start)
	if d <= 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}
