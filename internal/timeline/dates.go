package timeline

import (
	"math"
	"strings"
	"time"
)

// DefaultAnchor is the day the sector selloff began; all cumulative series start here.
const DefaultAnchor = "2026-02-03"

const dateLayout = "2006-01-02"

// ParseDate parses a calendar date as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.UTC)
}

// DaysBetween returns the whole calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}

// ShiftDate moves a calendar date by n days. Unparseable input yields "".
func ShiftDate(s string, n int) string {
	t, err := ParseDate(s)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, n).Format(dateLayout)
}

// ShortDate formats "2026-02-04" as "Feb 4".
func ShortDate(s string) string {
	t, err := ParseDate(s)
	if err != nil {
		return s
	}
	return t.Format("Jan 2")
}

// LongDate formats "2026-02-02" as "Feb 2, 2026".
func LongDate(s string) string {
	t, err := ParseDate(s)
	if err != nil {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

// MonthYear formats "2025-01-22" as "Jan 2025".
func MonthYear(s string) string {
	t, err := ParseDate(s)
	if err != nil {
		return ""
	}
	return t.Format("Jan 2006")
}

func weekday(s string) string {
	t, err := ParseDate(s)
	if err != nil {
		return ""
	}
	return t.Format("Mon")
}

var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	dateLayout,
}

// ParseInstant parses a fetched_at timestamp. Values without a zone are UTC.
func ParseInstant(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range instantLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
