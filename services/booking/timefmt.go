package booking

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	TimeLayout  = "15:04"
	MonthLayout = "January 2006"
)

// ParseTime24 validates a 24-hour "HH:MM" value and returns it normalized.
func ParseTime24(s string) (string, error) {
	t, err := time.Parse(TimeLayout, strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("time %q is not HH:MM", s)
	}
	return t.Format(TimeLayout), nil
}

// FormatTime12 renders "14:30" as "2:30 PM". Invalid input is returned unchanged.
func FormatTime12(s string) string {
	t, err := time.Parse(TimeLayout, strings.TrimSpace(s))
	if err != nil {
		return s
	}
	return t.Format("3:04 PM")
}

// ParseDate validates a "YYYY-MM-DD" calendar date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q is not YYYY-MM-DD", s)
	}
	return d, nil
}

// MonthLabel is the display month of a date, e.g. "April 2026".
func MonthLabel(d time.Time) string {
	return d.Format(MonthLayout)
}
