// Package dates normalizes calendar-date strings for due dates.
//
// Due dates carry no time-of-day meaning: "2024-02-20" is a day in the
// user's local calendar, not an instant. Parsing it with a UTC-based
// parser shifts it to the previous day in zones behind UTC, so every
// conversion here goes through explicit year/month/day components in a
// caller-supplied location.
package dates

import (
	"strconv"
	"strings"
	"time"
)

// Urgency ranks a due date relative to the current day.
type Urgency int

const (
	UrgencyNormal Urgency = iota
	UrgencySoon
	UrgencyCritical
	UrgencyOverdue
)

// Classification is the display label and urgency for a due date.
type Classification struct {
	Label   string
	Urgency Urgency
}

// ToLocalCalendarDate parses a calendar-date string in the local timezone.
// See ToCalendarDate.
func ToLocalCalendarDate(s string) (time.Time, bool) {
	return ToCalendarDate(s, time.Local)
}

// ToCalendarDate parses "YYYY-MM-DD", optionally followed by a time/zone
// suffix which is discarded, into midnight of that day in loc. Malformed
// input yields ok=false; callers treat it as "no due date".
func ToCalendarDate(s string, loc *time.Location) (time.Time, bool) {
	datePart, _, _ := strings.Cut(s, "T")
	parts := strings.Split(datePart, "-")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc), true
}

// Classify compares a due date against the day of now, in now's location.
// Today and tomorrow are computed at call time, never cached.
func Classify(due time.Time, now time.Time) Classification {
	loc := now.Location()
	day := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	tomorrow := today.AddDate(0, 0, 1)

	switch {
	case day.Equal(today):
		return Classification{Label: "Today", Urgency: UrgencyCritical}
	case day.Equal(tomorrow):
		return Classification{Label: "Tomorrow", Urgency: UrgencySoon}
	case day.Before(today):
		return Classification{Label: day.Format("Jan 2"), Urgency: UrgencyOverdue}
	default:
		return Classification{Label: day.Format("Jan 2"), Urgency: UrgencyNormal}
	}
}

// ToRequestDate converts a "YYYY-MM-DD" day picked by the user into an
// RFC 3339 timestamp at local noon. Noon, not midnight: a midnight
// timestamp re-read in a different zone can land on the previous day,
// noon stays inside the intended calendar day for any offset.
func ToRequestDate(day string) (string, bool) {
	return ToRequestDateIn(day, time.Local)
}

// ToRequestDateIn is ToRequestDate with an explicit location.
func ToRequestDateIn(day string, loc *time.Location) (string, bool) {
	d, ok := ToCalendarDate(day, loc)
	if !ok {
		return "", false
	}
	noon := time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, loc)
	return noon.Format(time.RFC3339), true
}
