// Package dateutil provides date parsing and resolution for day keys.
package dateutil

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidDateFormat is returned for dates not in YYYY-MM-DD format
// or an unrecognized keyword.
var ErrInvalidDateFormat = errors.New("date must be in YYYY-MM-DD format")

// DayKey is the storage key format for a day.
const DayKey = "2006-01-02"

var weekdayMap = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseDate parses a date string in YYYY-MM-DD format.
// If the string is empty, returns today's date.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return TruncateToDay(time.Now()), nil
	}
	t, err := time.Parse(DayKey, s)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekRange returns the Monday and Sunday of the ISO week containing t.
func WeekRange(t time.Time) (monday, sunday time.Time) {
	t = TruncateToDay(t)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday becomes day 7 in ISO week
	}
	monday = t.AddDate(0, 0, -(weekday - 1))
	sunday = monday.AddDate(0, 0, 6)
	return monday, sunday
}

// Resolve parses a date argument that can be:
//   - Empty string or "today": returns relativeTo date
//   - "yesterday"
//   - Weekday names: "monday" through "sunday" (most recent occurrence,
//     looking backward, since time is logged after the fact)
//   - Absolute date: "2025-01-15" (YYYY-MM-DD); past dates are fine
//
// All inputs are case-insensitive.
func Resolve(s string, relativeTo time.Time) (time.Time, error) {
	today := TruncateToDay(relativeTo)
	input := strings.ToLower(strings.TrimSpace(s))

	if input == "" || input == "today" {
		return today, nil
	}
	if input == "yesterday" {
		return today.AddDate(0, 0, -1), nil
	}

	if target, ok := weekdayMap[input]; ok {
		return lastWeekday(today, target), nil
	}

	result, err := time.Parse(DayKey, input)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return result, nil
}

// lastWeekday returns the most recent occurrence of the given weekday
// on or before today, except that today's own weekday means a week ago.
func lastWeekday(today time.Time, target time.Weekday) time.Time {
	daysBack := int(today.Weekday()) - int(target)
	if daysBack <= 0 {
		daysBack += 7
	}
	return today.AddDate(0, 0, -daysBack)
}
