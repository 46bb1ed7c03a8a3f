// utils/dates.go
package utils

import (
	"fmt"
	"time"
)

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func DaysBetween(start, end time.Time) int {
	start = BeginningOfDay(start)
	end = BeginningOfDay(end)
	return int(end.Sub(start).Hours() / 24)
}

// DiffMinutes is the whole number of minutes from now until due,
// floor-rounded, negative when due is in the past.
func DiffMinutes(due, now time.Time) int {
	d := due.Sub(now)
	if d >= 0 {
		return int(d / time.Minute)
	}
	// integer division truncates toward zero; floor instead
	m := int(d / time.Minute)
	if d%time.Minute != 0 {
		m--
	}
	return m
}

// FormatRemaining renders the time left until due as a coarse human
// string: minutes under an hour, hours under a day, days otherwise,
// always floor-rounded. Past or unset due dates never go negative.
func FormatRemaining(due *time.Time, now time.Time) string {
	if due == nil {
		return "No date set"
	}
	diff := due.Sub(now)
	if diff <= 0 {
		return "0m left"
	}
	mins := int(diff / time.Minute)
	if mins < 60 {
		return fmt.Sprintf("%dm left", mins)
	}
	hours := mins / 60
	if hours < 24 {
		return fmt.Sprintf("%dh left", hours)
	}
	return fmt.Sprintf("%dd left", hours/24)
}
