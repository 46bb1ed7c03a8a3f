package utils

import (
	"testing"
	"time"
)

func TestFormatRemaining(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	at := func(d time.Duration) *time.Time {
		t := now.Add(d)
		return &t
	}

	tests := []struct {
		name string
		due  *time.Time
		want string
	}{
		{name: "nil due date", due: nil, want: "No date set"},
		{name: "past clamps to zero", due: at(-2 * time.Hour), want: "0m left"},
		{name: "due now", due: at(0), want: "0m left"},
		{name: "under a minute floors to zero", due: at(45 * time.Second), want: "0m left"},
		{name: "minutes", due: at(35 * time.Minute), want: "35m left"},
		{name: "59 minutes", due: at(59*time.Minute + 59*time.Second), want: "59m left"},
		{name: "one hour", due: at(time.Hour), want: "1h left"},
		{name: "hours floor", due: at(5*time.Hour + 45*time.Minute), want: "5h left"},
		{name: "23 hours", due: at(23*time.Hour + 59*time.Minute), want: "23h left"},
		{name: "one day", due: at(24 * time.Hour), want: "1d left"},
		{name: "days floor", due: at(49 * time.Hour), want: "2d left"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatRemaining(tt.due, now); got != tt.want {
				t.Errorf("FormatRemaining() = %q, want %q", got, tt.want)
			}
		})
	}
}

// unitRank orders the coarse units so monotonicity can be checked: a
// later due date must never format to a smaller unit/value pair.
func unitRank(s string) (int, int) {
	var n int
	var unit byte
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			n = n*10 + int(s[i]-'0')
			continue
		}
		unit = s[i]
		break
	}
	switch unit {
	case 'm':
		return 0, n
	case 'h':
		return 1, n
	default:
		return 2, n
	}
}

func TestFormatRemainingMonotonic(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	durations := []time.Duration{
		time.Minute, 30 * time.Minute, 59 * time.Minute,
		time.Hour, 90 * time.Minute, 12 * time.Hour, 23 * time.Hour,
		24 * time.Hour, 36 * time.Hour, 72 * time.Hour, 240 * time.Hour,
	}

	prevUnit, prevVal := -1, -1
	for _, d := range durations {
		due := now.Add(d)
		unit, val := unitRank(FormatRemaining(&due, now))
		if unit < prevUnit || (unit == prevUnit && val < prevVal) {
			t.Errorf("FormatRemaining not monotonic at %v", d)
		}
		prevUnit, prevVal = unit, val
	}
}

func TestDiffMinutes(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		due  time.Time
		want int
	}{
		{name: "exactly 10 minutes", due: now.Add(10 * time.Minute), want: 10},
		{name: "10m30s floors to 10", due: now.Add(10*time.Minute + 30*time.Second), want: 10},
		{name: "9m59s floors to 9", due: now.Add(9*time.Minute + 59*time.Second), want: 9},
		{name: "zero", due: now, want: 0},
		{name: "30s past floors to -1", due: now.Add(-30 * time.Second), want: -1},
		{name: "exactly 1m past", due: now.Add(-time.Minute), want: -1},
		{name: "1m30s past floors to -2", due: now.Add(-90 * time.Second), want: -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DiffMinutes(tt.due, now); got != tt.want {
				t.Errorf("DiffMinutes() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 12, 1, 0, 0, 0, time.UTC)
	if got := DaysBetween(start, end); got != 2 {
		t.Errorf("DaysBetween() = %d, want 2", got)
	}
}
