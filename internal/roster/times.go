// Package roster holds the pure scheduling math: clock-string arithmetic,
// time-slot generation and per-slot coverage aggregation. Nothing in here
// touches the database or the network.
package roster

import (
	"fmt"
)

// ParseClock parses a strict "HH:MM" string into minutes since midnight.
// This is the validation boundary: handlers reject malformed input here, and
// the rest of the package trusts its clock strings.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid clock string %q", s)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("invalid clock string %q", s)
		}
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	if h > 23 || m > 59 {
		return 0, fmt.Errorf("clock string %q out of range", s)
	}
	return h*60 + m, nil
}

// TimeToMinutes converts a validated "HH:MM" string to minutes since
// midnight. Input is assumed to have passed ParseClock.
func TimeToMinutes(s string) int {
	return int(s[0]-'0')*600 + int(s[1]-'0')*60 + int(s[3]-'0')*10 + int(s[4]-'0')
}

// MinutesToTime formats minutes since midnight as "HH:MM". Values of 1440 or
// more are not wrapped; callers normalize first if they need a wall-clock
// label.
func MinutesToTime(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// ShiftDuration returns the length of a shift in minutes. An end time before
// the start time means the shift crosses midnight, so a day is added rather
// than letting the difference go negative: 23:00-06:00 is 420 minutes.
func ShiftDuration(start, end string) int {
	s := TimeToMinutes(start)
	e := TimeToMinutes(end)
	if e < s {
		e += 24 * 60
	}
	return e - s
}

// TimesOverlap reports whether [s1,e1) and [s2,e2) intersect. Intervals are
// half-open, so ranges that merely touch do not overlap. Zero-padded clock
// strings compare correctly as plain strings.
func TimesOverlap(s1, e1, s2, e2 string) bool {
	return s1 < e2 && s2 < e1
}

// FormatTime renders "HH:MM" as a 12-hour label, e.g. "13:30" -> "1:30 PM".
func FormatTime(s string) string {
	m := TimeToMinutes(s)
	h := m / 60
	suffix := "AM"
	switch {
	case h == 0:
		h = 12
	case h == 12:
		suffix = "PM"
	case h > 12:
		h -= 12
		suffix = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", h, m%60, suffix)
}

// FormatDuration renders a minute count as "7h 30m".
func FormatDuration(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, m)
	}
}
