// Package activitytime parses HH:MM time-of-day strings and orders
// optionally-timed records.
package activitytime

import (
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay is the length of the timeline scale.
const MinutesPerDay = 1440

// NoTime is the sort key of a record without a usable start time.
const NoTime = -1

// ParseMinutes converts "HH:MM" into minutes since midnight. "24:00" is
// accepted as the end of the day.
func ParseMinutes(s string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 {
		return 0, fmt.Errorf("activitytime: malformed time %q", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("activitytime: malformed time %q", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("activitytime: malformed time %q", s)
	}
	if h < 0 || m < 0 || m > 59 || h > 24 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("activitytime: time out of range %q", s)
	}
	return h*60 + m, nil
}

// SortKey returns the start minute, or NoTime when start is empty or
// malformed.
func SortKey(start string) int {
	if start == "" {
		return NoTime
	}
	m, err := ParseMinutes(start)
	if err != nil {
		return NoTime
	}
	return m
}

// CompareDesc orders start times latest first, with untimed records last.
// Two untimed records compare equal.
func CompareDesc(a, b string) int {
	ka, kb := SortKey(a), SortKey(b)
	switch {
	case ka == NoTime && kb == NoTime:
		return 0
	case ka == NoTime:
		return 1
	case kb == NoTime:
		return -1
	}
	return kb - ka
}

// SpanMinutes returns end minus start when both parse and end is strictly
// after start.
func SpanMinutes(start, end string) (int, bool) {
	if start == "" || end == "" {
		return 0, false
	}
	s, err := ParseMinutes(start)
	if err != nil {
		return 0, false
	}
	e, err := ParseMinutes(end)
	if err != nil || e <= s {
		return 0, false
	}
	return e - s, true
}
