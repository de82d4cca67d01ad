// Package localdate converts between calendar days and canonical YYYY-MM-DD
// keys. Every computation stays in local calendar fields; instants are never
// converted through UTC, so a day near midnight never drifts.
package localdate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Layout is the canonical key format.
const Layout = "2006-01-02"

var keyRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Calendar resolves "today" and builds dates in a fixed location.
type Calendar struct {
	loc *time.Location
	now func() time.Time
}

// New returns a Calendar for loc. A nil loc means time.Local and a nil now
// means time.Now.
func New(loc *time.Location, now func() time.Time) *Calendar {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &Calendar{loc: loc, now: now}
}

// Location returns the calendar's location.
func (c *Calendar) Location() *time.Location {
	return c.loc
}

// Format returns the key of t using t's own calendar fields.
func Format(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// Parse returns local midnight of key. Out-of-range day or month values roll
// over (2024-02-30 becomes 2024-03-01); use IsValid to reject them.
func (c *Calendar) Parse(key string) (time.Time, error) {
	y, m, d, err := split(key)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, c.loc), nil
}

// IsValid reports whether s is exactly YYYY-MM-DD and names a real day.
func (c *Calendar) IsValid(s string) bool {
	if !keyRe.MatchString(s) {
		return false
	}
	t, err := c.Parse(s)
	if err != nil {
		return false
	}
	return Format(t) == s
}

// AddDays moves key by n calendar days.
func (c *Calendar) AddDays(key string, n int) (string, error) {
	y, m, d, err := split(key)
	if err != nil {
		return "", err
	}
	return Format(time.Date(y, time.Month(m), d+n, 0, 0, 0, 0, c.loc)), nil
}

// Today returns the key for the current day in the calendar's location.
func (c *Calendar) Today() string {
	return Format(c.now().In(c.loc))
}

// LastNDays returns the n days ending with today, oldest first.
func (c *Calendar) LastNDays(n int) []string {
	if n <= 0 {
		return []string{}
	}
	now := c.now().In(c.loc)
	out := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		out = append(out, Format(time.Date(now.Year(), now.Month(), now.Day()-i, 0, 0, 0, 0, c.loc)))
	}
	return out
}

// MonthDates returns every day of the month in ascending order.
func (c *Calendar) MonthDates(year int, month time.Month) []string {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, c.loc).Day()
	out := make([]string, 0, last)
	for day := 1; day <= last; day++ {
		out = append(out, Format(time.Date(year, month, day, 0, 0, 0, 0, c.loc)))
	}
	return out
}

// FirstDayOfMonth returns local midnight on the first of key's month.
func (c *Calendar) FirstDayOfMonth(key string) (time.Time, error) {
	t, err := c.Parse(key)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, c.loc), nil
}

const secondsPerDay = 24 * 60 * 60

// Span counts the keys from start to end inclusive, 0 when end is before
// start. Days are counted on calendar fields, so DST shifts do not matter.
func (c *Calendar) Span(start, end string) (int, error) {
	if !c.IsValid(start) {
		return 0, fmt.Errorf("localdate: invalid start %q", start)
	}
	if !c.IsValid(end) {
		return 0, fmt.Errorf("localdate: invalid end %q", end)
	}
	sy, sm, sd, _ := split(start)
	ey, em, ed, _ := split(end)
	from := time.Date(sy, time.Month(sm), sd, 0, 0, 0, 0, time.UTC)
	to := time.Date(ey, time.Month(em), ed, 0, 0, 0, 0, time.UTC)
	if to.Before(from) {
		return 0, nil
	}
	return int((to.Unix()-from.Unix())/secondsPerDay) + 1, nil
}

// Range returns every key from start to end inclusive. An end before start
// yields an empty range.
func (c *Calendar) Range(start, end string) ([]string, error) {
	n, err := c.Span(start, end)
	if err != nil {
		return nil, err
	}
	y, m, d, _ := split(start)
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Format(time.Date(y, time.Month(m), d+i, 0, 0, 0, 0, c.loc)))
	}
	return out, nil
}

func split(key string) (y, m, d int, err error) {
	parts := strings.Split(key, "-")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("localdate: malformed key %q", key)
	}
	nums := [3]int{}
	for i, p := range parts {
		n, convErr := strconv.Atoi(p)
		if convErr != nil {
			return 0, 0, 0, fmt.Errorf("localdate: malformed key %q", key)
		}
		nums[i] = n
	}
	return nums[0], nums[1], nums[2], nil
}
