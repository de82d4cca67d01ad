package localdate

import "time"

// Local is the calendar for time.Local and the wall clock.
var Local = New(time.Local, time.Now)

// Parse returns local midnight of key in time.Local.
func Parse(key string) (time.Time, error) { return Local.Parse(key) }

// IsValid reports whether s is a real YYYY-MM-DD day.
func IsValid(s string) bool { return Local.IsValid(s) }

// AddDays moves key by n calendar days.
func AddDays(key string, n int) (string, error) { return Local.AddDays(key, n) }

// Today returns today's key in time.Local.
func Today() string { return Local.Today() }

// LastNDays returns the n days ending with today, oldest first.
func LastNDays(n int) []string { return Local.LastNDays(n) }

// MonthDates returns every day of the month in ascending order.
func MonthDates(year int, month time.Month) []string { return Local.MonthDates(year, month) }

// FirstDayOfMonth returns local midnight on the first of key's month.
func FirstDayOfMonth(key string) (time.Time, error) { return Local.FirstDayOfMonth(key) }

// Range returns every key from start to end inclusive.
func Range(start, end string) ([]string, error) { return Local.Range(start, end) }

// Span counts the keys from start to end inclusive.
func Span(start, end string) (int, error) { return Local.Span(start, end) }
