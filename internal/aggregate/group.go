// Package aggregate turns flat record lists fetched for a date range into
// the per-day maps, totals, and chart series the views render. Every
// function is pure and total: malformed records are skipped, never fatal.
package aggregate

import "github.com/starford/daybook/internal/models"

// GroupByDate buckets records under their own date. Every requested date is
// present in the result, with an empty (non-nil) slice when nothing matched.
// Records dated outside dates are kept under their own key.
func GroupByDate[T any](dates []string, records []T, dateOf func(T) string) map[string][]T {
	out := make(map[string][]T, len(dates))
	for _, d := range dates {
		out[d] = []T{}
	}
	for _, r := range records {
		d := dateOf(r)
		out[d] = append(out[d], r)
	}
	return out
}

// Flatten concatenates the buckets for dates in order.
func Flatten[T any](dates []string, byDate map[string][]T) []T {
	var out []T
	for _, d := range dates {
		out = append(out, byDate[d]...)
	}
	return out
}

// DatesWithReminders is the set of target dates carrying at least one
// reminder.
func DatesWithReminders(reminders []models.Reminder) map[string]struct{} {
	out := make(map[string]struct{}, len(reminders))
	for _, r := range reminders {
		out[r.TargetDate] = struct{}{}
	}
	return out
}

// Date accessors for GroupByDate.

func ActivityDate(a models.Activity) string { return a.Date }
func FinanceDate(f models.Finance) string   { return f.Date }
func HabitDate(h models.Habit) string       { return h.Date }
func JournalDate(j models.Journal) string   { return j.Date }
func ReminderDate(r models.Reminder) string { return r.TargetDate }
