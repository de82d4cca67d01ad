package aggregate

import (
	"time"

	"github.com/starford/daybook/internal/localdate"
)

// Weekdays heads the month grid, Sunday first.
var Weekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// CalendarCell is one square of the month grid. Leading blanks pad the first
// week and carry no date.
type CalendarCell struct {
	Date        string `json:"date,omitempty"`
	Day         int    `json:"day,omitempty"`
	Blank       bool   `json:"blank,omitempty"`
	Today       bool   `json:"today,omitempty"`
	Selected    bool   `json:"selected,omitempty"`
	HasReminder bool   `json:"hasReminder,omitempty"`
}

// MonthRef identifies a neighbouring month.
type MonthRef struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// CalendarMonth is the month grid with navigation targets.
type CalendarMonth struct {
	Title    string         `json:"title"`
	Year     int            `json:"year"`
	Month    time.Month     `json:"month"`
	Weekdays []string       `json:"weekdays"`
	Cells    []CalendarCell `json:"cells"`
	Prev     MonthRef       `json:"prev"`
	Next     MonthRef       `json:"next"`
}

// BuildCalendar lays out a Sunday-first month grid. today and selected are
// date keys; reminderDates marks days with a reminder dot.
func BuildCalendar(year int, month time.Month, today, selected string, reminderDates map[string]struct{}) CalendarMonth {
	// Weekday and month arithmetic do not depend on the zone.
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	prev, next := first.AddDate(0, -1, 0), first.AddDate(0, 1, 0)

	cm := CalendarMonth{
		Title:    first.Format("January 2006"),
		Year:     first.Year(),
		Month:    first.Month(),
		Weekdays: Weekdays,
		Prev:     MonthRef{Year: prev.Year(), Month: prev.Month()},
		Next:     MonthRef{Year: next.Year(), Month: next.Month()},
	}
	for i := 0; i < int(first.Weekday()); i++ {
		cm.Cells = append(cm.Cells, CalendarCell{Blank: true})
	}
	for i, d := range localdate.MonthDates(first.Year(), first.Month()) {
		_, has := reminderDates[d]
		cm.Cells = append(cm.Cells, CalendarCell{
			Date:        d,
			Day:         i + 1,
			Today:       d == today,
			Selected:    d == selected,
			HasReminder: has,
		})
	}
	return cm
}
