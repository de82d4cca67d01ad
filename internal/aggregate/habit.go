package aggregate

import "github.com/starford/daybook/internal/models"

// CompletionRate is the rounded percentage of completed habits, 0 when
// there are none.
func CompletionRate(habits []models.Habit) int {
	done := 0
	for _, h := range habits {
		if h.IsCompleted {
			done++
		}
	}
	return Percent(int64(done), int64(len(habits)))
}

// HabitPoint is one day of the habit trend chart.
type HabitPoint struct {
	Date  string `json:"date"`
	Label string `json:"label"`
	Rate  int    `json:"rate"`
}

// HabitTrend produces one completion rate per date.
func HabitTrend(dates []string, byDate map[string][]models.Habit) []HabitPoint {
	out := make([]HabitPoint, 0, len(dates))
	for _, d := range dates {
		out = append(out, HabitPoint{
			Date:  d,
			Label: ChartLabel(d, len(dates)),
			Rate:  CompletionRate(byDate[d]),
		})
	}
	return out
}
