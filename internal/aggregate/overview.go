package aggregate

import "github.com/starford/daybook/internal/models"

// Slice is one wedge of an overview pie chart.
type Slice struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// Overview summarises a single day for the overview charts. Activity values
// are minutes, finance values are cents, habit values are counts. Zero
// wedges are omitted.
type Overview struct {
	Activities []Slice `json:"activities"`
	Finances   []Slice `json:"finances"`
	Habits     []Slice `json:"habits"`
}

// DailyOverview builds the overview charts for one day.
func DailyOverview(activities []models.Activity, finances []models.Finance, habits []models.Habit) Overview {
	ov := Overview{Activities: []Slice{}, Finances: []Slice{}, Habits: []Slice{}}
	for _, a := range activities {
		if m := Minutes(a); m > 0 {
			ov.Activities = append(ov.Activities, Slice{Name: a.Name, Value: int64(m)})
		}
	}

	r := RollupFinances(finances)
	ov.Finances = appendPositive(ov.Finances,
		Slice{Name: "Income", Value: r.Income},
		Slice{Name: "Expenses", Value: r.Expense},
		Slice{Name: "Investments", Value: r.Investment},
	)

	done := 0
	for _, h := range habits {
		if h.IsCompleted {
			done++
		}
	}
	ov.Habits = appendPositive(ov.Habits,
		Slice{Name: "Completed", Value: int64(done)},
		Slice{Name: "Not Completed", Value: int64(len(habits) - done)},
	)
	return ov
}

func appendPositive(dst []Slice, slices ...Slice) []Slice {
	for _, s := range slices {
		if s.Value > 0 {
			dst = append(dst, s)
		}
	}
	return dst
}
