package aggregate

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/starford/daybook/internal/localdate"
	"github.com/starford/daybook/internal/models"
	"github.com/starford/daybook/internal/palette"
)

func minutes(v int) *int { return &v }

func TestGroupByDateKeepsEveryRequestedKey(t *testing.T) {
	dates := []string{"2024-01-01", "2024-01-02"}

	got := GroupByDate(dates, []models.Habit(nil), HabitDate)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	for _, d := range dates {
		if v, ok := got[d]; !ok || v == nil || len(v) != 0 {
			t.Errorf("%s: got %v (present=%v)", d, v, ok)
		}
	}

	records := []models.Habit{
		{ID: 3, Date: "2024-01-02"},
		{ID: 1, Date: "2024-01-05"},
		{ID: 2, Date: "2024-01-01"},
		{ID: 4, Date: "2024-01-02"},
	}
	got = GroupByDate(dates, records, HabitDate)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	ids := func(hs []models.Habit) []int64 {
		out := []int64{}
		for _, h := range hs {
			out = append(out, h.ID)
		}
		return out
	}
	want := map[string][]int64{"2024-01-01": {2}, "2024-01-02": {3, 4}, "2024-01-05": {1}}
	for d, w := range want {
		if diff := cmp.Diff(w, ids(got[d])); diff != "" {
			t.Errorf("%s (-want +got):\n%s", d, diff)
		}
	}
}

func TestDatesWithReminders(t *testing.T) {
	got := DatesWithReminders([]models.Reminder{
		{TargetDate: "2024-03-05"}, {TargetDate: "2024-03-05"}, {TargetDate: "2024-03-09"},
	})
	want := map[string]struct{}{"2024-03-05": {}, "2024-03-09": {}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestRollupAndBreakdown(t *testing.T) {
	fs := []models.Finance{
		{Date: "2024-03-01", FinanceType: models.FinanceIncome, Amount: 10000},
		{Date: "2024-03-01", FinanceType: models.FinanceExpense, Amount: 2500},
		{Date: "2024-03-01", FinanceType: models.FinanceInvestment, Amount: 2500},
	}
	r := RollupFinances(fs)
	if r != (FinanceRollup{Income: 10000, Expense: 2500, Investment: 2500}) {
		t.Fatalf("rollup = %+v", r)
	}
	d := r.Display()
	if d.Income.Text != "100.00" || d.Expense.Text != "25.00" || d.Investment.Text != "25.00" {
		t.Errorf("display = %+v", d)
	}
	if d.Income.Value != 100 || d.Net.Value != 50 {
		t.Errorf("values = %v, net %v", d.Income.Value, d.Net.Value)
	}

	dates := []string{"2024-03-01"}
	b := Breakdown(dates, GroupByDate(dates, fs, FinanceDate))
	if b.IncomePercent != 67 || b.ExpensePercent != 17 || b.InvestmentPercent != 17 {
		t.Errorf("percents = %d/%d/%d", b.IncomePercent, b.ExpensePercent, b.InvestmentPercent)
	}
	if b.Total.Text != "150.00" {
		t.Errorf("total = %s", b.Total.Text)
	}
}

func TestBreakdownUsesAbsoluteAmounts(t *testing.T) {
	dates := []string{"2024-03-01"}
	fs := []models.Finance{
		{Date: "2024-03-01", FinanceType: models.FinanceExpense, Amount: -500},
		{Date: "2024-03-01", FinanceType: models.FinanceIncome, Amount: 500},
	}
	b := Breakdown(dates, GroupByDate(dates, fs, FinanceDate))
	if b.ExpensePercent != 50 || b.IncomePercent != 50 {
		t.Errorf("percents = %+v", b)
	}
}

func TestBreakdownEmptyIsZero(t *testing.T) {
	dates := []string{"2024-03-01", "2024-03-02"}
	b := Breakdown(dates, GroupByDate(dates, []models.Finance(nil), FinanceDate))
	if b.IncomePercent != 0 || b.ExpensePercent != 0 || b.InvestmentPercent != 0 || b.Total.Cents != 0 {
		t.Errorf("breakdown = %+v", b)
	}
}

func TestThirtyDayFinanceTrendWithSparseData(t *testing.T) {
	dates, err := localdate.Range("2024-03-01", "2024-03-30")
	if err != nil {
		t.Fatal(err)
	}
	fs := []models.Finance{
		{Date: "2024-03-20", FinanceType: models.FinanceExpense, Amount: 1250},
		{Date: "2024-03-02", FinanceType: models.FinanceIncome, Amount: 5000},
		{Date: "2024-03-11", FinanceType: models.FinanceInvestment, Amount: 300},
	}
	byDate := GroupByDate(dates, fs, FinanceDate)
	if len(byDate) != 30 {
		t.Fatalf("len = %d, want 30", len(byDate))
	}
	empty := 0
	for _, v := range byDate {
		if len(v) == 0 {
			empty++
		}
	}
	if empty != 27 {
		t.Errorf("empty days = %d, want 27", empty)
	}

	trend := FinanceTrend(dates, byDate)
	if len(trend) != 30 {
		t.Fatalf("trend len = %d", len(trend))
	}
	for _, p := range trend {
		switch p.Date {
		case "2024-03-02":
			if p.Income != 50 || p.Net != 50 {
				t.Errorf("%s = %+v", p.Date, p)
			}
		case "2024-03-11":
			if p.Investment != 3 || p.Net != -3 {
				t.Errorf("%s = %+v", p.Date, p)
			}
		case "2024-03-20":
			if p.Expense != 12.5 || p.Net != -12.5 {
				t.Errorf("%s = %+v", p.Date, p)
			}
		default:
			if p.Income != 0 || p.Expense != 0 || p.Investment != 0 || p.Net != 0 {
				t.Errorf("%s should be zero: %+v", p.Date, p)
			}
		}
	}
	if trend[0].Label != "1" || trend[29].Label != "30" {
		t.Errorf("labels = %q..%q", trend[0].Label, trend[29].Label)
	}
}

func TestCompletionRate(t *testing.T) {
	if got := CompletionRate(nil); got != 0 {
		t.Errorf("empty = %d", got)
	}
	hs := []models.Habit{{IsCompleted: true}, {IsCompleted: true}, {}}
	if got := CompletionRate(hs); got != 67 {
		t.Errorf("rate = %d, want 67", got)
	}
}

func TestHabitTrend(t *testing.T) {
	dates := []string{"2024-03-04", "2024-03-05"}
	byDate := GroupByDate(dates, []models.Habit{{Date: "2024-03-05", IsCompleted: true}, {Date: "2024-03-05"}}, HabitDate)
	want := []HabitPoint{
		{Date: "2024-03-04", Label: "Mar 4", Rate: 0},
		{Date: "2024-03-05", Label: "Mar 5", Rate: 50},
	}
	if diff := cmp.Diff(want, HabitTrend(dates, byDate)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestChartLabel(t *testing.T) {
	if got := ChartLabel("2024-03-05", 7); got != "Mar 5" {
		t.Errorf("short = %q", got)
	}
	if got := ChartLabel("2024-03-05", 30); got != "5" {
		t.Errorf("long = %q", got)
	}
	if got := ChartLabel("garbage", 7); got != "garbage" {
		t.Errorf("bad = %q", got)
	}
}

func TestBuildTimeline(t *testing.T) {
	acts := []models.Activity{
		{ID: 1, Name: "Run", StartTime: "06:00", EndTime: "07:30"},
		{ID: 2, Name: "Lunch", StartTime: "12:00"},
		{ID: 3, Name: "Nap", EndTime: "15:00"},
		{ID: 4, Name: "Work", StartTime: "09:00", EndTime: "17:00"},
		{ID: 5, Name: "Broken", StartTime: "9am", EndTime: "10:00"},
		{ID: 6, Name: "Backwards", StartTime: "20:00", EndTime: "19:00"},
	}
	segs := BuildTimeline(acts)
	if len(segs) != 2 {
		t.Fatalf("segments = %d, want 2", len(segs))
	}
	if segs[0].Activity.ID != 4 || segs[1].Activity.ID != 1 {
		t.Errorf("order = %d, %d", segs[0].Activity.ID, segs[1].Activity.ID)
	}
	run := segs[1]
	if run.StartPercent != 25.0 || run.WidthPercent != 6.25 {
		t.Errorf("run = %v / %v", run.StartPercent, run.WidthPercent)
	}
	if run.Color != palette.ForName("Run").String() || run.Hex != palette.ForName("Run").Hex() {
		t.Errorf("color = %s / %s", run.Color, run.Hex)
	}
	if run.Style != palette.StyleFor(run.Color) {
		t.Errorf("style = %+v", run.Style)
	}
}

func TestGroupActivitiesByName(t *testing.T) {
	acts := []models.Activity{
		{ID: 1, Name: "Gym", StartTime: "06:00", EndTime: "07:00"},
		{ID: 2, Name: "Work", StartTime: "09:00", EndTime: "12:00"},
		{ID: 3, Name: "Gym", StartTime: "18:00", EndTime: "19:00"},
		{ID: 4, Name: "Read"},
	}
	got := GroupActivitiesByName(acts)
	type summary struct {
		Name string
		IDs  []int64
	}
	var sums []summary
	for _, g := range got {
		s := summary{Name: g.Name}
		for _, a := range g.Activities {
			s.IDs = append(s.IDs, a.ID)
		}
		sums = append(sums, s)
	}
	want := []summary{{"Gym", []int64{3, 1}}, {"Work", []int64{2}}}
	if diff := cmp.Diff(want, sums); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if got[0].Color != palette.ForName("Gym").String() || got[0].Hex != palette.ForName("Gym").Hex() {
		t.Errorf("color = %s / %s", got[0].Color, got[0].Hex)
	}
}

func TestTimeByActivityName(t *testing.T) {
	acts := []models.Activity{
		{Name: "Run", Duration: minutes(90)},
		{Name: "Run", StartTime: "06:00", EndTime: "06:30"},
		{Name: "Read", Duration: minutes(20)},
		{Name: "Idle"},
		{Name: "Blink", Duration: minutes(2)},
	}
	want := []TimeSpent{
		{Name: "Run", Minutes: 120, Hours: 2, Color: palette.ForName("Run").String(), Hex: palette.ForName("Run").Hex()},
		{Name: "Read", Minutes: 20, Hours: 0.3, Color: palette.ForName("Read").String(), Hex: palette.ForName("Read").Hex()},
	}
	if diff := cmp.Diff(want, TimeByActivityName(acts)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestTimeByActivityNameTopEightWithNameTies(t *testing.T) {
	var acts []models.Activity
	for i := 0; i < 10; i++ {
		acts = append(acts, models.Activity{Name: fmt.Sprintf("a%02d", 9-i), Duration: minutes(60)})
	}
	acts = append(acts, models.Activity{Name: "long", Duration: minutes(600)})
	got := TimeByActivityName(acts)
	if len(got) != TopActivities {
		t.Fatalf("len = %d", len(got))
	}
	names := []string{}
	for _, ts := range got {
		names = append(names, ts.Name)
	}
	want := []string{"long", "a00", "a01", "a02", "a03", "a04", "a05", "a06"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestDailyOverview(t *testing.T) {
	ov := DailyOverview(
		[]models.Activity{{Name: "Run", Duration: minutes(45)}, {Name: "Idle"}},
		[]models.Finance{{FinanceType: models.FinanceExpense, Amount: 1999}},
		[]models.Habit{{IsCompleted: true}, {IsCompleted: true}},
	)
	want := Overview{
		Activities: []Slice{{Name: "Run", Value: 45}},
		Finances:   []Slice{{Name: "Expenses", Value: 1999}},
		Habits:     []Slice{{Name: "Completed", Value: 2}},
	}
	if diff := cmp.Diff(want, ov); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	empty := DailyOverview(nil, nil, nil)
	if empty.Activities == nil || len(empty.Habits) != 0 {
		t.Errorf("empty overview = %+v", empty)
	}
}

func TestBuildCalendar(t *testing.T) {
	cm := BuildCalendar(2024, time.March, "2024-03-15", "2024-03-02", map[string]struct{}{"2024-03-20": {}})
	if cm.Title != "March 2024" {
		t.Errorf("title = %q", cm.Title)
	}
	// 1 March 2024 is a Friday.
	if len(cm.Cells) != 5+31 {
		t.Fatalf("cells = %d", len(cm.Cells))
	}
	for i := 0; i < 5; i++ {
		if !cm.Cells[i].Blank || cm.Cells[i].Date != "" {
			t.Errorf("cell %d should be blank: %+v", i, cm.Cells[i])
		}
	}
	first := cm.Cells[5]
	if first.Date != "2024-03-01" || first.Day != 1 {
		t.Errorf("first = %+v", first)
	}
	flags := map[string]CalendarCell{}
	for _, c := range cm.Cells {
		if c.Today || c.Selected || c.HasReminder {
			flags[c.Date] = c
		}
	}
	want := map[string]CalendarCell{
		"2024-03-02": {Date: "2024-03-02", Day: 2, Selected: true},
		"2024-03-15": {Date: "2024-03-15", Day: 15, Today: true},
		"2024-03-20": {Date: "2024-03-20", Day: 20, HasReminder: true},
	}
	if diff := cmp.Diff(want, flags); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if cm.Prev != (MonthRef{2024, time.February}) || cm.Next != (MonthRef{2024, time.April}) {
		t.Errorf("nav = %+v / %+v", cm.Prev, cm.Next)
	}

	dec := BuildCalendar(2024, time.December, "", "", nil)
	if dec.Next != (MonthRef{2025, time.January}) {
		t.Errorf("december next = %+v", dec.Next)
	}
}
