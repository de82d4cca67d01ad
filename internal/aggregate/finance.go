package aggregate

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/starford/daybook/internal/models"
)

// Amount is a money value in cents with its display forms.
type Amount struct {
	Cents int64   `json:"cents"`
	Value float64 `json:"value"`
	Text  string  `json:"text"`
}

// AmountOf converts cents for display. Accumulation stays in cents; this is
// the only place minor units become a fractional value.
func AmountOf(cents int64) Amount {
	d := decimal.New(cents, -2)
	return Amount{Cents: cents, Value: d.InexactFloat64(), Text: d.StringFixed(2)}
}

// FinanceRollup holds signed per-category totals in cents.
type FinanceRollup struct {
	Income     int64 `json:"income"`
	Expense    int64 `json:"expense"`
	Investment int64 `json:"investment"`
}

// RollupFinances sums amounts by category. Entries of unknown type are
// ignored.
func RollupFinances(finances []models.Finance) FinanceRollup {
	var r FinanceRollup
	for _, f := range finances {
		r.add(f.FinanceType, f.Amount)
	}
	return r
}

func (r *FinanceRollup) add(t models.FinanceType, cents int64) {
	switch t {
	case models.FinanceIncome:
		r.Income += cents
	case models.FinanceExpense:
		r.Expense += cents
	case models.FinanceInvestment:
		r.Investment += cents
	}
}

// Net is income minus expense minus investment.
func (r FinanceRollup) Net() int64 { return r.Income - r.Expense - r.Investment }

// Total is the sum of the three categories.
func (r FinanceRollup) Total() int64 { return r.Income + r.Expense + r.Investment }

// FinanceTotals is the display form of a rollup.
type FinanceTotals struct {
	Income     Amount `json:"income"`
	Expense    Amount `json:"expense"`
	Investment Amount `json:"investment"`
	Net        Amount `json:"net"`
}

// Display converts r for presentation.
func (r FinanceRollup) Display() FinanceTotals {
	return FinanceTotals{
		Income:     AmountOf(r.Income),
		Expense:    AmountOf(r.Expense),
		Investment: AmountOf(r.Investment),
		Net:        AmountOf(r.Net()),
	}
}

// Percent is round(part/total*100), or 0 when total is not positive.
func Percent(part, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// FinanceBreakdown is the share of each category over a range. Totals use
// absolute amounts so refunds and corrections still count as volume.
type FinanceBreakdown struct {
	Income            Amount `json:"income"`
	Expense           Amount `json:"expense"`
	Investment        Amount `json:"investment"`
	Total             Amount `json:"total"`
	IncomePercent     int    `json:"incomePercent"`
	ExpensePercent    int    `json:"expensePercent"`
	InvestmentPercent int    `json:"investmentPercent"`
}

// Breakdown sums absolute amounts for dates and computes category shares.
func Breakdown(dates []string, byDate map[string][]models.Finance) FinanceBreakdown {
	var r FinanceRollup
	for _, f := range Flatten(dates, byDate) {
		r.add(f.FinanceType, abs(f.Amount))
	}
	total := r.Total()
	return FinanceBreakdown{
		Income:            AmountOf(r.Income),
		Expense:           AmountOf(r.Expense),
		Investment:        AmountOf(r.Investment),
		Total:             AmountOf(total),
		IncomePercent:     Percent(r.Income, total),
		ExpensePercent:    Percent(r.Expense, total),
		InvestmentPercent: Percent(r.Investment, total),
	}
}

// FinancePoint is one day of the finance trend chart, in display units.
type FinancePoint struct {
	Date       string  `json:"date"`
	Label      string  `json:"label"`
	Income     float64 `json:"income"`
	Expense    float64 `json:"expense"`
	Investment float64 `json:"investment"`
	Net        float64 `json:"net"`
}

// FinanceTrend produces one point per date, zero for days without entries.
func FinanceTrend(dates []string, byDate map[string][]models.Finance) []FinancePoint {
	out := make([]FinancePoint, 0, len(dates))
	for _, d := range dates {
		r := RollupFinances(byDate[d])
		out = append(out, FinancePoint{
			Date:       d,
			Label:      ChartLabel(d, len(dates)),
			Income:     AmountOf(r.Income).Value,
			Expense:    AmountOf(r.Expense).Value,
			Investment: AmountOf(r.Investment).Value,
			Net:        AmountOf(r.Net()).Value,
		})
	}
	return out
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
