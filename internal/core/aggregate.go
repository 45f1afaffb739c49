package core

import "sort"

// monthsPerYear is the fixed divisor for the average monthly expense. The
// division is by 12 regardless of the actual data span, so short spans
// understate the average; consumers that need a span-aware figure should
// derive it from Monthly instead.
const monthsPerYear = 12

type (
	// CategoryAmount is an expense total for one category, stored as an
	// absolute value.
	CategoryAmount struct {
		Name   string
		Amount float64
	}

	// MonthFlow is the income/expense pair for one calendar month. Expense is
	// an absolute value. A month appears only if it has at least one
	// transaction; zero-filling is a consumer concern.
	MonthFlow struct {
		Month   string // "2006-01"
		Income  float64
		Expense float64
	}

	// Summary is the derived, immutable aggregate snapshot of one set. It is
	// recomputed in full on every request.
	Summary struct {
		TotalIncome       float64
		TotalExpenses     float64
		NetBalance        float64
		SavingsRate       float64 // percent of income retained; 0 when income is 0
		AvgMonthlyExpense float64
		ByCategory        []CategoryAmount // expense ranking, descending
		Monthly           []MonthFlow      // ascending by month
	}
)

// Top-N sizes used by consumers of the category ranking.
const (
	TopCategoriesReport = 3
	TopCategoriesChart  = 10
)

// Aggregate computes the summary snapshot for a normalized set. For equal
// inputs the output is identical regardless of transaction order: the
// category ranking sorts descending by amount with ties broken by name, and
// the monthly series sorts by month key.
func Aggregate(s TransactionSet) Summary {
	var sum Summary

	byCategory := map[string]float64{}
	byMonth := map[string]*MonthFlow{}

	for _, t := range s.Transactions {
		month := t.Date.Format("2006-01")
		flow, ok := byMonth[month]
		if !ok {
			flow = &MonthFlow{Month: month}
			byMonth[month] = flow
		}

		if t.Amount > 0 {
			sum.TotalIncome += t.Amount
			flow.Income += t.Amount
		} else if t.Amount < 0 {
			sum.TotalExpenses += -t.Amount
			flow.Expense += -t.Amount
			byCategory[t.Category] += -t.Amount
		}
		// Zero amounts classify as Expense but contribute to no total.
	}

	sum.NetBalance = sum.TotalIncome - sum.TotalExpenses
	if sum.TotalIncome > 0 {
		sum.SavingsRate = sum.NetBalance / sum.TotalIncome * 100
	}
	sum.AvgMonthlyExpense = sum.TotalExpenses / monthsPerYear

	sum.ByCategory = make([]CategoryAmount, 0, len(byCategory))
	for name, amount := range byCategory {
		sum.ByCategory = append(sum.ByCategory, CategoryAmount{Name: name, Amount: amount})
	}
	sort.Slice(sum.ByCategory, func(i, j int) bool {
		if sum.ByCategory[i].Amount != sum.ByCategory[j].Amount {
			return sum.ByCategory[i].Amount > sum.ByCategory[j].Amount
		}
		return sum.ByCategory[i].Name < sum.ByCategory[j].Name
	})

	sum.Monthly = make([]MonthFlow, 0, len(byMonth))
	for _, flow := range byMonth {
		sum.Monthly = append(sum.Monthly, *flow)
	}
	sort.Slice(sum.Monthly, func(i, j int) bool {
		return sum.Monthly[i].Month < sum.Monthly[j].Month
	})

	return sum
}

// TopCategories returns the first n entries of the expense ranking.
func (s Summary) TopCategories(n int) []CategoryAmount {
	if n > len(s.ByCategory) {
		n = len(s.ByCategory)
	}
	out := make([]CategoryAmount, n)
	copy(out, s.ByCategory[:n])
	return out
}

// MonthlyNet returns the net balance (income minus expense) per month, in
// month order.
func (s Summary) MonthlyNet() []CategoryAmount {
	out := make([]CategoryAmount, 0, len(s.Monthly))
	for _, m := range s.Monthly {
		out = append(out, CategoryAmount{Name: m.Month, Amount: m.Income - m.Expense})
	}
	return out
}
