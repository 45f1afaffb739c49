package core

type BudgetStatus string

const (
	OnTrack       BudgetStatus = "On Track"        // usage <= 80%
	CloseToBudget BudgetStatus = "Close to Budget" // 80% < usage <= 100%
	OverBudget    BudgetStatus = "Over Budget"     // usage > 100%
	BudgetNotSet  BudgetStatus = "Not Applicable"  // no budget configured
)

// BudgetProgress compares average monthly spending to a configured ceiling.
type BudgetProgress struct {
	MonthlyBudget float64
	UsagePct      float64 // unclamped percentage of the budget used
	Fraction      float64 // usage clamped to [0,1], for progress bars
	Status        BudgetStatus
}

// EvaluateBudget classifies spending against the budget. A budget of zero
// means "no budget set" and yields BudgetNotSet instead of a division by
// zero. The status is computed from the unclamped percentage: usage over
// 100% must classify as OverBudget, not get capped before the comparison.
func EvaluateBudget(avgMonthlyExpense, monthlyBudget float64) BudgetProgress {
	if monthlyBudget <= 0 {
		return BudgetProgress{Status: BudgetNotSet}
	}

	pct := avgMonthlyExpense / monthlyBudget * 100

	fraction := pct / 100
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}

	status := OnTrack
	switch {
	case pct > 100:
		status = OverBudget
	case pct > 80:
		status = CloseToBudget
	}

	return BudgetProgress{
		MonthlyBudget: monthlyBudget,
		UsagePct:      pct,
		Fraction:      fraction,
		Status:        status,
	}
}
