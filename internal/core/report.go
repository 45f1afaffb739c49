package core

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// reportPrinter renders amounts with thousands separators and two decimals.
var reportPrinter = message.NewPrinter(language.English)

// FormatAmount renders a monetary value for display, e.g. 3000 -> "3,000.00".
func FormatAmount(v float64) string {
	return reportPrinter.Sprintf("%.2f", v)
}

// HealthReport composes the financial-health summary as a markdown-ish text
// document. Rendering markup is a presentation concern; the rule logic and
// ordering below are part of the contract:
//
//  1. summary block (income, expenses, net balance, savings rate)
//  2. top three expense categories with their share of total expenses
//  3. recommendations: savings rate under 10% or over 30% (disjoint bands;
//     10-30 yields no rate-based advice), then the largest expense category
//     whenever there are any expenses.
func HealthReport(sum Summary, currency string) string {
	var b strings.Builder

	b.WriteString("## Financial Health Report\n\n")
	b.WriteString("### Summary\n")
	fmt.Fprintf(&b, "- **Total Income:** %s %s\n", FormatAmount(sum.TotalIncome), currency)
	fmt.Fprintf(&b, "- **Total Expenses:** %s %s\n", FormatAmount(sum.TotalExpenses), currency)
	fmt.Fprintf(&b, "- **Net Balance:** %s %s\n", FormatAmount(sum.NetBalance), currency)
	fmt.Fprintf(&b, "- **Savings Rate:** %.1f%%\n", sum.SavingsRate)

	b.WriteString("\n### Top Expense Categories\n")
	top := sum.TopCategories(TopCategoriesReport)
	for _, c := range top {
		pct := 0.0
		if sum.TotalExpenses > 0 {
			pct = c.Amount / sum.TotalExpenses * 100
		}
		fmt.Fprintf(&b, "- **%s:** %s %s (%.1f%%)\n", c.Name, FormatAmount(c.Amount), currency, pct)
	}

	b.WriteString("\n### Recommendations\n")
	if sum.SavingsRate < 10 {
		b.WriteString("- Consider increasing your savings rate to at least 10-20% of income\n")
	} else if sum.SavingsRate > 30 {
		b.WriteString("- Excellent savings rate! Consider investing excess savings\n")
	}
	if sum.TotalExpenses > 0 && len(top) > 0 {
		fmt.Fprintf(&b, "- Review your **%s** expenses for potential savings\n", top[0].Name)
	}

	return b.String()
}
