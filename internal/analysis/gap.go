package analysis

import (
	"github.com/shopspring/decimal"
)

// CashGap merges the income projection with the monthly upcoming-expense
// totals. Months with no projected expense count as zero. The gap is
// projected income minus the absolute expense magnitude: ledgers commonly
// store expenses as negative values, and the signed-addition formula seen
// in the wild silently flips the result for positively stored expenses.
func CashGap(projection []MonthlyAmount, upcomingMonthly []MonthlyAmount) []GapEntry {
	expenses := make(map[Month]decimal.Decimal, len(upcomingMonthly))
	for _, point := range upcomingMonthly {
		expenses[point.Month] = point.Amount
	}

	entries := make([]GapEntry, 0, len(projection))
	for _, point := range projection {
		expense := expenses[point.Month].Abs()
		entries = append(entries, GapEntry{
			Month:            point.Month,
			ProjectedIncome:  point.Amount,
			ProjectedExpense: expense,
			Gap:              point.Amount.Sub(expense),
		})
	}
	return entries
}
