package analysis

import (
	"sort"

	"github.com/shopspring/decimal"

	"cashgap/internal/ledger"
)

// GroupByMonth sums record amounts per (counterparty, category, month of
// due date). Rows are sorted on the grouping key so repeated runs over
// reordered input produce identical output.
func GroupByMonth(records []ledger.Record) []MonthGroup {
	type key struct {
		counterparty string
		category     string
		month        Month
	}
	sums := make(map[key]decimal.Decimal)
	for _, record := range records {
		k := key{record.Counterparty, record.Category, MonthOf(record.DueDate)}
		sums[k] = sums[k].Add(record.Amount)
	}

	rows := make([]MonthGroup, 0, len(sums))
	for k, amount := range sums {
		rows = append(rows, MonthGroup{
			Counterparty: k.counterparty,
			Category:     k.category,
			Month:        k.month,
			Amount:       amount,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Counterparty != rows[j].Counterparty {
			return rows[i].Counterparty < rows[j].Counterparty
		}
		if rows[i].Category != rows[j].Category {
			return rows[i].Category < rows[j].Category
		}
		return rows[i].Month.Before(rows[j].Month)
	})
	return rows
}

// GroupByDueDate sums record amounts per (counterparty, category, exact
// due date), sorted on the grouping key.
func GroupByDueDate(records []ledger.Record) []DueGroup {
	type key struct {
		counterparty string
		category     string
		dueDate      int64
	}
	sums := make(map[key]decimal.Decimal)
	for _, record := range records {
		k := key{record.Counterparty, record.Category, record.DueDate.Unix()}
		sums[k] = sums[k].Add(record.Amount)
	}

	rows := make([]DueGroup, 0, len(sums))
	for _, record := range records {
		k := key{record.Counterparty, record.Category, record.DueDate.Unix()}
		amount, ok := sums[k]
		if !ok {
			continue
		}
		delete(sums, k)
		rows = append(rows, DueGroup{
			Counterparty: k.counterparty,
			Category:     k.category,
			DueDate:      record.DueDate,
			Amount:       amount,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Counterparty != rows[j].Counterparty {
			return rows[i].Counterparty < rows[j].Counterparty
		}
		if rows[i].Category != rows[j].Category {
			return rows[i].Category < rows[j].Category
		}
		return rows[i].DueDate.Before(rows[j].DueDate)
	})
	return rows
}

// MonthlyByDueDate sums record amounts per month of due date, sorted
// chronologically. This feeds the upcoming-expense chart and the cash-gap
// lookup.
func MonthlyByDueDate(records []ledger.Record) []MonthlyAmount {
	sums := make(map[Month]decimal.Decimal)
	for _, record := range records {
		month := MonthOf(record.DueDate)
		sums[month] = sums[month].Add(record.Amount)
	}
	return sortedSeries(sums)
}

// TrailingMonthly sums record amounts per month of payment date over a
// fixed trailing window ending at endMonth, zero-filling months with no
// records. Payments outside the window are dropped. The window boundary
// is month-granular: a payment inside endMonth counts even when it falls
// after the reference day within that month.
func TrailingMonthly(records []ledger.Record, endMonth Month, window int) []MonthlyAmount {
	start := endMonth.AddMonths(-(window - 1))

	sums := make(map[Month]decimal.Decimal, window)
	for month := start; !month.After(endMonth); month = month.Next() {
		sums[month] = decimal.Zero
	}
	for _, record := range records {
		month := MonthOf(record.PaymentDate)
		if month.Before(start) || month.After(endMonth) {
			continue
		}
		sums[month] = sums[month].Add(record.Amount)
	}
	return sortedSeries(sums)
}

// SumAmounts totals the amounts of a record set.
func SumAmounts(records []ledger.Record) decimal.Decimal {
	total := decimal.Zero
	for _, record := range records {
		total = total.Add(record.Amount)
	}
	return total
}

func sortedSeries(sums map[Month]decimal.Decimal) []MonthlyAmount {
	series := make([]MonthlyAmount, 0, len(sums))
	for month, amount := range sums {
		series = append(series, MonthlyAmount{Month: month, Amount: amount})
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Month.Before(series[j].Month)
	})
	return series
}
