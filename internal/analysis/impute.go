package analysis

import (
	"github.com/shopspring/decimal"

	"cashgap/internal/ledger"
)

// historyKey identifies the historical records an upcoming expense can
// borrow an amount from.
type historyKey struct {
	description  string
	category     string
	counterparty string
}

type historyStats struct {
	total decimal.Decimal
	count int64
}

// ImputeAmounts fills zero amounts in the upcoming-expense set with the
// mean amount of paid records sharing the same description, category and
// counterparty. The full ledger supplies the history; only the returned
// copy of upcoming is modified, and records that already carry a non-zero
// amount are never touched. Upcoming records with no paid history keep
// their zero amount.
func ImputeAmounts(upcoming []ledger.Record, history []ledger.Record) []ledger.Record {
	means := paidMeans(history)

	imputed := make([]ledger.Record, len(upcoming))
	copy(imputed, upcoming)

	for i := range imputed {
		if imputed[i].HasAmount() {
			continue
		}
		key := historyKey{
			description:  imputed[i].Description,
			category:     imputed[i].Category,
			counterparty: imputed[i].Counterparty,
		}
		if mean, ok := means[key]; ok {
			imputed[i].Amount = mean
		}
	}

	return imputed
}

// paidMeans precomputes the mean paid amount per history key so imputation
// is a lookup instead of a per-record scan. Paid records with a missing
// amount carry no information and are left out of both the numerator and
// the denominator, so they cannot dilute the mean.
func paidMeans(history []ledger.Record) map[historyKey]decimal.Decimal {
	stats := make(map[historyKey]historyStats)
	for _, record := range history {
		if !record.IsPaid() || !record.HasAmount() {
			continue
		}
		key := historyKey{
			description:  record.Description,
			category:     record.Category,
			counterparty: record.Counterparty,
		}
		s := stats[key]
		s.total = s.total.Add(record.Amount)
		s.count++
		stats[key] = s
	}

	means := make(map[historyKey]decimal.Decimal, len(stats))
	for key, s := range stats {
		means[key] = s.total.Div(decimal.NewFromInt(s.count))
	}
	return means
}
