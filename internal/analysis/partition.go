package analysis

import (
	"strings"
	"time"

	"cashgap/internal/ledger"
)

// Receivable income is identified by category text, not by the derived
// type label: financing inflows and own-resource transfers carry the
// "receita" word but are not operating income.
const (
	incomeMarker         = "receita"
	financialExclusion   = "financeira"
	ownResourceExclusion = "recurso próprio"
)

// Partition holds the four derived record sets the downstream aggregation
// works on. The expense sets are a disjoint split of pending expenses with
// a due date; records are copies, never aliases into the source ledger.
type Partition struct {
	OverdueExpenses  []ledger.Record
	UpcomingExpenses []ledger.Record
	PendingIncome    []ledger.Record
	ReceivedIncome   []ledger.Record
}

// PartitionRecords splits the ledger relative to the reference date.
// Pending expenses land in overdue (due on or before the reference date)
// or upcoming (due after it); a pending expense without a due date lands
// in neither. Receivables split on the presence of a payment date.
func PartitionRecords(records []ledger.Record, referenceDate time.Time) Partition {
	var p Partition
	for _, record := range records {
		switch {
		case record.Type == ledger.TypeExpense && record.Status == ledger.StatusPending:
			if record.DueDate.IsZero() {
				continue
			}
			if record.DueDate.After(referenceDate) {
				p.UpcomingExpenses = append(p.UpcomingExpenses, record)
			} else {
				p.OverdueExpenses = append(p.OverdueExpenses, record)
			}
		case isReceivable(record.Category):
			if record.PaymentDate.IsZero() {
				p.PendingIncome = append(p.PendingIncome, record)
			} else {
				p.ReceivedIncome = append(p.ReceivedIncome, record)
			}
		}
	}
	return p
}

// isReceivable applies the exclusion-filtered income rule: the category
// must mention income and must not be a financial or own-resource entry.
func isReceivable(category string) bool {
	category = strings.ToLower(category)
	if !strings.Contains(category, incomeMarker) {
		return false
	}
	if strings.Contains(category, financialExclusion) {
		return false
	}
	if strings.Contains(category, ownResourceExclusion) {
		return false
	}
	return true
}
