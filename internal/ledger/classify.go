package ledger

import (
	"strings"
	"time"
)

// typeRule maps a set of category substrings to a record type. Rules are
// evaluated in order and the first match wins; the raw category texts are
// not mutually exclusive ("Despesa Fapesb" is an expense, not an
// investment), so the order is a contract.
type typeRule struct {
	substrings []string
	recordType RecordType
}

var typeRules = []typeRule{
	{[]string{"receita"}, TypeIncome},
	{[]string{"despesa", "custo"}, TypeExpense},
	{[]string{"imposto"}, TypeTax},
	{[]string{"fapesb", "investimento"}, TypeInvestment},
}

// ClassifyType derives the categorical type label from a free-text
// category. Matching is case-insensitive substring containment.
func ClassifyType(category string) RecordType {
	category = strings.ToLower(category)
	for _, rule := range typeRules {
		for _, sub := range rule.substrings {
			if strings.Contains(category, sub) {
				return rule.recordType
			}
		}
	}
	return TypeOther
}

// StatusOf derives the settlement status from a payment date: a record is
// paid iff it has one.
func StatusOf(paymentDate time.Time) Status {
	if paymentDate.IsZero() {
		return StatusPending
	}
	return StatusPaid
}
