package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordType is the categorical label derived from a record's free-text category.
type RecordType string

const (
	TypeIncome     RecordType = "income"     // receita
	TypeExpense    RecordType = "expense"    // despesa, custo
	TypeTax        RecordType = "tax"        // imposto
	TypeInvestment RecordType = "investment" // fapesb, investimento
	TypeOther      RecordType = "other"
)

// Status indicates whether a record has been settled.
type Status string

const (
	StatusPaid    Status = "paid"
	StatusPending Status = "pending"
)

// Record is one row of the uploaded ledger after normalization and coercion.
// A zero DueDate or PaymentDate means the cell was empty or unparseable;
// the same goes for a zero Amount. Type and Status are derived: Type from
// the category text, Status from the presence of a payment date.
type Record struct {
	DueDate      time.Time       `json:"due_date"`
	PaymentDate  time.Time       `json:"payment_date"`
	Amount       decimal.Decimal `json:"amount"`
	Category     string          `json:"category"`
	Description  string          `json:"description"`
	Counterparty string          `json:"counterparty"`
	Type         RecordType      `json:"type"`
	Status       Status          `json:"status"`
}

// IsPaid returns true if the record has a payment date.
func (r *Record) IsPaid() bool {
	return r.Status == StatusPaid
}

// HasAmount returns true if the record carries a non-zero amount.
func (r *Record) HasAmount() bool {
	return !r.Amount.IsZero()
}
