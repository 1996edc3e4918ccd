package analysis

import (
	"time"

	"github.com/shopspring/decimal"
)

// EMA span presets observed in practice: 8 is the default smoothing span,
// 3 the short reactive one.
const (
	DefaultEMASpan = 8
	ShortEMASpan   = 3
)

// Options parameterizes a ledger analysis. The zero value selects "today"
// as the reference date and the default EMA span.
type Options struct {
	// ReferenceDate is the temporal cut: expenses due on or before it are
	// overdue, later ones upcoming.
	ReferenceDate time.Time

	// EMASpan is the smoothing span for the income projection.
	EMASpan int
}

// MonthGroup is an aggregate row keyed by counterparty, category and the
// month of the due date.
type MonthGroup struct {
	Counterparty string          `json:"counterparty"`
	Category     string          `json:"category"`
	Month        Month           `json:"month"`
	Amount       decimal.Decimal `json:"amount"`
}

// DueGroup is an aggregate row keyed by counterparty, category and the
// exact due date.
type DueGroup struct {
	Counterparty string          `json:"counterparty"`
	Category     string          `json:"category"`
	DueDate      time.Time       `json:"due_date"`
	Amount       decimal.Decimal `json:"amount"`
}

// MonthlyAmount is one point of a monthly series.
type MonthlyAmount struct {
	Month  Month           `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// GapEntry is one month of the cash-gap projection.
type GapEntry struct {
	Month            Month           `json:"month"`
	ProjectedIncome  decimal.Decimal `json:"projected_income"`
	ProjectedExpense decimal.Decimal `json:"projected_expense"`
	Gap              decimal.Decimal `json:"gap"`
}

// MonthGroupSummary is an aggregate table grouped by month plus its total
// and underlying record count.
type MonthGroupSummary struct {
	Rows  []MonthGroup    `json:"rows"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// DueGroupSummary is an aggregate table grouped by due date plus its total
// and underlying record count.
type DueGroupSummary struct {
	Rows  []DueGroup      `json:"rows"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// Result is the full output of one analysis pass, shaped for the
// presentation layer: tables, chart series and the projection guard notice.
type Result struct {
	ReferenceDate time.Time `json:"reference_date"`
	EMASpan       int       `json:"ema_span"`

	OverdueExpenses  MonthGroupSummary `json:"overdue_expenses"`
	UpcomingExpenses DueGroupSummary   `json:"upcoming_expenses"`
	UpcomingMonthly  []MonthlyAmount   `json:"upcoming_monthly"`

	PendingIncome   DueGroupSummary `json:"pending_income"`
	ReceivedMonthly []MonthlyAmount `json:"received_monthly"`

	Projection []MonthlyAmount `json:"projection,omitempty"`
	CashGap    []GapEntry      `json:"cash_gap,omitempty"`

	// InsufficientIncomeData is set when the observed income series sums
	// to zero or less; Projection and CashGap are then omitted while the
	// expense-side results remain populated.
	InsufficientIncomeData bool `json:"insufficient_income_data"`
}
