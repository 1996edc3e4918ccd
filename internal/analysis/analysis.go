// Package analysis turns a loaded ledger into a cash-flow picture: overdue
// and upcoming payables, receivable income, an EMA-based income projection
// and the resulting cash-gap series. Run is a pure function of its inputs;
// nothing is persisted between calls.
package analysis

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"cashgap/internal/ledger"
	"cashgap/internal/logger"
)

// trailingWindow is the length of the observed monthly income series.
const trailingWindow = 12

// Run analyzes the ledger relative to opts.ReferenceDate (today when
// zero). The upcoming-expense set is amount-imputed from paid history
// before aggregation. When the observed income series totals zero or
// less the projection and cash gap are skipped and the result carries
// the insufficient-data notice; the expense-side tables are always
// populated.
func Run(records []ledger.Record, opts Options) (*Result, error) {
	const op = "Run"
	log := logger.WithComponent("analysis")

	referenceDate := opts.ReferenceDate
	if referenceDate.IsZero() {
		referenceDate = time.Now()
	}
	span := opts.EMASpan
	if span == 0 {
		span = DefaultEMASpan
	}
	if span < 1 {
		return nil, fmt.Errorf("%s: %w: got %d", op, ErrInvalidSpan, span)
	}

	partition := PartitionRecords(records, referenceDate)
	upcoming := ImputeAmounts(partition.UpcomingExpenses, records)

	result := &Result{
		ReferenceDate: referenceDate,
		EMASpan:       span,
		OverdueExpenses: MonthGroupSummary{
			Rows:  GroupByMonth(partition.OverdueExpenses),
			Total: SumAmounts(partition.OverdueExpenses),
			Count: len(partition.OverdueExpenses),
		},
		UpcomingExpenses: DueGroupSummary{
			Rows:  GroupByDueDate(upcoming),
			Total: SumAmounts(upcoming),
			Count: len(upcoming),
		},
		UpcomingMonthly: MonthlyByDueDate(upcoming),
		PendingIncome: DueGroupSummary{
			Rows:  GroupByDueDate(partition.PendingIncome),
			Total: SumAmounts(partition.PendingIncome),
			Count: len(partition.PendingIncome),
		},
		ReceivedMonthly: TrailingMonthly(partition.ReceivedIncome, MonthOf(referenceDate), trailingWindow),
	}

	observedTotal := decimal.Zero
	for _, point := range result.ReceivedMonthly {
		observedTotal = observedTotal.Add(point.Amount)
	}
	if observedTotal.Sign() <= 0 {
		result.InsufficientIncomeData = true
		log.Warn().
			Str("reference_date", referenceDate.Format("2006-01-02")).
			Msg("No received income before the reference date, skipping projection")
		return result, nil
	}

	result.Projection = ProjectIncome(result.ReceivedMonthly, span)
	result.CashGap = CashGap(result.Projection, result.UpcomingMonthly)

	log.Info().
		Str("reference_date", referenceDate.Format("2006-01-02")).
		Int("ema_span", span).
		Int("overdue", result.OverdueExpenses.Count).
		Int("upcoming", result.UpcomingExpenses.Count).
		Int("projected_months", len(result.Projection)).
		Msg("Ledger analysis completed")

	return result, nil
}
