package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"cashgap/internal/analysis"
)

func sampleResult() *analysis.Result {
	return &analysis.Result{
		ReferenceDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		EMASpan:       analysis.DefaultEMASpan,
		OverdueExpenses: analysis.MonthGroupSummary{
			Rows: []analysis.MonthGroup{
				{
					Counterparty: "X",
					Category:     "despesa transporte",
					Month:        analysis.Month{Year: 2024, Mon: time.January},
					Amount:       decimal.NewFromInt(100),
				},
			},
			Total: decimal.NewFromInt(100),
			Count: 1,
		},
		Projection: []analysis.MonthlyAmount{
			{Month: analysis.Month{Year: 2024, Mon: time.March}, Amount: decimal.NewFromInt(500)},
		},
		CashGap: []analysis.GapEntry{
			{
				Month:            analysis.Month{Year: 2024, Mon: time.March},
				ProjectedIncome:  decimal.NewFromInt(500),
				ProjectedExpense: decimal.NewFromInt(200),
				Gap:              decimal.NewFromInt(300),
			},
		},
	}
}

func TestWriteWorkbook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter().Write(sampleResult(), &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, "Overdue Expenses")
	assert.Contains(t, sheets, "Upcoming Expenses")
	assert.Contains(t, sheets, "Pending Income")
	assert.Contains(t, sheets, "Cash Gap")

	counterparty, err := f.GetCellValue("Overdue Expenses", "A2")
	require.NoError(t, err)
	assert.Equal(t, "X", counterparty)

	month, err := f.GetCellValue("Overdue Expenses", "C2")
	require.NoError(t, err)
	assert.Equal(t, "2024-01", month)

	gap, err := f.GetCellValue("Cash Gap", "D2")
	require.NoError(t, err)
	assert.Equal(t, "300", gap)
}

func TestWriteInsufficientDataNotice(t *testing.T) {
	result := sampleResult()
	result.InsufficientIncomeData = true
	result.Projection = nil
	result.CashGap = nil

	var buf bytes.Buffer
	require.NoError(t, NewWriter().Write(result, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.NotContains(t, f.GetSheetList(), "Cash Gap")

	notice, err := f.GetCellValue("Projection", "A1")
	require.NoError(t, err)
	assert.Contains(t, notice, "Insufficient income data")
}
