package analysis

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCashGapSubtractsExpenseMagnitude(t *testing.T) {
	projection := []MonthlyAmount{
		{Month: Month{2024, time.October}, Amount: decimal.NewFromInt(1000)},
		{Month: Month{2024, time.November}, Amount: decimal.NewFromInt(1000)},
	}
	// Expenses stored as negative magnitudes still reduce the gap.
	upcoming := []MonthlyAmount{
		{Month: Month{2024, time.October}, Amount: decimal.NewFromInt(-400)},
	}

	entries := CashGap(projection, upcoming)
	require.Len(t, entries, 2)

	october := entries[0]
	assert.True(t, october.ProjectedExpense.Equal(decimal.NewFromInt(400)))
	assert.True(t, october.Gap.Equal(decimal.NewFromInt(600)))

	// No expense aggregate for November: gap is the full projected income.
	november := entries[1]
	assert.True(t, november.ProjectedExpense.IsZero())
	assert.True(t, november.Gap.Equal(decimal.NewFromInt(1000)))
}

func TestCashGapPositiveExpenses(t *testing.T) {
	projection := []MonthlyAmount{
		{Month: Month{2024, time.October}, Amount: decimal.NewFromInt(100)},
	}
	upcoming := []MonthlyAmount{
		{Month: Month{2024, time.October}, Amount: decimal.NewFromInt(250)},
	}

	entries := CashGap(projection, upcoming)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Gap.Equal(decimal.NewFromInt(-150)))
}
