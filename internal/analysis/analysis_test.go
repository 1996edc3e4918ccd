package analysis

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cashgap/internal/ledger"
)

func TestRunOverdueScenario(t *testing.T) {
	csv := "data de vencimento,data de pagamento,valor,categoria,descrição,cliente/fornecedor\n" +
		`05/01/2024,,"R$ 100,00",despesa transporte,Frete,X` + "\n"

	records, err := ledger.NewLoader("").Load(strings.NewReader(csv))
	require.NoError(t, err)

	result, err := Run(records, Options{
		ReferenceDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.Len(t, result.OverdueExpenses.Rows, 1)
	row := result.OverdueExpenses.Rows[0]
	assert.Equal(t, "X", row.Counterparty)
	assert.Equal(t, "despesa transporte", row.Category)
	assert.Equal(t, "2024-01", row.Month.String())
	assert.True(t, row.Amount.Equal(decimal.RequireFromString("100")))
	assert.Equal(t, 1, result.OverdueExpenses.Count)
	assert.True(t, result.OverdueExpenses.Total.Equal(decimal.RequireFromString("100")))
}

func TestRunImputationIgnoresEmptyPaidAmounts(t *testing.T) {
	// Two paid rent records, one with an empty amount cell. The upcoming
	// rent must be imputed from the parseable amount alone.
	csv := "data de vencimento,data de pagamento,valor,categoria,descrição,cliente/fornecedor\n" +
		`05/01/2024,10/01/2024,"R$ 100,00",Despesa Fixa,Aluguel,Imobiliária` + "\n" +
		`05/02/2024,10/02/2024,,Despesa Fixa,Aluguel,Imobiliária` + "\n" +
		`05/03/2024,,,Despesa Fixa,Aluguel,Imobiliária` + "\n"

	records, err := ledger.NewLoader("").Load(strings.NewReader(csv))
	require.NoError(t, err)

	result, err := Run(records, Options{ReferenceDate: date(2024, 2, 15)})
	require.NoError(t, err)

	require.Len(t, result.UpcomingExpenses.Rows, 1)
	assert.True(t, result.UpcomingExpenses.Rows[0].Amount.Equal(decimal.RequireFromString("100")),
		"got %s, want 100", result.UpcomingExpenses.Rows[0].Amount)
}

func TestRunInsufficientIncomeGuard(t *testing.T) {
	records := []ledger.Record{
		expense(date(2024, 3, 10), time.Time{}, "200"),
	}

	result, err := Run(records, Options{ReferenceDate: date(2024, 2, 1)})
	require.NoError(t, err)

	assert.True(t, result.InsufficientIncomeData)
	assert.Empty(t, result.Projection)
	assert.Empty(t, result.CashGap)
	// Expense-side output is still produced.
	assert.Equal(t, 1, result.UpcomingExpenses.Count)
}

func TestRunFullPipeline(t *testing.T) {
	ref := date(2024, 9, 30)
	records := []ledger.Record{
		// Received income across the trailing window.
		income("Receita de Serviços", date(2024, 7, 1), date(2024, 7, 10), "1000"),
		income("Receita de Serviços", date(2024, 8, 1), date(2024, 8, 10), "1000"),
		income("Receita de Serviços", date(2024, 9, 1), date(2024, 9, 10), "1000"),
		// Upcoming expense with an amount to impute.
		record("Aluguel", "Despesa Fixa", "Imobiliária", "0", false),
		// Its paid history.
		record("Aluguel", "Despesa Fixa", "Imobiliária", "500", true),
	}
	records[3].DueDate = date(2024, 10, 5)
	records[4].DueDate = date(2024, 6, 5)

	result, err := Run(records, Options{ReferenceDate: ref, EMASpan: 3})
	require.NoError(t, err)

	assert.False(t, result.InsufficientIncomeData)
	assert.Equal(t, 3, result.EMASpan)
	require.Len(t, result.ReceivedMonthly, 12)

	// October through December get a flat projection.
	require.Len(t, result.Projection, 3)
	assert.Equal(t, "2024-10", result.Projection[0].Month.String())

	// The upcoming expense was imputed from its paid history.
	require.Len(t, result.UpcomingExpenses.Rows, 1)
	assert.True(t, result.UpcomingExpenses.Rows[0].Amount.Equal(decimal.RequireFromString("500")))

	// The October gap subtracts the imputed expense from the projection.
	require.Len(t, result.CashGap, 3)
	october := result.CashGap[0]
	assert.True(t, october.ProjectedExpense.Equal(decimal.RequireFromString("500")))
	assert.True(t, october.Gap.Equal(october.ProjectedIncome.Sub(decimal.RequireFromString("500"))))
}

func TestRunRejectsNegativeSpan(t *testing.T) {
	_, err := Run(nil, Options{EMASpan: -1})
	assert.ErrorIs(t, err, ErrInvalidSpan)
}

func TestRunDefaultsReferenceDateToToday(t *testing.T) {
	result, err := Run(nil, Options{})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), result.ReferenceDate, time.Minute)
	assert.Equal(t, DefaultEMASpan, result.EMASpan)
}
