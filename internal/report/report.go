// Package report renders an analysis result as an XLSX workbook, one sheet
// per output table. It is a presentation consumer of the analysis output.
package report

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"cashgap/internal/analysis"
	"cashgap/internal/logger"
)

const dateFormat = "2006-01-02"

// Writer renders analysis results into XLSX workbooks.
type Writer struct {
	log zerolog.Logger
}

// NewWriter creates a report writer.
func NewWriter() *Writer {
	return &Writer{log: logger.WithComponent("report")}
}

// WriteFile renders the result and saves it at path.
func (w *Writer) WriteFile(result *analysis.Result, path string) error {
	const op = "WriteFile"

	f, err := w.build(result)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("%s: saving workbook: %w", op, err)
	}

	w.log.Info().Str("path", path).Msg("Report written")
	return nil
}

// Write renders the result into out as an XLSX stream.
func (w *Writer) Write(result *analysis.Result, out io.Writer) error {
	const op = "Write"

	f, err := w.build(result)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer f.Close()

	if err := f.Write(out); err != nil {
		return fmt.Errorf("%s: writing workbook: %w", op, err)
	}
	return nil
}

func (w *Writer) build(result *analysis.Result) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := w.writeOverdue(f, result); err != nil {
		return nil, err
	}
	if err := w.writeUpcoming(f, result); err != nil {
		return nil, err
	}
	if err := w.writePendingIncome(f, result); err != nil {
		return nil, err
	}
	if err := w.writeSeries(f, "Received Income", result.ReceivedMonthly); err != nil {
		return nil, err
	}
	if result.InsufficientIncomeData {
		if err := w.writeNotice(f); err != nil {
			return nil, err
		}
	} else {
		if err := w.writeSeries(f, "Projection", result.Projection); err != nil {
			return nil, err
		}
		if err := w.writeGap(f, result); err != nil {
			return nil, err
		}
	}

	// The default sheet excelize creates is replaced by the first table.
	return f, nil
}

func (w *Writer) writeOverdue(f *excelize.File, result *analysis.Result) error {
	const sheet = "Overdue Expenses"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	if err := writeRow(f, sheet, 1, "Counterparty", "Category", "Month", "Amount"); err != nil {
		return err
	}
	for i, row := range result.OverdueExpenses.Rows {
		amount, _ := row.Amount.Float64()
		if err := writeRow(f, sheet, i+2, row.Counterparty, row.Category, row.Month.String(), amount); err != nil {
			return err
		}
	}
	return writeTotal(f, sheet, len(result.OverdueExpenses.Rows)+2,
		result.OverdueExpenses.Total, result.OverdueExpenses.Count)
}

func (w *Writer) writeUpcoming(f *excelize.File, result *analysis.Result) error {
	const sheet = "Upcoming Expenses"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := writeRow(f, sheet, 1, "Counterparty", "Category", "Due Date", "Amount"); err != nil {
		return err
	}
	for i, row := range result.UpcomingExpenses.Rows {
		amount, _ := row.Amount.Float64()
		if err := writeRow(f, sheet, i+2, row.Counterparty, row.Category, row.DueDate.Format(dateFormat), amount); err != nil {
			return err
		}
	}
	return writeTotal(f, sheet, len(result.UpcomingExpenses.Rows)+2,
		result.UpcomingExpenses.Total, result.UpcomingExpenses.Count)
}

func (w *Writer) writePendingIncome(f *excelize.File, result *analysis.Result) error {
	const sheet = "Pending Income"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := writeRow(f, sheet, 1, "Counterparty", "Category", "Due Date", "Amount"); err != nil {
		return err
	}
	for i, row := range result.PendingIncome.Rows {
		amount, _ := row.Amount.Float64()
		if err := writeRow(f, sheet, i+2, row.Counterparty, row.Category, row.DueDate.Format(dateFormat), amount); err != nil {
			return err
		}
	}
	return writeTotal(f, sheet, len(result.PendingIncome.Rows)+2,
		result.PendingIncome.Total, result.PendingIncome.Count)
}

func (w *Writer) writeSeries(f *excelize.File, sheet string, series []analysis.MonthlyAmount) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := writeRow(f, sheet, 1, "Month", "Amount"); err != nil {
		return err
	}
	for i, point := range series {
		amount, _ := point.Amount.Float64()
		if err := writeRow(f, sheet, i+2, point.Month.String(), amount); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeGap(f *excelize.File, result *analysis.Result) error {
	const sheet = "Cash Gap"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := writeRow(f, sheet, 1, "Month", "Projected Income", "Projected Expense", "Gap"); err != nil {
		return err
	}
	for i, entry := range result.CashGap {
		income, _ := entry.ProjectedIncome.Float64()
		expense, _ := entry.ProjectedExpense.Float64()
		gap, _ := entry.Gap.Float64()
		if err := writeRow(f, sheet, i+2, entry.Month.String(), income, expense, gap); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeNotice(f *excelize.File) error {
	const sheet = "Projection"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	return writeRow(f, sheet, 1, "Insufficient income data before the reference date for a projection")
}

func writeRow(f *excelize.File, sheet string, row int, values ...interface{}) error {
	for i, value := range values {
		cellName, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cellName, value); err != nil {
			return err
		}
	}
	return nil
}

func writeTotal(f *excelize.File, sheet string, row int, total decimal.Decimal, count int) error {
	amount, _ := total.Float64()
	return writeRow(f, sheet, row, "Total", amount, fmt.Sprintf("%d records", count))
}
