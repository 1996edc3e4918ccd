package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"cashgap/internal/analysis"
	"cashgap/internal/config"
	"cashgap/internal/ledger"
	"cashgap/internal/logger"
	"cashgap/internal/report"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a ledger CSV and print the cash-flow tables",
	Long: `Analyze a payable/receivable ledger exported as CSV.

The ledger must carry the columns "data de vencimento", "data de
pagamento", "valor", "categoria", "descrição" and "cliente/fornecedor"
(matched case-insensitively after trimming). The file is decoded as
UTF-8 with a Latin-1 fallback.

The reference date splits pending expenses into overdue and upcoming;
upcoming expenses with a missing amount are imputed from the mean of
matching paid records. Received income over the trailing twelve months
feeds an EMA projection through December, and the cash gap subtracts
the projected expense magnitude from the projected income per month.`,
	Example: `  # Analyze with today as the reference date
  cashgap analyze --file ledger.csv

  # Explicit reference date and the short smoothing span
  cashgap analyze --file ledger.csv --reference-date 2024-02-01 --ema-span 3

  # Machine-readable output and an XLSX report
  cashgap analyze --file ledger.csv --json --report analysis.xlsx`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().String("file", "", "Path to the ledger CSV file (required)")
	analyzeCmd.Flags().String("reference-date", "", "Reference date for the analysis (format: YYYY-MM-DD, default: today)")
	analyzeCmd.Flags().Int("ema-span", 0, "EMA smoothing span for the income projection (default: EMA_SPAN or 8)")
	analyzeCmd.Flags().Bool("json", false, "Print the full result as JSON instead of tables")
	analyzeCmd.Flags().String("report", "", "Write an XLSX report to this path")
	analyzeCmd.MarkFlagRequired("file")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("analyze")

	filePath, _ := cmd.Flags().GetString("file")
	referenceDateStr, _ := cmd.Flags().GetString("reference-date")
	emaSpan, _ := cmd.Flags().GetInt("ema-span")
	asJSON, _ := cmd.Flags().GetBool("json")
	reportPath, _ := cmd.Flags().GetString("report")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	opts := analysis.Options{EMASpan: cfg.EMASpan}
	if emaSpan != 0 {
		opts.EMASpan = emaSpan
	}
	if referenceDateStr != "" {
		parsed, err := time.Parse("2006-01-02", referenceDateStr)
		if err != nil {
			return fmt.Errorf("invalid reference date format. Use YYYY-MM-DD: %w", err)
		}
		opts.ReferenceDate = parsed
	}

	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("opening ledger file: %w", err)
	}
	defer file.Close()

	log.Info().
		Str("file", filePath).
		Int("ema_span", opts.EMASpan).
		Msg("Starting ledger analysis")

	records, err := ledger.NewLoader(cfg.CurrencySymbol).Load(file)
	if err != nil {
		var missing *ledger.MissingColumnsError
		if errors.As(err, &missing) {
			return fmt.Errorf("ledger is missing required columns: %v", missing.Columns)
		}
		return fmt.Errorf("loading ledger: %w", err)
	}

	result, err := analysis.Run(records, opts)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if asJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result); err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
	} else {
		printResult(cmd, result)
	}

	if reportPath != "" {
		if err := report.NewWriter().WriteFile(result, reportPath); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nReport written to %s\n", reportPath)
	}

	return nil
}

func printResult(cmd *cobra.Command, result *analysis.Result) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Reference date: %s (EMA span %d)\n",
		result.ReferenceDate.Format("2006-01-02"), result.EMASpan)

	fmt.Fprintf(out, "\nOverdue expenses (%d records, total %s)\n",
		result.OverdueExpenses.Count, result.OverdueExpenses.Total.StringFixed(2))
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "COUNTERPARTY\tCATEGORY\tMONTH\tAMOUNT")
	for _, row := range result.OverdueExpenses.Rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", row.Counterparty, row.Category, row.Month, row.Amount.StringFixed(2))
	}
	w.Flush()

	fmt.Fprintf(out, "\nUpcoming expenses (%d records, total %s)\n",
		result.UpcomingExpenses.Count, result.UpcomingExpenses.Total.StringFixed(2))
	w = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "COUNTERPARTY\tCATEGORY\tDUE DATE\tAMOUNT")
	for _, row := range result.UpcomingExpenses.Rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", row.Counterparty, row.Category, row.DueDate.Format("2006-01-02"), row.Amount.StringFixed(2))
	}
	w.Flush()

	fmt.Fprintf(out, "\nPending income (%d records, total %s)\n",
		result.PendingIncome.Count, result.PendingIncome.Total.StringFixed(2))
	w = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "COUNTERPARTY\tCATEGORY\tDUE DATE\tAMOUNT")
	for _, row := range result.PendingIncome.Rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", row.Counterparty, row.Category, row.DueDate.Format("2006-01-02"), row.Amount.StringFixed(2))
	}
	w.Flush()

	fmt.Fprintf(out, "\nReceived income, trailing 12 months\n")
	printSeries(out, result.ReceivedMonthly)

	if result.InsufficientIncomeData {
		fmt.Fprintln(out, "\nInsufficient income data before the reference date for a projection.")
		return
	}

	fmt.Fprintf(out, "\nIncome projection through December\n")
	printSeries(out, result.Projection)

	fmt.Fprintf(out, "\nCash gap\n")
	w = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MONTH\tPROJECTED INCOME\tPROJECTED EXPENSE\tGAP")
	for _, entry := range result.CashGap {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			entry.Month, entry.ProjectedIncome.StringFixed(2), entry.ProjectedExpense.StringFixed(2), entry.Gap.StringFixed(2))
	}
	w.Flush()
}

func printSeries(out io.Writer, series []analysis.MonthlyAmount) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MONTH\tAMOUNT")
	for _, point := range series {
		fmt.Fprintf(w, "%s\t%s\n", point.Month, point.Amount.StringFixed(2))
	}
	w.Flush()
}
