package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cashgap/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "cashgap",
	Short: "cashgap - cash-flow analysis for payable/receivable ledgers",
	Long: `cashgap analyzes a transactional ledger (accounts payable and
receivable) exported as CSV and produces a cash-flow picture: overdue
payables, upcoming payables with missing amounts imputed from history,
receivable income, an EMA-based income projection and the forward
cash-gap series.

Run 'cashgap analyze' for a one-shot command-line analysis or
'cashgap serve' to expose the analysis as an HTTP upload endpoint.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Use --help to see available commands and options.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}
