package cmd

import (
	"fmt"
	"strconv"

	"github.com/plenert/cashbook"
	"github.com/spf13/cobra"
)

var showTransactions bool

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Monthly and per-category reports",
}

var monthlyCmd = &cobra.Command{
	Use:     "monthly <year> <month>",
	Short:   "Income, expenses and balance of one month",
	Example: "  cashbook report monthly 2025 1 --transactions",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid year %q", args[0])
		}
		month, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid month %q: %w", args[1], cashbook.ErrInvalidMonth)
		}

		rep, err := reports.MonthlyReport(year, month)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		PrintMonthlyReport(out, rep, cfg.Currency, cfg.Columns)
		if showTransactions {
			fmt.Fprintln(out)
			PrintTransactions(out, "TRANSACTIONS OF "+rep.Period, rep.Transactions, cfg.Currency, cfg.Columns)
		}
		return nil
	},
}

var categoryCmd = &cobra.Command{
	Use:     "category <income|expense>",
	Short:   "Totals per category with their share",
	Example: "  cashbook report category expense",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := cashbook.ParseKind(args[0])
		if err != nil {
			return err
		}
		totals, err := reports.CategoryReport(kind)
		if err != nil {
			return err
		}
		PrintCategoryReport(cmd.OutOrStdout(), kind, totals, cfg.Currency, cfg.Columns)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.AddCommand(monthlyCmd, categoryCmd)

	monthlyCmd.Flags().BoolVarP(&showTransactions, "transactions", "t", false, "Also list the transactions of the month.")
}
