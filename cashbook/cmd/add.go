package cmd

import (
	"fmt"

	"github.com/plenert/cashbook"
	"github.com/spf13/cobra"
)

var addDate, addCategory, addDescription string

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <income|expense> <amount>",
	Short: "Record a transaction",
	Example: `  cashbook add expense 300 -c Aluguel -d 2025-01-20
  cashbook add income "(1500 * 2)" -c Salário -m "January payroll"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := cashbook.ParseKind(args[0])
		if err != nil {
			return err
		}
		amount, err := parseAmount(args[1])
		if err != nil {
			return err
		}

		date := addDate
		if date != "" {
			var p cashbook.DateParser
			d, err := p.Parse(date)
			if err != nil {
				return fmt.Errorf("%w: %v", cashbook.ErrInvalidDate, err)
			}
			date = d.Format(cashbook.DateLayout)
		}

		t, err := cashbook.NewTransaction(kind, amount, date, addCategory, addDescription)
		if err != nil {
			return err
		}
		if err := transactions.AddTransaction(t); err != nil {
			return fmt.Errorf("transaction recorded but not saved: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s of %s on %s. New balance: %s\n",
			kind, formatAmount(cfg.Currency, amount), t.DateString(), formatAmount(cfg.Currency, transactions.Balance()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&addDate, "date", "d", "", "Transaction date (default today).")
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "Category.")
	addCmd.Flags().StringVarP(&addDescription, "description", "m", "", "Description.")
}
