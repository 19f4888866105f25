package cmd

import (
	"github.com/plenert/cashbook"
	"github.com/spf13/cobra"
)

// balanceCmd represents the balance command
var balanceCmd = &cobra.Command{
	Use:     "balance",
	Aliases: []string{"bal"},
	Short:   "Show the current balance",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		PrintBalance(cmd.OutOrStdout(), transactions, cfg.Currency, cashbook.Today())
	},
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}
