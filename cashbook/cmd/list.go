package cmd

import (
	"errors"
	"os"

	"github.com/plenert/cashbook"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var startString, endString string
var kindFilter string
var categoryFilter string
var columnWidth int
var columnWide bool

// cliFilter builds the transaction filter from the list flags.
func cliFilter(cmd *cobra.Command) (cashbook.Filter, error) {
	var f cashbook.Filter
	var dates cashbook.DateParser

	if startString != "" {
		start, err := dates.Parse(startString)
		if err != nil {
			return f, errors.New("unable to parse begin date argument")
		}
		f.Start = start
	}
	if endString != "" {
		end, err := dates.Parse(endString)
		if err != nil {
			return f, errors.New("unable to parse end date argument")
		}
		f.End = end
	}
	if kindFilter != "" {
		k, err := cashbook.ParseKind(kindFilter)
		if err != nil {
			return f, err
		}
		f.Kind = k
	}
	if cmd.Flags().Changed("category") {
		category := categoryFilter
		f.Category = &category
	}
	return f, nil
}

// outputColumns returns the width to format output to.
func outputColumns(cmd *cobra.Command) int {
	columns := cfg.Columns
	if cmd.Flags().Changed("columns") {
		columns = columnWidth
	}
	if columnWide {
		columns = 132
		fd := int(os.Stdout.Fd())
		if term.IsTerminal(fd) {
			tw, _, err := term.GetSize(fd)
			if err == nil {
				columns = tw
			}
		}
	}
	return columns
}

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "print"},
	Short:   "List transactions",
	Example: `  cashbook list -b 2025-01-01 -e 2025-01-31
  cashbook list --type expense --category Aluguel`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		f, err := cliFilter(cmd)
		if err != nil {
			return err
		}
		txs := transactions.Query(f)
		PrintTransactions(cmd.OutOrStdout(), "TRANSACTIONS", txs, cfg.Currency, outputColumns(cmd))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&startString, "begin-date", "b", "", "Begin date of transactions to list.")
	listCmd.Flags().StringVarP(&endString, "end-date", "e", "", "End date of transactions to list (inclusive).")
	listCmd.Flags().StringVar(&kindFilter, "type", "", "Only income or expense transactions.")
	listCmd.Flags().StringVar(&categoryFilter, "category", "", "Only transactions of this exact category (empty for uncategorized).")
	listCmd.Flags().IntVar(&columnWidth, "columns", 80, "Set a column width for output.")
	listCmd.Flags().BoolVar(&columnWide, "wide", false, "Wide output (use terminal width).")
}
