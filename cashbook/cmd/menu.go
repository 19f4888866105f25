package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/plenert/cashbook"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var errQuit = errors.New("quit")

// Menu is the interactive, line based front end. Invalid input is reported
// and asked again; end of input leaves the menu.
type Menu struct {
	in           *bufio.Scanner
	out          io.Writer
	transactions *cashbook.TransactionService
	reports      *cashbook.ReportService
	currency     string
	columns      int
}

// NewMenu returns a menu reading answers from in and writing to out.
func NewMenu(in io.Reader, out io.Writer, svc *cashbook.TransactionService, reports *cashbook.ReportService, currency string, columns int) *Menu {
	return &Menu{
		in:           bufio.NewScanner(in),
		out:          out,
		transactions: svc,
		reports:      reports,
		currency:     currency,
		columns:      columns,
	}
}

// Run shows the main menu until the user leaves or the input ends.
func (m *Menu) Run() error {
	for {
		err := m.mainMenu()
		if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
			fmt.Fprintln(m.out, "\nGoodbye.")
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (m *Menu) mainMenu() error {
	fmt.Fprintf(m.out, "\n===== CASHBOOK =====\nCurrent balance: %s\n", formatAmount(m.currency, m.transactions.Balance()))
	fmt.Fprint(m.out, "1. Register transaction\n2. View transactions\n3. Reports\n4. Balance\n0. Exit\n")

	option, err := m.option(4)
	if err != nil {
		return err
	}
	switch option {
	case 0:
		return errQuit
	case 1:
		return m.register()
	case 2:
		return m.viewMenu()
	case 3:
		return m.reportsMenu()
	default:
		PrintBalance(m.out, m.transactions, m.currency, cashbook.Today())
		return nil
	}
}

func (m *Menu) register() error {
	fmt.Fprintln(m.out, "\n===== REGISTER TRANSACTION =====")

	option, err := m.ask("Type (1 - Income, 2 - Expense): ", "Please enter 1 for income or 2 for expense.", func(s string) bool {
		return s == "1" || s == "2"
	})
	if err != nil {
		return err
	}
	kind := cashbook.Income
	if option == "2" {
		kind = cashbook.Expense
	}

	amount, err := m.amount("Amount: " + m.currency + " ")
	if err != nil {
		return err
	}

	today, err := m.yesNo("Use today's date? (Y/N): ")
	if err != nil {
		return err
	}
	var date string
	if !today {
		d, err := m.date("Date (YYYY-MM-DD): ")
		if err != nil {
			return err
		}
		date = d.Format(cashbook.DateLayout)
	}

	category, err := m.readLine("Category: ")
	if err != nil {
		return err
	}
	description, err := m.readLine("Description: ")
	if err != nil {
		return err
	}

	t, err := cashbook.NewTransaction(kind, amount, date, strings.TrimSpace(category), strings.TrimSpace(description))
	if err != nil {
		fmt.Fprintf(m.out, "Error registering transaction: %v\n", err)
		return nil
	}
	if err := m.transactions.AddTransaction(t); err != nil {
		fmt.Fprintf(m.out, "\nWarning: the transaction was recorded but could not be saved (%v).\nIt will be saved with the next change.\n", err)
	} else {
		fmt.Fprintln(m.out, "\nTransaction registered.")
	}
	fmt.Fprintf(m.out, "New balance: %s\n", formatAmount(m.currency, m.transactions.Balance()))
	return nil
}

func (m *Menu) viewMenu() error {
	fmt.Fprint(m.out, "\n===== VIEW TRANSACTIONS =====\n"+
		"1. All transactions\n2. By period\n3. Income\n4. Expenses\n5. By category\n0. Back\n")

	option, err := m.option(5)
	if err != nil {
		return err
	}
	switch option {
	case 1:
		m.show("ALL TRANSACTIONS", m.transactions.Transactions())
	case 2:
		fmt.Fprintln(m.out, "\nEnter the period:")
		start, err := m.date("Start date (YYYY-MM-DD): ")
		if err != nil {
			return err
		}
		end, err := m.date("End date (YYYY-MM-DD): ")
		if err != nil {
			return err
		}
		title := fmt.Sprintf("TRANSACTIONS FROM %s TO %s", start.Format(cashbook.DateLayout), end.Format(cashbook.DateLayout))
		m.show(title, m.transactions.TransactionsByPeriod(start, end))
	case 3:
		m.show("INCOME", m.transactions.TransactionsByKind(cashbook.Income))
	case 4:
		m.show("EXPENSES", m.transactions.TransactionsByKind(cashbook.Expense))
	case 5:
		if cats := m.transactions.Categories(); len(cats) > 0 {
			fmt.Fprintf(m.out, "\nKnown categories: %s\n", strings.Join(cats, ", "))
		}
		category, err := m.readLine("Category: ")
		if err != nil {
			return err
		}
		m.show("CATEGORY: "+category, m.transactions.TransactionsByCategory(category))
	}
	return nil
}

func (m *Menu) show(title string, txs []*cashbook.Transaction) {
	fmt.Fprintln(m.out)
	PrintTransactions(m.out, title, txs, m.currency, m.columns)
}

func (m *Menu) reportsMenu() error {
	fmt.Fprint(m.out, "\n===== REPORTS =====\n1. Monthly report\n2. Category report\n0. Back\n")

	option, err := m.option(2)
	if err != nil {
		return err
	}
	switch option {
	case 1:
		return m.monthlyReport()
	case 2:
		return m.categoryReport()
	}
	return nil
}

func (m *Menu) monthlyReport() error {
	fmt.Fprintln(m.out, "\nEnter the month and year of the report:")
	year, err := m.number("Year (YYYY): ", "Please enter a valid year between 2000 and 2100.", 2000, 2100)
	if err != nil {
		return err
	}
	month, err := m.number("Month (1-12): ", "Please enter a valid month between 1 and 12.", 1, 12)
	if err != nil {
		return err
	}

	rep, err := m.reports.MonthlyReport(year, month)
	if err != nil {
		return err
	}
	fmt.Fprintln(m.out)
	PrintMonthlyReport(m.out, rep, m.currency, m.columns)

	view, err := m.yesNo("\nShow the transactions of this period? (Y/N): ")
	if err != nil {
		return err
	}
	if view {
		m.show("TRANSACTIONS OF "+rep.Period, rep.Transactions)
	}
	return nil
}

func (m *Menu) categoryReport() error {
	fmt.Fprint(m.out, "\nChoose the transaction type:\n1. Income\n2. Expenses\n0. Back\n")
	option, err := m.option(2)
	if err != nil || option == 0 {
		return err
	}
	kind := cashbook.Income
	if option == 2 {
		kind = cashbook.Expense
	}

	totals, err := m.reports.CategoryReport(kind)
	if err != nil {
		return err
	}
	fmt.Fprintln(m.out)
	PrintCategoryReport(m.out, kind, totals, m.currency, m.columns)
	return nil
}

// readLine prompts and returns the next input line, or io.EOF when the input
// is exhausted.
func (m *Menu) readLine(prompt string) (string, error) {
	fmt.Fprint(m.out, prompt)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return m.in.Text(), nil
}

// ask repeats prompt until valid accepts the trimmed answer.
func (m *Menu) ask(prompt, invalid string, valid func(string) bool) (string, error) {
	for {
		s, err := m.readLine(prompt)
		if err != nil {
			return "", err
		}
		s = strings.TrimSpace(s)
		if valid(s) {
			return s, nil
		}
		fmt.Fprintln(m.out, invalid)
	}
}

func (m *Menu) number(prompt, invalid string, lo, hi int) (int, error) {
	s, err := m.ask(prompt, invalid, func(s string) bool {
		n, err := strconv.Atoi(s)
		return err == nil && n >= lo && n <= hi
	})
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(s)
}

func (m *Menu) option(last int) (int, error) {
	return m.number("Choose an option: ", fmt.Sprintf("Please enter a number between 0 and %d.", last), 0, last)
}

func (m *Menu) yesNo(prompt string) (bool, error) {
	s, err := m.ask(prompt, "Please enter Y or N.", func(s string) bool {
		switch strings.ToUpper(s) {
		case "Y", "N":
			return true
		}
		return false
	})
	return strings.EqualFold(s, "Y"), err
}

func (m *Menu) amount(prompt string) (decimal.Decimal, error) {
	var amount decimal.Decimal
	_, err := m.ask(prompt, "Please enter a valid number greater than 0.", func(s string) bool {
		d, err := parseAmount(s)
		if err != nil || d.Sign() <= 0 {
			return false
		}
		amount = d
		return true
	})
	return amount, err
}

func (m *Menu) date(prompt string) (time.Time, error) {
	var day time.Time
	_, err := m.ask(prompt, "Please enter a valid date in YYYY-MM-DD format.", func(s string) bool {
		d, err := cashbook.ParseDate(s)
		if err != nil {
			return false
		}
		day = d
		return true
	})
	return day, err
}

func runMenu(cmd *cobra.Command, _ []string) error {
	return NewMenu(cmd.InOrStdin(), cmd.OutOrStdout(), transactions, reports, cfg.Currency, cfg.Columns).Run()
}

// menuCmd represents the menu command
var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Interactive menu (the default when no command is given)",
	Args:  cobra.NoArgs,
	RunE:  runMenu,
}

func init() {
	rootCmd.AddCommand(menuCmd)
}
