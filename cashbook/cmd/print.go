package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/hako/durafmt"
	"github.com/plenert/cashbook"
	"github.com/plenert/cashbook/cashbook/internal/fastcolor"
	"github.com/shopspring/decimal"
)

const newLine = "\n"

// Report palette; the hex colours of the config replace these.
const (
	colorNeg      = fastcolor.FgRed
	colorPos      = fastcolor.FgGreen
	colorHeading  = fastcolor.FgCyan
	colorCategory = fastcolor.FgBlue
	colorReset    = fastcolor.Reset
)

const amountWidth = 16

func formatAmount(currency string, d decimal.Decimal) string {
	s := d.StringFixedBank(2)
	if currency == "" {
		return s
	}
	return currency + " " + s
}

func amountColor(d decimal.Decimal) fastcolor.Color {
	if d.Sign() < 0 {
		return colorNeg
	}
	return colorReset
}

func writeHeading(buf *bufio.Writer, title string) {
	colorHeading.WriteString(buf, "===== "+title+" =====")
	buf.WriteString(newLine)
}

// writeLine writes a label on the left and an amount right-aligned to columns.
func writeLine(buf *bufio.Writer, label string, labelColor fastcolor.Color, currency string, amount decimal.Decimal, columns int) {
	labelColor.WriteStringFixed(buf, label, columns-amountWidth-1, false)
	buf.WriteString(" ")
	amountColor(amount).WriteStringFixed(buf, formatAmount(currency, amount), amountWidth, true)
	buf.WriteString(newLine)
}

// PrintTransactions prints one transaction per line with a running total,
// formatted to a window set to a width of columns.
func PrintTransactions(w io.Writer, title string, txs []*cashbook.Transaction, currency string, columns int) {
	buf := bufio.NewWriter(w)
	defer buf.Flush()

	// Calculate widths for variable-length part of output
	// date, type and two amount columns plus 4 spaces
	if columns < 60 {
		columns = 60
	}
	remainingWidth := columns - 10 - 7 - (amountWidth * 2) - 4
	col1width := remainingWidth / 3
	col2width := remainingWidth - col1width

	writeHeading(buf, title)
	if len(txs) == 0 {
		buf.WriteString("No transactions found." + newLine)
		return
	}

	running := decimal.Zero
	for _, t := range txs {
		running = running.Add(t.Signed())

		kindColor := colorPos
		if t.Kind() == cashbook.Expense {
			kindColor = colorNeg
		}

		buf.WriteString(t.DateString())
		buf.WriteString(" ")
		kindColor.WriteStringFixed(buf, t.Kind().String(), 7, false)
		buf.WriteString(" ")
		colorCategory.WriteStringFixed(buf, t.Category(), col1width, false)
		buf.WriteString(" ")
		colorReset.WriteStringFixed(buf, t.Description(), col2width, false)
		buf.WriteString(" ")
		amountColor(t.Signed()).WriteStringFixed(buf, formatAmount(currency, t.Signed()), amountWidth, true)
		buf.WriteString(" ")
		amountColor(running).WriteStringFixed(buf, formatAmount(currency, running), amountWidth, true)
		buf.WriteString(newLine)
	}
	buf.WriteString(strings.Repeat("-", columns) + newLine)
	fmt.Fprintf(buf, "Total: %d transaction(s)\n", len(txs))
}

// PrintMonthlyReport prints the totals of rep and its per-category sums.
func PrintMonthlyReport(w io.Writer, rep *cashbook.MonthlyReport, currency string, columns int) {
	buf := bufio.NewWriter(w)
	defer buf.Flush()

	writeHeading(buf, "MONTHLY REPORT: "+rep.Period)
	writeLine(buf, "Total income", colorReset, currency, rep.TotalIncome, columns)
	writeLine(buf, "Total expenses", colorReset, currency, rep.TotalExpense, columns)
	writeLine(buf, "Period balance", fastcolor.Bold, currency, rep.Balance, columns)

	sections := []struct {
		title  string
		totals cashbook.CategoryTotals
	}{
		{"Income by category:", rep.IncomeByCategory},
		{"Expenses by category:", rep.ExpenseByCategory},
	}
	for _, s := range sections {
		buf.WriteString(newLine + s.title + newLine)
		for _, ca := range s.totals {
			writeLine(buf, "  "+ca.Category, colorCategory, currency, ca.Amount, columns)
		}
	}
}

// PrintCategoryReport prints each category of kind k with its share of the
// total.
func PrintCategoryReport(w io.Writer, k cashbook.Kind, totals cashbook.CategoryTotals, currency string, columns int) {
	buf := bufio.NewWriter(w)
	defer buf.Flush()

	title := "INCOME"
	if k == cashbook.Expense {
		title = "EXPENSES"
	}
	writeHeading(buf, title+" BY CATEGORY")

	shares := totals.Shares()
	if len(shares) == 0 {
		fmt.Fprintf(buf, "No %s found.\n", strings.ToLower(title))
		return
	}
	for _, s := range shares {
		colorCategory.WriteStringFixed(buf, s.Category, columns-amountWidth-10, false)
		buf.WriteString(" ")
		colorReset.WriteStringFixed(buf, formatAmount(currency, s.Amount), amountWidth, true)
		buf.WriteString(" ")
		colorReset.WriteStringFixed(buf, "("+s.Percent.StringFixed(1)+"%)", 8, true)
		buf.WriteString(newLine)
	}
	buf.WriteString(strings.Repeat("-", columns) + newLine)
	writeLine(buf, "Total", fastcolor.Bold, currency, totals.Total(), columns-9)
}

// PrintBalance prints the current balance and how long ago the last
// transaction is dated.
func PrintBalance(w io.Writer, svc *cashbook.TransactionService, currency string, today time.Time) {
	buf := bufio.NewWriter(w)
	defer buf.Flush()

	writeHeading(buf, "CURRENT BALANCE")
	balance := svc.Balance()
	amountColor(balance).WriteString(buf, formatAmount(currency, balance))
	buf.WriteString(newLine)

	count := len(svc.Transactions())
	last, ok := svc.LastDate()
	if !ok {
		buf.WriteString("No transactions recorded." + newLine)
		return
	}
	fmt.Fprintf(buf, "%d transaction(s), last dated %s (%s)\n", count, last.Format(cashbook.DateLayout), since(last, today))
}

func since(last, today time.Time) string {
	d := today.Sub(last)
	switch {
	case d < 0:
		return "in the future"
	case d < 24*time.Hour:
		return "today"
	}
	return durafmt.Parse(d).LimitFirstN(2).String() + " ago"
}
