package cmd

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/plenert/cashbook"
	"github.com/plenert/cashbook/cashbook/classify"
	"github.com/plenert/cashbook/cashbook/qif"
	"github.com/spf13/cobra"
)

var (
	ErrNoColumns   = errors.New("unable to find date and amount columns in the header")
	ErrZeroAmount  = errors.New("zero amount")
	ErrUnknownDate = errors.New("unable to parse date")
)

var csvDateFormat string
var negateAmount bool
var allowMatching bool
var fieldDelimiter string
var dryRun bool

// Importer turns bank export rows into ledger transactions.
type Importer struct {
	reader     io.Reader
	dateFormat string
	dates      cashbook.DateParser
	classifier *classify.Classifier
	existing   map[string]bool

	Warnings  []string
	Skipped   int
	Predicted int
}

// NewImporter returns an importer reading r. The classifier is trained on,
// and duplicates are detected against, ledger.
func NewImporter(r io.Reader, ledger []*cashbook.Transaction) *Importer {
	imp := &Importer{
		reader:     r,
		dateFormat: csvDateFormat,
		classifier: classify.Train(ledger),
		existing:   make(map[string]bool, len(ledger)),
	}
	for _, t := range ledger {
		imp.existing[matchKey(t)] = true
	}
	return imp
}

// matchKey identifies transactions that are the same bank movement.
func matchKey(t *cashbook.Transaction) string {
	return t.DateString() + "|" + t.Signed().String() + "|" + strings.ToLower(strings.TrimSpace(t.Description()))
}

func (imp *Importer) warn(line int, err error) {
	imp.Warnings = append(imp.Warnings, fmt.Sprintf("line %d: %v", line, err))
}

func (imp *Importer) parseDate(s string) (time.Time, error) {
	if imp.dateFormat != "" {
		if t, err := time.Parse(imp.dateFormat, strings.TrimSpace(s)); err == nil {
			return t, nil
		}
	}
	t, err := imp.dates.Parse(s)
	if err != nil {
		return t, fmt.Errorf("%w %q", ErrUnknownDate, s)
	}
	return t, nil
}

// entry builds a transaction from one imported row. A negative amount is an
// expense unless kind is given. It returns nil for duplicates.
func (imp *Importer) entry(kind, date, amount, category, description string) (*cashbook.Transaction, error) {
	day, err := imp.parseDate(date)
	if err != nil {
		return nil, err
	}
	value, err := parseAmount(amount)
	if err != nil {
		return nil, err
	}
	if negateAmount {
		value = value.Neg()
	}
	if value.IsZero() {
		return nil, ErrZeroAmount
	}

	var k cashbook.Kind
	if kind != "" {
		if k, err = cashbook.ParseKind(kind); err != nil {
			return nil, err
		}
	} else if value.Sign() < 0 {
		k = cashbook.Expense
	} else {
		k = cashbook.Income
	}
	value = value.Abs()

	category = strings.TrimSpace(category)
	// QIF transfers name an account, not a category
	if strings.HasPrefix(category, "[") {
		category = ""
	}
	description = strings.TrimSpace(description)

	t, err := cashbook.NewTransaction(k, value, day.Format(cashbook.DateLayout), category, description)
	if err != nil {
		return nil, err
	}
	key := matchKey(t)
	if imp.existing[key] && !allowMatching {
		imp.Skipped++
		return nil, nil
	}
	imp.existing[key] = true

	if category != "" {
		return t, nil
	}
	predicted, ok := imp.classifier.Predict(k, description)
	if !ok {
		return t, nil
	}
	imp.Predicted++
	return cashbook.NewTransaction(k, value, t.DateString(), predicted, description)
}

func (imp *Importer) importCSV() ([]*cashbook.Transaction, error) {
	csvReader := csv.NewReader(imp.reader)
	csvReader.Comma, _ = utf8.DecodeRuneInString(fieldDelimiter)
	csvReader.FieldsPerRecord = -1
	csvRecords, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("CSV parse error: %w", err)
	}
	if len(csvRecords) == 0 {
		return nil, nil
	}

	// Find columns from header
	dateColumn, kindColumn, amountColumn, categoryColumn, descColumn := -1, -1, -1, -1, -1
	for fieldIndex, fieldName := range csvRecords[0] {
		fieldName = strings.ToLower(strings.TrimSpace(fieldName))
		switch {
		case strings.Contains(fieldName, "date"), strings.Contains(fieldName, "data"):
			dateColumn = fieldIndex
		case fieldName == "type", fieldName == "tipo":
			kindColumn = fieldIndex
		case strings.Contains(fieldName, "amount"), strings.Contains(fieldName, "valor"), strings.Contains(fieldName, "value"):
			amountColumn = fieldIndex
		case strings.Contains(fieldName, "categor"):
			categoryColumn = fieldIndex
		case strings.Contains(fieldName, "description"), strings.Contains(fieldName, "descri"),
			strings.Contains(fieldName, "payee"), strings.Contains(fieldName, "memo"):
			descColumn = fieldIndex
		}
	}
	if dateColumn < 0 || amountColumn < 0 {
		return nil, ErrNoColumns
	}

	field := func(record []string, i int) string {
		if i < 0 || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var txs []*cashbook.Transaction
	for i, record := range csvRecords[1:] {
		t, err := imp.entry(
			field(record, kindColumn),
			field(record, dateColumn),
			field(record, amountColumn),
			field(record, categoryColumn),
			field(record, descColumn),
		)
		if err != nil {
			imp.warn(i+2, err)
			continue
		}
		if t != nil {
			txs = append(txs, t)
		}
	}
	return txs, nil
}

func (imp *Importer) importQIF() ([]*cashbook.Transaction, error) {
	entries, err := qif.Parse(imp.reader)
	if err != nil {
		return nil, fmt.Errorf("QIF parse error: %w", err)
	}
	// QIF dates are locale dependent; assume mm/dd/yyyy unless told otherwise
	if imp.dateFormat == "" {
		imp.dateFormat = "01/02/2006"
	}

	var txs []*cashbook.Transaction
	for _, e := range entries {
		description := e.Payee
		if description == "" {
			description = e.Memo
		}
		t, err := imp.entry("", e.Date, e.Amount, e.Category, description)
		if err != nil {
			imp.warn(e.Line, err)
			continue
		}
		if t != nil {
			txs = append(txs, t)
		}
	}
	return txs, nil
}

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <file.qif|file.csv>",
	Args:  cobra.ExactArgs(1),
	Short: "Import transactions from a QIF or CSV bank export",
	Long: `Import transactions from a QIF or CSV bank export.

Negative amounts are recorded as expenses and positive amounts as income,
unless the CSV has a type column. Missing categories are predicted from the
categories of similar descriptions already in the ledger. Rows matching an
existing transaction (same date, amount and description) are skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fileName := args[0]
		file, err := os.Open(fileName)
		if err != nil {
			return err
		}
		defer file.Close()

		imp := NewImporter(file, transactions.Transactions())

		var txs []*cashbook.Transaction
		if strings.EqualFold(filepath.Ext(fileName), ".qif") {
			txs, err = imp.importQIF()
		} else {
			txs, err = imp.importCSV()
		}
		if err != nil {
			return err
		}

		stderr := cmd.ErrOrStderr()
		for _, w := range imp.Warnings {
			fmt.Fprintf(stderr, "warning: %s\n", w)
		}

		out := cmd.OutOrStdout()
		if dryRun {
			PrintTransactions(out, "TO IMPORT", txs, cfg.Currency, cfg.Columns)
			fmt.Fprintf(out, "%d transaction(s) would be imported, %d duplicate(s) skipped.\n", len(txs), imp.Skipped)
			return nil
		}

		if err := transactions.AddTransactions(txs); err != nil {
			return fmt.Errorf("%d transaction(s) imported but not saved: %w", len(txs), err)
		}
		log.Infow("import finished",
			"file", fileName,
			"imported", len(txs),
			"duplicates", imp.Skipped,
			"predicted", imp.Predicted,
			"rejected", len(imp.Warnings))
		fmt.Fprintf(out, "Imported %d transaction(s), %d duplicate(s) skipped, %d predicted categor(ies). New balance: %s\n",
			len(txs), imp.Skipped, imp.Predicted, formatAmount(cfg.Currency, transactions.Balance()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be imported without changing the ledger.")
	importCmd.Flags().BoolVar(&negateAmount, "neg", false, "Negate amount column value.")
	importCmd.Flags().BoolVar(&allowMatching, "allow-matching", false, "Import rows that match existing ledger transactions.")
	importCmd.Flags().StringVar(&csvDateFormat, "date-format", "", "Date layout in Go reference form, e.g. 02/01/2006 (default: detect).")
	importCmd.Flags().StringVar(&fieldDelimiter, "delimiter", ",", "CSV field delimiter.")
}
