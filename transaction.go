package cashbook

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ParseKind accepts the ledger literals as well as the English names and
// their first letters, in any case.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(Income), "income", "i":
		return Income, nil
	case string(Expense), "expense", "e":
		return Expense, nil
	}
	return "", invalid("type", s, ErrInvalidKind)
}

// Valid reports whether k is Income or Expense.
func (k Kind) Valid() bool {
	return k == Income || k == Expense
}

func (k Kind) String() string {
	switch k {
	case Income:
		return "income"
	case Expense:
		return "expense"
	}
	return string(k)
}

// Amounts are limited to MaxAmount in magnitude and to maxScale decimal
// places.
var MaxAmount = decimal.New(1, 15)

const maxScale = 8

// CheckAmount reports amounts that cannot be stored, whatever their sign.
func CheckAmount(d decimal.Decimal) error {
	// the exponent is checked first so the comparison never rescales a huge
	// value
	if e := d.Exponent(); e > MaxAmount.Exponent() || e < -maxScale || d.Abs().GreaterThan(MaxAmount) {
		return invalid("amount", fmt.Sprintf("%se%d", d.Coefficient(), d.Exponent()), ErrAmountOutOfRange)
	}
	return nil
}

// NewTransaction validates its arguments and returns a Transaction. An empty
// date means today.
func NewTransaction(kind Kind, amount decimal.Decimal, date, category, description string) (*Transaction, error) {
	var day time.Time
	if date == "" {
		day = Today()
	} else {
		var err error
		if day, err = ParseDate(date); err != nil {
			return nil, err
		}
	}
	return newTransaction(kind, amount, day, category, description)
}

func newTransaction(kind Kind, amount decimal.Decimal, day time.Time, category, description string) (*Transaction, error) {
	if !kind.Valid() {
		return nil, invalid("type", kind, ErrInvalidKind)
	}
	if amount.Sign() <= 0 {
		return nil, invalid("amount", amount, ErrNonPositiveAmount)
	}
	if err := CheckAmount(amount); err != nil {
		return nil, err
	}
	return &Transaction{
		kind:        kind,
		amount:      amount,
		date:        dateOf(day),
		category:    category,
		description: description,
	}, nil
}

// TransactionFromRecord rebuilds a Transaction with the same checks as
// NewTransaction. The date is required.
func TransactionFromRecord(rec TransactionRecord) (*Transaction, error) {
	amount, err := decimal.NewFromString(rec.Amount.String())
	if err != nil {
		return nil, invalid("amount", rec.Amount, ErrCorruptLedger)
	}
	day, err := ParseDate(rec.Date)
	if err != nil {
		return nil, err
	}
	return newTransaction(Kind(rec.Type), amount, day, rec.Category, rec.Description)
}

func (t *Transaction) Kind() Kind              { return t.kind }
func (t *Transaction) Amount() decimal.Decimal { return t.amount }
func (t *Transaction) Date() time.Time         { return t.date }
func (t *Transaction) Category() string        { return t.category }
func (t *Transaction) Description() string     { return t.description }

// DateString returns the date in DateLayout.
func (t *Transaction) DateString() string {
	return t.date.Format(DateLayout)
}

// Signed returns the amount as it affects the balance: positive for income,
// negative for expenses.
func (t *Transaction) Signed() decimal.Decimal {
	if t.kind == Expense {
		return t.amount.Neg()
	}
	return t.amount
}

// Record returns the serialized form of t.
func (t *Transaction) Record() TransactionRecord {
	return TransactionRecord{
		Type:        string(t.kind),
		Amount:      json.Number(t.amount.String()),
		Date:        t.DateString(),
		Category:    t.category,
		Description: t.description,
	}
}
