package cashbook

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNewTransaction(t *testing.T) {
	defer func(orig func() time.Time) { now = orig }(now)
	now = func() time.Time { return time.Date(2025, 3, 9, 22, 15, 0, 0, time.Local) }

	tests := []struct {
		name     string
		kind     Kind
		amount   decimal.Decimal
		date     string
		wantDate string
		wantErr  error
	}{
		{
			name:     "income",
			kind:     Income,
			amount:   decimal.NewFromInt(500),
			date:     "2025-01-01",
			wantDate: "2025-01-01",
		},
		{
			name:     "expense",
			kind:     Expense,
			amount:   decimal.RequireFromString("0.01"),
			date:     "2024-02-29",
			wantDate: "2024-02-29",
		},
		{
			name:     "single digit month and day",
			kind:     Expense,
			amount:   decimal.NewFromInt(3),
			date:     "2025-1-5",
			wantDate: "2025-01-05",
		},
		{
			name:     "date defaults to today",
			kind:     Income,
			amount:   decimal.NewFromInt(1),
			wantDate: "2025-03-09",
		},
		{
			name:    "zero amount",
			kind:    Income,
			amount:  decimal.Zero,
			date:    "2025-01-01",
			wantErr: ErrNonPositiveAmount,
		},
		{
			name:    "negative amount",
			kind:    Expense,
			amount:  decimal.NewFromInt(-10),
			date:    "2025-01-01",
			wantErr: ErrNonPositiveAmount,
		},
		{
			name:    "unknown type",
			kind:    Kind("invalid"),
			amount:  decimal.NewFromInt(10),
			date:    "2025-01-01",
			wantErr: ErrInvalidKind,
		},
		{
			name:    "empty type",
			kind:    "",
			amount:  decimal.NewFromInt(10),
			wantErr: ErrInvalidKind,
		},
		{
			name:    "day out of range",
			kind:    Income,
			amount:  decimal.NewFromInt(10),
			date:    "2025-02-30",
			wantErr: ErrInvalidDate,
		},
		{
			name:    "wrong date order",
			kind:    Income,
			amount:  decimal.NewFromInt(10),
			date:    "15/01/2025",
			wantErr: ErrInvalidDate,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tx, err := NewTransaction(tc.kind, tc.amount, tc.date, "cat", "desc")
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("error = %v, want %v", err, tc.wantErr)
				}
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("error %T is not a *ValidationError", err)
				}
				if tx != nil {
					t.Fatalf("got transaction %+v alongside error", tx)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := tx.DateString(); got != tc.wantDate {
				t.Errorf("date = %s, want %s", got, tc.wantDate)
			}
			if !tx.Amount().Equal(tc.amount) {
				t.Errorf("amount = %s, want %s", tx.Amount(), tc.amount)
			}
			if tx.Kind() != tc.kind {
				t.Errorf("kind = %s, want %s", tx.Kind(), tc.kind)
			}
			if tx.Category() != "cat" || tx.Description() != "desc" {
				t.Errorf("category/description = %q/%q", tx.Category(), tx.Description())
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
		ok   bool
	}{
		{"receita", Income, true},
		{"DESPESA", Expense, true},
		{"income", Income, true},
		{" Expense ", Expense, true},
		{"i", Income, true},
		{"e", Expense, true},
		{"", "", false},
		{"transfer", "", false},
	}
	for _, tc := range tests {
		got, err := ParseKind(tc.in)
		if tc.ok {
			if err != nil || got != tc.want {
				t.Errorf("ParseKind(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
			}
		} else if !errors.Is(err, ErrInvalidKind) {
			t.Errorf("ParseKind(%q) error = %v, want ErrInvalidKind", tc.in, err)
		}
	}
}

func TestSigned(t *testing.T) {
	in, _ := NewTransaction(Income, decimal.NewFromInt(7), "2025-01-01", "", "")
	out, _ := NewTransaction(Expense, decimal.NewFromInt(7), "2025-01-01", "", "")
	if !in.Signed().Equal(decimal.NewFromInt(7)) {
		t.Errorf("income signed = %s", in.Signed())
	}
	if !out.Signed().Equal(decimal.NewFromInt(-7)) {
		t.Errorf("expense signed = %s", out.Signed())
	}
}

func TestTransactionFromRecord(t *testing.T) {
	tests := []struct {
		name    string
		rec     TransactionRecord
		wantErr error
	}{
		{
			name: "valid",
			rec:  TransactionRecord{Type: "despesa", Amount: "300", Date: "2025-01-20", Category: "Aluguel"},
		},
		{
			name:    "unknown type",
			rec:     TransactionRecord{Type: "income", Amount: "300", Date: "2025-01-20"},
			wantErr: ErrInvalidKind,
		},
		{
			name:    "zero amount",
			rec:     TransactionRecord{Type: "receita", Amount: "0", Date: "2025-01-20"},
			wantErr: ErrNonPositiveAmount,
		},
		{
			name:    "missing amount",
			rec:     TransactionRecord{Type: "receita", Date: "2025-01-20"},
			wantErr: ErrCorruptLedger,
		},
		{
			name:    "huge exponent",
			rec:     TransactionRecord{Type: "receita", Amount: "1e999999999", Date: "2025-01-20"},
			wantErr: ErrAmountOutOfRange,
		},
		{
			name:    "tiny exponent",
			rec:     TransactionRecord{Type: "receita", Amount: "1e-999999999", Date: "2025-01-20"},
			wantErr: ErrAmountOutOfRange,
		},
		{
			name:    "above maximum",
			rec:     TransactionRecord{Type: "despesa", Amount: "1000000000000000.01", Date: "2025-01-20"},
			wantErr: ErrAmountOutOfRange,
		},
		{
			name:    "missing date",
			rec:     TransactionRecord{Type: "receita", Amount: "10"},
			wantErr: ErrInvalidDate,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tx, err := TransactionFromRecord(tc.rec)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("error = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got := tx.Record(); got != tc.rec {
				t.Errorf("record = %+v, want %+v", got, tc.rec)
			}
		})
	}
}

func TestCheckAmount(t *testing.T) {
	for _, s := range []string{"0", "-5", "0.00000001", "1000000000000000", "-1000000000000000", "1e15"} {
		if err := CheckAmount(decimal.RequireFromString(s)); err != nil {
			t.Errorf("CheckAmount(%s) = %v", s, err)
		}
	}
	for _, s := range []string{"1e16", "0.000000001", "-1000000000000001", "1e999999999"} {
		err := CheckAmount(decimal.RequireFromString(s))
		if !errors.Is(err, ErrAmountOutOfRange) {
			t.Errorf("CheckAmount(%s) = %v, want ErrAmountOutOfRange", s, err)
		}
		if err != nil && len(err.Error()) > 200 {
			t.Errorf("CheckAmount(%s) error is %d bytes long", s, len(err.Error()))
		}
	}
}

func TestRecordKeepsDecimalPlaces(t *testing.T) {
	tx, err := NewTransaction(Expense, decimal.RequireFromString("19.99"), "2025-06-01", "Food", "")
	if err != nil {
		t.Fatal(err)
	}
	if got := tx.Record().Amount; got != json.Number("19.99") {
		t.Errorf("amount = %s, want 19.99", got)
	}
}
