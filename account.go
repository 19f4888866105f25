package cashbook

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

// NewAccount returns an empty account starting at initialBalance.
func NewAccount(initialBalance decimal.Decimal) (*Account, error) {
	if initialBalance.Sign() < 0 {
		return nil, invalid("initial balance", initialBalance, ErrNegativeInitialBalance)
	}
	if err := CheckAmount(initialBalance); err != nil {
		return nil, err
	}
	return &Account{balance: initialBalance}, nil
}

// AddTransaction appends t and applies it to the balance.
func (a *Account) AddTransaction(t *Transaction) {
	a.transactions = append(a.transactions, t)
	a.balance = a.balance.Add(t.Signed())
}

// Balance returns the current balance.
func (a *Account) Balance() decimal.Decimal {
	return a.balance
}

// Transactions returns the transactions in insertion order. The slice is a
// copy; the transactions themselves are immutable.
func (a *Account) Transactions() []*Transaction {
	return slices.Clone(a.transactions)
}

// Len returns the number of transactions.
func (a *Account) Len() int {
	return len(a.transactions)
}

// Record returns the serialized form of a.
func (a *Account) Record() AccountRecord {
	rec := AccountRecord{
		Balance:      json.Number(a.balance.String()),
		Transactions: make([]TransactionRecord, 0, len(a.transactions)),
	}
	for _, t := range a.transactions {
		rec.Transactions = append(rec.Transactions, t.Record())
	}
	return rec
}

// AccountFromRecord rebuilds an Account. The stored balance is taken as is and
// the transactions are appended without being applied to it again, so a
// balance edited by hand is not corrected. A stored balance may be negative,
// since expenses can take an account below zero.
func AccountFromRecord(rec AccountRecord) (*Account, error) {
	balance, err := decimal.NewFromString(rec.Balance.String())
	if err != nil {
		return nil, invalid("balance", rec.Balance, ErrCorruptLedger)
	}
	if err := CheckAmount(balance); err != nil {
		return nil, fmt.Errorf("balance: %w", err)
	}

	a := &Account{
		balance:      balance,
		transactions: make([]*Transaction, 0, len(rec.Transactions)),
	}
	for i, tr := range rec.Transactions {
		t, err := TransactionFromRecord(tr)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i+1, err)
		}
		a.transactions = append(a.transactions, t)
	}
	return a, nil
}
