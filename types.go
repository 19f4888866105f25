package cashbook

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Kind is the direction of a money movement. The values are the literals
// written to the ledger file.
type Kind string

const (
	Income  Kind = "receita"
	Expense Kind = "despesa"
)

// Transaction is a single money movement. A Transaction can only be obtained
// through NewTransaction or TransactionFromRecord, so every value in existence
// is valid, and it is never changed after construction.
type Transaction struct {
	kind        Kind
	amount      decimal.Decimal
	date        time.Time
	category    string
	description string
}

// Account holds the ordered transactions of a ledger and the running balance.
// Insertion order is entry order, which is not necessarily date order.
type Account struct {
	balance      decimal.Decimal
	transactions []*Transaction
}

// TransactionRecord is the serialized form of a Transaction.
type TransactionRecord struct {
	Type        string      `json:"type"`
	Amount      json.Number `json:"amount"`
	Date        string      `json:"date"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
}

// AccountRecord is the serialized form of an Account and the document kept by
// a Store.
type AccountRecord struct {
	Balance      json.Number         `json:"balance"`
	Transactions []TransactionRecord `json:"transactions"`
}
