package cashbook

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Store loads and saves the serialized account.
type Store interface {
	// Load returns the stored ledger, or nil when nothing has been stored
	// yet. Undecodable content is reported with an error wrapping
	// ErrCorruptLedger.
	Load() (*AccountRecord, error)
	// Save replaces the stored ledger with rec.
	Save(rec AccountRecord) error
}

// TransactionService owns the ledger's Account. Every change goes through it
// and is saved to the Store before the call returns.
type TransactionService struct {
	store    Store
	account  *Account
	revision uint64
	log      *zap.SugaredLogger
}

// Option configures a TransactionService.
type Option func(*TransactionService)

// WithLogger sets the logger used by the service.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(s *TransactionService) {
		if l != nil {
			s.log = l
		}
	}
}

// Open loads the ledger from store. When nothing is stored the ledger starts
// empty with a zero balance.
//
// When the stored ledger cannot be decoded Open still returns a usable service
// over an empty ledger, together with a *PersistenceError wrapping
// ErrCorruptLedger; the next save replaces the unreadable content. Any other
// read fault returns a nil service.
func Open(store Store, opts ...Option) (*TransactionService, error) {
	s := &TransactionService{
		store: store,
		log:   zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(s)
	}

	rec, err := store.Load()
	if err == nil && rec != nil {
		var acc *Account
		if acc, err = AccountFromRecord(*rec); err == nil {
			s.account = acc
			s.log.Debugw("ledger loaded", "transactions", acc.Len(), "balance", acc.Balance().String())
			return s, nil
		}
		err = fmt.Errorf("%w: %w", ErrCorruptLedger, err)
	}

	s.account, _ = NewAccount(decimal.Zero)
	switch {
	case err == nil:
		s.log.Debugw("no stored ledger, starting empty")
		return s, nil
	case errors.Is(err, ErrCorruptLedger):
		s.log.Warnw("stored ledger is unreadable, starting with an empty ledger", "error", err)
		return s, &PersistenceError{Op: OpLoad, Err: err}
	default:
		return nil, &PersistenceError{Op: OpLoad, Err: err}
	}
}

// AddTransaction appends t to the ledger and saves it. A *PersistenceError
// means the transaction is in the ledger but was not saved.
func (s *TransactionService) AddTransaction(t *Transaction) error {
	s.account.AddTransaction(t)
	s.revision++
	s.log.Debugw("transaction added",
		"type", t.Kind().String(),
		"amount", t.Amount().String(),
		"date", t.DateString(),
		"category", t.Category())
	return s.save()
}

// AddTransactions appends all of txs and saves once.
func (s *TransactionService) AddTransactions(txs []*Transaction) error {
	if len(txs) == 0 {
		return nil
	}
	for _, t := range txs {
		s.account.AddTransaction(t)
	}
	s.revision++
	s.log.Debugw("transactions added", "count", len(txs))
	return s.save()
}

func (s *TransactionService) save() error {
	if err := s.store.Save(s.account.Record()); err != nil {
		s.log.Errorw("ledger not saved", "error", err, "transactions", s.account.Len())
		return &PersistenceError{Op: OpSave, Err: err}
	}
	return nil
}

// Revision changes every time the ledger changes.
func (s *TransactionService) Revision() uint64 {
	return s.revision
}

// Balance returns the current balance.
func (s *TransactionService) Balance() decimal.Decimal {
	return s.account.Balance()
}

// Transactions returns every transaction in insertion order.
func (s *TransactionService) Transactions() []*Transaction {
	return s.account.Transactions()
}

// TransactionsByPeriod returns the transactions dated from start to end, both
// inclusive, in insertion order. Only the calendar date of start and end is
// used.
func (s *TransactionService) TransactionsByPeriod(start, end time.Time) []*Transaction {
	return s.Query(Filter{Start: start, End: end})
}

// TransactionsByKind returns the transactions of kind k in insertion order.
func (s *TransactionService) TransactionsByKind(k Kind) []*Transaction {
	return s.Query(Filter{Kind: k})
}

// TransactionsByCategory returns the transactions whose category equals
// category exactly. An empty category matches uncategorized transactions.
func (s *TransactionService) TransactionsByCategory(category string) []*Transaction {
	return s.Query(Filter{Category: &category})
}

// Query returns the transactions matching f in insertion order.
func (s *TransactionService) Query(f Filter) []*Transaction {
	return f.Apply(s.account.transactions)
}

// Categories returns the distinct non-empty categories in order of first use.
func (s *TransactionService) Categories() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, t := range s.account.transactions {
		if t.category == "" {
			continue
		}
		if _, ok := seen[t.category]; ok {
			continue
		}
		seen[t.category] = struct{}{}
		out = append(out, t.category)
	}
	return out
}

// LastDate returns the most recent transaction date.
func (s *TransactionService) LastDate() (time.Time, bool) {
	var last time.Time
	for _, t := range s.account.transactions {
		if t.date.After(last) {
			last = t.date
		}
	}
	return last, !last.IsZero()
}

// Filter selects transactions. Zero fields do not filter: a zero Start or End
// leaves that side of the period open, an empty Kind matches both kinds and a
// nil Category matches every category.
type Filter struct {
	Start    time.Time
	End      time.Time
	Kind     Kind
	Category *string
}

// Match reports whether t passes every set field of f.
func (f Filter) Match(t *Transaction) bool {
	if !f.Start.IsZero() && t.date.Before(dateOf(f.Start)) {
		return false
	}
	if !f.End.IsZero() && t.date.After(dateOf(f.End)) {
		return false
	}
	if f.Kind != "" && t.kind != f.Kind {
		return false
	}
	if f.Category != nil && t.category != *f.Category {
		return false
	}
	return true
}

// Apply returns the elements of txs matching f, keeping their order.
func (f Filter) Apply(txs []*Transaction) []*Transaction {
	out := make([]*Transaction, 0)
	for _, t := range txs {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}
