package cashbook

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidKind            = errors.New("transaction type must be income (receita) or expense (despesa)")
	ErrNonPositiveAmount      = errors.New("amount must be greater than zero")
	ErrAmountOutOfRange       = errors.New("amount is out of range")
	ErrInvalidDate            = errors.New("date must be in YYYY-MM-DD format")
	ErrNegativeInitialBalance = errors.New("initial balance cannot be negative")
	ErrInvalidMonth           = errors.New("month must be between 1 and 12")
	ErrCorruptLedger          = errors.New("ledger data is corrupt")
)

// ValidationError reports a value rejected while building a Transaction or an
// Account. The wrapped error is one of the Err* sentinels above.
type ValidationError struct {
	Field string
	Value any
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, fmt.Sprint(e.Value), e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Persistence operations reported in PersistenceError.Op.
const (
	OpLoad = "load"
	OpSave = "save"
)

// PersistenceError reports a failure of the Store. After a failed save the
// in-memory ledger already holds the change; it is written again with the next
// successful save.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return e.Op + " ledger: " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func invalid(field string, value any, err error) error {
	return &ValidationError{Field: field, Value: value, Err: err}
}
