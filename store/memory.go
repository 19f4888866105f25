package store

import (
	"slices"

	"github.com/plenert/cashbook"
)

// Memory keeps the ledger in memory. LoadErr and SaveErr, when set, are
// returned by Load and Save instead of doing any work.
type Memory struct {
	rec   *cashbook.AccountRecord
	saves int

	LoadErr error
	SaveErr error
}

// NewMemory returns a store holding rec, or nothing when rec is nil.
func NewMemory(rec *cashbook.AccountRecord) *Memory {
	m := &Memory{}
	if rec != nil {
		m.rec = copyRecord(*rec)
	}
	return m
}

// Load implements cashbook.Store.
func (m *Memory) Load() (*cashbook.AccountRecord, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.rec == nil {
		return nil, nil
	}
	return copyRecord(*m.rec), nil
}

// Save implements cashbook.Store.
func (m *Memory) Save(rec cashbook.AccountRecord) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.rec = copyRecord(rec)
	m.saves++
	return nil
}

// Saves returns the number of successful saves.
func (m *Memory) Saves() int {
	return m.saves
}

func copyRecord(rec cashbook.AccountRecord) *cashbook.AccountRecord {
	rec.Transactions = slices.Clone(rec.Transactions)
	return &rec
}
