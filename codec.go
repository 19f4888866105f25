package cashbook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// ReadAccount decodes a ledger document. An empty document or an empty JSON
// object holds no ledger and yields a nil record. Anything that is not a
// ledger document is reported as ErrCorruptLedger.
func ReadAccount(r io.Reader) (*AccountRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptLedger, err)
	}
	if len(fields) == 0 {
		return nil, nil
	}
	if _, ok := fields["balance"]; !ok {
		return nil, fmt.Errorf("%w: missing balance", ErrCorruptLedger)
	}

	var rec AccountRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptLedger, err)
	}
	return &rec, nil
}

// WriteAccount encodes rec as an indented JSON document.
func WriteAccount(w io.Writer, rec AccountRecord) error {
	if rec.Transactions == nil {
		rec.Transactions = []TransactionRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	return enc.Encode(rec)
}
