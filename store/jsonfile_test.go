package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/plenert/cashbook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sample = cashbook.AccountRecord{
	Balance: "1200.5",
	Transactions: []cashbook.TransactionRecord{
		{Type: "receita", Amount: "500", Date: "2025-01-01", Category: "Salário", Description: "Pagamento"},
		{Type: "despesa", Amount: "300", Date: "2025-01-02", Category: "Aluguel"},
	},
}

func TestJSONFileMissing(t *testing.T) {
	f := NewJSONFile(filepath.Join(t.TempDir(), "finance_data.json"))
	rec, err := f.Load()
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestJSONFileRoundTrip(t *testing.T) {
	for _, name := range []string{"finance_data.json", "finance_data.json.br"} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "nested", name)
			f := NewJSONFile(path)
			require.Equal(t, path, f.Path())

			require.NoError(t, f.Save(sample))
			require.NoError(t, f.Save(sample))

			rec, err := f.Load()
			require.NoError(t, err)
			require.NotNil(t, rec)
			assert.Equal(t, sample, *rec)

			entries, err := os.ReadDir(filepath.Join(dir, "nested"))
			require.NoError(t, err)
			require.Len(t, entries, 1, "temporary files left behind")
			assert.Equal(t, name, entries[0].Name())
		})
	}
}

func TestJSONFileCompressed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json.br")
	require.NoError(t, NewJSONFile(path).Save(sample))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	// the same bytes are not a plain ledger
	plain := strings.TrimSuffix(path, BrotliExt)
	require.NoError(t, os.WriteFile(plain, raw, 0o644))
	_, err = NewJSONFile(plain).Load()
	assert.ErrorIs(t, err, cashbook.ErrCorruptLedger)
}

func TestJSONFileCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finance_data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"balance": 10, "transactions": [`), 0o644))

	_, err := NewJSONFile(path).Load()
	assert.ErrorIs(t, err, cashbook.ErrCorruptLedger)
	assert.Contains(t, err.Error(), path)

	svc, err := cashbook.Open(NewJSONFile(path))
	assert.ErrorIs(t, err, cashbook.ErrCorruptLedger)
	require.NotNil(t, svc)
	assert.True(t, svc.Balance().IsZero())
}

func TestJSONFileCorruptBrotli(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finance_data.json.br")
	require.NoError(t, os.WriteFile(path, []byte("this is not brotli {"), 0o644))

	_, err := NewJSONFile(path).Load()
	assert.ErrorIs(t, err, cashbook.ErrCorruptLedger)

	svc, err := cashbook.Open(NewJSONFile(path))
	assert.ErrorIs(t, err, cashbook.ErrCorruptLedger)
	require.NotNil(t, svc)
	assert.True(t, svc.Balance().IsZero())
}

func TestJSONFileKeepsMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finance_data.json")
	f := NewJSONFile(path)

	require.NoError(t, f.Save(sample))
	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), fi.Mode().Perm())

	require.NoError(t, os.Chmod(path, 0o600))
	require.NoError(t, f.Save(sample))
	fi, err = os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
}

func TestJSONFileEmptyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finance_data.json")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))

	rec, err := NewJSONFile(path).Load()
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestJSONFileLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finance_data.json")
	require.NoError(t, NewJSONFile(path).Save(sample))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "{\n    \"balance\": 1200.5,\n    \"transactions\": [\n"), string(raw))
	assert.Contains(t, string(raw), `"category": "Salário"`)
}

func TestMemory(t *testing.T) {
	m := NewMemory(&sample)
	rec, err := m.Load()
	require.NoError(t, err)
	rec.Transactions[0].Category = "changed"

	again, _ := m.Load()
	assert.Equal(t, "Salário", again.Transactions[0].Category)
	assert.Equal(t, 0, m.Saves())

	m.SaveErr = os.ErrPermission
	assert.ErrorIs(t, m.Save(sample), os.ErrPermission)
	assert.Equal(t, 0, m.Saves())
}
