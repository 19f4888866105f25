// Package store keeps a cashbook ledger on disk or in memory.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/plenert/cashbook"
)

// BrotliExt marks ledger files stored brotli-compressed.
const BrotliExt = ".br"

// JSONFile stores the ledger as a single JSON document. Each save writes a
// temporary file next to the ledger and renames it over the old one, so a
// crash during a save leaves the previous ledger in place.
type JSONFile struct {
	path     string
	compress bool
}

// NewJSONFile returns a store for path. Paths ending in BrotliExt are read
// and written brotli-compressed.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{
		path:     path,
		compress: strings.HasSuffix(path, BrotliExt),
	}
}

// Path returns the ledger file path.
func (f *JSONFile) Path() string {
	return f.path
}

// Load implements cashbook.Store. A missing file is an empty ledger.
func (f *JSONFile) Load() (*cashbook.AccountRecord, error) {
	file, err := os.Open(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var r io.Reader = file
	if f.compress {
		data, err := io.ReadAll(brotli.NewReader(file))
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %v", f.path, cashbook.ErrCorruptLedger, err)
		}
		r = bytes.NewReader(data)
	}
	rec, err := cashbook.ReadAccount(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.path, err)
	}
	return rec, nil
}

// Save implements cashbook.Store. An existing ledger keeps its permissions.
func (f *JSONFile) Save(rec cashbook.AccountRecord) (err error) {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create ledger directory: %w", err)
	}

	mode := fs.FileMode(0o644)
	if fi, err := os.Stat(f.path); err == nil {
		mode = fi.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temporary file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if f.compress {
		bw := brotli.NewWriterLevel(tmp, brotli.BestCompression)
		if err = cashbook.WriteAccount(bw, rec); err != nil {
			return fmt.Errorf("write %s: %w", f.path, err)
		}
		if err = bw.Close(); err != nil {
			return fmt.Errorf("compress %s: %w", f.path, err)
		}
	} else if err = cashbook.WriteAccount(tmp, rec); err != nil {
		return fmt.Errorf("write %s: %w", f.path, err)
	}

	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", f.path, err)
	}
	if err = tmp.Chmod(mode); err != nil {
		return fmt.Errorf("chmod %s: %w", f.path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", f.path, err)
	}
	if err = os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace %s: %w", f.path, err)
	}
	return nil
}
