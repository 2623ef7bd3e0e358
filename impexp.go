package finbook

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// this file contains the on-demand import/export of the whole ledger. The
// format is the same single JSON document the store uses, so an exported file
// round-trips through import unchanged.

// Export writes the full ledger to w.
func Export(w io.Writer, l *Ledger) error {
	return EncodeLedger(w, l)
}

// ExportFile writes the full ledger to a timestamped file in dir and returns
// the file's path.
func ExportFile(dir string, l *Ledger, now time.Time) (string, error) {
	name := fmt.Sprintf("finbook-%s.json", now.Format("20060102-150405"))
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("could not create export file %q: %w", path, err)
	}
	defer f.Close()
	if err := Export(f, l); err != nil {
		return "", fmt.Errorf("could not export to %q: %w", path, err)
	}
	return path, nil
}

// Import reads a user-supplied ledger document and returns the decoded
// ledger. On any format error it returns ErrImportFormat (wrapped) and the
// caller keeps its current state: replacement is wholesale or not at all.
func Import(r io.Reader) (*Ledger, error) {
	l, err := DecodeLedger(r)
	if err != nil {
		return nil, err
	}
	return l, nil
}
