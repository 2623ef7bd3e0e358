package finbook

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"
)

func TestExportFileImportRoundTrip(t *testing.T) {
	l := newTestLedger(t)
	err := l.AddTransaction(Transaction{
		ID: "t1", Date: NewDate(2025, time.June, 2), Type: Income,
		Amount: USD(2500), Category: "Salary", SourceID: "cash", SourceKind: Asset,
	})
	if err != nil {
		t.Fatalf("AddTransaction failed: %v", err)
	}

	now := time.Date(2025, time.June, 3, 9, 30, 0, 0, time.UTC)
	path, err := ExportFile(t.TempDir(), l, now)
	if err != nil {
		t.Fatalf("ExportFile failed: %v", err)
	}
	if want := "finbook-20250603-093000.json"; !strings.HasSuffix(path, want) {
		t.Errorf("export path = %q, want suffix %q", path, want)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	back, err := Import(f)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if got := balance(t, back, "cash"); !got.Equal(USD(3500)) {
		t.Errorf("cash = %s, want %s", got, USD(3500))
	}
	if _, ok := back.Transaction("t1"); !ok {
		t.Error("transaction t1 lost in the round trip")
	}
}

func TestImportRejectsForeignDocument(t *testing.T) {
	_, err := Import(strings.NewReader(`{"version": 3, "entries": []}`))
	if !errors.Is(err, ErrImportFormat) {
		t.Errorf("Import = %v, want ErrImportFormat", err)
	}
}
