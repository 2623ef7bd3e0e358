package finbook

import "testing"

// USD is a helper for tests to create dollar money from a const.
func USD(v float64) Money { return M(v, "USD") }

// intPtr is a helper for tests to build a remaining-occurrences counter.
func intPtr(v int) *int { return &v }

// newTestLedger creates a ledger with the two accounts most tests need: the
// "cash" asset holding 1000 and the "card" liability holding 0.
func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	l := NewLedger()
	accounts := []*Account{
		{ID: "cash", Name: "Cash", Kind: Asset, Balance: USD(1000)},
		{ID: "card", Name: "Credit Card", Kind: Liability, Balance: USD(0)},
	}
	for _, a := range accounts {
		if err := l.Accounts().Add(a); err != nil {
			t.Fatalf("Add(%q) failed: %v", a.ID, err)
		}
	}
	return l
}

// balance returns the current balance of an account, failing the test when
// the account is unknown.
func balance(t *testing.T, l *Ledger, id string) Money {
	t.Helper()
	a, ok := l.Accounts().Get(id)
	if !ok {
		t.Fatalf("account %q not found", id)
	}
	return a.Balance
}

// checkReplay asserts the engine invariant: for every account, the current
// balance equals its opening balance plus the replayed apply-deltas of all
// stored transactions.
func checkReplay(t *testing.T, l *Ledger, openings map[string]Money) {
	t.Helper()
	replayed := l.Replay()
	for _, a := range l.Accounts().Accounts() {
		want := openings[a.ID].Add(replayed[a.ID])
		if !a.Balance.Equal(want) {
			t.Errorf("account %q balance = %s, replay says %s", a.ID, a.Balance, want)
		}
	}
}
