package finbook

import (
	"testing"
	"time"
)

func TestSummarize(t *testing.T) {
	l := newTestLedger(t)
	add := func(tx Transaction) {
		t.Helper()
		if err := l.AddTransaction(tx); err != nil {
			t.Fatalf("AddTransaction(%s) failed: %v", tx.ID, err)
		}
	}
	// May flows are outside the June window.
	add(Transaction{ID: "old", Date: NewDate(2025, time.May, 20), Type: Expense,
		Amount: USD(999), Category: "Travel", SourceID: "cash", SourceKind: Asset})
	add(Transaction{ID: "pay", Date: NewDate(2025, time.June, 1), Type: Income,
		Amount: USD(2500), Category: "Salary", SourceID: "cash", SourceKind: Asset})
	add(Transaction{ID: "food", Date: NewDate(2025, time.June, 3), Type: Expense,
		Amount: USD(120), Category: "Groceries", SourceID: "cash", SourceKind: Asset})
	add(Transaction{ID: "out", Date: NewDate(2025, time.June, 5), Type: Expense,
		Amount: USD(80), Category: "Dining", SourceID: "card", SourceKind: Liability})
	// Transfers move money around but are neither income nor expense.
	add(Transaction{ID: "pamt", Date: NewDate(2025, time.June, 6), Type: Transfer,
		Amount: USD(80), Category: "Other",
		SourceID: "cash", SourceKind: Asset, DestinationID: "card", DestinationKind: Liability})
	// After the summary date, not counted.
	add(Transaction{ID: "late", Date: NewDate(2025, time.June, 20), Type: Expense,
		Amount: USD(40), Category: "Dining", SourceID: "cash", SourceKind: Asset})

	s := l.Summarize(NewDate(2025, time.June, 10))

	if !s.MonthIncome.Equal(USD(2500)) {
		t.Errorf("MonthIncome = %s, want %s", s.MonthIncome, USD(2500))
	}
	if !s.MonthExpense.Equal(USD(200)) {
		t.Errorf("MonthExpense = %s, want %s", s.MonthExpense, USD(200))
	}
	// cash: 1000 - 999 + 2500 - 120 - 80 - 40 = 2261
	if !s.TotalAssets.Equal(USD(2261)) {
		t.Errorf("TotalAssets = %s, want %s", s.TotalAssets, USD(2261))
	}
	// card: 0 + 80 - 80 = 0
	if !s.TotalLiabilities.Equal(USD(0)) {
		t.Errorf("TotalLiabilities = %s, want %s", s.TotalLiabilities, USD(0))
	}
	if !s.NetWorth.Equal(s.TotalAssets.Sub(s.TotalLiabilities)) {
		t.Errorf("NetWorth = %s, want assets minus liabilities", s.NetWorth)
	}

	want := []CategoryTotal{
		{Category: "Groceries", Total: USD(120)},
		{Category: "Dining", Total: USD(80)},
	}
	if len(s.ExpenseByCategory) != len(want) {
		t.Fatalf("ExpenseByCategory = %v, want %v", s.ExpenseByCategory, want)
	}
	for i := range want {
		got := s.ExpenseByCategory[i]
		if got.Category != want[i].Category || !got.Total.Equal(want[i].Total) {
			t.Errorf("ExpenseByCategory[%d] = %+v, want %+v", i, got, want[i])
		}
	}
}

func TestRecent(t *testing.T) {
	l := newTestLedger(t)
	days := []Date{
		NewDate(2025, time.June, 1),
		NewDate(2025, time.June, 3),
		NewDate(2025, time.June, 3),
		NewDate(2025, time.June, 5),
	}
	ids := []string{"a", "b", "c", "d"}
	for i, day := range days {
		err := l.AddTransaction(Transaction{ID: ids[i], Date: day, Type: Expense,
			Amount: USD(10), Category: "Other", SourceID: "cash", SourceKind: Asset})
		if err != nil {
			t.Fatalf("AddTransaction failed: %v", err)
		}
	}

	got := l.Recent(3)
	// Newest first; the two June 3 entries keep their stored order.
	want := []string{"d", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("Recent(3) returned %d transactions, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Errorf("Recent(3)[%d] = %q, want %q", i, got[i].ID, want[i])
		}
	}
	if all := l.Recent(0); len(all) != 4 {
		t.Errorf("Recent(0) returned %d transactions, want all 4", len(all))
	}
}
