package finbook

import (
	"testing"
	"time"
)

func TestBalanceEffects(t *testing.T) {
	day := NewDate(2025, time.June, 1)
	testCases := []struct {
		name string
		tx   Transaction
		want []Effect
	}{
		{
			name: "income into asset adds cash",
			tx:   Transaction{Type: Income, Amount: USD(100), SourceID: "cash", SourceKind: Asset, Date: day},
			want: []Effect{{AccountID: "cash", Kind: Asset, Delta: USD(100)}},
		},
		{
			name: "income against liability reduces debt",
			tx:   Transaction{Type: Income, Amount: USD(100), SourceID: "card", SourceKind: Liability, Date: day},
			want: []Effect{{AccountID: "card", Kind: Liability, Delta: USD(-100)}},
		},
		{
			name: "expense from asset removes cash",
			tx:   Transaction{Type: Expense, Amount: USD(100), SourceID: "cash", SourceKind: Asset, Date: day},
			want: []Effect{{AccountID: "cash", Kind: Asset, Delta: USD(-100)}},
		},
		{
			name: "expense on liability increases debt",
			tx:   Transaction{Type: Expense, Amount: USD(100), SourceID: "card", SourceKind: Liability, Date: day},
			want: []Effect{{AccountID: "card", Kind: Liability, Delta: USD(100)}},
		},
		{
			name: "transfer asset to asset",
			tx: Transaction{Type: Transfer, Amount: USD(100), SourceID: "cash", SourceKind: Asset,
				DestinationID: "savings", DestinationKind: Asset, Date: day},
			want: []Effect{
				{AccountID: "cash", Kind: Asset, Delta: USD(-100)},
				{AccountID: "savings", Kind: Asset, Delta: USD(100)},
			},
		},
		{
			name: "transfer paying down a liability",
			tx: Transaction{Type: Transfer, Amount: USD(300), SourceID: "cash", SourceKind: Asset,
				DestinationID: "card", DestinationKind: Liability, Date: day},
			want: []Effect{
				{AccountID: "cash", Kind: Asset, Delta: USD(-300)},
				{AccountID: "card", Kind: Liability, Delta: USD(-300)},
			},
		},
		{
			name: "cash advance from a liability",
			tx: Transaction{Type: Transfer, Amount: USD(50), SourceID: "card", SourceKind: Liability,
				DestinationID: "cash", DestinationKind: Asset, Date: day},
			want: []Effect{
				{AccountID: "card", Kind: Liability, Delta: USD(50)},
				{AccountID: "cash", Kind: Asset, Delta: USD(50)},
			},
		},
		{
			name: "unlinked expense has no effect",
			tx:   Transaction{Type: Expense, Amount: USD(100), Date: day},
			want: nil,
		},
		{
			name: "unlinked income has no effect",
			tx:   Transaction{Type: Income, Amount: USD(100), Date: day},
			want: nil,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := BalanceEffects(tc.tx, Apply)
			if len(got) != len(tc.want) {
				t.Fatalf("BalanceEffects(Apply) = %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i].AccountID != tc.want[i].AccountID || got[i].Kind != tc.want[i].Kind || !got[i].Delta.Equal(tc.want[i].Delta) {
					t.Errorf("effect[%d] = %+v, want %+v", i, got[i], tc.want[i])
				}
			}

			// Revert polarity negates every delta.
			reverted := BalanceEffects(tc.tx, Revert)
			if len(reverted) != len(got) {
				t.Fatalf("BalanceEffects(Revert) has %d effects, want %d", len(reverted), len(got))
			}
			for i := range reverted {
				if !reverted[i].Delta.Equal(got[i].Delta.Neg()) {
					t.Errorf("revert effect[%d] = %s, want %s", i, reverted[i].Delta, got[i].Delta.Neg())
				}
			}
		})
	}
}

func TestBalanceEffectsIsPure(t *testing.T) {
	tx := Transaction{Type: Expense, Amount: USD(100), SourceID: "cash", SourceKind: Asset}
	first := BalanceEffects(tx, Apply)
	second := BalanceEffects(tx, Apply)
	if len(first) != 1 || len(second) != 1 || !first[0].Delta.Equal(second[0].Delta) {
		t.Errorf("BalanceEffects is not stable: %v vs %v", first, second)
	}
}
