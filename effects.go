package finbook

// Polarity selects whether a transaction's balance effects are being applied
// or exactly reversed.
type Polarity int

const (
	// Apply resolves the deltas a transaction causes when entering the ledger.
	Apply Polarity = iota
	// Revert resolves the exact negation, used by update and delete.
	Revert
)

// Effect is one signed balance change against one account.
type Effect struct {
	AccountID string
	Kind      AccountKind
	Delta     Money
}

// BalanceEffects resolves the signed balance deltas a transaction must apply.
// It is a pure function: no I/O, no mutation, no account lookup. An endpoint
// with an empty id contributes nothing. Whether the referenced account still
// exists is the store's concern, not the resolver's.
//
// Apply polarity, by transaction type:
//   - Income into an asset adds cash; income against a liability reduces the
//     debt (a refund on a credit card).
//   - Expense from an asset removes cash; expense on a liability increases
//     the debt.
//   - Transfer draws from the source like an expense and lands on the
//     destination with the inverse shape: paying a liability reduces it.
//
// Revert polarity negates every delta.
func BalanceEffects(t Transaction, p Polarity) []Effect {
	var effects []Effect
	add := func(id string, kind AccountKind, delta Money) {
		if id == "" {
			return
		}
		if p == Revert {
			delta = delta.Neg()
		}
		effects = append(effects, Effect{AccountID: id, Kind: kind, Delta: delta})
	}

	amount := t.Amount
	switch t.Type {
	case Income:
		switch t.SourceKind {
		case Asset:
			add(t.SourceID, Asset, amount)
		case Liability:
			add(t.SourceID, Liability, amount.Neg())
		}
	case Expense:
		switch t.SourceKind {
		case Asset:
			add(t.SourceID, Asset, amount.Neg())
		case Liability:
			add(t.SourceID, Liability, amount)
		}
	case Transfer:
		switch t.SourceKind {
		case Asset:
			add(t.SourceID, Asset, amount.Neg())
		case Liability:
			add(t.SourceID, Liability, amount)
		}
		switch t.DestinationKind {
		case Asset:
			add(t.DestinationID, Asset, amount)
		case Liability:
			add(t.DestinationID, Liability, amount.Neg())
		}
	}
	return effects
}
