package finbook

import (
	"fmt"
	"slices"
)

// DefaultCurrency is the currency assumed for amounts entered without one.
const DefaultCurrency = "USD"

// Ledger is the aggregate root of the whole tracked state: the transaction
// list, the account store, the recurring rule catalog and the custom category
// list, kept mutually consistent.
//
// Transactions are stored in insertion order; any display ordering is the
// renderer's concern. The engine invariant is that every account balance
// equals the sum of apply-deltas over the currently stored transactions that
// reference it (plus direct balance overrides). The engine maintains this
// incrementally, but a full replay must reproduce the same state.
//
// The ledger is not safe for concurrent use. All mutation happens on one
// goroutine: the CLI loads, catches up recurring rules, applies one user
// operation and saves.
type Ledger struct {
	transactions     []Transaction
	accounts         *AccountStore
	rules            []RecurringRule
	customCategories []string
	currency         string
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		accounts: NewAccountStore(),
		currency: DefaultCurrency,
	}
}

// Currency returns the ledger's currency.
func (l *Ledger) Currency() string { return l.currency }

// SetCurrency sets the ledger's currency for newly entered amounts.
func (l *Ledger) SetCurrency(code string) error {
	if err := ValidateCurrency(code); err != nil {
		return err
	}
	l.currency = code
	return nil
}

// Accounts returns the ledger's account store.
func (l *Ledger) Accounts() *AccountStore { return l.accounts }

// Transactions returns a copy of the transaction list in insertion order.
func (l *Ledger) Transactions() []Transaction {
	return slices.Clone(l.transactions)
}

// Transaction returns the transaction with the given id.
func (l *Ledger) Transaction(id string) (Transaction, bool) {
	for _, t := range l.transactions {
		if t.ID == id {
			return t, true
		}
	}
	return Transaction{}, false
}

// applyEffects applies resolved deltas to the account store. Effects against
// accounts that no longer exist are skipped individually, not an error.
func (l *Ledger) applyEffects(effects []Effect) {
	for _, e := range effects {
		l.accounts.Adjust(e.AccountID, e.Delta)
	}
}

// AddTransaction validates t, applies its balance effects and appends it to
// the transaction list. On a validation error nothing is mutated.
func (l *Ledger) AddTransaction(t Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if t.ID == "" {
		return newValidationError("transaction is missing an id")
	}
	if _, exists := l.Transaction(t.ID); exists {
		return newValidationError("transaction id %q already exists", t.ID)
	}
	l.applyEffects(BalanceEffects(t, Apply))
	l.transactions = append(l.transactions, t)
	return nil
}

// UpdateTransaction replaces the transaction with the given id by nt,
// reverting the old balance effects and applying the new ones. The stored
// identity is preserved, and so is the recurring rule link unless the edit
// explicitly sets a new one.
//
// The revert/reapply pair is not observable from outside: the ledger is
// single-threaded and no caller runs between the two phases.
func (l *Ledger) UpdateTransaction(id string, nt Transaction) error {
	idx := slices.IndexFunc(l.transactions, func(t Transaction) bool { return t.ID == id })
	if idx < 0 {
		return fmt.Errorf("transaction %q: %w", id, ErrNotFound)
	}
	old := l.transactions[idx]
	nt.ID = old.ID
	if nt.RuleID == "" {
		nt.RuleID = old.RuleID
	}
	if err := nt.Validate(); err != nil {
		return err
	}
	l.applyEffects(BalanceEffects(old, Revert))
	l.applyEffects(BalanceEffects(nt, Apply))
	l.transactions[idx] = nt
	return nil
}

// DeleteTransaction reverts the stored transaction's balance effects and
// removes it from the list.
func (l *Ledger) DeleteTransaction(id string) error {
	idx := slices.IndexFunc(l.transactions, func(t Transaction) bool { return t.ID == id })
	if idx < 0 {
		return fmt.Errorf("transaction %q: %w", id, ErrNotFound)
	}
	l.applyEffects(BalanceEffects(l.transactions[idx], Revert))
	l.transactions = slices.Delete(l.transactions, idx, idx+1)
	return nil
}

// DeleteTransactionsByRule reverts and removes every transaction materialized
// by the given recurring rule. It returns the number of removed transactions.
func (l *Ledger) DeleteTransactionsByRule(ruleID string) int {
	kept := l.transactions[:0]
	removed := 0
	for _, t := range l.transactions {
		if t.RuleID == ruleID {
			l.applyEffects(BalanceEffects(t, Revert))
			removed++
			continue
		}
		kept = append(kept, t)
	}
	l.transactions = kept
	return removed
}

// Replay recomputes every account balance from scratch by applying the
// effects of all stored transactions over zero balances. It returns the
// resulting balance per account id. Replay is the reference the incremental
// engine is tested against; it ignores direct balance overrides.
func (l *Ledger) Replay() map[string]Money {
	balances := make(map[string]Money, l.accounts.Len())
	for _, a := range l.accounts.Accounts() {
		balances[a.ID] = M(0, a.Balance.Currency())
	}
	for _, t := range l.transactions {
		for _, e := range BalanceEffects(t, Apply) {
			if b, ok := balances[e.AccountID]; ok {
				balances[e.AccountID] = b.Add(e.Delta)
			}
		}
	}
	return balances
}
