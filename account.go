package finbook

import (
	"fmt"
)

// AccountKind is a typed string distinguishing asset accounts from liability
// accounts. The kind decides the sign of every balance effect (see effects.go).
type AccountKind string

const (
	// Asset is an account holding value: cash, savings, a brokerage account.
	Asset AccountKind = "asset"
	// Liability is an account holding debt: a credit card, a loan.
	Liability AccountKind = "liability"
)

// ParseAccountKind parses a string into an AccountKind.
func ParseAccountKind(s string) (AccountKind, error) {
	switch AccountKind(s) {
	case Asset:
		return Asset, nil
	case Liability:
		return Liability, nil
	default:
		return "", newValidationError("unknown account kind %q, want %q or %q", s, Asset, Liability)
	}
}

// Account is an asset or liability with a running balance.
//
// The balance only changes through resolved transaction effects, with one
// exception: SetBalance is a direct, non-transactional override used when the
// user corrects an account by hand.
type Account struct {
	ID      string
	Name    string
	Kind    AccountKind
	Balance Money
}

// AccountStore holds the current mutable balance of every account, keyed by
// id with an explicit kind tag. Insertion order is preserved for display and
// for a stable persisted form.
type AccountStore struct {
	index map[string]*Account
	order []string
}

// NewAccountStore creates an empty account store.
func NewAccountStore() *AccountStore {
	return &AccountStore{index: make(map[string]*Account)}
}

// Len returns the number of accounts in the store.
func (s *AccountStore) Len() int { return len(s.order) }

// Get returns the account with the given id, or false if unknown.
func (s *AccountStore) Get(id string) (*Account, bool) {
	a, ok := s.index[id]
	return a, ok
}

// Add inserts a new account. It is an error to reuse an existing id.
func (s *AccountStore) Add(a *Account) error {
	if a.ID == "" {
		return newValidationError("account is missing an id")
	}
	if a.Name == "" {
		return newValidationError("account is missing a name")
	}
	if _, err := ParseAccountKind(string(a.Kind)); err != nil {
		return err
	}
	if _, exists := s.index[a.ID]; exists {
		return newValidationError("account id %q already exists", a.ID)
	}
	s.index[a.ID] = a
	s.order = append(s.order, a.ID)
	return nil
}

// Delete removes the account with the given id. Transactions referencing it
// keep their dangling id; display falls back to "unknown account".
func (s *AccountStore) Delete(id string) error {
	if _, ok := s.index[id]; !ok {
		return fmt.Errorf("account %q: %w", id, ErrNotFound)
	}
	delete(s.index, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Adjust atomically applies a signed delta to the account's balance. A delta
// against an unknown id is a no-op, never an error: transactions may
// reference deleted accounts.
func (s *AccountStore) Adjust(id string, delta Money) bool {
	a, ok := s.index[id]
	if !ok {
		return false
	}
	a.Balance = a.Balance.Add(delta)
	return true
}

// SetBalance overrides the account balance directly. This is a
// non-transactional user edit, distinct from transaction-driven deltas.
func (s *AccountStore) SetBalance(id string, balance Money) error {
	a, ok := s.index[id]
	if !ok {
		return fmt.Errorf("account %q: %w", id, ErrNotFound)
	}
	a.Balance = balance
	return nil
}

// Accounts returns all accounts in insertion order.
func (s *AccountStore) Accounts() []*Account {
	out := make([]*Account, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.index[id])
	}
	return out
}

// ByKind returns the accounts of the given kind, in insertion order.
func (s *AccountStore) ByKind(kind AccountKind) []*Account {
	var out []*Account
	for _, id := range s.order {
		if a := s.index[id]; a.Kind == kind {
			out = append(out, a)
		}
	}
	return out
}

// Total sums the balances of all accounts of the given kind.
func (s *AccountStore) Total(kind AccountKind) Money {
	var total Money
	for _, a := range s.ByKind(kind) {
		total = total.Add(a.Balance)
	}
	return total
}
