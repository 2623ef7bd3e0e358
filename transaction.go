package finbook

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// TxType is a typed string identifying the kind of a transaction.
type TxType string

// Transaction types.
const (
	Income   TxType = "income"
	Expense  TxType = "expense"
	Transfer TxType = "transfer"
)

// ParseTxType parses a string into a TxType.
func ParseTxType(s string) (TxType, error) {
	switch TxType(s) {
	case Income, Expense, Transfer:
		return TxType(s), nil
	default:
		return "", newValidationError("unknown transaction type %q, want %q, %q or %q", s, Income, Expense, Transfer)
	}
}

// Transaction is a single dated movement of money.
//
// Income and Expense use only the source endpoint; the source is optional,
// and an unlinked transaction has no balance effect. Transfer requires both
// endpoints, set and distinct. The identity (ID) is immutable across edits.
type Transaction struct {
	ID       string
	Date     Date
	Type     TxType
	Amount   Money
	Category string
	Note     string

	SourceID        string
	SourceKind      AccountKind // "" when unlinked
	DestinationID   string
	DestinationKind AccountKind

	// RuleID links a materialized occurrence back to its recurring rule.
	RuleID string
}

// Validate checks the transaction invariants. It returns a *ValidationError
// describing the first failure, and never mutates anything.
func (t Transaction) Validate() error {
	if _, err := ParseTxType(string(t.Type)); err != nil {
		return err
	}
	if !t.Amount.IsPositive() {
		return newValidationError("transaction amount must be positive, got %s", t.Amount.Decimal())
	}
	if t.Category == "" {
		return newValidationError("transaction is missing a category")
	}
	if t.SourceID != "" {
		if _, err := ParseAccountKind(string(t.SourceKind)); err != nil {
			return newValidationError("transaction source %q is missing its account kind", t.SourceID)
		}
	}
	if t.DestinationID != "" {
		if _, err := ParseAccountKind(string(t.DestinationKind)); err != nil {
			return newValidationError("transaction destination %q is missing its account kind", t.DestinationID)
		}
	}
	switch t.Type {
	case Transfer:
		if t.SourceID == "" || t.DestinationID == "" {
			return newValidationError("a transfer requires both a source and a destination account")
		}
		if t.SourceID == t.DestinationID {
			return newValidationError("a transfer requires distinct source and destination accounts")
		}
	default:
		if t.DestinationID != "" {
			return newValidationError("only transfers may set a destination account")
		}
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface with a stable field
// order, so that the persisted ledger stays diff-friendly.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("date", t.Date)
	w.Append("type", t.Type)
	w.Append("amount", t.Amount.Decimal())
	w.Optional("currency", t.Amount.Currency())
	w.Append("category", t.Category)
	w.Optional("note", t.Note)
	w.Optional("source", t.SourceID)
	w.Optional("sourceKind", t.SourceKind)
	w.Optional("destination", t.DestinationID)
	w.Optional("destinationKind", t.DestinationKind)
	w.Optional("rule", t.RuleID)
	return w.MarshalJSON()
}

// jtransaction is the wire form of a Transaction, amount and currency split
// in two fields like every monetary value in the store.
type jtransaction struct {
	ID              string          `json:"id"`
	Date            Date            `json:"date"`
	Type            TxType          `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency,omitempty"`
	Category        string          `json:"category"`
	Note            string          `json:"note,omitempty"`
	Source          string          `json:"source,omitempty"`
	SourceKind      AccountKind     `json:"sourceKind,omitempty"`
	Destination     string          `json:"destination,omitempty"`
	DestinationKind AccountKind     `json:"destinationKind,omitempty"`
	Rule            string          `json:"rule,omitempty"`
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var j jtransaction
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	*t = Transaction{
		ID:              j.ID,
		Date:            j.Date,
		Type:            j.Type,
		Amount:          M(j.Amount, j.Currency),
		Category:        j.Category,
		Note:            j.Note,
		SourceID:        j.Source,
		SourceKind:      j.SourceKind,
		DestinationID:   j.Destination,
		DestinationKind: j.DestinationKind,
		RuleID:          j.Rule,
	}
	return nil
}
