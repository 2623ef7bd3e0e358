package finbook

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// This file persists the whole ledger as one JSON document. There is no
// partial persistence and no migration machinery: older documents simply omit
// the newer optional collections (recurringRules, customCategories) and they
// default to empty on decode.

// jaccount is the wire form of an Account. The kind is implied by the group
// the account is stored under.
type jaccount struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency,omitempty"`
}

// jrule is the wire form of a RecurringRule.
type jrule struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Type            TxType          `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency,omitempty"`
	Category        string          `json:"category"`
	Note            string          `json:"note,omitempty"`
	Source          string          `json:"source,omitempty"`
	SourceKind      AccountKind     `json:"sourceKind,omitempty"`
	Destination     string          `json:"destination,omitempty"`
	DestinationKind AccountKind     `json:"destinationKind,omitempty"`
	DayOfMonth      int             `json:"dayOfMonth"`
	NextDue         Date            `json:"nextDueDate"`
	LastProcessed   *Date           `json:"lastProcessedDate,omitempty"`
	Active          bool            `json:"active"`
	Remaining       *int            `json:"remainingOccurrences,omitempty"`
}

// jledgerIn is the decoding form of the whole persisted unit, with pointers
// where the import shape check needs to distinguish "absent" from "empty".
type jledgerIn struct {
	Currency     string             `json:"currency"`
	Transactions *[]json.RawMessage `json:"transactions"`
	Accounts     *struct {
		Assets      []jaccount `json:"assets"`
		Liabilities []jaccount `json:"liabilities"`
	} `json:"accounts"`
	RecurringRules   []jrule  `json:"recurringRules"`
	CustomCategories []string `json:"customCategories"`
}

// EncodeLedger writes the ledger to w as a single indented JSON document with
// a stable field order.
func EncodeLedger(w io.Writer, l *Ledger) error {
	var out jsonObjectWriter
	out.Optional("currency", l.currency)
	// encode empty collections as [], not null: the import shape check on the
	// other side requires the sequences to be present.
	transactions := l.transactions
	if transactions == nil {
		transactions = []Transaction{}
	}
	out.Append("transactions", transactions)

	var accounts jsonObjectWriter
	accounts.Append("assets", encodeAccounts(l.accounts.ByKind(Asset)))
	accounts.Append("liabilities", encodeAccounts(l.accounts.ByKind(Liability)))
	out.Append("accounts", &accounts)

	rules := make([]jrule, 0, len(l.rules))
	for _, r := range l.rules {
		rules = append(rules, encodeRule(r))
	}
	out.Append("recurringRules", rules)
	out.Append("customCategories", append([]string{}, l.customCategories...))

	data, err := out.MarshalJSON()
	if err != nil {
		return fmt.Errorf("could not encode ledger: %w", err)
	}
	var buf []byte
	if buf, err = indentJSON(data); err != nil {
		return fmt.Errorf("could not encode ledger: %w", err)
	}
	_, err = w.Write(buf)
	return err
}

func indentJSON(data []byte) ([]byte, error) {
	var raw json.RawMessage = data
	return json.MarshalIndent(raw, "", "  ")
}

func encodeAccounts(accounts []*Account) []jaccount {
	out := make([]jaccount, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, jaccount{
			ID:       a.ID,
			Name:     a.Name,
			Balance:  a.Balance.Decimal(),
			Currency: a.Balance.Currency(),
		})
	}
	return out
}

func encodeRule(r RecurringRule) jrule {
	j := jrule{
		ID:              r.ID,
		Name:            r.Name,
		Type:            r.Type,
		Amount:          r.Amount.Decimal(),
		Currency:        r.Amount.Currency(),
		Category:        r.Category,
		Note:            r.Note,
		Source:          r.SourceID,
		SourceKind:      r.SourceKind,
		Destination:     r.DestinationID,
		DestinationKind: r.DestinationKind,
		DayOfMonth:      r.DayOfMonth,
		NextDue:         r.NextDue,
		Active:          r.Active,
		Remaining:       r.Remaining,
	}
	if !r.LastProcessed.IsZero() {
		d := r.LastProcessed
		j.LastProcessed = &d
	}
	return j
}

func decodeRule(j jrule) RecurringRule {
	r := RecurringRule{
		ID:              j.ID,
		Name:            j.Name,
		Type:            j.Type,
		Amount:          M(j.Amount, j.Currency),
		Category:        j.Category,
		Note:            j.Note,
		SourceID:        j.Source,
		SourceKind:      j.SourceKind,
		DestinationID:   j.Destination,
		DestinationKind: j.DestinationKind,
		DayOfMonth:      j.DayOfMonth,
		NextDue:         j.NextDue,
		Active:          j.Active,
		Remaining:       j.Remaining,
	}
	if j.LastProcessed != nil {
		r.LastProcessed = *j.LastProcessed
	}
	return r
}

// DecodeLedger reads a ledger from a single JSON document. A payload missing
// the transactions or accounts sequences is rejected with ErrImportFormat;
// the newer optional collections default to empty.
//
// The ledger is single-currency: every amount in the document must be in the
// document's currency (or omit its own). A mixed-currency document is rejected
// here, so no later arithmetic can meet two currencies.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var j jledgerIn
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportFormat, err)
	}
	if j.Transactions == nil {
		return nil, fmt.Errorf("%w: missing transactions list", ErrImportFormat)
	}
	if j.Accounts == nil {
		return nil, fmt.Errorf("%w: missing accounts", ErrImportFormat)
	}

	l := NewLedger()
	if j.Currency != "" {
		if err := l.SetCurrency(j.Currency); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrImportFormat, err)
		}
	}
	for _, raw := range *j.Transactions {
		var t Transaction
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, fmt.Errorf("%w: bad transaction %q: %v", ErrImportFormat, string(raw), err)
		}
		if cur := t.Amount.Currency(); cur != "" && cur != l.currency {
			return nil, fmt.Errorf("%w: transaction %q is in %s, the ledger is in %s", ErrImportFormat, t.ID, cur, l.currency)
		}
		l.transactions = append(l.transactions, t)
	}
	for _, ja := range j.Accounts.Assets {
		if err := addDecodedAccount(l, ja, Asset); err != nil {
			return nil, err
		}
	}
	for _, ja := range j.Accounts.Liabilities {
		if err := addDecodedAccount(l, ja, Liability); err != nil {
			return nil, err
		}
	}
	for _, jr := range j.RecurringRules {
		r := decodeRule(jr)
		if cur := r.Amount.Currency(); cur != "" && cur != l.currency {
			return nil, fmt.Errorf("%w: recurring rule %q is in %s, the ledger is in %s", ErrImportFormat, r.ID, cur, l.currency)
		}
		l.rules = append(l.rules, r)
	}
	l.customCategories = j.CustomCategories
	return l, nil
}

func addDecodedAccount(l *Ledger, ja jaccount, kind AccountKind) error {
	currency := ja.Currency
	if currency == "" {
		currency = l.currency
	}
	if currency != l.currency {
		return fmt.Errorf("%w: account %q is in %s, the ledger is in %s", ErrImportFormat, ja.ID, currency, l.currency)
	}
	a := &Account{ID: ja.ID, Name: ja.Name, Kind: kind, Balance: M(ja.Balance, currency)}
	if err := l.accounts.Add(a); err != nil {
		// A duplicate or unnamed account in the stored file is dropped with a
		// warning rather than making the whole ledger unreadable.
		log.Printf("warning: skipping stored account %q: %v", ja.ID, err)
	}
	return nil
}

// LoadLedger reads the ledger from the given file. An absent or malformed
// file yields a default-empty ledger, never an error: the previous snapshot
// semantics are whole-object, last-write-wins.
func LoadLedger(path string) *Ledger {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewLedger()
	}
	if err != nil {
		log.Printf("warning: could not open ledger file %q: %v", path, err)
		return NewLedger()
	}
	defer f.Close()
	l, err := DecodeLedger(f)
	if err != nil {
		log.Printf("warning: could not decode ledger file %q, starting empty: %v", path, err)
		return NewLedger()
	}
	return l
}

// SaveLedger writes the whole ledger to the given file. The document is
// written to a temporary file first and renamed into place, so a crash
// mid-write never corrupts the previous snapshot.
func SaveLedger(path string, l *Ledger) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("could not create temporary ledger file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := EncodeLedger(tmp, l); err != nil {
		tmp.Close()
		return fmt.Errorf("could not write ledger file %q: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not write ledger file %q: %w", path, err)
	}
	return os.Rename(tmp.Name(), path)
}
