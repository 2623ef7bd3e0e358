package finbook

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// RecurringRule is a template for a monthly transaction: rent, salary, a
// subscription. The processor materializes one concrete transaction per due
// occurrence and advances the rule in place.
//
// Remaining, when non-nil, counts the occurrences left to materialize; it
// never goes below zero and reaching zero retires the rule (Active=false).
// A retired rule keeps its history and is never processed again.
type RecurringRule struct {
	ID       string
	Name     string
	Amount   Money
	Type     TxType
	Category string
	Note     string

	SourceID        string
	SourceKind      AccountKind
	DestinationID   string
	DestinationKind AccountKind

	// DayOfMonth anchors the schedule (1..31). Months shorter than the anchor
	// clamp to their last day without drifting the following months.
	DayOfMonth    int
	NextDue       Date
	LastProcessed Date
	Active        bool
	Remaining     *int
}

// Validate checks the rule invariants.
func (r RecurringRule) Validate() error {
	if r.Name == "" {
		return newValidationError("recurring rule is missing a name")
	}
	if r.DayOfMonth < 1 || r.DayOfMonth > 31 {
		return newValidationError("recurring rule day of month must be in 1..31, got %d", r.DayOfMonth)
	}
	if r.NextDue.IsZero() {
		return newValidationError("recurring rule is missing its first due date")
	}
	if r.Remaining != nil && *r.Remaining < 0 {
		return newValidationError("recurring rule remaining occurrences must not be negative, got %d", *r.Remaining)
	}
	// The materialized transaction carries the validation of the money fields.
	return r.materialize(r.NextDue).Validate()
}

// materialize converts one due occurrence into a concrete transaction dated
// due, tagged with the rule id. The transaction id is minted here so that
// each occurrence is its own immutable entry.
func (r RecurringRule) materialize(due Date) Transaction {
	note := r.Note
	if note == "" {
		note = r.Name
	}
	return Transaction{
		ID:              uuid.NewString(),
		Date:            due,
		Type:            r.Type,
		Amount:          r.Amount,
		Category:        r.Category,
		Note:            note,
		SourceID:        r.SourceID,
		SourceKind:      r.SourceKind,
		DestinationID:   r.DestinationID,
		DestinationKind: r.DestinationKind,
		RuleID:          r.ID,
	}
}

// Rules returns a copy of the recurring rule catalog.
func (l *Ledger) Rules() []RecurringRule {
	return slices.Clone(l.rules)
}

// Rule returns the recurring rule with the given id.
func (l *Ledger) Rule(id string) (RecurringRule, bool) {
	for _, r := range l.rules {
		if r.ID == id {
			return r, true
		}
	}
	return RecurringRule{}, false
}

// AddRule validates and adds a recurring rule to the catalog. The rule is not
// processed here; the next catch-up pass materializes whatever is due.
func (l *Ledger) AddRule(r RecurringRule) error {
	if r.ID == "" {
		return newValidationError("recurring rule is missing an id")
	}
	if _, exists := l.Rule(r.ID); exists {
		return newValidationError("recurring rule id %q already exists", r.ID)
	}
	if err := r.Validate(); err != nil {
		return err
	}
	l.rules = append(l.rules, r)
	return nil
}

// CancelRule cancels a recurring rule. With entirely=false the rule is
// deactivated in place and its history is kept ("cancel from now"). With
// entirely=true the rule is removed from the catalog and every transaction it
// materialized is reverted and removed ("cancel entirely"). The decision is
// one-shot, not resumable.
func (l *Ledger) CancelRule(id string, entirely bool) error {
	idx := slices.IndexFunc(l.rules, func(r RecurringRule) bool { return r.ID == id })
	if idx < 0 {
		return fmt.Errorf("recurring rule %q: %w", id, ErrNotFound)
	}
	if !entirely {
		l.rules[idx].Active = false
		return nil
	}
	l.DeleteTransactionsByRule(id)
	l.rules = slices.Delete(l.rules, idx, idx+1)
	return nil
}

// ProcessRecurring walks every active rule forward from its due date to
// today, materializing all overdue occurrences oldest first, each one fully
// applied to the ledger before the next is considered. It returns the number
// of transactions materialized.
//
// It runs once at load time, before any user mutation, so the state the user
// sees and edits is already caught up.
func (l *Ledger) ProcessRecurring(today Date) (int, error) {
	materialized := 0
	for i := range l.rules {
		r := &l.rules[i]
		if !r.Active {
			continue
		}
		due := r.NextDue
		fired := 0
		for !due.After(today) {
			if r.Remaining != nil && *r.Remaining == 0 {
				// Exhausted before this occurrence: retire without materializing.
				r.Active = false
				break
			}
			if err := l.AddTransaction(r.materialize(due)); err != nil {
				return materialized, fmt.Errorf("recurring rule %q on %s: %w", r.Name, due, err)
			}
			fired++
			materialized++
			if r.Remaining != nil {
				*r.Remaining--
				if *r.Remaining == 0 {
					r.Active = false
				}
			}
			due = due.NextMonthly(r.DayOfMonth)
			if !r.Active {
				break
			}
		}
		// A rule with a future due date is left untouched.
		if fired > 0 {
			r.NextDue = due
			r.LastProcessed = today
		}
	}
	return materialized, nil
}
