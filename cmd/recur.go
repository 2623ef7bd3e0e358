package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/finbook/finbook"
	"github.com/finbook/finbook/renderer"
	"github.com/google/subcommands"
	"github.com/google/uuid"
)

type recurAddCmd struct {
	name     string
	txType   string
	amount   string
	category string
	note     string
	from     string
	to       string
	day      int
	start    string
	times    int
}

func (*recurAddCmd) Name() string     { return "recur-add" }
func (*recurAddCmd) Synopsis() string { return "create a monthly recurring rule" }
func (*recurAddCmd) Usage() string {
	return `fin recur-add -name <name> -t <type> -a <amount> -c <category> -day <1..31> [-from <account>] [-to <account>] [-start <date>] [-times <n>] [-n <note>]

  Creates a rule that materializes one transaction per month on the given
  day. In months shorter than -day the occurrence falls on the month's last
  day. -times limits the number of occurrences; without it the rule runs
  until cancelled. Overdue occurrences (a -start in the past) are caught up
  immediately.

Usage Examples:
# Rent, 1200 from Cash on the 1st of every month.
$ fin recur-add -name Rent -t expense -a 1200 -c Rent -from Cash -day 1

# A 12-installment payment plan on the credit card.
$ fin recur-add -name "Payment plan" -t expense -a 99.90 -c Shopping -from "Credit Card" -day 15 -times 12
`
}

func (c *recurAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Name of the rule.")
	f.StringVar(&c.txType, "t", "expense", "Transaction type: income, expense or transfer.")
	f.StringVar(&c.amount, "a", "", "Amount per occurrence.")
	f.StringVar(&c.category, "c", "", "Category of the materialized transactions.")
	f.StringVar(&c.note, "n", "", "Optional note, defaults to the rule name.")
	f.StringVar(&c.from, "from", "", "Source account (id or name).")
	f.StringVar(&c.to, "to", "", "Destination account (id or name). Transfers only.")
	f.IntVar(&c.day, "day", 1, "Day of the month the rule fires on (1..31).")
	f.StringVar(&c.start, "start", "", "First due date. Defaults to the next occurrence of -day.")
	f.IntVar(&c.times, "times", 0, "Number of occurrences, 0 for unlimited.")
}

func (c *recurAddCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	r, err := c.rule(ledger)
	if err != nil {
		return fail(err)
	}
	checkCategory(ledger, r.Category)
	if err := ledger.AddRule(r); err != nil {
		return fail(err)
	}
	// catch up immediately, so a start date in the past materializes now
	n, err := ledger.ProcessRecurring(finbook.Today())
	if err != nil {
		return fail(err)
	}
	if err := saveLedger(ledger); err != nil {
		return fail(err)
	}
	fmt.Printf("Created recurring rule %q (%s), %d occurrence(s) materialized\n", r.Name, r.ID, n)
	return subcommands.ExitSuccess
}

func (c *recurAddCmd) rule(ledger *finbook.Ledger) (finbook.RecurringRule, error) {
	var r finbook.RecurringRule
	txType, err := finbook.ParseTxType(c.txType)
	if err != nil {
		return r, err
	}
	amount, err := finbook.ParseMoney(c.amount, ledger.Currency())
	if err != nil {
		return r, fmt.Errorf("invalid amount %q: %w", c.amount, err)
	}
	start, err := c.firstDue()
	if err != nil {
		return r, err
	}
	r = finbook.RecurringRule{
		ID:         uuid.NewString(),
		Name:       c.name,
		Type:       txType,
		Amount:     amount,
		Category:   c.category,
		Note:       c.note,
		DayOfMonth: c.day,
		NextDue:    start,
		Active:     true,
	}
	if c.times > 0 {
		times := c.times
		r.Remaining = &times
	}
	if c.from != "" {
		a, err := findAccount(ledger, c.from)
		if err != nil {
			return r, err
		}
		r.SourceID, r.SourceKind = a.ID, a.Kind
	}
	if c.to != "" {
		a, err := findAccount(ledger, c.to)
		if err != nil {
			return r, err
		}
		r.DestinationID, r.DestinationKind = a.ID, a.Kind
	}
	return r, nil
}

// firstDue computes the first due date: the explicit -start, or the next
// occurrence of -day (today's month when still ahead, otherwise next month).
func (c *recurAddCmd) firstDue() (finbook.Date, error) {
	if c.start != "" {
		return finbook.ParseDate(c.start)
	}
	today := finbook.Today()
	due := finbook.NewDate(today.Year(), today.Month(), 1).Add(-1).NextMonthly(c.day)
	if due.Before(today) {
		due = due.NextMonthly(c.day)
	}
	return due, nil
}

type recurCancelCmd struct {
	id  string
	all bool
}

func (*recurCancelCmd) Name() string     { return "recur-cancel" }
func (*recurCancelCmd) Synopsis() string { return "cancel a recurring rule" }
func (*recurCancelCmd) Usage() string {
	return `fin recur-cancel -id <rule> [-all]

  Cancels a recurring rule. By default the rule stops firing but keeps its
  history ("cancel from now"). With -all the rule is removed and every
  transaction it materialized is reverted and deleted ("cancel entirely").
  This is a one-shot decision, not resumable.
`
}

func (c *recurCancelCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Id of the rule to cancel.")
	f.BoolVar(&c.all, "all", false, "Also revert and delete the rule's transaction history.")
}

func (c *recurCancelCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Println(c.Usage())
		return subcommands.ExitUsageError
	}
	ledger, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	if err := ledger.CancelRule(c.id, c.all); err != nil {
		return fail(err)
	}
	if err := saveLedger(ledger); err != nil {
		return fail(err)
	}
	if c.all {
		fmt.Printf("Cancelled rule %s and reverted its history\n", c.id)
	} else {
		fmt.Printf("Deactivated rule %s, history kept\n", c.id)
	}
	return subcommands.ExitSuccess
}

type recurCmd struct{}

func (*recurCmd) Name() string             { return "recur" }
func (*recurCmd) Synopsis() string         { return "list recurring rules" }
func (*recurCmd) Usage() string            { return "fin recur\n\n  Lists all recurring rules.\n" }
func (*recurCmd) SetFlags(_ *flag.FlagSet) {}

func (c *recurCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.Rules(ledger))
	return subcommands.ExitSuccess
}
