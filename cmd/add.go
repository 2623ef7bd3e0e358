package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/finbook/finbook"
	"github.com/google/subcommands"
	"github.com/google/uuid"
)

type addCmd struct {
	txType   string
	amount   string
	category string
	note     string
	from     string
	to       string
	date     string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a new transaction" }
func (*addCmd) Usage() string {
	return `fin add -t <income|expense|transfer> -a <amount> -c <category> [-from <account>] [-to <account>] [-n <note>] [-d <date>]

  Records a transaction and applies its balance effects to the linked
  accounts. Income and expense use -from only; a transfer needs both -from
  and -to. An income or expense without -from is unlinked and has no balance
  effect.

Usage Examples:
# 200 groceries paid from the Cash account.
$ fin add -t expense -a 200 -c Groceries -from Cash

# Pay 300 from Cash onto the credit card.
$ fin add -t transfer -a 300 -c Other -from Cash -to "Credit Card"
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.txType, "t", "expense", "Transaction type: income, expense or transfer.")
	f.StringVar(&c.amount, "a", "", "Amount, a positive decimal like 42.50.")
	f.StringVar(&c.category, "c", "", "Category of the transaction.")
	f.StringVar(&c.note, "n", "", "Optional note.")
	f.StringVar(&c.from, "from", "", "Source account (id or name). Optional for income/expense.")
	f.StringVar(&c.to, "to", "", "Destination account (id or name). Transfers only.")
	f.StringVar(&c.date, "d", finbook.Today().String(), "Date of the transaction.")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	t, err := c.transaction(ledger)
	if err != nil {
		return fail(err)
	}
	checkCategory(ledger, t.Category)
	if err := ledger.AddTransaction(t); err != nil {
		return fail(err)
	}
	if err := saveLedger(ledger); err != nil {
		return fail(err)
	}
	fmt.Printf("Recorded %s transaction %s\n", t.Type, t.ID)
	return subcommands.ExitSuccess
}

// transaction builds the transaction from the flags, resolving account
// references against the store so the tx carries the endpoint kinds.
func (c *addCmd) transaction(ledger *finbook.Ledger) (finbook.Transaction, error) {
	var t finbook.Transaction
	txType, err := finbook.ParseTxType(c.txType)
	if err != nil {
		return t, err
	}
	amount, err := finbook.ParseMoney(c.amount, ledger.Currency())
	if err != nil {
		return t, fmt.Errorf("invalid amount %q: %w", c.amount, err)
	}
	day, err := finbook.ParseDate(c.date)
	if err != nil {
		return t, err
	}
	t = finbook.Transaction{
		ID:       uuid.NewString(),
		Date:     day,
		Type:     txType,
		Amount:   amount,
		Category: c.category,
		Note:     c.note,
	}
	if c.from != "" {
		a, err := findAccount(ledger, c.from)
		if err != nil {
			return t, err
		}
		t.SourceID, t.SourceKind = a.ID, a.Kind
	}
	if c.to != "" {
		a, err := findAccount(ledger, c.to)
		if err != nil {
			return t, err
		}
		t.DestinationID, t.DestinationKind = a.ID, a.Kind
	}
	return t, nil
}
