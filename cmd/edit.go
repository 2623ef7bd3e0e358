package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/finbook/finbook"
	"github.com/google/subcommands"
)

type editCmd struct {
	id       string
	txType   string
	amount   string
	category string
	note     string
	from     string
	to       string
	date     string
	unlink   bool
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "edit an existing transaction" }
func (*editCmd) Usage() string {
	return `fin edit -id <transaction> [-t <type>] [-a <amount>] [-c <category>] [-n <note>] [-from <account>] [-to <account>] [-d <date>] [-unlink]

  Edits a transaction in place: the previous balance effects are exactly
  reverted and the new ones applied. Only the provided flags change; the
  identity and the recurring-rule link are preserved. -unlink detaches the
  source and destination accounts.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Id of the transaction to edit.")
	f.StringVar(&c.txType, "t", "", "New transaction type.")
	f.StringVar(&c.amount, "a", "", "New amount.")
	f.StringVar(&c.category, "c", "", "New category.")
	f.StringVar(&c.note, "n", "", "New note.")
	f.StringVar(&c.from, "from", "", "New source account (id or name).")
	f.StringVar(&c.to, "to", "", "New destination account (id or name).")
	f.StringVar(&c.date, "d", "", "New date.")
	f.BoolVar(&c.unlink, "unlink", false, "Detach the transaction from its accounts.")
}

func (c *editCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Println(c.Usage())
		return subcommands.ExitUsageError
	}
	ledger, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	t, ok := ledger.Transaction(c.id)
	if !ok {
		return fail(fmt.Errorf("transaction %q: %w", c.id, finbook.ErrNotFound))
	}
	if err := c.apply(ledger, &t); err != nil {
		return fail(err)
	}
	checkCategory(ledger, t.Category)
	if err := ledger.UpdateTransaction(c.id, t); err != nil {
		return fail(err)
	}
	if err := saveLedger(ledger); err != nil {
		return fail(err)
	}
	fmt.Printf("Updated transaction %s\n", c.id)
	return subcommands.ExitSuccess
}

// apply overlays the provided flags on the stored transaction.
func (c *editCmd) apply(ledger *finbook.Ledger, t *finbook.Transaction) error {
	if c.txType != "" {
		txType, err := finbook.ParseTxType(c.txType)
		if err != nil {
			return err
		}
		t.Type = txType
	}
	if c.amount != "" {
		amount, err := finbook.ParseMoney(c.amount, ledger.Currency())
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", c.amount, err)
		}
		t.Amount = amount
	}
	if c.category != "" {
		t.Category = c.category
	}
	if c.note != "" {
		t.Note = c.note
	}
	if c.date != "" {
		day, err := finbook.ParseDate(c.date)
		if err != nil {
			return err
		}
		t.Date = day
	}
	if c.unlink {
		t.SourceID, t.SourceKind = "", ""
		t.DestinationID, t.DestinationKind = "", ""
	}
	if c.from != "" {
		a, err := findAccount(ledger, c.from)
		if err != nil {
			return err
		}
		t.SourceID, t.SourceKind = a.ID, a.Kind
	}
	if c.to != "" {
		a, err := findAccount(ledger, c.to)
		if err != nil {
			return err
		}
		t.DestinationID, t.DestinationKind = a.ID, a.Kind
	}
	return nil
}
