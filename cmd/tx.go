package cmd

import (
	"context"
	"flag"

	"github.com/finbook/finbook"
	"github.com/finbook/finbook/renderer"
	"github.com/google/subcommands"
)

type txCmd struct {
	limit    int
	category string
	account  string
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list transactions, most recent first" }
func (*txCmd) Usage() string {
	return `fin tx [-n <count>] [-c <category>] [-account <account>]

  Lists transactions, most recent first, with options for filtering and
  limiting the output.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "n", 0, "Show only the N most recent transactions.")
	f.StringVar(&c.category, "c", "", "Show only this category.")
	f.StringVar(&c.account, "account", "", "Show only transactions touching this account (id or name).")
}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := loadLedger()
	if err != nil {
		return fail(err)
	}

	accountID := ""
	if c.account != "" {
		a, err := findAccount(ledger, c.account)
		if err != nil {
			return fail(err)
		}
		accountID = a.ID
	}

	var txs []finbook.Transaction
	for _, t := range ledger.Recent(0) {
		if c.category != "" && t.Category != c.category {
			continue
		}
		if accountID != "" && t.SourceID != accountID && t.DestinationID != accountID {
			continue
		}
		txs = append(txs, t)
	}
	if c.limit > 0 && len(txs) > c.limit {
		txs = txs[:c.limit]
	}

	printMarkdown(renderer.Transactions(ledger, txs))
	return subcommands.ExitSuccess
}
