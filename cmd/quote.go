package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/finbook/finbook"
	"github.com/google/subcommands"
)

type quoteCmd struct {
	symbol string
}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "look up the latest price for a ticker symbol" }
func (*quoteCmd) Usage() string {
	return `fin quote -s <symbol>

  Looks up the latest price for a ticker symbol, with the conversion rate
  into the ledger currency when they differ. The result only helps filling
  in an account value by hand; it is never written to the ledger.
`
}

func (c *quoteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Ticker symbol, e.g. AAPL or VUSA.AS.")
}

func (c *quoteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" {
		fmt.Println(c.Usage())
		return subcommands.ExitUsageError
	}
	ledger, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	q, err := finbook.FetchQuote(c.symbol, ledger.Currency())
	if err != nil {
		return fail(err)
	}
	fmt.Printf("%s: %.4f %s\n", q.Symbol, q.Price, q.Currency)
	if q.Rate != 0 {
		fmt.Printf("1 %s = %.4f %s (%.4f %s)\n", q.Currency, q.Rate, ledger.Currency(), q.Price*q.Rate, ledger.Currency())
	}
	return subcommands.ExitSuccess
}
