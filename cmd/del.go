package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type delCmd struct {
	id string
}

func (*delCmd) Name() string     { return "del" }
func (*delCmd) Synopsis() string { return "delete a transaction, reverting its balance effects" }
func (*delCmd) Usage() string {
	return `fin del -id <transaction>

  Deletes a transaction. Its balance effects are exactly reverted, leaving
  every touched account as if the transaction had never been recorded.
`
}

func (c *delCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Id of the transaction to delete.")
}

func (c *delCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Println(c.Usage())
		return subcommands.ExitUsageError
	}
	ledger, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	if err := ledger.DeleteTransaction(c.id); err != nil {
		return fail(err)
	}
	if err := saveLedger(ledger); err != nil {
		return fail(err)
	}
	fmt.Printf("Deleted transaction %s\n", c.id)
	return subcommands.ExitSuccess
}
