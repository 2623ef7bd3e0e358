package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"
)

type categoriesCmd struct {
	add string
}

func (*categoriesCmd) Name() string     { return "categories" }
func (*categoriesCmd) Synopsis() string { return "list transaction categories, or add a custom one" }
func (*categoriesCmd) Usage() string {
	return `fin categories [-add <name>]

  Lists the known transaction categories: the built-in set followed by the
  custom ones. -add registers a new custom category.
`
}

func (c *categoriesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.add, "add", "", "Register a new custom category.")
}

func (c *categoriesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	if c.add != "" {
		if err := ledger.AddCategory(c.add); err != nil {
			return fail(err)
		}
		if err := saveLedger(ledger); err != nil {
			return fail(err)
		}
		fmt.Printf("Added category %q\n", c.add)
		return subcommands.ExitSuccess
	}
	fmt.Println(strings.Join(ledger.Categories(), "\n"))
	return subcommands.ExitSuccess
}
