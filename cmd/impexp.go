package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/finbook/finbook"
	"github.com/google/subcommands"
)

type exportCmd struct {
	dir string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the whole ledger to a timestamped file" }
func (*exportCmd) Usage() string {
	return `fin export [-dir <directory>]

  Writes the whole ledger to a timestamped JSON file. The file round-trips
  through 'fin import' unchanged.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dir, "dir", ".", "Directory to write the export file into.")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	path, err := finbook.ExportFile(c.dir, ledger, time.Now())
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Exported ledger to %s\n", path)
	return subcommands.ExitSuccess
}

type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "replace the ledger with an imported file" }
func (*importCmd) Usage() string {
	return `fin import <file>

  Validates the given file and replaces the current ledger wholesale. On a
  validation error the current ledger is left untouched.
`
}

func (*importCmd) SetFlags(_ *flag.FlagSet) {}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Println(c.Usage())
		return subcommands.ExitUsageError
	}
	file, err := os.Open(f.Arg(0))
	if err != nil {
		return fail(err)
	}
	defer file.Close()

	ledger, err := finbook.Import(file)
	if err != nil {
		return fail(err)
	}
	if err := saveLedger(ledger); err != nil {
		return fail(err)
	}
	fmt.Printf("Imported %d transaction(s) and %d account(s) from %s\n",
		len(ledger.Transactions()), ledger.Accounts().Len(), f.Arg(0))
	return subcommands.ExitSuccess
}
