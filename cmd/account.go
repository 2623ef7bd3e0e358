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

type accountAddCmd struct {
	name    string
	kind    string
	balance string
}

func (*accountAddCmd) Name() string     { return "account-add" }
func (*accountAddCmd) Synopsis() string { return "create a new asset or liability account" }
func (*accountAddCmd) Usage() string {
	return `fin account-add -name <name> [-kind <asset|liability>] [-balance <amount>]

  Creates an account with an optional opening balance. The opening balance is
  a direct value, not a transaction.
`
}

func (c *accountAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Display name of the account.")
	f.StringVar(&c.kind, "kind", string(finbook.Asset), "Account kind: asset or liability.")
	f.StringVar(&c.balance, "balance", "0", "Opening balance.")
}

func (c *accountAddCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	kind, err := finbook.ParseAccountKind(c.kind)
	if err != nil {
		return fail(err)
	}
	balance, err := finbook.ParseMoney(c.balance, ledger.Currency())
	if err != nil {
		return fail(fmt.Errorf("invalid balance %q: %w", c.balance, err))
	}
	a := &finbook.Account{ID: uuid.NewString(), Name: c.name, Kind: kind, Balance: balance}
	if err := ledger.Accounts().Add(a); err != nil {
		return fail(err)
	}
	if err := saveLedger(ledger); err != nil {
		return fail(err)
	}
	fmt.Printf("Created %s account %q (%s)\n", a.Kind, a.Name, a.ID)
	return subcommands.ExitSuccess
}

type accountSetCmd struct {
	account string
	balance string
}

func (*accountSetCmd) Name() string     { return "account-set" }
func (*accountSetCmd) Synopsis() string { return "override an account balance directly" }
func (*accountSetCmd) Usage() string {
	return `fin account-set -account <account> -balance <amount>

  Overrides the account balance directly. This is a non-transactional edit:
  no transaction records the change and nothing is reverted later.
`
}

func (c *accountSetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Account to override (id or name).")
	f.StringVar(&c.balance, "balance", "", "New balance.")
}

func (c *accountSetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	a, err := findAccount(ledger, c.account)
	if err != nil {
		return fail(err)
	}
	balance, err := finbook.ParseMoney(c.balance, ledger.Currency())
	if err != nil {
		return fail(fmt.Errorf("invalid balance %q: %w", c.balance, err))
	}
	if err := ledger.Accounts().SetBalance(a.ID, balance); err != nil {
		return fail(err)
	}
	if err := saveLedger(ledger); err != nil {
		return fail(err)
	}
	fmt.Printf("Set %q balance to %s\n", a.Name, balance)
	return subcommands.ExitSuccess
}

type accountDelCmd struct {
	account string
}

func (*accountDelCmd) Name() string     { return "account-del" }
func (*accountDelCmd) Synopsis() string { return "delete an account" }
func (*accountDelCmd) Usage() string {
	return `fin account-del -account <account>

  Deletes an account. Transactions referencing it are kept with a dangling
  id and display as "unknown account"; their balance effects on other
  accounts are untouched.
`
}

func (c *accountDelCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Account to delete (id or name).")
}

func (c *accountDelCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	a, err := findAccount(ledger, c.account)
	if err != nil {
		return fail(err)
	}
	if err := ledger.Accounts().Delete(a.ID); err != nil {
		return fail(err)
	}
	if err := saveLedger(ledger); err != nil {
		return fail(err)
	}
	fmt.Printf("Deleted account %q\n", a.Name)
	return subcommands.ExitSuccess
}

type accountsCmd struct{}

func (*accountsCmd) Name() string             { return "accounts" }
func (*accountsCmd) Synopsis() string         { return "list all accounts and their balances" }
func (*accountsCmd) Usage() string            { return "fin accounts\n\n  Lists all accounts and their balances.\n" }
func (*accountsCmd) SetFlags(_ *flag.FlagSet) {}

func (c *accountsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.Accounts(ledger))
	return subcommands.ExitSuccess
}
