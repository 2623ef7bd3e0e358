// Package cmd implements the CLI application to manage the finbook ledger.
package cmd

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/finbook/finbook"
	"github.com/google/subcommands"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dataFile = flag.String("data-file", "finbook.json", "Path to the ledger data file (single JSON document)")

// loadLedger loads the ledger from the app data file and catches up all
// overdue recurring occurrences before any user mutation runs. The advanced
// state is persisted right away, so a crash later loses at most the current
// user operation, never the catch-up.
func loadLedger() (*finbook.Ledger, error) {
	l := finbook.LoadLedger(*dataFile)
	n, err := l.ProcessRecurring(finbook.Today())
	if err != nil {
		return nil, fmt.Errorf("could not process recurring rules: %w", err)
	}
	if n > 0 {
		log.Printf("materialized %d recurring transaction(s)", n)
		if err := finbook.SaveLedger(*dataFile, l); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// saveLedger persists the ledger back to the app data file.
func saveLedger(l *finbook.Ledger) error {
	return finbook.SaveLedger(*dataFile, l)
}

// printMarkdown renders markdown to the terminal. On any rendering problem
// the raw markdown is printed instead.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// findAccount resolves an account reference: an exact id, or a unique
// case-insensitive name.
func findAccount(l *finbook.Ledger, ref string) (*finbook.Account, error) {
	if a, ok := l.Accounts().Get(ref); ok {
		return a, nil
	}
	var found *finbook.Account
	for _, a := range l.Accounts().Accounts() {
		if strings.EqualFold(a.Name, ref) {
			if found != nil {
				return nil, fmt.Errorf("account name %q is ambiguous, use the id", ref)
			}
			found = a
		}
	}
	if found == nil {
		return nil, fmt.Errorf("no account matches %q", ref)
	}
	return found, nil
}

// checkCategory warns when the category is unknown and a close known one
// exists, without blocking the operation: any name is accepted as typed.
func checkCategory(l *finbook.Ledger, category string) {
	if category == "" || l.HasCategory(category) {
		return
	}
	if suggestion, ok := finbook.SuggestCategory(category, l.Categories()); ok {
		fmt.Fprintf(os.Stderr, "note: unknown category %q, did you mean %q?\n", category, suggestion)
	}
}

// fail prints an error and returns the matching exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	if finbook.IsValidation(err) {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}
