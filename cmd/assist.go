package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/finbook/finbook"
	"github.com/finbook/finbook/agent"
	"github.com/finbook/finbook/renderer"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

type assistCmd struct {
	recent int
}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session with the AI advisor" }
func (*assistCmd) Usage() string {
	return `fin assist [-recent <n>] [initial question]

  Starts an interactive session with the AI advisor, grounded on the current
  summary and the most recent transactions. The advisor only reads a snapshot:
  it never mutates the ledger, and a failing call degrades to an inline error.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.recent, "recent", 20, "Number of recent transactions shared with the advisor.")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initialPrompt := ""
	if f.NArg() > 0 {
		initialPrompt = strings.Join(f.Args(), " ")
	}

	ledger, err := loadLedger()
	if err != nil {
		return fail(err)
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	snapshot := renderer.Snapshot(ledger, finbook.Today(), c.recent)
	advisor := agent.New(snapshot)

	if err := advisor.Run(ctx, client, os.Stdout, os.Stdin, printMarkdown, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Advisor failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
