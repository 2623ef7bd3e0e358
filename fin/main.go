// fin is the finbook command line: a personal finance ledger with recurring
// transactions, kept in a single local JSON file.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/finbook/finbook/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Shell completion: a no-op unless invoked by the completion hooks.
	completion := &complete.Command{
		Flags: map[string]complete.Predictor{"data-file": predict.Files("*.json")},
		Sub:   map[string]*complete.Command{},
	}
	for _, c := range cmd.Commands {
		completion.Sub[c.Name()] = &complete.Command{}
	}
	completion.Complete("fin")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
