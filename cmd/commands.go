package cmd

import "github.com/google/subcommands"

// Commands lists every subcommand of the fin CLI.
// A main package registers them all and executes the user-selected one.
var Commands = []subcommands.Command{
	&addCmd{},
	&editCmd{},
	&delCmd{},
	&txCmd{},
	&accountAddCmd{},
	&accountSetCmd{},
	&accountDelCmd{},
	&accountsCmd{},
	&recurAddCmd{},
	&recurCancelCmd{},
	&recurCmd{},
	&summaryCmd{},
	&categoriesCmd{},
	&exportCmd{},
	&importCmd{},
	&assistCmd{},
	&quoteCmd{},
}
