package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/ledger-tools/ledgerport/cmd"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cmd.Register(commander)

	// Shell completion. Exits early when invoked by the shell.
	completion := &complete.Command{
		Flags: map[string]complete.Predictor{
			"source": predict.Dirs("*"),
			"target": predict.Files("*.json"),
		},
		Sub: map[string]*complete.Command{
			"run": {Flags: map[string]complete.Predictor{
				"workers": predict.Something,
				"at":      predict.Something,
			}},
			"audit":    {},
			"validate": {},
			"topic":    {},
			"assist":   {},
		},
	}
	completion.Complete("lpt")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
