package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/ledger-tools/ledgerport"
	"github.com/ledger-tools/ledgerport/renderer"
)

// runCmd holds the flags for the 'run' subcommand.
type runCmd struct {
	workers int
	at      string
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "migrate the source export into the target store" }
func (*runCmd) Usage() string {
	return `lpt run [-source <dir>] [-target <file>] [-workers n] [-at <date>]

  Migrates users, accounts and transactions in dependency order, then
  recomputes the transfer aggregates. Re-running resumes an interrupted
  migration without duplicating records.
`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.workers, "workers", 4, "number of parallel workers per stage")
	f.StringVar(&c.at, "at", "", "reference date for aggregate windows (YYYY-MM-DD, defaults to today)")
}

func (c *runCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	at := time.Now()
	if c.at != "" {
		var err error
		at, err = time.Parse("2006-01-02", c.at)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid -at date %q: %v\n", c.at, err)
			return subcommands.ExitUsageError
		}
	}
	if c.workers < 1 {
		fmt.Fprintln(os.Stderr, "Error: -workers must be >= 1")
		return subcommands.ExitUsageError
	}

	target, err := LoadTarget()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	o := ledgerport.NewOrchestrator(OpenSource(), target)
	o.Workers = c.workers
	o.At = at

	summary, runErr := o.Run(ctx)

	// Persist whatever was migrated, even on an aborted run, so that the
	// next run resumes from there.
	if err := SaveTarget(target); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.RenderSummary(renderer.NewSummary(summary)))

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
