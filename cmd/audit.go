package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/ledger-tools/ledgerport"
	"github.com/ledger-tools/ledgerport/renderer"
)

type auditCmd struct{}

func (*auditCmd) Name() string     { return "audit" }
func (*auditCmd) Synopsis() string { return "audit the target store against the source export" }
func (*auditCmd) Usage() string {
	return `lpt audit [-source <dir>] [-target <file>]

  Compares every source record against the target store and reports
  per-entity coverage, plus advisory balance and limit findings. The
  audit never modifies either store.
`
}

func (c *auditCmd) SetFlags(f *flag.FlagSet) {}

func (c *auditCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	target, err := LoadTarget()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	report, err := ledgerport.NewAuditor(OpenSource(), target).Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.RenderAudit(renderer.NewAudit(report)))
	return subcommands.ExitSuccess
}
