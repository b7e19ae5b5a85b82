package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/ledger-tools/ledgerport"
	"github.com/ledger-tools/ledgerport/agent"
	"github.com/ledger-tools/ledgerport/renderer"
	"google.golang.org/genai"
)

// assistCmd is the subcommand for the AI assistant.
type assistCmd struct{}

// Name returns the name of the command.
func (*assistCmd) Name() string { return "assist" }

// Synopsis returns a short one-line synopsis of the command.
func (*assistCmd) Synopsis() string { return "Start an interactive session with the AI assistant." }

// Usage returns a long-form usage string.
func (*assistCmd) Usage() string {
	return `assist:
  Start an interactive session about the latest migration and audit.
`
}

// SetFlags sets the flags for the command.
func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

// Execute executes the command.
func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	initialPrompt := ""
	if f.NArg() > 0 {
		initialPrompt = strings.Join(f.Args(), " ")
	}

	target, err := LoadTarget()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading target store:", err)
		return subcommands.ExitFailure
	}

	// Ground the expert with a fresh audit of the current stores.
	report, err := ledgerport.NewAuditor(OpenSource(), target).Run(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error auditing stores:", err)
		return subcommands.ExitFailure
	}
	auditMD := renderer.RenderAudit(renderer.NewAudit(report))

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	reconciler := agent.NewReconciler("(no summary for this session, rely on the audit report)", auditMD)
	a := agent.New(os.Stdout, os.Stdin, reconciler)

	if err := a.Run(ctx, client, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
