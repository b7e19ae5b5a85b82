// Package cmd implements the CLI application driving ledger migrations.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/google/subcommands"
	"github.com/ledger-tools/ledgerport"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&runCmd{}, "migration")
	c.Register(&auditCmd{}, "migration")

	c.Register(&validateCmd{}, "accounts")

	c.Register(&topicCmd{}, "documentation")
	c.Register(&assistCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var sourceDir = flag.String("source", "dump", "Path to the document-store export directory (users.jsonl, accounts.jsonl, transactions.jsonl)")
var targetFile = flag.String("target", "target.json", "Path to the target store snapshot file (JSON)")

// OpenSource opens the document-store export.
func OpenSource() ledgerport.SourceReader {
	return &ledgerport.DumpSource{Dir: *sourceDir}
}

// LoadTarget loads the target store snapshot, or creates an empty store when
// the snapshot does not exist yet.
func LoadTarget() (*ledgerport.MemStore, error) {
	f, err := os.Open(*targetFile)
	if errors.Is(err, fs.ErrNotExist) {
		return ledgerport.NewMemStore(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open target snapshot %q: %w", *targetFile, err)
	}
	defer f.Close()
	return ledgerport.DecodeTarget(f)
}

// SaveTarget writes the target store snapshot back to disk.
func SaveTarget(store *ledgerport.MemStore) error {
	f, err := os.Create(*targetFile)
	if err != nil {
		return fmt.Errorf("could not create target snapshot %q: %w", *targetFile, err)
	}
	defer f.Close()
	return ledgerport.EncodeTarget(f, store)
}
