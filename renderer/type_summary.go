package renderer

import (
	"github.com/ledger-tools/ledgerport"
)

// Summary is the view model for rendering a migration summary.
type Summary struct {
	State                string
	UsersMigrated        int
	UsersFailed          int
	AccountsMigrated     int
	AccountsFailed       int
	TransactionsMigrated int
	TransactionsFailed   int
	Failures             []FailureRow
}

// FailureRow is one failed record in the summary view.
type FailureRow struct {
	Entity   string
	SourceID string
	Reason   string
}

// NewSummary builds the view model from a migration summary.
func NewSummary(s ledgerport.MigrationSummary) *Summary {
	view := &Summary{
		State:                s.State.String(),
		UsersMigrated:        s.UsersMigrated,
		UsersFailed:          s.UsersFailed,
		AccountsMigrated:     s.AccountsMigrated,
		AccountsFailed:       s.AccountsFailed,
		TransactionsMigrated: s.TransactionsMigrated,
		TransactionsFailed:   s.TransactionsFailed,
	}
	for _, f := range s.Failures {
		view.Failures = append(view.Failures, FailureRow{
			Entity:   string(f.Kind),
			SourceID: f.SourceID,
			Reason:   f.Reason,
		})
	}
	return view
}
