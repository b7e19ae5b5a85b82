package renderer

import (
	"fmt"

	"github.com/ledger-tools/ledgerport"
)

// Audit is the view model for rendering an audit report.
type Audit struct {
	Rows     []CoverageRow
	Findings []FindingRow
}

// CoverageRow is the parity line of one entity kind.
type CoverageRow struct {
	Entity      string
	SourceTotal int
	Valid       int
	Invalid     int
	Missing     int
	Coverage    string
}

// FindingRow is one advisory balance finding.
type FindingRow struct {
	Kind   string
	Number string
	Detail string
}

// NewAudit builds the view model from an audit report.
func NewAudit(r ledgerport.AuditReport) *Audit {
	view := &Audit{
		Rows: []CoverageRow{
			coverageRow("users", r.Users),
			coverageRow("accounts", r.Accounts),
			coverageRow("transactions", r.Transactions),
		},
	}
	for _, f := range r.BalanceFindings {
		view.Findings = append(view.Findings, FindingRow{
			Kind:   string(f.Kind),
			Number: f.Number,
			Detail: f.Detail,
		})
	}
	return view
}

func coverageRow(entity string, r ledgerport.ValidationReport) CoverageRow {
	return CoverageRow{
		Entity:      entity,
		SourceTotal: r.SourceTotal,
		Valid:       r.ValidCount,
		Invalid:     r.InvalidCount,
		Missing:     r.MissingCount,
		Coverage:    fmt.Sprintf("%.1f%%", r.CoveragePercent),
	}
}
