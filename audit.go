package ledgerport

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// ValidationReport is the parity result for one entity kind. The partition
// invariant ValidCount + InvalidCount + MissingCount == SourceTotal holds
// for every report.
type ValidationReport struct {
	SourceTotal     int     `json:"sourceTotal"`
	ValidCount      int     `json:"validCount"`
	InvalidCount    int     `json:"invalidCount"`
	MissingCount    int     `json:"missingCount"`
	CoveragePercent float64 `json:"coveragePercent"`
}

// FindingKind classifies an advisory balance finding.
type FindingKind string

const (
	// FindingBalanceDivergence: the stored target balance does not match
	// the balance recomputed from the migrated transfer history.
	FindingBalanceDivergence FindingKind = "balance-divergence"
	// FindingLimitExceeded: a derived transfer total exceeds its cap.
	FindingLimitExceeded FindingKind = "limit-exceeded"
)

// BalanceFinding is one advisory reconciliation finding. Findings never
// fail a migration; the true bookkeeping intent of the source system is
// still unclear, so operators decide what a divergence means.
type BalanceFinding struct {
	Kind      FindingKind `json:"kind"`
	AccountID string      `json:"accountId"`
	Number    string      `json:"number"`
	Currency  string      `json:"currency"`
	Detail    string      `json:"detail"`
}

// AuditReport is the full output of one audit pass.
type AuditReport struct {
	Users           ValidationReport `json:"users"`
	Accounts        ValidationReport `json:"accounts"`
	Transactions    ValidationReport `json:"transactions"`
	BalanceFindings []BalanceFinding `json:"balanceFindings,omitempty"`
}

// Auditor reads both stores independently after a migration and computes
// per-entity parity plus a balance reconciliation. It never trusts the
// migration summary.
type Auditor struct {
	source SourceReader
	target TargetReader
}

// NewAuditor creates an auditor over the given stores.
func NewAuditor(source SourceReader, target TargetReader) *Auditor {
	return &Auditor{source: source, target: target}
}

// Run performs the audit. The three entity checks are independent and run
// in parallel over read-only snapshots taken up front.
func (a *Auditor) Run(ctx context.Context) (AuditReport, error) {
	sourceUsers, err := a.source.ListUsers(ctx)
	if err != nil {
		return AuditReport{}, &StoreIOError{Op: "list source users", Err: err}
	}
	sourceAccounts, err := a.source.ListAccounts(ctx)
	if err != nil {
		return AuditReport{}, &StoreIOError{Op: "list source accounts", Err: err}
	}
	sourceTransactions, err := a.source.ListTransactions(ctx)
	if err != nil {
		return AuditReport{}, &StoreIOError{Op: "list source transactions", Err: err}
	}
	targetUsers, err := a.target.Users(ctx)
	if err != nil {
		return AuditReport{}, &StoreIOError{Op: "list target users", Err: err}
	}
	targetAccounts, err := a.target.Accounts(ctx)
	if err != nil {
		return AuditReport{}, &StoreIOError{Op: "list target accounts", Err: err}
	}
	targetTransactions, err := a.target.Transactions(ctx)
	if err != nil {
		return AuditReport{}, &StoreIOError{Op: "list target transactions", Err: err}
	}

	var report AuditReport
	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		report.Users = parity(sourceUsers, targetUsers,
			func(u SourceUser) string { return u.ID },
			func(u TargetUser) string { return u.SourceID },
			func(s SourceUser, t TargetUser) bool {
				return s.Name == t.Name && s.Email == t.Email && s.Role == t.Role
			})
	}()
	go func() {
		defer wg.Done()
		report.Accounts = parity(sourceAccounts, targetAccounts,
			func(a SourceAccount) string { return a.ID },
			func(a TargetAccount) string { return a.SourceID },
			func(s SourceAccount, t TargetAccount) bool {
				return s.Number == t.Number && s.Currency == t.Currency && s.Balance.Equal(t.Balance)
			})
	}()
	go func() {
		defer wg.Done()
		report.Transactions = parity(sourceTransactions, targetTransactions,
			func(t SourceTransaction) string { return t.ID },
			func(t TargetTransaction) string { return t.SourceID },
			func(s SourceTransaction, t TargetTransaction) bool {
				return s.Amount.Equal(t.Amount) && s.Currency == t.Currency && s.Status == string(t.Status)
			})
	}()
	var findings []BalanceFinding
	go func() {
		defer wg.Done()
		findings = reconcileBalances(sourceAccounts, targetAccounts, targetTransactions)
	}()
	wg.Wait()

	report.BalanceFindings = findings
	return report, nil
}

// parity computes the coverage report of one entity kind. Source ids index
// both sides: every source record is either valid (present and
// field-equivalent), invalid (present but mismatched), or missing.
func parity[S, T any](source []S, target []T, sourceID func(S) string, targetSourceID func(T) string, equivalent func(S, T) bool) ValidationReport {
	index := make(map[string]T, len(target))
	for _, t := range target {
		index[targetSourceID(t)] = t
	}

	report := ValidationReport{SourceTotal: len(source)}
	for _, s := range source {
		id := sourceID(s)
		t, ok := index[id]
		switch {
		case !ok:
			report.MissingCount++
		case equivalent(s, t):
			report.ValidCount++
		default:
			report.InvalidCount++
		}
	}
	if report.SourceTotal > 0 {
		report.CoveragePercent = float64(report.ValidCount) / float64(report.SourceTotal) * 100
	} else {
		report.CoveragePercent = 100
	}
	return report
}

// reconcileBalances recomputes each migrated account's expected
// post-migration balance, treating the copied source balance as the opening
// balance and applying every completed migrated transfer (debit the source
// side, credit the destination side). A divergence from the stored balance
// is reported as an advisory finding, as is a derived transfer total
// exceeding its cap.
func reconcileBalances(sourceAccounts []SourceAccount, targetAccounts []TargetAccount, transactions []TargetTransaction) []BalanceFinding {
	opening := make(map[string]decimal.Decimal, len(sourceAccounts))
	for _, s := range sourceAccounts {
		opening[s.ID] = s.Balance
	}

	delta := make(map[string]decimal.Decimal, len(targetAccounts))
	for _, tx := range transactions {
		if tx.Type != "transfer" || tx.Status != TxCompleted {
			continue
		}
		delta[tx.SourceAccountID] = delta[tx.SourceAccountID].Sub(tx.Amount)
		delta[tx.DestinationAccountID] = delta[tx.DestinationAccountID].Add(tx.Amount)
	}

	var findings []BalanceFinding
	for _, acc := range targetAccounts {
		expected := opening[acc.SourceID].Add(delta[acc.ID])
		if !expected.Equal(acc.Balance) {
			findings = append(findings, BalanceFinding{
				Kind:      FindingBalanceDivergence,
				AccountID: acc.ID,
				Number:    acc.Number,
				Currency:  acc.Currency,
				Detail: fmt.Sprintf("stored balance %s, expected %s from migrated transfer history",
					M(acc.Balance, acc.Currency), M(expected, acc.Currency)),
			})
		}
		if acc.DailyTransferTotal.GreaterThan(acc.DailyTransferLimit) {
			findings = append(findings, BalanceFinding{
				Kind:      FindingLimitExceeded,
				AccountID: acc.ID,
				Number:    acc.Number,
				Currency:  acc.Currency,
				Detail: fmt.Sprintf("daily transfer total %s exceeds limit %s",
					M(acc.DailyTransferTotal, acc.Currency), M(acc.DailyTransferLimit, acc.Currency)),
			})
		}
		if acc.MonthlyTransferTotal.GreaterThan(acc.MonthlyTransferLimit) {
			findings = append(findings, BalanceFinding{
				Kind:      FindingLimitExceeded,
				AccountID: acc.ID,
				Number:    acc.Number,
				Currency:  acc.Currency,
				Detail: fmt.Sprintf("monthly transfer total %s exceeds limit %s",
					M(acc.MonthlyTransferTotal, acc.Currency), M(acc.MonthlyTransferLimit, acc.Currency)),
			})
		}
	}
	return findings
}
