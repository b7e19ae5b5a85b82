package ledgerport

import (
	"context"
	"testing"
)

func checkPartition(t *testing.T, name string, r ValidationReport) {
	t.Helper()
	if r.ValidCount+r.InvalidCount+r.MissingCount != r.SourceTotal {
		t.Errorf("%s: %d valid + %d invalid + %d missing != %d source records",
			name, r.ValidCount, r.InvalidCount, r.MissingCount, r.SourceTotal)
	}
}

func TestAuditFullCoverage(t *testing.T) {
	source := fixtureSource()
	store, _ := migrateFixture(t, source)

	report, err := NewAuditor(source, store).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for name, r := range map[string]ValidationReport{
		"users": report.Users, "accounts": report.Accounts, "transactions": report.Transactions,
	} {
		checkPartition(t, name, r)
		if r.CoveragePercent != 100 {
			t.Errorf("%s coverage = %.1f%%, want 100%%", name, r.CoveragePercent)
		}
		if r.InvalidCount != 0 || r.MissingCount != 0 {
			t.Errorf("%s = %+v, want all valid", name, r)
		}
	}
	if len(report.BalanceFindings) != 0 {
		t.Errorf("findings = %+v, want none", report.BalanceFindings)
	}
}

func TestAuditReportsMissingRecords(t *testing.T) {
	source := fixtureSource()
	source.SourceTransactions = append(source.SourceTransactions, SourceTransaction{
		ID: "t-4", SourceAccountID: "a-unknown", DestinationAccountID: "a-1",
		Amount: d("10"), Currency: USD, Type: "transfer", Status: "completed", CreatedAt: refTime,
	})
	store, _ := migrateFixture(t, source)

	report, err := NewAuditor(source, store).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	r := report.Transactions
	checkPartition(t, "transactions", r)
	if r.SourceTotal != 4 || r.ValidCount != 3 || r.MissingCount != 1 {
		t.Errorf("transactions = %+v, want 3 valid of 4 with 1 missing", r)
	}
	if r.CoveragePercent != 75 {
		t.Errorf("coverage = %.1f%%, want 75%%", r.CoveragePercent)
	}
}

func TestAuditReportsInvalidRecords(t *testing.T) {
	ctx := context.Background()
	source := &StaticSource{SourceUsers: []SourceUser{
		{ID: "u-1", Name: "Ana Silva", Email: "ana@example.com", Role: "customer"},
	}}
	store := NewMemStore()
	// Present but mismatched: the email was mangled on the way over.
	if _, err := store.InsertUser(ctx, TargetUser{SourceID: "u-1", Name: "Ana Silva", Email: "ana@example.org", Role: "customer"}); err != nil {
		t.Fatalf("InsertUser() error = %v", err)
	}

	report, err := NewAuditor(source, store).Run(ctx)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	r := report.Users
	checkPartition(t, "users", r)
	if r.InvalidCount != 1 || r.ValidCount != 0 {
		t.Errorf("users = %+v, want 1 invalid", r)
	}
	if r.CoveragePercent != 0 {
		t.Errorf("coverage = %.1f%%, want 0%%", r.CoveragePercent)
	}
}

func TestAuditEmptySourceIsFullCoverage(t *testing.T) {
	report, err := NewAuditor(&StaticSource{}, NewMemStore()).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Users.CoveragePercent != 100 {
		t.Errorf("coverage = %.1f%%, want 100%% for an empty source", report.Users.CoveragePercent)
	}
}

func TestAuditBalanceDivergence(t *testing.T) {
	ctx := context.Background()
	source := &StaticSource{SourceAccounts: []SourceAccount{
		{ID: "a-1", Number: "ACC-001", Currency: USD, Balance: d("1000")},
	}}
	store := NewMemStore()
	id, _ := store.InsertAccount(ctx, TargetAccount{
		SourceID: "a-1", Number: "ACC-001", Currency: USD, Balance: d("1000"),
		DailyTransferLimit: d("5000"), MonthlyTransferLimit: d("50000"),
	})
	// A completed outgoing transfer of 100 should have left 900 on the
	// account, but the stored balance still says 1000.
	store.InsertTransaction(ctx, TargetTransaction{
		SourceID: "t-1", SourceAccountID: id, DestinationAccountID: "elsewhere",
		Amount: d("100"), Currency: USD, Type: "transfer", Status: TxCompleted, CreatedAt: refTime,
	})

	report, err := NewAuditor(source, store).Run(ctx)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(report.BalanceFindings) != 1 {
		t.Fatalf("findings = %+v, want one divergence", report.BalanceFindings)
	}
	f := report.BalanceFindings[0]
	if f.Kind != FindingBalanceDivergence || f.Number != "ACC-001" {
		t.Errorf("finding = %+v, want balance-divergence on ACC-001", f)
	}
}

func TestAuditLimitExceeded(t *testing.T) {
	ctx := context.Background()
	source := &StaticSource{SourceAccounts: []SourceAccount{
		{ID: "a-1", Number: "ACC-001", Currency: USD, Balance: d("0")},
	}}
	store := NewMemStore()
	id, _ := store.InsertAccount(ctx, TargetAccount{
		SourceID: "a-1", Number: "ACC-001", Currency: USD, Balance: d("0"),
		DailyTransferLimit: d("100"), MonthlyTransferLimit: d("1000"),
	})
	if err := store.UpdateAccountTotals(ctx, id, Totals{Daily: d("150"), Monthly: d("150")}); err != nil {
		t.Fatalf("UpdateAccountTotals() error = %v", err)
	}

	report, err := NewAuditor(source, store).Run(ctx)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	var found bool
	for _, f := range report.BalanceFindings {
		if f.Kind == FindingLimitExceeded && f.Number == "ACC-001" {
			found = true
		}
	}
	if !found {
		t.Errorf("findings = %+v, want a limit-exceeded finding on ACC-001", report.BalanceFindings)
	}
}
