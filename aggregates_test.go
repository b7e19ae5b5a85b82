package ledgerport

import (
	"context"
	"testing"
)

func TestRecomputeAggregates(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()

	a1, _ := store.InsertAccount(ctx, TargetAccount{SourceID: "a-1", Number: "ACC-001", Currency: USD})
	a2, _ := store.InsertAccount(ctx, TargetAccount{SourceID: "a-2", Number: "ACC-002", Currency: USD})

	for _, tx := range []TargetTransaction{
		{SourceAccountID: a1, DestinationAccountID: a2, Amount: d("100"), Type: "transfer", Status: TxCompleted, CreatedAt: refTime},
		{SourceAccountID: a1, DestinationAccountID: a2, Amount: d("40"), Type: "transfer", Status: TxPending, CreatedAt: refTime},
		// Earlier in the month: counts toward the monthly total only.
		{SourceAccountID: a1, DestinationAccountID: a2, Amount: d("60"), Type: "transfer", Status: TxCompleted, CreatedAt: refTime.AddDate(0, 0, -10)},
		// Failed transfers never count.
		{SourceAccountID: a1, DestinationAccountID: a2, Amount: d("999"), Type: "transfer", Status: TxFailed, CreatedAt: refTime},
		// Non-transfer operations never count.
		{SourceAccountID: a1, DestinationAccountID: a2, Amount: d("500"), Type: "deposit", Status: TxCompleted, CreatedAt: refTime},
		// Outside the month window entirely.
		{SourceAccountID: a1, DestinationAccountID: a2, Amount: d("70"), Type: "transfer", Status: TxCompleted, CreatedAt: refTime.AddDate(0, -2, 0)},
	} {
		if _, err := store.InsertTransaction(ctx, tx); err != nil {
			t.Fatalf("InsertTransaction() error = %v", err)
		}
	}

	if err := RecomputeAggregates(ctx, store, refTime); err != nil {
		t.Fatalf("RecomputeAggregates() error = %v", err)
	}

	check := func() {
		t.Helper()
		acc1 := accountByNumber(t, store, "ACC-001")
		if acc1.DailyTransferTotal.String() != "140" || acc1.MonthlyTransferTotal.String() != "200" {
			t.Errorf("ACC-001 totals = %s/%s, want 140/200",
				acc1.DailyTransferTotal, acc1.MonthlyTransferTotal)
		}
		// Incoming transfers do not consume the destination's caps.
		acc2 := accountByNumber(t, store, "ACC-002")
		if !acc2.DailyTransferTotal.IsZero() || !acc2.MonthlyTransferTotal.IsZero() {
			t.Errorf("ACC-002 totals = %s/%s, want 0/0",
				acc2.DailyTransferTotal, acc2.MonthlyTransferTotal)
		}
	}
	check()

	// Recomputing over the same history yields the same totals.
	if err := RecomputeAggregates(ctx, store, refTime); err != nil {
		t.Fatalf("second RecomputeAggregates() error = %v", err)
	}
	check()
}

func TestRecomputeAggregatesResetsStaleTotals(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	id, _ := store.InsertAccount(ctx, TargetAccount{SourceID: "a-1", Number: "ACC-001", Currency: USD})

	// A stale total with no backing transaction history is wiped.
	if err := store.UpdateAccountTotals(ctx, id, Totals{Daily: d("500"), Monthly: d("500")}); err != nil {
		t.Fatalf("UpdateAccountTotals() error = %v", err)
	}
	if err := RecomputeAggregates(ctx, store, refTime); err != nil {
		t.Fatalf("RecomputeAggregates() error = %v", err)
	}
	acc := accountByNumber(t, store, "ACC-001")
	if !acc.DailyTransferTotal.IsZero() || !acc.MonthlyTransferTotal.IsZero() {
		t.Errorf("totals = %s/%s, want 0/0", acc.DailyTransferTotal, acc.MonthlyTransferTotal)
	}
}
