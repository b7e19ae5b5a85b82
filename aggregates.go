package ledgerport

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Totals holds the derived running transfer totals of one account.
type Totals struct {
	Daily   decimal.Decimal
	Monthly decimal.Decimal
}

// RecomputeAggregates derives the daily and monthly transfer totals of every
// migrated account from the migrated transaction history and writes them
// back onto the account records. A total is the sum of outgoing transfer
// amounts whose timestamp falls within the day, respectively the calendar
// month, containing the reference time. Failed transfers never count
// toward a cap.
//
// The recomputation is idempotent: running it twice over the same
// transaction set yields the same totals.
func RecomputeAggregates(ctx context.Context, store TargetStore, at time.Time) error {
	accounts, err := store.Accounts(ctx)
	if err != nil {
		return &StoreIOError{Op: "list target accounts", Err: err}
	}
	transactions, err := store.Transactions(ctx)
	if err != nil {
		return &StoreIOError{Op: "list target transactions", Err: err}
	}

	day := DayWindow(at)
	month := MonthWindow(at)

	totals := make(map[string]Totals, len(accounts))
	for _, tx := range transactions {
		if tx.Type != "transfer" || tx.Status == TxFailed {
			continue
		}
		t := totals[tx.SourceAccountID]
		if month.Contains(tx.CreatedAt) {
			t.Monthly = t.Monthly.Add(tx.Amount)
		}
		if day.Contains(tx.CreatedAt) {
			t.Daily = t.Daily.Add(tx.Amount)
		}
		totals[tx.SourceAccountID] = t
	}

	for _, acc := range accounts {
		if err := store.UpdateAccountTotals(ctx, acc.ID, totals[acc.ID]); err != nil {
			return &StoreIOError{Op: "update account totals", Err: err}
		}
	}
	return nil
}
