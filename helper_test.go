package ledgerport

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// refTime anchors every fixture timestamp so the aggregate windows are
// deterministic.
var refTime = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

// fixtureSource is a small but complete export: three users, five accounts
// (three owned by the first user, two by the second), and three transfers.
// Completed transfers net to zero per account so the copied balances match
// the recomputed ones.
func fixtureSource() *StaticSource {
	return &StaticSource{
		SourceUsers: []SourceUser{
			{ID: "u-1", Name: "Ana Silva", Email: "ana@example.com", Role: "customer", Status: "active", CreatedAt: refTime.AddDate(-1, 0, 0)},
			{ID: "u-2", Name: "Bruno Costa", Email: "bruno@example.com", Role: "customer", Status: "active", CreatedAt: refTime.AddDate(-1, 0, 0)},
			{ID: "u-3", Name: "Carla Dias", Email: "carla@example.com", Role: "admin", Status: "active", CreatedAt: refTime.AddDate(-1, 0, 0)},
		},
		SourceAccounts: []SourceAccount{
			{ID: "a-1", UserID: "u-1", Number: "ACC-001", Type: "internal", Name: "Ana checking", Currency: USD, Balance: d("1000"), Status: "active", DailyTransferLimit: dp("2000"), MonthlyTransferLimit: dp("20000")},
			{ID: "a-2", UserID: "u-1", Number: "ACC-002", Type: "external", Name: "Ana external", Currency: USD, Balance: d("500"), Status: "active"},
			{ID: "a-3", UserID: "u-1", Number: "ACC-003", Type: "crypto", Name: "Ana crypto", Currency: USDT, Balance: d("3000"), Status: "active"},
			{ID: "a-4", UserID: "u-2", Number: "ACC-004", Type: "internal", Name: "Bruno checking", Currency: EUR, Balance: d("250"), Status: "active"},
			{ID: "a-5", UserID: "u-2", Number: "ACC-005", Type: "internal", Name: "Bruno savings", Currency: USD, Balance: d("0"), Status: "inactive"},
		},
		SourceTransactions: []SourceTransaction{
			{ID: "t-1", SourceAccountID: "a-1", DestinationAccountID: "a-4", Amount: d("100"), Currency: USD, Type: "transfer", Status: "completed", CreatedAt: refTime},
			{ID: "t-2", SourceAccountID: "a-1", DestinationAccountID: "a-2", Amount: d("50"), Currency: USD, Type: "transfer", Status: "pending", CreatedAt: refTime.AddDate(0, 0, -2)},
			{ID: "t-3", SourceAccountID: "a-4", DestinationAccountID: "a-1", Amount: d("100"), Currency: USD, Type: "transfer", Status: "completed", CreatedAt: refTime},
		},
	}
}

// migrateFixture runs a full migration of the fixture into a fresh store.
func migrateFixture(t *testing.T, source SourceReader) (*MemStore, MigrationSummary) {
	t.Helper()
	store := NewMemStore()
	o := NewOrchestrator(source, store)
	o.At = refTime
	summary, err := o.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return store, summary
}

// accountByNumber finds a migrated account by its stable number.
func accountByNumber(t *testing.T, store *MemStore, number string) TargetAccount {
	t.Helper()
	accounts, err := store.Accounts(context.Background())
	if err != nil {
		t.Fatalf("Accounts() error = %v", err)
	}
	for _, a := range accounts {
		if a.Number == number {
			return a
		}
	}
	t.Fatalf("no migrated account with number %q", number)
	return TargetAccount{}
}
