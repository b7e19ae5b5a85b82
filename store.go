package ledgerport

import "context"

// SourceReader is the read contract of the document-oriented source store.
// Each listing is a finite, restartable sequence; ordering is not
// significant to the engine.
type SourceReader interface {
	ListUsers(ctx context.Context) ([]SourceUser, error)
	ListAccounts(ctx context.Context) ([]SourceAccount, error)
	ListTransactions(ctx context.Context) ([]SourceTransaction, error)
}

// TargetWriter is the write contract of the relational target store. Each
// insert is atomic per record and returns the new target id.
type TargetWriter interface {
	InsertUser(ctx context.Context, u TargetUser) (string, error)
	InsertAccount(ctx context.Context, a TargetAccount) (string, error)
	InsertTransaction(ctx context.Context, t TargetTransaction) (string, error)
	// UpdateAccountTotals patches the derived transfer aggregates onto a
	// migrated account.
	UpdateAccountTotals(ctx context.Context, accountID string, totals Totals) error
}

// TargetReader is the read contract of the target store, used to rebuild
// identity mappings and by the auditor.
type TargetReader interface {
	Users(ctx context.Context) ([]TargetUser, error)
	Accounts(ctx context.Context) ([]TargetAccount, error)
	Transactions(ctx context.Context) ([]TargetTransaction, error)
}

// TargetStore is the full contract the orchestrator needs: it writes
// migrated records and reads them back for aggregate recomputation and
// identity restoration.
type TargetStore interface {
	TargetWriter
	TargetReader
}

// StaticSource is a SourceReader over in-memory slices. Useful for tests
// and dry runs.
type StaticSource struct {
	SourceUsers        []SourceUser
	SourceAccounts     []SourceAccount
	SourceTransactions []SourceTransaction
}

func (s *StaticSource) ListUsers(ctx context.Context) ([]SourceUser, error) {
	return s.SourceUsers, nil
}

func (s *StaticSource) ListAccounts(ctx context.Context) ([]SourceAccount, error) {
	return s.SourceAccounts, nil
}

func (s *StaticSource) ListTransactions(ctx context.Context) ([]SourceTransaction, error) {
	return s.SourceTransactions, nil
}
