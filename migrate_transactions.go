package ledgerport

import (
	"context"
	"errors"
)

// transactionMigrator migrates source transactions. Both account references
// are resolved through the identity mapper; a transaction with either side
// unresolved is failed and excluded from the target store. On success the
// target-side account numbers are denormalized onto the record alongside
// the resolved ids.
type transactionMigrator struct {
	ids    *IdentityMapper
	target TargetWriter
	// numbers maps target account ids to their human-facing account
	// numbers, built from the target store after the account barrier.
	numbers map[string]string
}

func (m *transactionMigrator) migrate(ctx context.Context, t SourceTransaction) (string, error) {
	sourceAccID, err := m.resolveAccount(t.SourceAccountID)
	if err != nil {
		return "", err
	}
	destAccID, err := m.resolveAccount(t.DestinationAccountID)
	if err != nil {
		return "", err
	}

	status, err := parseTransactionStatus(t.Status)
	if err != nil {
		return "", &ValidationError{Field: "status", Reason: err.Error()}
	}

	rec := TargetTransaction{
		SourceID:                 t.ID,
		SourceAccountID:          sourceAccID,
		DestinationAccountID:     destAccID,
		SourceAccountNumber:      m.numbers[sourceAccID],
		DestinationAccountNumber: m.numbers[destAccID],
		Amount:                   t.Amount,
		Currency:                 t.Currency,
		Type:                     t.Type,
		Status:                   status,
		Description:              t.Description,
		CreatedAt:                t.CreatedAt,
	}
	targetID, err := m.target.InsertTransaction(ctx, rec)
	if err != nil {
		return "", &StoreIOError{Op: "insert transaction", Err: err}
	}
	if err := m.ids.Register(KindTransaction, t.ID, targetID); err != nil {
		return "", err
	}
	return targetID, nil
}

func (m *transactionMigrator) resolveAccount(sourceID string) (string, error) {
	targetID, err := m.ids.Resolve(KindAccount, sourceID)
	if err != nil {
		var missing *MissingMappingError
		if errors.As(err, &missing) {
			return "", &MissingReferenceError{Kind: KindAccount, SourceID: sourceID}
		}
		return "", err
	}
	return targetID, nil
}

func parseTransactionStatus(s string) (TransactionStatus, error) {
	switch TransactionStatus(s) {
	case TxCompleted, TxPending, TxFailed:
		return TransactionStatus(s), nil
	default:
		return "", errors.New("unknown transaction status: " + s)
	}
}
