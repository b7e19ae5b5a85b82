package ledgerport

import (
	"context"
	"errors"
)

// accountMigrator migrates source accounts. The owning user reference is
// resolved through the identity mapper; an unresolved owner fails the
// record, not the run. Accounts with no explicit transfer caps receive the
// default limit policy, and every migrated account must satisfy the limit
// invariant.
type accountMigrator struct {
	ids    *IdentityMapper
	target TargetWriter
}

func (m *accountMigrator) migrate(ctx context.Context, a SourceAccount) (string, error) {
	userID, err := m.ids.Resolve(KindUser, a.UserID)
	if err != nil {
		var missing *MissingMappingError
		if errors.As(err, &missing) {
			return "", &MissingReferenceError{Kind: KindUser, SourceID: a.UserID}
		}
		return "", err
	}

	accountType, err := ParseAccountType(a.Type)
	if err != nil {
		return "", &ValidationError{Field: "accountType", Reason: err.Error()}
	}
	status, err := ParseAccountStatus(a.Status)
	if err != nil {
		return "", &ValidationError{Field: "status", Reason: err.Error()}
	}

	limits := mergeLimits(a, accountType)
	if err := checkLimits(limits.Daily, limits.Monthly); err != nil {
		return "", err
	}

	rec := TargetAccount{
		SourceID:             a.ID,
		UserID:               userID,
		Number:               a.Number,
		Type:                 accountType,
		Name:                 a.Name,
		Currency:             a.Currency,
		Balance:              a.Balance,
		Status:               status,
		DailyTransferLimit:   limits.Daily,
		MonthlyTransferLimit: limits.Monthly,
		CreatedAt:            a.CreatedAt,
		UpdatedAt:            a.UpdatedAt,
	}
	targetID, err := m.target.InsertAccount(ctx, rec)
	if err != nil {
		return "", &StoreIOError{Op: "insert account", Err: err}
	}
	if err := m.ids.Register(KindAccount, a.ID, targetID); err != nil {
		return "", err
	}
	return targetID, nil
}
