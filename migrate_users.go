package ledgerport

import "context"

// userMigrator copies source users verbatim into the target store and
// registers their identities. Users depend on nothing, so this stage runs
// first.
type userMigrator struct {
	ids    *IdentityMapper
	target TargetWriter
}

func (m *userMigrator) migrate(ctx context.Context, u SourceUser) (string, error) {
	rec := TargetUser{
		SourceID:       u.ID,
		Name:           u.Name,
		Email:          u.Email,
		PasswordHash:   u.PasswordHash,
		Role:           u.Role,
		DocumentType:   u.DocumentType,
		DocumentNumber: u.DocumentNumber,
		Status:         u.Status,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
	targetID, err := m.target.InsertUser(ctx, rec)
	if err != nil {
		return "", &StoreIOError{Op: "insert user", Err: err}
	}
	if err := m.ids.Register(KindUser, u.ID, targetID); err != nil {
		return "", err
	}
	return targetID, nil
}
